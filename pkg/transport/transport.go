// Package transport carries protocol frames between the host and a surface.
// A Conn delivers whole frames in order; it does not interpret them.
package transport

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Read and Write once the connection is closed.
var ErrClosed = errors.New("connection closed")

// Conn is a bidirectional, ordered, frame-oriented connection.
// Read and Write may be called from different goroutines, but each must
// have at most one caller at a time.
type Conn interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, frame []byte) error
	Close() error
}

// Pipe returns two connected in-memory ends. Frames written to one end are read
// from the other. Each direction buffers up to 64 frames before Write blocks.
// Closing either end closes both.
func Pipe() (Conn, Conn) {
	var (
		aToB = make(chan []byte, 64)
		bToA = make(chan []byte, 64)
		s    = &pipeState{done: make(chan struct{})}
	)
	return &pipeEnd{in: bToA, out: aToB, state: s}, &pipeEnd{in: aToB, out: bToA, state: s}
}

type pipeState struct {
	once sync.Once
	done chan struct{}
}

type pipeEnd struct {
	in    <-chan []byte
	out   chan<- []byte
	state *pipeState
}

func (p *pipeEnd) Read(ctx context.Context) ([]byte, error) {
	select {
	case frame := <-p.in:
		return frame, nil
	default:
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.state.done:
		return nil, ErrClosed
	case frame := <-p.in:
		return frame, nil
	}
}

func (p *pipeEnd) Write(ctx context.Context, frame []byte) error {
	select {
	case <-p.state.done:
		return ErrClosed
	default:
	}

	cp := make([]byte, len(frame))
	copy(cp, frame)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.state.done:
		return ErrClosed
	case p.out <- cp:
		return nil
	}
}

func (p *pipeEnd) Close() error {
	p.state.once.Do(func() { close(p.state.done) })
	return nil
}
