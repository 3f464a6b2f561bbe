// Package host implements the extraction side of the selection sync protocol.
//
// A Host owns the selection and answers each connected surface from a single
// event loop per connection: inbound protocol messages and selection change
// notifications are handled one at a time, and every extraction runs to
// completion on that loop before the next event is looked at.
package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/kataras/figma-inspector/pkg/extractor"
	"github.com/kataras/figma-inspector/pkg/logger"
	"github.com/kataras/figma-inspector/pkg/protocol"
	"github.com/kataras/figma-inspector/pkg/scene"
	"github.com/kataras/figma-inspector/pkg/transport"
)

// ExtractionFailedMessage is the generic text sent to the surface when the
// selection could not be extracted.
const ExtractionFailedMessage = "Failed to extract selection"

// Options configures a Host.
type Options struct {
	Extractor extractor.Extractor
	Logger    logger.Logger // nil = no logging
	// OnNotify, when set, receives every notice a surface asks the host to show.
	OnNotify func(message string)
	// AllowedOrigins lists browser origins, besides the host's own, that may open /ws.
	AllowedOrigins []string
}

// Host serves the current selection to display surfaces.
type Host struct {
	selection *scene.Selection
	extractor extractor.Extractor
	log       logger.Logger
	onNotify  func(string)
	upgrader  transport.Upgrader
}

// New returns a Host publishing the given selection.
func New(selection *scene.Selection, opts Options) *Host {
	return &Host{
		selection: selection,
		extractor: opts.Extractor,
		log:       logger.Safe(opts.Logger),
		onNotify:  opts.OnNotify,
		upgrader:  transport.Upgrader{AllowedOrigins: opts.AllowedOrigins},
	}
}

// Selection returns the selection the host publishes.
func (h *Host) Selection() *scene.Selection {
	return h.selection
}

// session is the per-connection state. expand holds the surface's last
// requested depth flag, nil until the surface sends one.
type session struct {
	host   *Host
	conn   transport.Conn
	expand *bool
}

// Serve runs the protocol over conn until ctx is done or the connection fails.
// A connection closed by the peer ends the session without error.
func (h *Host) Serve(ctx context.Context, conn transport.Conn) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	frames := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		for {
			frame, err := conn.Read(ctx)
			if err != nil {
				readErr <- err
				return
			}
			select {
			case frames <- frame:
			case <-ctx.Done():
				return
			}
		}
	}()

	changes := h.selection.Subscribe(ctx)
	s := &session{host: h, conn: conn}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			if errors.Is(err, transport.ErrClosed) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case frame := <-frames:
			if err := s.handleFrame(ctx, frame); err != nil {
				return err
			}
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if err := s.push(ctx, s.changeExpand()); err != nil {
				return err
			}
		}
	}
}

// changeExpand is the depth flag for a push triggered by a selection change:
// the surface's last requested flag, or false when it never asked. Only the
// init reply is expanded by default.
func (s *session) changeExpand() bool {
	if s.expand == nil {
		return false
	}
	return *s.expand
}

// handleFrame dispatches one inbound frame. Frames that do not decode are
// dropped without a reply. The returned error is a transport failure.
func (s *session) handleFrame(ctx context.Context, frame []byte) error {
	msg, err := protocol.Decode(frame)
	if err != nil {
		return nil
	}

	switch m := msg.(type) {
	case protocol.Init:
		s.host.selection.Invalidate()
		return s.push(ctx, true)
	case protocol.ToggleExpand:
		expand := m.ExpandContent
		s.expand = &expand
		s.host.selection.Invalidate()
		return s.push(ctx, expand)
	case protocol.Notify:
		s.host.log.Infof("%s", m.Message)
		if s.host.onNotify != nil {
			s.host.onNotify(m.Message)
		}
	}
	// host-bound copies of surface-bound messages are ignored.
	return nil
}

// push extracts the current selection and sends it. Extraction failures are
// reported to the surface as an error message; only write failures are returned.
func (s *session) push(ctx context.Context, expand bool) error {
	data, err := s.host.extract(ctx, expand)
	if err != nil {
		s.host.log.Errorf("extract selection: %v", err)
		return s.send(ctx, protocol.Error{Message: ExtractionFailedMessage})
	}
	return s.send(ctx, protocol.SelectionChange{Data: data})
}

func (s *session) send(ctx context.Context, msg protocol.Message) error {
	frame, err := protocol.Encode(msg)
	if err != nil {
		return err
	}
	if err := s.conn.Write(ctx, frame); err != nil {
		return fmt.Errorf("send %s: %w", msg.MessageType(), err)
	}
	return nil
}

// extract resolves and serializes the current selection.
func (h *Host) extract(ctx context.Context, expand bool) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	nodes, err := h.selection.Nodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve selection: %w", err)
	}

	result, err := h.extractor.ExtractSelection(nodes, expand)
	if err != nil {
		return nil, err
	}
	return extractor.Marshal(result)
}
