package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = (wsPongWait * 9) / 10
)

// Upgrader turns HTTP requests into websocket Conns. Browsers may only
// connect from the serving origin or from an origin in AllowedOrigins;
// clients that send no Origin header (CLIs, plugin bridges) are accepted.
type Upgrader struct {
	// AllowedOrigins lists extra origins such as "https://www.figma.com".
	// "*" allows every origin.
	AllowedOrigins []string
}

// Upgrade turns an HTTP request into a websocket Conn.
// On failure the upgrader has already replied to the client.
func (u Upgrader) Upgrade(w http.ResponseWriter, r *http.Request) (Conn, error) {
	up := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     u.checkOrigin,
	}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket upgrade: %w", err)
	}
	return newWSConn(conn), nil
}

// Upgrade upgrades with the default policy: same origin or no Origin header.
func Upgrade(w http.ResponseWriter, r *http.Request) (Conn, error) {
	return Upgrader{}.Upgrade(w, r)
}

func (u Upgrader) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range u.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(strings.TrimSuffix(allowed, "/"), origin) {
			return true
		}
	}
	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(parsed.Host, r.Host)
}

// Dial connects to a websocket endpoint, e.g. ws://localhost:8790/ws.
func Dial(ctx context.Context, endpoint string) (Conn, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket dial %s: %w (status %d)", endpoint, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("websocket dial %s: %w", endpoint, err)
	}
	return newWSConn(conn), nil
}

// wsConn runs one reader and one writer goroutine per websocket, so that
// Read and Write can honor contexts and the writer can interleave pings.
type wsConn struct {
	conn *websocket.Conn

	in      chan []byte
	out     chan []byte
	readErr error

	done      chan struct{}
	closeOnce sync.Once
}

func newWSConn(conn *websocket.Conn) *wsConn {
	c := &wsConn{
		conn: conn,
		in:   make(chan []byte, 32),
		out:  make(chan []byte, 32),
		done: make(chan struct{}),
	}
	go c.readLoop()
	go c.writeLoop()
	return c
}

func (c *wsConn) readLoop() {
	defer close(c.in)

	_ = c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			c.readErr = err
			c.Close()
			return
		}
		select {
		case c.in <- frame:
		case <-c.done:
			return
		}
	}
}

func (c *wsConn) writeLoop() {
	ticker := time.NewTicker(wsPingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(wsWriteWait))
			_ = c.conn.Close()
			return
		case frame := <-c.out:
			if err := c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
				c.Close()
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.Close()
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
				c.Close()
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		}
	}
}

func (c *wsConn) Read(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case frame, ok := <-c.in:
		if !ok {
			if c.readErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrClosed, c.readErr)
			}
			return nil, ErrClosed
		}
		return frame, nil
	}
}

func (c *wsConn) Write(ctx context.Context, frame []byte) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrClosed
	case c.out <- frame:
		return nil
	}
}

func (c *wsConn) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}
