// Package surface implements the display side of the selection sync protocol.
//
// A Surface holds the most recent extraction pushed by the host and renders it
// as pretty or minified JSON with a token estimate. It is driven by two kinds
// of events: inbound protocol frames (Handle, Listen) and user actions
// (SetExpand, SetTab, Copy).
package surface

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kataras/figma-inspector/pkg/formatter"
	"github.com/kataras/figma-inspector/pkg/logger"
	"github.com/kataras/figma-inspector/pkg/protocol"
	"github.com/kataras/figma-inspector/pkg/tokens"
	"github.com/kataras/figma-inspector/pkg/transport"
)

// State is the surface lifecycle state.
type State int

// States. A surface only moves forward: it never returns to AwaitingData.
const (
	Uninitialized State = iota
	AwaitingData
	Displaying
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case AwaitingData:
		return "awaiting data"
	case Displaying:
		return "displaying"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Tab selects the serialization shown and copied.
type Tab int

// Tabs.
const (
	TabPretty Tab = iota
	TabMinified
)

func (t Tab) String() string {
	if t == TabMinified {
		return "minified"
	}
	return "pretty"
}

// ParseTab parses "pretty" or "minified".
func ParseTab(s string) (Tab, error) {
	switch s {
	case "pretty":
		return TabPretty, nil
	case "minified", "minify", "min":
		return TabMinified, nil
	}
	return TabPretty, fmt.Errorf("unknown tab %q (must be pretty or minified)", s)
}

// Notices sent to the host after a copy action.
const (
	NoticeCopied      = "Copied to clipboard"
	noticeCopyFailed  = "Copy failed: %v"
	noticeNothingCopy = "Nothing to copy"
)

// ErrNothingToCopy is returned by Copy when no content is displayed.
var ErrNothingToCopy = errors.New("nothing to copy")

// View is a snapshot of what the surface displays.
type View struct {
	State  State
	Tab    Tab
	Expand bool
	// Empty is true when the host reported an empty selection.
	Empty bool
	// Text is the active tab's serialization, "" while nothing is displayed.
	Text   string
	Tokens int
	// Notice is the last error reported by the host, cleared by the next selection change.
	Notice string
}

// Options configures a Surface.
type Options struct {
	Clipboard Clipboard
	Logger    logger.Logger // nil = no logging
	// OnUpdate, when set, is called with a fresh View after every change.
	OnUpdate func(View)
}

// Surface is the display side of one host connection.
type Surface struct {
	conn      transport.Conn
	clipboard Clipboard
	log       logger.Logger
	onUpdate  func(View)

	mu       sync.Mutex
	state    State
	tab      Tab
	expand   bool
	data     []byte // raw JSON of the last selection change
	pretty   string
	minified string
	notice   string
}

// New returns an uninitialized surface talking over conn.
// The expand preference starts true, matching the host's init reply.
func New(conn transport.Conn, opts Options) *Surface {
	return &Surface{
		conn:      conn,
		clipboard: opts.Clipboard,
		log:       logger.Safe(opts.Logger),
		onUpdate:  opts.OnUpdate,
		state:     Uninitialized,
		tab:       TabPretty,
		expand:    true,
	}
}

// Start sends the init request and waits for data.
func (s *Surface) Start(ctx context.Context) error {
	if err := s.send(ctx, protocol.Init{}); err != nil {
		return err
	}
	s.mu.Lock()
	if s.state == Uninitialized {
		s.state = AwaitingData
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// Listen handles inbound frames until ctx is done or the connection closes.
func (s *Surface) Listen(ctx context.Context) error {
	for {
		frame, err := s.conn.Read(ctx)
		if err != nil {
			if errors.Is(err, transport.ErrClosed) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		s.Handle(frame)
	}
}

// Handle applies one inbound frame. Frames that do not decode, and messages
// meant for the host, are ignored.
func (s *Surface) Handle(frame []byte) {
	msg, err := protocol.Decode(frame)
	if err != nil {
		return
	}

	switch m := msg.(type) {
	case protocol.SelectionChange:
		s.display(m)
	case protocol.Error:
		s.mu.Lock()
		s.notice = m.Message
		s.mu.Unlock()
		s.log.Warnf("host: %s", m.Message)
	default:
		return
	}
	s.notify()
}

func (s *Surface) display(m protocol.SelectionChange) {
	var pretty, minified string
	if !m.IsEmpty() {
		var err error
		if pretty, err = formatter.Pretty(m.Data); err != nil {
			s.log.Warnf("ignoring undecodable selection: %v", err)
			return
		}
		if minified, err = formatter.Minify(m.Data); err != nil {
			s.log.Warnf("ignoring undecodable selection: %v", err)
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Displaying
	s.notice = ""
	s.pretty, s.minified = pretty, minified
	if m.IsEmpty() {
		s.data = nil
	} else {
		s.data = append([]byte(nil), m.Data...)
	}
}

// SetExpand records the expand preference and asks the host to re-extract.
func (s *Surface) SetExpand(ctx context.Context, expand bool) error {
	s.mu.Lock()
	s.expand = expand
	s.mu.Unlock()

	return s.send(ctx, protocol.ToggleExpand{ExpandContent: expand})
}

// SetTab switches between the pretty and minified serializations.
func (s *Surface) SetTab(tab Tab) {
	s.mu.Lock()
	s.tab = tab
	s.mu.Unlock()
	s.notify()
}

// Data returns the raw JSON of the displayed selection, nil when nothing is displayed.
func (s *Surface) Data() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...)
}

// View returns a snapshot of the displayed state.
func (s *Surface) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Surface) viewLocked() View {
	text := s.pretty
	if s.tab == TabMinified {
		text = s.minified
	}
	return View{
		State:  s.state,
		Tab:    s.tab,
		Expand: s.expand,
		Empty:  s.state == Displaying && s.data == nil,
		Text:   text,
		Tokens: tokens.Estimate(text),
		Notice: s.notice,
	}
}

// Copy writes the active tab's text to the clipboard and tells the host the
// outcome. A clipboard failure is returned to the caller as well as reported.
func (s *Surface) Copy(ctx context.Context) error {
	view := s.View()
	if view.Text == "" {
		_ = s.send(ctx, protocol.Notify{Message: noticeNothingCopy})
		return ErrNothingToCopy
	}

	if s.clipboard == nil {
		err := errors.New("no clipboard available")
		_ = s.send(ctx, protocol.Notify{Message: fmt.Sprintf(noticeCopyFailed, err)})
		return err
	}

	if err := s.clipboard.WriteText(view.Text); err != nil {
		if sendErr := s.send(ctx, protocol.Notify{Message: fmt.Sprintf(noticeCopyFailed, err)}); sendErr != nil {
			s.log.Warnf("%v", sendErr)
		}
		return fmt.Errorf("copy to clipboard: %w", err)
	}

	return s.send(ctx, protocol.Notify{Message: NoticeCopied})
}

func (s *Surface) send(ctx context.Context, msg protocol.Message) error {
	frame, err := protocol.Encode(msg)
	if err != nil {
		return err
	}
	if err := s.conn.Write(ctx, frame); err != nil {
		return fmt.Errorf("send %s: %w", msg.MessageType(), err)
	}
	return nil
}

func (s *Surface) notify() {
	if s.onUpdate == nil {
		return
	}
	s.onUpdate(s.View())
}
