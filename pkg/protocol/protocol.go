// Package protocol defines the messages exchanged between the extraction host
// and a display surface. Every message is a JSON object carrying a "type"
// discriminant; messages are one-way and carry all the state they need, so
// receiving one twice has the same effect as receiving it once.
//
//	surface -> host   {"type":"init"}
//	surface -> host   {"type":"toggleExpand","expandContent":false}
//	surface -> host   {"type":"notify","message":"Copied to clipboard"}
//	host -> surface   {"type":"selectionChange","data":{...}|[...]|null}
//	host -> surface   {"type":"error","message":"Failed to extract selection"}
package protocol

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Type is the message discriminant.
type Type string

// Message types.
const (
	TypeInit            Type = "init"
	TypeToggleExpand    Type = "toggleExpand"
	TypeNotify          Type = "notify"
	TypeSelectionChange Type = "selectionChange"
	TypeError           Type = "error"
)

var (
	// ErrUnknownType is returned by Decode for a well-formed message with an unrecognized type.
	ErrUnknownType = errors.New("unknown message type")
	// ErrMalformed is returned by Decode for input that is not a valid message.
	ErrMalformed = errors.New("malformed message")
)

// Message is any protocol message.
type Message interface {
	MessageType() Type
}

// Init asks the host for the current selection, fully expanded.
type Init struct{}

// ToggleExpand asks the host to re-extract the selection with the given depth flag.
type ToggleExpand struct {
	ExpandContent bool
}

// Notify asks the host to show a transient notice to the user.
type Notify struct {
	Message string
}

// SelectionChange carries the extracted selection: a JSON object for a single
// node, an array for several and null for an empty selection.
type SelectionChange struct {
	Data json.RawMessage
}

// Error reports a non-fatal host failure. The surface keeps its prior content.
type Error struct {
	Message string
}

func (Init) MessageType() Type            { return TypeInit }
func (ToggleExpand) MessageType() Type    { return TypeToggleExpand }
func (Notify) MessageType() Type          { return TypeNotify }
func (SelectionChange) MessageType() Type { return TypeSelectionChange }
func (Error) MessageType() Type           { return TypeError }

// IsEmpty reports whether the selection change carries an empty selection.
func (m SelectionChange) IsEmpty() bool {
	data := bytes.TrimSpace(m.Data)
	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}

// IsList reports whether the selection change carries several trees.
func (m SelectionChange) IsList() bool {
	data := bytes.TrimSpace(m.Data)
	return len(data) > 0 && data[0] == '['
}

// envelope is the wire form of every message.
type envelope struct {
	Type          Type            `json:"type"`
	ExpandContent *bool           `json:"expandContent,omitempty"`
	Message       *string         `json:"message,omitempty"`
	Data          json.RawMessage `json:"data,omitempty"`
}

// Encode serializes a message into its wire form.
func Encode(m Message) ([]byte, error) {
	env := envelope{Type: m.MessageType()}

	switch msg := m.(type) {
	case Init:
	case ToggleExpand:
		env.ExpandContent = &msg.ExpandContent
	case Notify:
		env.Message = &msg.Message
	case Error:
		env.Message = &msg.Message
	case SelectionChange:
		env.Data = msg.Data
		if len(bytes.TrimSpace(env.Data)) == 0 {
			env.Data = json.RawMessage("null")
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownType, m)
	}

	return json.Marshal(env)
}

// Decode parses a wire message. Unrecognized types yield ErrUnknownType and
// payloads missing a required field yield ErrMalformed; receivers are expected
// to ignore both.
func Decode(data []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch env.Type {
	case TypeInit:
		return Init{}, nil
	case TypeToggleExpand:
		if env.ExpandContent == nil {
			return nil, fmt.Errorf("%w: %s without expandContent", ErrMalformed, env.Type)
		}
		return ToggleExpand{ExpandContent: *env.ExpandContent}, nil
	case TypeNotify:
		if env.Message == nil {
			return nil, fmt.Errorf("%w: %s without message", ErrMalformed, env.Type)
		}
		return Notify{Message: *env.Message}, nil
	case TypeError:
		if env.Message == nil {
			return nil, fmt.Errorf("%w: %s without message", ErrMalformed, env.Type)
		}
		return Error{Message: *env.Message}, nil
	case TypeSelectionChange:
		// A missing data field reads as null: both mean an empty selection.
		data := bytes.TrimSpace(env.Data)
		if len(data) == 0 {
			return SelectionChange{Data: json.RawMessage("null")}, nil
		}
		if c := data[0]; c != '{' && c != '[' && !bytes.Equal(data, []byte("null")) {
			return nil, fmt.Errorf("%w: %s data must be an object, an array or null", ErrMalformed, env.Type)
		}
		return SelectionChange{Data: json.RawMessage(data)}, nil
	case "":
		return nil, fmt.Errorf("%w: missing type", ErrMalformed)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
}
