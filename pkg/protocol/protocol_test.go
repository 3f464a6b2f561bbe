package protocol

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{name: "init", msg: Init{}, want: `{"type":"init"}`},
		{name: "toggle off", msg: ToggleExpand{ExpandContent: false}, want: `{"type":"toggleExpand","expandContent":false}`},
		{name: "toggle on", msg: ToggleExpand{ExpandContent: true}, want: `{"type":"toggleExpand","expandContent":true}`},
		{name: "notify", msg: Notify{Message: "Copied to clipboard"}, want: `{"type":"notify","message":"Copied to clipboard"}`},
		{name: "error", msg: Error{Message: "Failed to extract selection"}, want: `{"type":"error","message":"Failed to extract selection"}`},
		{name: "empty selection", msg: SelectionChange{}, want: `{"type":"selectionChange","data":null}`},
		{name: "single tree", msg: SelectionChange{Data: json.RawMessage(`{"name":"A","type":"FRAME"}`)}, want: `{"type":"selectionChange","data":{"name":"A","type":"FRAME"}}`},
		{name: "tree list", msg: SelectionChange{Data: json.RawMessage(`[{"name":"A","type":"TEXT"}]`)}, want: `{"type":"selectionChange","data":[{"name":"A","type":"TEXT"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.msg)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		frame   string
		want    Message
		wantErr error
	}{
		{name: "init", frame: `{"type":"init"}`, want: Init{}},
		{name: "toggle", frame: `{"type":"toggleExpand","expandContent":false}`, want: ToggleExpand{}},
		{name: "notify", frame: `{"type":"notify","message":"hi"}`, want: Notify{Message: "hi"}},
		{name: "error", frame: `{"type":"error","message":"boom"}`, want: Error{Message: "boom"}},
		{name: "null data", frame: `{"type":"selectionChange","data":null}`, want: SelectionChange{Data: json.RawMessage("null")}},
		{name: "missing data", frame: `{"type":"selectionChange"}`, want: SelectionChange{Data: json.RawMessage("null")}},
		{name: "object data", frame: `{"type":"selectionChange","data":{"name":"A"}}`, want: SelectionChange{Data: json.RawMessage(`{"name":"A"}`)}},
		{name: "extra fields", frame: `{"type":"init","pluginId":"42"}`, want: Init{}},
		{name: "unknown type", frame: `{"type":"resize","width":10}`, wantErr: ErrUnknownType},
		{name: "missing type", frame: `{"message":"x"}`, wantErr: ErrMalformed},
		{name: "toggle without flag", frame: `{"type":"toggleExpand"}`, wantErr: ErrMalformed},
		{name: "notify without message", frame: `{"type":"notify"}`, wantErr: ErrMalformed},
		{name: "scalar data", frame: `{"type":"selectionChange","data":42}`, wantErr: ErrMalformed},
		{name: "not json", frame: `init`, wantErr: ErrMalformed},
		{name: "wrong field type", frame: `{"type":"toggleExpand","expandContent":"yes"}`, wantErr: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.frame))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, msg := range []Message{
		Init{},
		ToggleExpand{ExpandContent: true},
		Notify{Message: "Copied to clipboard"},
		Error{Message: "Failed to extract selection"},
		SelectionChange{Data: json.RawMessage(`[{"name":"A","type":"TEXT"},{"name":"B","type":"TEXT"}]`)},
	} {
		frame, err := Encode(msg)
		require.NoError(t, err)
		got, err := Decode(frame)
		require.NoError(t, err)
		assert.Equal(t, msg.MessageType(), got.MessageType())
	}
}

func TestSelectionChangeShape(t *testing.T) {
	assert.True(t, SelectionChange{}.IsEmpty())
	assert.True(t, SelectionChange{Data: json.RawMessage(" null ")}.IsEmpty())
	assert.False(t, SelectionChange{Data: json.RawMessage(`{}`)}.IsEmpty())

	assert.True(t, SelectionChange{Data: json.RawMessage(`[]`)}.IsList())
	assert.False(t, SelectionChange{Data: json.RawMessage(`{}`)}.IsList())
	assert.False(t, SelectionChange{}.IsList())
}
