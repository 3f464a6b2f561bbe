package figma

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kataras/figma-inspector/pkg/scene"
)

func parseRaw(t *testing.T, s string) RawNode {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return RawNode(m)
}

func TestRawNodeAttributes(t *testing.T) {
	n := parseRaw(t, `{
		"id": "1:2",
		"name": "Button",
		"type": "FRAME",
		"width": 120,
		"height": "mixed",
		"layoutMode": "HORIZONTAL",
		"strokeWeight": 2,
		"strokeAlign": "INSIDE",
		"fills": [{"type": "SOLID", "opacity": 0.5, "color": {"r": 1, "g": 0, "b": 0}}],
		"strokes": [{"type": "SOLID", "color": {"r": 0, "g": 0}}]
	}`)

	assert.Equal(t, "1:2", n.ID())
	assert.Equal(t, "Button", n.Name())
	assert.Equal(t, "FRAME", n.Type())

	w, ok := n.Width()
	assert.True(t, ok)
	assert.Equal(t, 120.0, w)

	_, ok = n.Height()
	assert.False(t, ok, "a non-numeric height is absent")

	mode, ok := n.LayoutMode()
	assert.True(t, ok)
	assert.Equal(t, "HORIZONTAL", mode)

	_, ok = n.PrimaryAxisSizingMode()
	assert.False(t, ok)

	fills, ok := n.Fills()
	require.True(t, ok)
	require.Len(t, fills, 1)
	assert.Equal(t, scene.PaintSolid, fills[0].Type)
	require.NotNil(t, fills[0].Opacity)
	assert.Equal(t, 0.5, *fills[0].Opacity)
	require.NotNil(t, fills[0].Color)
	assert.Equal(t, 1.0, fills[0].Color.R)
	assert.Nil(t, fills[0].Color.A)

	strokes, ok := n.Strokes()
	require.True(t, ok)
	require.Len(t, strokes, 1)
	assert.Nil(t, strokes[0].Color, "a color missing a channel is dropped")

	weight, ok := n.StrokeWeight()
	assert.True(t, ok)
	assert.Equal(t, 2.0, weight)

	_, ok = n.StrokeCap()
	assert.False(t, ok)

	_, ok = n.Children()
	assert.False(t, ok, "no children key means no container capability")
}

func TestRawNodePaints(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantOK  bool
		wantLen int
	}{
		{name: "absent", json: `{}`},
		{name: "empty list", json: `{"fills": []}`, wantOK: true},
		{name: "not a list", json: `{"fills": "mixed"}`},
		{name: "element not an object", json: `{"fills": [1]}`},
		{name: "element without type", json: `{"fills": [{"opacity": 1}]}`},
		{name: "gradient", json: `{"fills": [{"type": "GRADIENT_LINEAR"}]}`, wantOK: true, wantLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fills, ok := parseRaw(t, tt.json).Fills()
			assert.Equal(t, tt.wantOK, ok)
			assert.Len(t, fills, tt.wantLen)
		})
	}
}

func TestRawNodeChildren(t *testing.T) {
	n := parseRaw(t, `{"type": "GROUP", "name": "G", "children": [{"type": "TEXT", "name": "T"}, 7]}`)

	children, ok := n.Children()
	require.True(t, ok)
	require.Len(t, children, 2)
	assert.Equal(t, "T", children[0].Name())
	assert.Nil(t, children[1], "non-object children are reported as nil")

	empty, ok := parseRaw(t, `{"type": "FRAME", "children": []}`).Children()
	assert.True(t, ok)
	assert.Empty(t, empty)
}

func TestNumber(t *testing.T) {
	for _, v := range []any{float64(3), float32(3), int(3), int64(3)} {
		got, ok := number(v)
		assert.True(t, ok)
		assert.Equal(t, 3.0, got)
	}
	_, ok := number("3")
	assert.False(t, ok)
	_, ok = number(nil)
	assert.False(t, ok)
}

func TestRestNodeScene(t *testing.T) {
	var n Node
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "1:1",
		"name": "Card",
		"type": "FRAME",
		"absoluteBoundingBox": {"x": 0, "y": 0, "width": 300, "height": 150},
		"layoutMode": "VERTICAL",
		"fills": [],
		"children": [{"id": "1:2", "name": "Label", "type": "TEXT", "layoutMode": "NONE"}]
	}`), &n))

	s := n.Scene()
	assert.Equal(t, "FRAME", s.Type())

	w, ok := s.(scene.Dimensioned).Width()
	assert.True(t, ok)
	assert.Equal(t, 300.0, w)

	mode, ok := s.(scene.AutoLayout).LayoutMode()
	assert.True(t, ok)
	assert.Equal(t, "VERTICAL", mode)

	fills, ok := s.(scene.Filled).Fills()
	assert.True(t, ok, "an empty fill list is still present")
	assert.Empty(t, fills)

	_, ok = s.(scene.Stroked).Strokes()
	assert.False(t, ok)

	children, ok := s.(scene.Container).Children()
	require.True(t, ok)
	require.Len(t, children, 1)

	label := children[0]
	_, ok = label.(scene.AutoLayout).LayoutMode()
	assert.False(t, ok, "text nodes have no auto-layout")
	_, ok = label.(scene.Container).Children()
	assert.False(t, ok, "text nodes are not containers")
}
