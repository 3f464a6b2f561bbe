package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kataras/figma-inspector/pkg/extractor"
)

func ptr[T any](v T) *T { return &v }

func sampleTree() *extractor.ExtractedNode {
	red := extractor.ExtractedColor{R: 1, A: 1, Hex: "#ff0000"}
	blue := extractor.ExtractedColor{B: 1, A: 1, Hex: "#0000ff"}
	return &extractor.ExtractedNode{
		Name:         "Primary Button",
		Type:         "FRAME",
		Width:        ptr(120.0),
		Height:       ptr(40.0),
		LayoutMode:   ptr("HORIZONTAL"),
		Fills:        []extractor.ExtractedPaint{{Type: "SOLID", Opacity: 1, Color: &red}},
		Strokes:      []extractor.ExtractedPaint{{Type: "SOLID", Opacity: 0.5, Color: &blue}},
		StrokeWeight: ptr(2.0),
		StrokeAlign:  ptr("INSIDE"),
		Children: []*extractor.ExtractedNode{
			{Name: "Label", Type: "TEXT", Fills: []extractor.ExtractedPaint{{Type: "SOLID", Opacity: 1, Color: &red}}},
			{Name: "Icon", Type: "INSTANCE", ChildrenCount: ptr(3)},
		},
	}
}

func TestPrettyAndMinify(t *testing.T) {
	raw := []byte(`{"name":"A","children":[{"name":"B"}]}`)

	pretty, err := Pretty(raw)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"A\",\n  \"children\": [\n    {\n      \"name\": \"B\"\n    }\n  ]\n}", pretty)

	minified, err := Minify([]byte(pretty + "\n"))
	require.NoError(t, err)
	assert.Equal(t, string(raw), minified)

	_, err = Pretty([]byte(`{"name":`))
	assert.Error(t, err)
	_, err = Minify([]byte(`[1,`))
	assert.Error(t, err)
}

func TestTrees(t *testing.T) {
	tree := sampleTree()

	assert.Nil(t, Trees(nil))
	assert.Nil(t, Trees((*extractor.ExtractedNode)(nil)))
	assert.Equal(t, []*extractor.ExtractedNode{tree}, Trees(tree))
	assert.Len(t, Trees([]*extractor.ExtractedNode{tree, tree}), 2)
	assert.Nil(t, Trees("unexpected"))
}

func TestToMarkdown(t *testing.T) {
	md := ToMarkdown([]*extractor.ExtractedNode{sampleTree()}, "Checkout")

	assert.True(t, strings.HasPrefix(md, "# Figma Selection - Checkout\n"))
	assert.Contains(t, md, "## Color Palette")
	assert.Contains(t, md, "--color-primary-button: #ff0000;")
	assert.NotContains(t, md, "--color-label:", "a repeated color is listed once")
	assert.Contains(t, md, "--color-border-primary-button: #0000ff;")

	assert.Contains(t, md, "## Node Tree")
	assert.Contains(t, md, "- **Primary Button** `FRAME` — 120×40px, layout horizontal, fill #ff0000, stroke #0000ff (50%) 2px inside\n")
	assert.Contains(t, md, "  - **Label** `TEXT` — fill #ff0000\n")
	assert.Contains(t, md, "  - **Icon** `INSTANCE` — 3 child(ren) collapsed\n")
}

func TestToMarkdownEmpty(t *testing.T) {
	md := ToMarkdown(nil, "Empty")
	assert.Equal(t, "# Figma Selection - Empty\n\nNothing is selected.\n", md)
}

func TestToTree(t *testing.T) {
	out := ToTree([]*extractor.ExtractedNode{sampleTree()})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "selection (1)", lines[0])
	assert.Contains(t, lines[1], "[FRAME]  Primary Button 120x40 #ff0000")
	assert.Contains(t, lines[2], "[TEXT]  Label #ff0000")
	assert.Contains(t, lines[3], "[INSTANCE]  Icon (+3)")
}

func TestToKebabCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Primary Button", want: "primary-button"},
		{in: "icon_24/Close", want: "icon-24close"},
		{in: "Ünïcode & Co", want: "ncode--co"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, toKebabCase(tt.in), tt.in)
	}
}

func TestUniqueKey(t *testing.T) {
	m := map[string]string{"card": "#fff", "card-2": "#000"}
	assert.Equal(t, "card-3", uniqueKey(m, "card"))
	assert.Equal(t, "title", uniqueKey(m, "title"))
}
