package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kataras/figma-inspector/pkg/scene"
)

func TestEncodeColor(t *testing.T) {
	tests := []struct {
		name  string
		color scene.Color
		want  ExtractedColor
	}{
		{
			name:  "red with alpha",
			color: scene.Color{R: 1, G: 0, B: 0, A: scene.Float64(1)},
			want:  ExtractedColor{R: 1, G: 0, B: 0, A: 1, Hex: "#ff0000"},
		},
		{
			name:  "missing alpha defaults to 1",
			color: scene.Color{R: 0, G: 1, B: 0},
			want:  ExtractedColor{R: 0, G: 1, B: 0, A: 1, Hex: "#00ff00"},
		},
		{
			name:  "translucent",
			color: scene.Color{R: 0, G: 0, B: 1, A: scene.Float64(0.5)},
			want:  ExtractedColor{R: 0, G: 0, B: 1, A: 0.5, Hex: "#0000ff"},
		},
		{
			name:  "rounding",
			color: scene.Color{R: 0.5, G: 0.2, B: 0.8},
			want:  ExtractedColor{R: 0.5, G: 0.2, B: 0.8, A: 1, Hex: "#8033cc"},
		},
		{
			name:  "black",
			color: scene.Color{},
			want:  ExtractedColor{A: 1, Hex: "#000000"},
		},
		{
			name:  "out of range passes through",
			color: scene.Color{R: 2, G: 0, B: 0},
			want:  ExtractedColor{R: 2, A: 1, Hex: "#1fe0000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeColor(tt.color))
		})
	}
}

func TestNormalizePaints(t *testing.T) {
	paints := []scene.Paint{
		{Type: scene.PaintSolid, Color: &scene.Color{R: 1}},
		{Type: "GRADIENT_LINEAR", Opacity: scene.Float64(0.4)},
		{Type: "IMAGE"},
		{Type: scene.PaintSolid, Opacity: scene.Float64(0)},
	}

	got := NormalizePaints(paints)
	require.Len(t, got, len(paints))
	for i := range paints {
		assert.Equal(t, paints[i].Type, got[i].Type, "order is preserved")
	}

	assert.Equal(t, 1.0, got[0].Opacity)
	require.NotNil(t, got[0].Color)
	assert.Equal(t, "#ff0000", got[0].Color.Hex)

	assert.Equal(t, 0.4, got[1].Opacity)
	assert.Nil(t, got[1].Color, "gradients keep only type and opacity")

	assert.Equal(t, 1.0, got[2].Opacity)
	assert.Nil(t, got[2].Color)

	assert.Equal(t, 0.0, got[3].Opacity, "an explicit zero opacity is kept")
	require.NotNil(t, got[3].Color)
	assert.Equal(t, "#000000", got[3].Color.Hex)
}

func TestNormalizePaintsEmpty(t *testing.T) {
	got := NormalizePaints(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
