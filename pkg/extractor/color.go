package extractor

import (
	"fmt"
	"math"

	"github.com/kataras/figma-inspector/pkg/scene"
)

// ExtractedColor is the canonical color record: the normalized channels as
// received plus a derived, display-only hex string.
type ExtractedColor struct {
	R   float64 `json:"r"`
	G   float64 `json:"g"`
	B   float64 `json:"b"`
	A   float64 `json:"a"`
	Hex string  `json:"hex"`
}

// EncodeColor converts a normalized color into its canonical record.
// A missing alpha defaults to 1. Channels are not clamped: an out-of-range
// source value shows up as an out-of-range hex component.
func EncodeColor(c scene.Color) ExtractedColor {
	a := 1.0
	if c.A != nil {
		a = *c.A
	}
	return ExtractedColor{
		R:   c.R,
		G:   c.G,
		B:   c.B,
		A:   a,
		Hex: colorToHex(c),
	}
}

// colorToHex converts a normalized color to lower-case #rrggbb.
func colorToHex(c scene.Color) string {
	r := int(math.Round(c.R * 255))
	g := int(math.Round(c.G * 255))
	b := int(math.Round(c.B * 255))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
