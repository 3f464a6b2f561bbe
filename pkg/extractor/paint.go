package extractor

import "github.com/kataras/figma-inspector/pkg/scene"

// ExtractedPaint is the canonical record of a fill or stroke.
// Color is set only for solid paints; other paint types keep their type and
// opacity and drop their payload (gradient stops, image references).
type ExtractedPaint struct {
	Type    string          `json:"type"`
	Opacity float64         `json:"opacity"`
	Color   *ExtractedColor `json:"color,omitempty"`
}

// NormalizePaints maps a paint list to canonical records, one per input, in order.
// A missing opacity defaults to 1. A solid paint without a color is encoded as black.
func NormalizePaints(paints []scene.Paint) []ExtractedPaint {
	out := make([]ExtractedPaint, 0, len(paints))
	for _, p := range paints {
		ep := ExtractedPaint{
			Type:    p.Type,
			Opacity: 1,
		}
		if p.Opacity != nil {
			ep.Opacity = *p.Opacity
		}
		if p.Type == scene.PaintSolid {
			var c scene.Color
			if p.Color != nil {
				c = *p.Color
			}
			ec := EncodeColor(c)
			ep.Color = &ec
		}
		out = append(out, ep)
	}
	return out
}
