package figma

import "github.com/kataras/figma-inspector/pkg/scene"

// RawNode is a scene node as serialized by a plugin bridge: a JSON object decoded
// into a generic map. Attributes are probed by key presence and every value is
// type-checked before use, so a property holding an unexpected shape (for example
// a "mixed" marker where a number is expected) is reported as absent.
type RawNode map[string]any

var (
	_ scene.Dimensioned = RawNode{}
	_ scene.AutoLayout  = RawNode{}
	_ scene.Filled      = RawNode{}
	_ scene.Stroked     = RawNode{}
	_ scene.Container   = RawNode{}
)

// ID returns the node identifier, or "" when absent.
func (n RawNode) ID() string   { s, _ := n.str("id"); return s }
func (n RawNode) Type() string { s, _ := n.str("type"); return s }
func (n RawNode) Name() string { s, _ := n.str("name"); return s }

func (n RawNode) Width() (float64, bool)  { return n.num("width") }
func (n RawNode) Height() (float64, bool) { return n.num("height") }

func (n RawNode) LayoutMode() (string, bool)            { return n.str("layoutMode") }
func (n RawNode) PrimaryAxisSizingMode() (string, bool) { return n.str("primaryAxisSizingMode") }
func (n RawNode) CounterAxisSizingMode() (string, bool) { return n.str("counterAxisSizingMode") }
func (n RawNode) PrimaryAxisAlignItems() (string, bool) { return n.str("primaryAxisAlignItems") }
func (n RawNode) CounterAxisAlignItems() (string, bool) { return n.str("counterAxisAlignItems") }

func (n RawNode) Fills() ([]scene.Paint, bool)   { return n.paints("fills") }
func (n RawNode) Strokes() ([]scene.Paint, bool) { return n.paints("strokes") }

func (n RawNode) StrokeWeight() (float64, bool) { return n.num("strokeWeight") }
func (n RawNode) StrokeAlign() (string, bool)   { return n.str("strokeAlign") }
func (n RawNode) StrokeCap() (string, bool)     { return n.str("strokeCap") }
func (n RawNode) StrokeJoin() (string, bool)    { return n.str("strokeJoin") }

// Children reports the capability when a "children" list is present.
// Elements that are not JSON objects are returned as nil.
func (n RawNode) Children() ([]scene.Node, bool) {
	list, ok := n["children"].([]any)
	if !ok {
		return nil, false
	}
	children := make([]scene.Node, len(list))
	for i, v := range list {
		if m, ok := v.(map[string]any); ok {
			children[i] = RawNode(m)
		}
	}
	return children, true
}

func (n RawNode) str(key string) (string, bool) {
	s, ok := n[key].(string)
	return s, ok
}

func (n RawNode) num(key string) (float64, bool) {
	return number(n[key])
}

// paints decodes a paint list. A list containing anything other than paint
// objects with a string type is reported as absent.
func (n RawNode) paints(key string) ([]scene.Paint, bool) {
	list, ok := n[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]scene.Paint, 0, len(list))
	for _, v := range list {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		typ, ok := m["type"].(string)
		if !ok {
			return nil, false
		}
		p := scene.Paint{Type: typ}
		if op, ok := number(m["opacity"]); ok {
			p.Opacity = scene.Float64(op)
		}
		if c, ok := m["color"].(map[string]any); ok {
			p.Color = rawColor(c)
		}
		out = append(out, p)
	}
	return out, true
}

func rawColor(m map[string]any) *scene.Color {
	r, okR := number(m["r"])
	g, okG := number(m["g"])
	b, okB := number(m["b"])
	if !okR || !okG || !okB {
		return nil
	}
	c := &scene.Color{R: r, G: g, B: b}
	if a, ok := number(m["a"]); ok {
		c.A = scene.Float64(a)
	}
	return c
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}
