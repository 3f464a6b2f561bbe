package figma

import "github.com/kataras/figma-inspector/pkg/scene"

// Scene returns a view of the node through the scene capability interfaces.
// The returned value keeps a reference to n; n must not be modified while it is in use.
func (n *Node) Scene() scene.Node {
	return restNode{n}
}

// restNode adapts a REST API Node to the scene capability interfaces.
type restNode struct {
	n *Node
}

var (
	_ scene.Dimensioned = restNode{}
	_ scene.AutoLayout  = restNode{}
	_ scene.Filled      = restNode{}
	_ scene.Stroked     = restNode{}
	_ scene.Container   = restNode{}
)

func (r restNode) Type() string { return r.n.Type }
func (r restNode) Name() string { return r.n.Name }

func (r restNode) Width() (float64, bool) {
	switch {
	case r.n.Size != nil:
		return r.n.Size.X, true
	case r.n.AbsoluteBoundingBox != nil:
		return r.n.AbsoluteBoundingBox.Width, true
	}
	return 0, false
}

func (r restNode) Height() (float64, bool) {
	switch {
	case r.n.Size != nil:
		return r.n.Size.Y, true
	case r.n.AbsoluteBoundingBox != nil:
		return r.n.AbsoluteBoundingBox.Height, true
	}
	return 0, false
}

func (r restNode) LayoutMode() (string, bool) {
	return autoLayoutField(r.n, r.n.LayoutMode)
}

func (r restNode) PrimaryAxisSizingMode() (string, bool) {
	return autoLayoutField(r.n, r.n.PrimaryAxisSizingMode)
}

func (r restNode) CounterAxisSizingMode() (string, bool) {
	return autoLayoutField(r.n, r.n.CounterAxisSizingMode)
}

func (r restNode) PrimaryAxisAlignItems() (string, bool) {
	return autoLayoutField(r.n, r.n.PrimaryAxisAlignItems)
}

func (r restNode) CounterAxisAlignItems() (string, bool) {
	return autoLayoutField(r.n, r.n.CounterAxisAlignItems)
}

// autoLayoutField reports an auto-layout value only for node types that have
// auto-layout and only when the API sent it.
func autoLayoutField(n *Node, v string) (string, bool) {
	if v == "" || !scene.IsAutoLayoutType(n.Type) {
		return "", false
	}
	return v, true
}

func (r restNode) Fills() ([]scene.Paint, bool) {
	if r.n.Fills == nil {
		return nil, false
	}
	return toScenePaints(*r.n.Fills), true
}

func (r restNode) Strokes() ([]scene.Paint, bool) {
	if r.n.Strokes == nil {
		return nil, false
	}
	return toScenePaints(*r.n.Strokes), true
}

func (r restNode) StrokeWeight() (float64, bool) {
	if r.n.StrokeWeight == nil {
		return 0, false
	}
	return *r.n.StrokeWeight, true
}

func (r restNode) StrokeAlign() (string, bool) { return r.n.StrokeAlign, r.n.StrokeAlign != "" }
func (r restNode) StrokeCap() (string, bool)   { return r.n.StrokeCap, r.n.StrokeCap != "" }
func (r restNode) StrokeJoin() (string, bool)  { return r.n.StrokeJoin, r.n.StrokeJoin != "" }

// Children reports the children capability by node type; the REST API omits
// empty child lists, so presence of the JSON key is not a usable signal.
func (r restNode) Children() ([]scene.Node, bool) {
	if !scene.IsContainerType(r.n.Type) {
		return nil, false
	}
	children := make([]scene.Node, len(r.n.Children))
	for i := range r.n.Children {
		children[i] = r.n.Children[i].Scene()
	}
	return children, true
}

func toScenePaints(paints []Paint) []scene.Paint {
	out := make([]scene.Paint, 0, len(paints))
	for _, p := range paints {
		sp := scene.Paint{
			Type:    p.Type,
			Opacity: p.Opacity,
		}
		if p.Color != nil {
			sp.Color = &scene.Color{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: p.Color.A}
		}
		out = append(out, sp)
	}
	return out
}
