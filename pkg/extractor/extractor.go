package extractor

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kataras/figma-inspector/pkg/scene"
)

// ErrMalformedNode is returned when a node, or one of its children, cannot be
// interpreted by the scene graph provider.
var ErrMalformedNode = errors.New("malformed node")

// ExtractedNode is the canonical, serializable record of a scene node.
// Optional fields are nil when the source node lacks the capability; they are
// never encoded as null. For container-capable nodes exactly one of Children
// and ChildrenCount is set; for other nodes neither is.
type ExtractedNode struct {
	Name string `json:"name"`
	Type string `json:"type"`

	// Dimensions
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`

	// Layout (auto-layout)
	LayoutMode            *string `json:"layoutMode,omitempty"`
	PrimaryAxisSizingMode *string `json:"primaryAxisSizingMode,omitempty"`
	CounterAxisSizingMode *string `json:"counterAxisSizingMode,omitempty"`
	PrimaryAxisAlignItems *string `json:"primaryAxisAlignItems,omitempty"`
	CounterAxisAlignItems *string `json:"counterAxisAlignItems,omitempty"`

	// Visual. A present but empty paint list is kept.
	Fills        []ExtractedPaint `json:"fills,omitzero"`
	Strokes      []ExtractedPaint `json:"strokes,omitzero"`
	StrokeWeight *float64         `json:"strokeWeight,omitempty"`
	StrokeAlign  *string          `json:"strokeAlign,omitempty"`
	StrokeCap    *string          `json:"strokeCap,omitempty"`
	StrokeJoin   *string          `json:"strokeJoin,omitempty"`

	// Hierarchy. Children is non-nil (possibly empty) when expanded.
	Children      []*ExtractedNode `json:"children,omitzero"`
	ChildrenCount *int             `json:"childrenCount,omitempty"`
}

// IsExpanded reports whether the node's children were inlined.
func (n *ExtractedNode) IsExpanded() bool {
	return n.Children != nil
}

// Extractor walks scene nodes into ExtractedNode trees.
//
// MaxDepth caps how many levels of descendants are inlined when expanding;
// deeper containers are summarized with ChildrenCount. Zero means no cap.
type Extractor struct {
	MaxDepth int
}

// Extract is Extractor{}.Extract: no depth cap.
func Extract(node scene.Node, expand bool) (*ExtractedNode, error) {
	return Extractor{}.Extract(node, expand)
}

// Extract produces the canonical record for node. With expand set, every
// descendant is inlined (the flag is passed unchanged to each level); without
// it, containers only report their child count.
// A panic raised by a scene node implementation is returned as an error.
func (e Extractor) Extract(node scene.Node, expand bool) (out *ExtractedNode, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrMalformedNode, r)
		}
	}()

	if node == nil {
		return nil, fmt.Errorf("%w: nil node", ErrMalformedNode)
	}
	return e.extract(node, expand, 0, node.Name())
}

// ExtractSelection extracts every node of a selection independently and
// collapses the result for display: nil for an empty selection, a single
// *ExtractedNode for one node and []*ExtractedNode otherwise.
func (e Extractor) ExtractSelection(nodes []scene.Node, expand bool) (any, error) {
	switch len(nodes) {
	case 0:
		return nil, nil
	case 1:
		tree, err := e.Extract(nodes[0], expand)
		if err != nil {
			return nil, err
		}
		return tree, nil
	}

	trees := make([]*ExtractedNode, 0, len(nodes))
	for _, n := range nodes {
		tree, err := e.Extract(n, expand)
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

func (e Extractor) extract(node scene.Node, expand bool, depth int, path string) (*ExtractedNode, error) {
	out := &ExtractedNode{
		Name: node.Name(),
		Type: node.Type(),
	}

	if d, ok := node.(scene.Dimensioned); ok {
		out.Width = optional(d.Width())
		out.Height = optional(d.Height())
	}

	if l, ok := node.(scene.AutoLayout); ok {
		out.LayoutMode = optional(l.LayoutMode())
		out.PrimaryAxisSizingMode = optional(l.PrimaryAxisSizingMode())
		out.CounterAxisSizingMode = optional(l.CounterAxisSizingMode())
		out.PrimaryAxisAlignItems = optional(l.PrimaryAxisAlignItems())
		out.CounterAxisAlignItems = optional(l.CounterAxisAlignItems())
	}

	if f, ok := node.(scene.Filled); ok {
		if fills, ok := f.Fills(); ok {
			out.Fills = NormalizePaints(fills)
		}
	}

	if s, ok := node.(scene.Stroked); ok {
		if strokes, ok := s.Strokes(); ok {
			out.Strokes = NormalizePaints(strokes)
		}
		out.StrokeWeight = optional(s.StrokeWeight())
		out.StrokeAlign = optional(s.StrokeAlign())
		out.StrokeCap = optional(s.StrokeCap())
		out.StrokeJoin = optional(s.StrokeJoin())
	}

	c, ok := node.(scene.Container)
	if !ok {
		return out, nil
	}
	children, ok := c.Children()
	if !ok {
		return out, nil
	}

	if !expand || (e.MaxDepth > 0 && depth >= e.MaxDepth) {
		count := len(children)
		out.ChildrenCount = &count
		return out, nil
	}

	out.Children = make([]*ExtractedNode, 0, len(children))
	for i, child := range children {
		if child == nil {
			return nil, fmt.Errorf("%w: child %d of %q", ErrMalformedNode, i, path)
		}
		extracted, err := e.extract(child, expand, depth+1, path+"/"+child.Name())
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, extracted)
	}

	return out, nil
}

func optional[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}

// Marshal encodes an extraction result (a tree, a list of trees or nil) as
// compact JSON. It relies on omitzero so that empty-but-present lists survive.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}
