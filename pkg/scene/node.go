package scene

// Node is the read-only view of a single element of the host's scene graph.
// Every node carries a type discriminant (FRAME, TEXT, VECTOR, GROUP, COMPONENT,
// INSTANCE, ...) and a name. Everything else is optional and exposed through the
// capability interfaces below; a node that does not implement a capability, or
// reports ok=false, simply does not have that attribute.
type Node interface {
	Type() string
	Name() string
}

// Dimensioned is implemented by nodes that have a width and a height.
type Dimensioned interface {
	Width() (float64, bool)
	Height() (float64, bool)
}

// AutoLayout is implemented by nodes that can carry auto-layout settings
// (frames, components, instances).
type AutoLayout interface {
	LayoutMode() (string, bool)
	PrimaryAxisSizingMode() (string, bool)
	CounterAxisSizingMode() (string, bool)
	PrimaryAxisAlignItems() (string, bool)
	CounterAxisAlignItems() (string, bool)
}

// Filled is implemented by nodes that carry a fill list.
type Filled interface {
	Fills() ([]Paint, bool)
}

// Stroked is implemented by nodes that carry strokes and stroke metadata.
type Stroked interface {
	Strokes() ([]Paint, bool)
	StrokeWeight() (float64, bool)
	StrokeAlign() (string, bool)
	StrokeCap() (string, bool)
	StrokeJoin() (string, bool)
}

// Container is implemented by nodes that may hold children. Children returns
// the ordered child list and ok=true when the node is container-capable; the
// list may be empty while the capability is still present. A nil element
// marks a child the provider could not interpret.
type Container interface {
	Children() ([]Node, bool)
}

// Paint is a single fill or stroke entry. Type is the discriminant
// (SOLID, GRADIENT_LINEAR, IMAGE, ...). Opacity is nil when the source
// did not specify one. Color is only meaningful for SOLID paints.
type Paint struct {
	Type    string
	Opacity *float64
	Color   *Color
}

// Color is a normalized color, channels in [0,1]. A is nil when the source
// carried no alpha channel.
type Color struct {
	R, G, B float64
	A       *float64
}

// PaintSolid is the discriminant of a solid color paint.
const PaintSolid = "SOLID"

// containerTypes lists the node types that can hold children.
var containerTypes = map[string]bool{
	"DOCUMENT":          true,
	"CANVAS":            true,
	"PAGE":              true,
	"FRAME":             true,
	"GROUP":             true,
	"SECTION":           true,
	"COMPONENT":         true,
	"COMPONENT_SET":     true,
	"INSTANCE":          true,
	"BOOLEAN_OPERATION": true,
}

// IsContainerType reports whether nodes of the given type are container-capable.
func IsContainerType(nodeType string) bool {
	return containerTypes[nodeType]
}

// autoLayoutTypes lists the node types that expose auto-layout properties.
var autoLayoutTypes = map[string]bool{
	"FRAME":         true,
	"COMPONENT":     true,
	"COMPONENT_SET": true,
	"INSTANCE":      true,
}

// IsAutoLayoutType reports whether nodes of the given type carry auto-layout settings.
func IsAutoLayoutType(nodeType string) bool {
	return autoLayoutTypes[nodeType]
}

// Float64 returns a pointer to v, handy for optional paint and color fields.
func Float64(v float64) *float64 {
	return &v
}
