package figma

// FileResponse represents the response from the Figma file API endpoint.
// Only the document tree and basic metadata are decoded.
type FileResponse struct {
	Name          string `json:"name"`
	LastModified  string `json:"lastModified"`
	ThumbnailURL  string `json:"thumbnailUrl"`
	Version       string `json:"version"`
	Document      Node   `json:"document"`
	SchemaVersion int    `json:"schemaVersion"`
}

// NodesResponse represents the response from the Figma nodes API endpoint when fetching specific nodes.
// It contains file metadata and a map of node IDs to their corresponding NodeData.
// A requested ID that does not exist maps to a null entry.
type NodesResponse struct {
	Name         string               `json:"name"`
	LastModified string               `json:"lastModified"`
	Version      string               `json:"version"`
	Nodes        map[string]*NodeData `json:"nodes"`
}

// NodeData wraps a node returned by the nodes endpoint.
type NodeData struct {
	Document Node `json:"document"`
}

// Node represents a single element in the Figma document tree hierarchy as served by the REST API.
// Optional attributes are pointers or empty strings; a nil pointer or empty string means the
// API did not report the attribute for this node. Use Scene to view a Node through the
// scene capability interfaces.
type Node struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	Type                  string     `json:"type"`
	Children              []Node     `json:"children,omitempty"`
	AbsoluteBoundingBox   *Rectangle `json:"absoluteBoundingBox,omitempty"`
	Size                  *Vector    `json:"size,omitempty"`
	Fills                 *[]Paint   `json:"fills,omitempty"`
	Strokes               *[]Paint   `json:"strokes,omitempty"`
	StrokeWeight          *float64   `json:"strokeWeight,omitempty"`
	StrokeAlign           string     `json:"strokeAlign,omitempty"`
	StrokeCap             string     `json:"strokeCap,omitempty"`
	StrokeJoin            string     `json:"strokeJoin,omitempty"`
	LayoutMode            string     `json:"layoutMode,omitempty"`
	PrimaryAxisSizingMode string     `json:"primaryAxisSizingMode,omitempty"`
	CounterAxisSizingMode string     `json:"counterAxisSizingMode,omitempty"`
	PrimaryAxisAlignItems string     `json:"primaryAxisAlignItems,omitempty"`
	CounterAxisAlignItems string     `json:"counterAxisAlignItems,omitempty"`
}

// Color represents an RGBA color with float values ranging from 0 to 1.
type Color struct {
	R float64  `json:"r"`
	G float64  `json:"g"`
	B float64  `json:"b"`
	A *float64 `json:"a,omitempty"`
}

// Paint represents a fill or stroke applied to a Figma node.
// It includes the paint type (SOLID, GRADIENT_LINEAR, IMAGE, etc.), visibility, opacity and color.
// Gradient stops and image payloads are not decoded.
type Paint struct {
	Type     string   `json:"type"`
	Visible  *bool    `json:"visible,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty"`
	Color    *Color   `json:"color,omitempty"`
	ImageRef string   `json:"imageRef,omitempty"`
}

// Vector represents a 2D coordinate or size with X and Y values.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rectangle represents a bounding box with position (X, Y) and dimensions (Width, Height).
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
