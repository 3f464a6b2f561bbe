package formatter

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"

	"github.com/kataras/figma-inspector/pkg/extractor"
)

// Pretty re-indents serialized JSON with two spaces per level.
func Pretty(raw []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Minify strips all insignificant whitespace from serialized JSON.
func Minify(raw []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, bytes.TrimSpace(raw)); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// Trees normalizes an extraction result (nil, a single tree or a list of
// trees, as returned by Extractor.ExtractSelection) into a list.
func Trees(result any) []*extractor.ExtractedNode {
	switch v := result.(type) {
	case *extractor.ExtractedNode:
		if v == nil {
			return nil
		}
		return []*extractor.ExtractedNode{v}
	case []*extractor.ExtractedNode:
		return v
	}
	return nil
}
