package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kataras/figma-inspector/pkg/extractor"
)

// ToMarkdown renders extracted trees as a markdown document: a color palette
// collected from solid paints, written as CSS variables, followed by the node
// hierarchy as a nested list.
func ToMarkdown(trees []*extractor.ExtractedNode, title string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Figma Selection - %s\n\n", title))

	if len(trees) == 0 {
		sb.WriteString("Nothing is selected.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("This document describes %d selected node(s).\n\n", len(trees)))

	// Colors
	fills, strokes := collectColors(trees)
	if len(fills) > 0 || len(strokes) > 0 {
		sb.WriteString("## Color Palette\n\n")
		sb.WriteString("```css\n")
		writeColorVars(&sb, "Fill Colors", "--color-", fills)
		writeColorVars(&sb, "Stroke Colors", "--color-border-", strokes)
		sb.WriteString("```\n\n")
	}

	// Hierarchy
	sb.WriteString("## Node Tree\n\n")
	for _, tree := range trees {
		writeNode(&sb, tree, 0)
	}
	sb.WriteString("\n")

	return sb.String()
}

func writeColorVars(sb *strings.Builder, heading, prefix string, colors map[string]string) {
	if len(colors) == 0 {
		return
	}
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)

	sb.WriteString(fmt.Sprintf("/* %s */\n", heading))
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("%s%s: %s;\n", prefix, name, colors[name]))
	}
	sb.WriteString("\n")
}

// collectColors maps kebab-cased node names to the hex of their first solid
// fill and first solid stroke. Repeated colors are kept once.
func collectColors(trees []*extractor.ExtractedNode) (fills, strokes map[string]string) {
	fills = make(map[string]string)
	strokes = make(map[string]string)
	seenFill := make(map[string]bool)
	seenStroke := make(map[string]bool)

	var walk func(n *extractor.ExtractedNode)
	walk = func(n *extractor.ExtractedNode) {
		name := toKebabCase(n.Name)
		if name == "" {
			name = toKebabCase(n.Type)
		}
		if hex, ok := firstSolid(n.Fills); ok && !seenFill[hex] {
			seenFill[hex] = true
			fills[uniqueKey(fills, name)] = hex
		}
		if hex, ok := firstSolid(n.Strokes); ok && !seenStroke[hex] {
			seenStroke[hex] = true
			strokes[uniqueKey(strokes, name)] = hex
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	for _, tree := range trees {
		walk(tree)
	}
	return fills, strokes
}

func uniqueKey(m map[string]string, name string) string {
	key := name
	for i := 2; ; i++ {
		if _, taken := m[key]; !taken {
			return key
		}
		key = fmt.Sprintf("%s-%d", name, i)
	}
}

func firstSolid(paints []extractor.ExtractedPaint) (string, bool) {
	for _, p := range paints {
		if p.Color != nil {
			return p.Color.Hex, true
		}
	}
	return "", false
}

func writeNode(sb *strings.Builder, n *extractor.ExtractedNode, depth int) {
	indent := strings.Repeat("  ", depth)
	sb.WriteString(fmt.Sprintf("%s- **%s** `%s`", indent, n.Name, n.Type))

	var details []string
	if n.Width != nil && n.Height != nil {
		details = append(details, fmt.Sprintf("%.0f×%.0fpx", *n.Width, *n.Height))
	}
	if n.LayoutMode != nil && *n.LayoutMode != "NONE" {
		details = append(details, "layout "+strings.ToLower(*n.LayoutMode))
	}
	if len(n.Fills) > 0 {
		details = append(details, "fill "+paintSummary(n.Fills))
	}
	if len(n.Strokes) > 0 {
		stroke := "stroke " + paintSummary(n.Strokes)
		if n.StrokeWeight != nil {
			stroke += fmt.Sprintf(" %gpx", *n.StrokeWeight)
		}
		if n.StrokeAlign != nil {
			stroke += " " + strings.ToLower(*n.StrokeAlign)
		}
		details = append(details, stroke)
	}
	if n.ChildrenCount != nil {
		details = append(details, fmt.Sprintf("%d child(ren) collapsed", *n.ChildrenCount))
	}
	if len(details) > 0 {
		sb.WriteString(" — " + strings.Join(details, ", "))
	}
	sb.WriteString("\n")

	for _, child := range n.Children {
		writeNode(sb, child, depth+1)
	}
}

func paintSummary(paints []extractor.ExtractedPaint) string {
	parts := make([]string, 0, len(paints))
	for _, p := range paints {
		s := strings.ToLower(p.Type)
		if p.Color != nil {
			s = p.Color.Hex
		}
		if p.Opacity < 1 {
			s += fmt.Sprintf(" (%.0f%%)", p.Opacity*100)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " + ")
}

// toKebabCase converts a string to kebab-case format (lowercase with hyphens).
// This is used for generating CSS variable names from Figma node names.
// Special characters are removed, and spaces/underscores are replaced with hyphens.
func toKebabCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}

	return result.String()
}
