package formatter

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/kataras/figma-inspector/pkg/extractor"
)

// ToTree renders extracted trees as an indented ASCII hierarchy, one line per node.
func ToTree(trees []*extractor.ExtractedNode) string {
	root := treeprint.NewWithRoot(fmt.Sprintf("selection (%d)", len(trees)))
	for _, tree := range trees {
		addBranch(root, tree)
	}
	return root.String()
}

func addBranch(parent treeprint.Tree, n *extractor.ExtractedNode) {
	label := nodeLabel(n)
	if len(n.Children) == 0 {
		parent.AddMetaNode(n.Type, label)
		return
	}
	branch := parent.AddMetaBranch(n.Type, label)
	for _, child := range n.Children {
		addBranch(branch, child)
	}
}

func nodeLabel(n *extractor.ExtractedNode) string {
	var sb strings.Builder
	sb.WriteString(n.Name)
	if n.Width != nil && n.Height != nil {
		sb.WriteString(fmt.Sprintf(" %gx%g", *n.Width, *n.Height))
	}
	if hex, ok := firstSolid(n.Fills); ok {
		sb.WriteString(" " + hex)
	}
	if n.ChildrenCount != nil {
		sb.WriteString(fmt.Sprintf(" (+%d)", *n.ChildrenCount))
	}
	return sb.String()
}
