package hcluster

import (
	"io"
	"strconv"
	"strings"
)

// Fprint writes the tree under root to w, one node per line, indented by level.
// Merged nodes print as "-", leaves print labels[id], or the id when labels is nil.
func Fprint(w io.Writer, root *Node, labels []string) error {
	if labels != nil {
		if err := CheckLabels(root, labels); err != nil {
			return err
		}
	}

	var sb strings.Builder
	root.Walk(func(node *Node, level int) {
		sb.WriteString(strings.Repeat("  ", level))
		switch {
		case !node.IsLeaf():
			sb.WriteString("-")
		case labels != nil:
			sb.WriteString(labels[node.ID])
		default:
			sb.WriteString(strconv.Itoa(node.ID))
		}
		sb.WriteByte('\n')
	})
	_, err := io.WriteString(w, sb.String())
	return err
}
