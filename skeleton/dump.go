package skeleton

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Dump renders the subtree as indented text, one tab per level: each node's name and offset,
// optionally its world coordinates, then its channels.
func (n *Node) Dump(showCoordinates bool) string {
	var sb strings.Builder
	n.Walk(func(depth int, node *Node) bool {
		indent := strings.Repeat("\t", depth)
		fmt.Fprintf(&sb, "%sNode(%s), offset(%v, %v, %v)\n", indent, node.Name, node.Offset.X, node.Offset.Y, node.Offset.Z)
		if showCoordinates {
			if node.transformed {
				wc := node.worldCoordinates
				fmt.Fprintf(&sb, "%s\tWorld coordinates: (%.2f, %.2f, %.2f)\n", indent, wc.X, wc.Y, wc.Z)
			} else {
				fmt.Fprintf(&sb, "%s\tWorld coordinates: not available, call ApplyTransformation first\n", indent)
			}
		}
		fmt.Fprintf(&sb, "%s\tChannels:\n", indent)
		for _, channel := range node.Channels {
			fmt.Fprintf(&sb, "%s\t\t%s\n", indent, channel)
		}
		return true
	})
	return sb.String()
}

func (n *Node) String() string {
	return n.Dump(false)
}

// CoordinatesTable prints a table of every node in the subtree with its world coordinates. The
// subtree must have been transformed.
func (n *Node) CoordinatesTable() (string, error) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Joint", "Key", "Depth", "X", "Y", "Z"})
	var err error
	i := 0
	n.Walk(func(depth int, node *Node) bool {
		if !node.transformed {
			err = NewStaleStateError(node.Name)
			return false
		}
		wc := node.worldCoordinates
		t.AppendRow(table.Row{
			i,
			strings.Repeat("  ", depth) + node.Name,
			node.Key,
			depth,
			fmt.Sprintf("%.4f", wc.X),
			fmt.Sprintf("%.4f", wc.Y),
			fmt.Sprintf("%.4f", wc.Z),
		})
		i++
		return true
	})
	if err != nil {
		return "", err
	}
	return t.Render(), nil
}
