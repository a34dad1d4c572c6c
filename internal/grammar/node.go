package grammar

import (
	"fmt"
	"strings"
)

// Node is a matched rule: its name, the byte range it covers and the
// nodes of the rules it matched inside that range, in input order.
type Node struct {
	Rule     string
	Start    int
	End      int
	Children []*Node

	input string
}

// NewNode builds a node over input[start:end]. The engine builds its own
// nodes; this is for code that assembles trees by hand.
func NewNode(rule, input string, start, end int, children ...*Node) *Node {
	return &Node{Rule: rule, Start: start, End: end, Children: children, input: input}
}

// Text returns the matched input.
func (n *Node) Text() string {
	return n.input[n.Start:n.End]
}

// Len returns the number of matched bytes.
func (n *Node) Len() int {
	return n.End - n.Start
}

// Child returns the first child matching rule, or nil.
func (n *Node) Child(rule string) *Node {
	for _, c := range n.Children {
		if c.Rule == rule {
			return c
		}
	}
	return nil
}

// String renders the tree one node per line, indented by depth.
func (n *Node) String() string {
	var b strings.Builder
	n.dump(&b, 0)
	return b.String()
}

func (n *Node) dump(b *strings.Builder, depth int) {
	fmt.Fprintf(b, "%s%s %d..%d", strings.Repeat("  ", depth), n.Rule, n.Start, n.End)
	if len(n.Children) == 0 {
		fmt.Fprintf(b, " %q", n.Text())
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		c.dump(b, depth+1)
	}
}

// Position returns the 1-based line and rune column where the node starts.
func (n *Node) Position() (line, column int) {
	line, column, _ = locate(n.input, n.Start)
	return line, column
}
