// Package tree provides the constituency tree type used by the scoring engine.
package tree

import "strings"

// Node is a constituency tree node. A leaf carries the terminal token in
// Label and has no children; an internal node carries a phrase or
// part-of-speech label and an ordered list of children.
type Node struct {
	Label    string
	Children []*Node
	leaf     bool
}

// Leaf returns a terminal node for a surface token.
func Leaf(text string) *Node {
	return &Node{Label: text, leaf: true}
}

// Internal returns a labelled node over the given children.
func Internal(label string, children ...*Node) *Node {
	return &Node{Label: label, Children: children}
}

// IsLeaf reports whether n is a terminal.
func (n *Node) IsLeaf() bool {
	return n.leaf
}

// Height returns the height of n. A leaf has height 1, a pre-terminal such
// as (NN dog) has height 2, and an internal node without children has
// height 1.
func (n *Node) Height() int {
	if n.leaf {
		return 1
	}
	maxChild := 0
	for _, c := range n.Children {
		if h := c.Height(); h > maxChild {
			maxChild = h
		}
	}
	return maxChild + 1
}

// Leaves returns the terminal tokens under n in surface order.
func (n *Node) Leaves() []string {
	if n.leaf {
		return []string{n.Label}
	}
	var out []string
	for _, c := range n.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// LeafCount returns len(n.Leaves()) without allocating.
func (n *Node) LeafCount() int {
	if n.leaf {
		return 1
	}
	count := 0
	for _, c := range n.Children {
		count += c.LeafCount()
	}
	return count
}

// String renders n in single-line bracket notation, e.g.
// "(S (NP (DT the) (NN dog)) (VP (VBZ barks)))".
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n.leaf {
		b.WriteString(n.Label)
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Label)
	for _, c := range n.Children {
		b.WriteByte(' ')
		c.write(b)
	}
	b.WriteByte(')')
}

// Equal reports whether a and b have identical structure and labels.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.leaf != b.leaf || a.Label != b.Label || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
