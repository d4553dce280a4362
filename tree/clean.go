package tree

import "strings"

// EmptyTag is the pre-terminal label some annotators use for tokens that
// carry no part of speech.
const EmptyTag = "_"

// RemoveTop strips a "TOP" wrapper (matched case-insensitively) from the
// root and returns its first child. Other trees are returned unchanged.
func RemoveTop(n *Node) *Node {
	if n == nil || n.leaf || len(n.Children) == 0 {
		return n
	}
	if strings.EqualFold(n.Label, "top") {
		return n.Children[0]
	}
	return n
}

// WipeEmptyTags replaces every pre-terminal labelled EmptyTag by its bare
// token, so (NP (_ a) (NN b)) becomes (NP a (NN b)). The input is not
// modified.
func WipeEmptyTags(n *Node) *Node {
	if n == nil || n.leaf {
		return n
	}
	children := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		switch {
		case c.leaf:
			children = append(children, Leaf(c.Label))
		case c.Label == EmptyTag:
			if leaves := c.Leaves(); len(leaves) > 0 {
				children = append(children, Leaf(leaves[0]))
			}
		default:
			children = append(children, WipeEmptyTags(c))
		}
	}
	return Internal(n.Label, children...)
}

// Clean applies RemoveTop then WipeEmptyTags, the normalisation applied to
// raw parser output before scoring.
func Clean(n *Node) *Node {
	return WipeEmptyTags(RemoveTop(n))
}

// FlattenCoordination merges coordinated siblings that share a label:
// (... (A x) and (A z) ...) becomes (... (A x and z) ...) when the middle
// token is "and" or "or". A node left with a single child of its own label
// collapses into that child. The tree should have had its empty tags wiped.
func FlattenCoordination(n *Node) *Node {
	if n == nil || n.leaf {
		return n
	}

	if len(n.Children) < 3 {
		children := make([]*Node, len(n.Children))
		for i, c := range n.Children {
			children[i] = FlattenCoordination(c)
		}
		return Internal(n.Label, children...)
	}

	allLeaves := true
	for _, c := range n.Children {
		if !c.leaf {
			allLeaves = false
			break
		}
	}
	if allLeaves {
		return n
	}

	var out []*Node
	for i := 0; i < len(n.Children); {
		cur := n.Children[i]
		if cur.leaf {
			out = append(out, cur)
			i++
			continue
		}

		if i+2 < len(n.Children) {
			mid, right := n.Children[i+1], n.Children[i+2]
			if mid.leaf && !right.leaf && isConjunction(mid.Label) &&
				cur.Label == right.Label && len(cur.Children) > 0 && len(right.Children) > 0 {
				out = append(out, Internal(cur.Label, cur.Children[0], mid, right.Children[0]))
				i += 3
				continue
			}
		}

		out = append(out, FlattenCoordination(cur))
		i++
	}

	if len(out) == 1 && !out[0].leaf && out[0].Label == n.Label {
		return out[0]
	}
	return Internal(n.Label, out...)
}

func isConjunction(tok string) bool {
	t := strings.ToLower(tok)
	return t == "and" || t == "or"
}
