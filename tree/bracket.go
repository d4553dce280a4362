package tree

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax indicates malformed bracket notation.
var ErrSyntax = errors.New("tree: invalid bracket notation")

// Parse reads a single tree in Penn-style bracket notation. A root written
// as "( (S ...))" yields an internal node with an empty label.
func Parse(s string) (*Node, error) {
	toks := tokenize(s)
	if len(toks) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrSyntax)
	}
	p := &parser{toks: toks}
	n, err := p.node()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("%w: unexpected %q after tree", ErrSyntax, p.toks[p.pos])
	}
	return n, nil
}

// ParseAll parses a sequence of bracketed trees, one per sentence.
func ParseAll(trees []string) ([]*Node, error) {
	out := make([]*Node, 0, len(trees))
	for i, s := range trees {
		n, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", i+1, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// literals.
func MustParse(s string) *Node {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

func tokenize(s string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '(' || r == ')':
			flush()
			toks = append(toks, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

type parser struct {
	toks []string
	pos  int
}

func (p *parser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos]
}

func (p *parser) node() (*Node, error) {
	if p.peek() != "(" {
		return nil, fmt.Errorf("%w: expected '(' at token %d", ErrSyntax, p.pos)
	}
	p.pos++

	n := &Node{}
	if t := p.peek(); t != "(" && t != ")" && t != "" {
		n.Label = t
		p.pos++
	}

	for {
		switch t := p.peek(); t {
		case "":
			return nil, fmt.Errorf("%w: unbalanced parentheses", ErrSyntax)
		case ")":
			p.pos++
			return n, nil
		case "(":
			child, err := p.node()
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		default:
			n.Children = append(n.Children, Leaf(t))
			p.pos++
		}
	}
}
