package parseval

import (
	"github.com/jamesainslie/go-parseval/tree"
)

// Span is a constituent over the half-open leaf range [Start, End). Label
// is empty in the unlabelled form.
type Span struct {
	Start int
	End   int
	Label string
}

// SentenceSpan is a Span disambiguated by its 1-based sentence id so spans
// of a whole corpus can share one set.
type SentenceSpan struct {
	SentenceID int
	Span
}

// ExtractSpans returns the spans of every internal node of n (height > 1),
// numbering leaves from start. Children are visited left to right; a leaf
// child advances the running offset by one.
func ExtractSpans(n *tree.Node, start int, labelled bool) Set[Span] {
	spans := make(Set[Span])
	collectSpans(n, start, labelled, spans)
	return spans
}

func collectSpans(n *tree.Node, start int, labelled bool, spans Set[Span]) {
	// Height <= 1: a leaf or a node without children.
	if n == nil || n.IsLeaf() || len(n.Children) == 0 {
		return
	}

	span := Span{Start: start, End: start + n.LeafCount()}
	if labelled {
		span.Label = n.Label
	}
	spans.Add(span)

	offset := start
	for _, child := range n.Children {
		if child.IsLeaf() {
			offset++
			continue
		}
		collectSpans(child, offset, labelled, spans)
		offset += child.LeafCount()
	}
}

// ExtractCorpusSpans extracts the spans of every tree, returning the
// corpus-wide set keyed by 1-based sentence id and the raw per-sentence
// sets used for cross-bracket counting.
func ExtractCorpusSpans(trees []*tree.Node, labelled bool) (Set[SentenceSpan], []Set[Span]) {
	all := make(Set[SentenceSpan])
	perSentence := make([]Set[Span], len(trees))
	for i, t := range trees {
		spans := ExtractSpans(t, 0, labelled)
		for s := range spans {
			all.Add(SentenceSpan{SentenceID: i + 1, Span: s})
		}
		perSentence[i] = spans
	}
	return all, perSentence
}
