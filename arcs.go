package parseval

import (
	"github.com/jamesainslie/go-parseval/dependency"
)

// Arc is one attachment fact. Label is empty in the unlabelled form.
type Arc struct {
	SentenceID int
	WordID     int
	Label      string
	Head       int
}

// TokenLabel is a token's relation label with the head ignored.
type TokenLabel struct {
	SentenceID int
	WordID     int
	Label      string
}

// ExtractArcs returns one arc per row of t. Labelled arcs carry the
// lower-cased relation; unlabelled arcs carry only the attachment. A
// non-zero filter keeps only rows whose label it matches and is only legal
// for labelled extraction; asking for unlabelled filtered arcs returns
// ErrConfiguration.
func ExtractArcs(t dependency.Table, labelled bool, filter LabelFilter) (Set[Arc], error) {
	if !labelled && !filter.IsZero() {
		return nil, configError("label filter %q requires labelled arcs", filter.Label())
	}

	arcs := make(Set[Arc], len(t))
	for _, tok := range t {
		if !filter.Matches(tok.Label) {
			continue
		}
		arc := Arc{SentenceID: tok.SentenceID, WordID: tok.WordID, Head: tok.Head}
		if labelled {
			arc.Label = normalizeLabel(tok.Label)
		}
		arcs.Add(arc)
	}
	return arcs, nil
}

// ExtractLabels returns the lower-cased label of every row of t that
// filter matches, ignoring heads.
func ExtractLabels(t dependency.Table, filter LabelFilter) Set[TokenLabel] {
	labels := make(Set[TokenLabel], len(t))
	for _, tok := range t {
		if !filter.Matches(tok.Label) {
			continue
		}
		labels.Add(TokenLabel{SentenceID: tok.SentenceID, WordID: tok.WordID, Label: normalizeLabel(tok.Label)})
	}
	return labels
}
