package parseval

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/samber/lo"

	"github.com/jamesainslie/go-parseval/dependency"
)

// maxSuggestionDistance bounds how far a known label may be from a filter
// that matched nothing and still be offered as a correction.
const maxSuggestionDistance = 2

// AttachmentScores computes labelled attachment, unlabelled attachment and
// label accuracy over token-aligned corpora.
func AttachmentScores(pred, gold dependency.Table) (DependencyScore, error) {
	predLabelled, err := ExtractArcs(pred, true, LabelFilter{})
	if err != nil {
		return DependencyScore{}, err
	}
	goldLabelled, err := ExtractArcs(gold, true, LabelFilter{})
	if err != nil {
		return DependencyScore{}, err
	}
	predUnlabelled, err := ExtractArcs(pred, false, LabelFilter{})
	if err != nil {
		return DependencyScore{}, err
	}
	goldUnlabelled, err := ExtractArcs(gold, false, LabelFilter{})
	if err != nil {
		return DependencyScore{}, err
	}

	las, err := NewAccuracy(predLabelled, goldLabelled)
	if err != nil {
		return DependencyScore{}, err
	}
	uas, err := NewAccuracy(predUnlabelled, goldUnlabelled)
	if err != nil {
		return DependencyScore{}, err
	}
	ls, err := NewAccuracy(ExtractLabels(pred, LabelFilter{}), ExtractLabels(gold, LabelFilter{}))
	if err != nil {
		return DependencyScore{}, err
	}

	return DependencyScore{LAS: las, UAS: uas, LS: ls}, nil
}

// LabelScores computes precision, recall and F1 for labelled attachment and
// for labels alone, restricted to tokens whose relation filter matches. The
// same predicate selects arcs and labels, so both scores cover the same
// tokens. A filter that selects nothing on either side returns an
// *EmptyFilterError.
func LabelScores(pred, gold dependency.Table, filter LabelFilter) (LabelScore, error) {
	if filter.IsZero() {
		return LabelScore{}, configError("empty label filter")
	}

	predArcs, err := ExtractArcs(pred, true, filter)
	if err != nil {
		return LabelScore{}, err
	}
	goldArcs, err := ExtractArcs(gold, true, filter)
	if err != nil {
		return LabelScore{}, err
	}
	if predArcs.Len() == 0 && goldArcs.Len() == 0 {
		return LabelScore{}, &EmptyFilterError{
			Label:      filter.Label(),
			Suggestion: suggestLabel(filter.Label(), pred, gold),
		}
	}

	return LabelScore{
		Label: filter.Label(),
		LAS:   NewEvalScore(predArcs, goldArcs),
		LS:    NewEvalScore(ExtractLabels(pred, filter), ExtractLabels(gold, filter)),
	}, nil
}

// KnownLabels returns the distinct lower-cased relation labels of the given
// tables.
func KnownLabels(tables ...dependency.Table) []string {
	var labels []string
	for _, t := range tables {
		for _, tok := range t {
			labels = append(labels, normalizeLabel(tok.Label))
		}
	}
	return lo.Uniq(labels)
}

func suggestLabel(label string, tables ...dependency.Table) string {
	known := lo.Uniq(lo.FlatMap(KnownLabels(tables...), func(l string, _ int) []string {
		main, _, _ := strings.Cut(l, SubtypeSeparator)
		return []string{l, main}
	}))
	if len(known) == 0 {
		return ""
	}
	best := lo.MinBy(known, func(a, b string) bool {
		da, db := levenshtein.ComputeDistance(label, a), levenshtein.ComputeDistance(label, b)
		if da != db {
			return da < db
		}
		return a < b
	})
	if levenshtein.ComputeDistance(label, best) > maxSuggestionDistance {
		return ""
	}
	return best
}
