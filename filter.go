package parseval

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SubtypeSeparator splits a dependency relation into its main category and
// subtype, as in "nmod:poss".
const SubtypeSeparator = ":"

// normalizeLabel lower-cases a relation label. A Caser is stateful, so one
// is built per call.
func normalizeLabel(label string) string {
	return cases.Lower(language.Und).String(label)
}

// LabelFilter restricts dependency scoring to one relation. A coarse filter
// ("nmod") matches the main category of any label ("nmod", "nmod:poss"); a
// fine filter ("nmod:poss") must match exactly. The zero value matches
// everything.
type LabelFilter struct {
	label string
}

// NewLabelFilter returns a filter for label, normalised to lower case.
func NewLabelFilter(label string) LabelFilter {
	return LabelFilter{label: normalizeLabel(strings.TrimSpace(label))}
}

// Label returns the normalised filter label.
func (f LabelFilter) Label() string { return f.label }

// IsZero reports whether f filters nothing.
func (f LabelFilter) IsZero() bool { return f.label == "" }

// Fine reports whether f names a subtype and therefore requires an exact
// match.
func (f LabelFilter) Fine() bool { return strings.Contains(f.label, SubtypeSeparator) }

// Matches reports whether candidate falls under f.
func (f LabelFilter) Matches(candidate string) bool {
	if f.IsZero() {
		return true
	}
	return MatchesLabel(f.label, candidate)
}

// MatchesLabel applies the coarse/fine rule to a filter and a candidate
// relation label, both compared in lower case.
func MatchesLabel(filter, candidate string) bool {
	filter = normalizeLabel(filter)
	candidate = normalizeLabel(candidate)
	if strings.Contains(filter, SubtypeSeparator) {
		return filter == candidate
	}
	main, _, _ := strings.Cut(candidate, SubtypeSeparator)
	return main == filter
}
