package parseval

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrConfiguration indicates an illegal combination of options, such as
	// an unlabelled extraction with a label filter or a pretagged parser fed
	// raw text. It is raised before any scoring work.
	ErrConfiguration = errors.New("parseval: invalid configuration")

	// ErrSizeMismatch indicates accuracy was requested over predicted and
	// gold sets of different cardinality.
	ErrSizeMismatch = errors.New("parseval: predicted and gold sizes differ")

	// ErrEmptyFilterResult indicates a label filter matched nothing in
	// either the predicted or the gold corpus.
	ErrEmptyFilterResult = errors.New("parseval: label filter matched nothing")
)

// SizeMismatchError reports the two cardinalities that disagreed.
type SizeMismatchError struct {
	What      string
	Predicted int
	Gold      int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("%s: %s has %d predicted vs %d gold", ErrSizeMismatch, e.What, e.Predicted, e.Gold)
}

func (e *SizeMismatchError) Is(target error) bool {
	return target == ErrSizeMismatch
}

// EmptyFilterError reports a label filter that selected no token. When a
// label seen in either corpus is close to the filter, Suggestion holds it.
type EmptyFilterError struct {
	Label      string
	Suggestion string
}

func (e *EmptyFilterError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %q not found in either predicted or gold set (did you mean %q?)", ErrEmptyFilterResult, e.Label, e.Suggestion)
	}
	return fmt.Sprintf("%s: %q not found in either predicted or gold set", ErrEmptyFilterResult, e.Label)
}

func (e *EmptyFilterError) Is(target error) bool {
	return target == ErrEmptyFilterResult
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
