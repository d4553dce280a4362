package parseval

import "fmt"

// Set is an unordered collection of comparable scoring atoms: spans, arcs
// or labels.
type Set[T comparable] map[T]struct{}

// NewSet returns a set holding items.
func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Add inserts item.
func (s Set[T]) Add(item T) { s[item] = struct{}{} }

// Has reports whether item is in s.
func (s Set[T]) Has(item T) bool {
	_, ok := s[item]
	return ok
}

// Len returns the number of atoms in s.
func (s Set[T]) Len() int { return len(s) }

// Union adds every atom of other to s.
func (s Set[T]) Union(other Set[T]) {
	for it := range other {
		s[it] = struct{}{}
	}
}

// IntersectionLen returns |s ∩ other| without building the intersection.
func (s Set[T]) IntersectionLen(other Set[T]) int {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	n := 0
	for it := range small {
		if large.Has(it) {
			n++
		}
	}
	return n
}

// Difference returns the atoms of s not in other.
func (s Set[T]) Difference(other Set[T]) Set[T] {
	out := make(Set[T])
	for it := range s {
		if !other.Has(it) {
			out[it] = struct{}{}
		}
	}
	return out
}

// Equal reports whether s and other hold the same atoms.
func (s Set[T]) Equal(other Set[T]) bool {
	return len(s) == len(other) && s.IntersectionLen(other) == len(s)
}

// EvalScore is a precision/recall/F1 triple.
type EvalScore struct {
	Precision float64 `json:"precision" yaml:"precision"`
	Recall    float64 `json:"recall" yaml:"recall"`
	F1        float64 `json:"f1" yaml:"f1"`
}

func (s EvalScore) String() string {
	return fmt.Sprintf("(P = %.2f, R = %.2f, F = %.2f)", s.Precision, s.Recall, s.F1)
}

// NewEvalScore scores pred against gold by set overlap. Empty sets score
// zero rather than failing.
func NewEvalScore[T comparable](pred, gold Set[T]) EvalScore {
	correct := pred.IntersectionLen(gold)

	var s EvalScore
	if len(pred) > 0 {
		s.Precision = float64(correct) / float64(len(pred))
	}
	if len(gold) > 0 {
		s.Recall = float64(correct) / float64(len(gold))
	}
	if s.Precision+s.Recall > 0 {
		s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
	}
	return s
}

// Accuracy is the fraction of token-aligned atoms predicted correctly.
type Accuracy float64

func (a Accuracy) String() string {
	return fmt.Sprintf("%.2f", float64(a))
}

// NewAccuracy scores pred against gold assuming a one-to-one token
// alignment. The sets must be the same size; otherwise a
// *SizeMismatchError is returned. Two empty sets score zero.
func NewAccuracy[T comparable](pred, gold Set[T]) (Accuracy, error) {
	if len(pred) != len(gold) {
		return 0, &SizeMismatchError{What: "accuracy", Predicted: len(pred), Gold: len(gold)}
	}
	if len(pred) == 0 {
		return 0, nil
	}
	return Accuracy(float64(pred.IntersectionLen(gold)) / float64(len(pred))), nil
}
