package parseval

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNewEvalScore(t *testing.T) {
	tests := []struct {
		name       string
		pred, gold Set[int]
		want       EvalScore
	}{
		{"both empty", NewSet[int](), NewSet[int](), EvalScore{}},
		{"identical", NewSet(1, 2, 3), NewSet(1, 2, 3), EvalScore{1, 1, 1}},
		{"empty pred", NewSet[int](), NewSet(1), EvalScore{}},
		{"empty gold", NewSet(1), NewSet[int](), EvalScore{}},
		{"disjoint", NewSet(1, 2), NewSet(3, 4), EvalScore{}},
		{"partial", NewSet(1, 2), NewSet(1), EvalScore{0.5, 1, 2.0 / 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewEvalScore(tt.pred, tt.gold)
			if !approx(got.Precision, tt.want.Precision) || !approx(got.Recall, tt.want.Recall) || !approx(got.F1, tt.want.F1) {
				t.Errorf("NewEvalScore() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEvalScore_String(t *testing.T) {
	s := EvalScore{Precision: 0.5, Recall: 1, F1: 2.0 / 3}
	if got, want := s.String(), "(P = 0.50, R = 1.00, F = 0.67)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNewAccuracy(t *testing.T) {
	tests := []struct {
		name       string
		pred, gold Set[int]
		want       Accuracy
	}{
		{"identical", NewSet(1, 2, 3, 4), NewSet(1, 2, 3, 4), 1},
		{"half", NewSet(1, 2, 5, 6), NewSet(1, 2, 3, 4), 0.5},
		{"none", NewSet(5, 6), NewSet(1, 2), 0},
		{"empty", NewSet[int](), NewSet[int](), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewAccuracy(tt.pred, tt.gold)
			if err != nil {
				t.Fatalf("NewAccuracy() error = %v", err)
			}
			if !approx(float64(got), float64(tt.want)) {
				t.Errorf("NewAccuracy() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("NewAccuracy() = %v, outside [0, 1]", got)
			}
			if (got == 1) != (tt.pred.Equal(tt.gold) && tt.pred.Len() > 0) {
				t.Errorf("NewAccuracy() = %v for pred equal %v", got, tt.pred.Equal(tt.gold))
			}
		})
	}
}

func TestNewAccuracy_SizeMismatch(t *testing.T) {
	_, err := NewAccuracy(NewSet(1, 2, 3), NewSet(1, 2))
	if !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}

	var sm *SizeMismatchError
	if !errors.As(err, &sm) {
		t.Fatalf("expected *SizeMismatchError, got %T", err)
	}
	if sm.Predicted != 3 || sm.Gold != 2 {
		t.Errorf("SizeMismatchError = %+v, want 3 predicted, 2 gold", sm)
	}
}

func TestSet_Operations(t *testing.T) {
	a := NewSet(1, 2, 3)
	b := NewSet(2, 3, 4)

	if n := a.IntersectionLen(b); n != 2 {
		t.Errorf("IntersectionLen() = %d, want 2", n)
	}
	if d := a.Difference(b); !d.Equal(NewSet(1)) {
		t.Errorf("Difference() = %v, want {1}", d)
	}

	a.Union(b)
	if !a.Equal(NewSet(1, 2, 3, 4)) {
		t.Errorf("Union() = %v, want {1 2 3 4}", a)
	}
	if a.Equal(b) {
		t.Error("sets of different size reported equal")
	}
}
