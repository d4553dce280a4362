package bench

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/jamesainslie/go-parseval"
	"github.com/jamesainslie/go-parseval/dependency"
	"github.com/jamesainslie/go-parseval/tree"
)

func evaluator(opts ...parseval.Option) *parseval.Evaluator {
	opts = append(opts, parseval.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	return parseval.New(opts...)
}

func table(heads []int, labels []string) dependency.Table {
	t := make(dependency.Table, len(heads))
	for i := range heads {
		t[i] = dependency.Token{SentenceID: 1, WordID: i + 1, Label: labels[i], Head: heads[i]}
	}
	return t
}

func TestCompareDependencies(t *testing.T) {
	gold := table([]int{2, 0, 2}, []string{"nsubj", "root", "obj"})
	systems := []System[dependency.Table]{
		{Name: "worst", Predictions: table([]int{3, 0, 1}, []string{"nsubj", "root", "obj"})},
		{Name: "best", Predictions: table([]int{2, 0, 2}, []string{"nsubj", "root", "obj"})},
		{Name: "middle", Predictions: table([]int{2, 0, 2}, []string{"nsubj", "root", "iobj"})},
		{Name: "also-middle", Predictions: table([]int{2, 0, 2}, []string{"obj", "root", "obj"})},
	}

	got, err := CompareDependencies(context.Background(), evaluator(), gold, systems)
	if err != nil {
		t.Fatalf("CompareDependencies() error = %v", err)
	}

	wantOrder := []string{"best", "also-middle", "middle", "worst"}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d entries, want %d", len(got), len(wantOrder))
	}
	for i, name := range wantOrder {
		if got[i].Name != name {
			t.Errorf("rank %d = %s, want %s", i+1, got[i].Name, name)
		}
	}
	if got[0].Metric != "LAS" || got[0].Score != 1 {
		t.Errorf("best = %+v, want LAS 1", got[0])
	}
}

func TestCompareDependencies_LabelFilter(t *testing.T) {
	gold := table([]int{2, 0, 2}, []string{"nsubj", "root", "obj"})
	systems := []System[dependency.Table]{
		{Name: "a", Predictions: table([]int{2, 0, 2}, []string{"nsubj", "root", "obj"})},
	}

	got, err := CompareDependencies(context.Background(), evaluator(parseval.WithLabelFilter("obj")), gold, systems)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Metric != "obj LAS F1" || got[0].Score != 1 {
		t.Errorf("entry = %+v", got[0])
	}
}

func TestCompareDependencies_Errors(t *testing.T) {
	gold := table([]int{2, 0}, []string{"nsubj", "root"})

	_, err := CompareDependencies(context.Background(), evaluator(), gold, []System[dependency.Table]{
		{Name: "a", Predictions: gold},
		{Name: "a", Predictions: gold},
	})
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}

	_, err = CompareDependencies(context.Background(), evaluator(), gold, []System[dependency.Table]{
		{Name: "short", Predictions: gold[:1]},
	})
	if !errors.Is(err, parseval.ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestCompareConstituencies(t *testing.T) {
	gold := []*tree.Node{tree.MustParse("(S (NP a b) (VP c))")}
	systems := []System[[]*tree.Node]{
		{Name: "flat", Predictions: []*tree.Node{tree.MustParse("(S a b c)")}},
		{Name: "exact", Predictions: []*tree.Node{tree.MustParse("(S (NP a b) (VP c))")}},
	}

	got, err := CompareConstituencies(context.Background(), evaluator(), gold, systems)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Name != "exact" || got[0].Metric != "Labelled F1" || got[0].Score != 1 {
		t.Errorf("first = %+v, want exact with F1 1", got[0])
	}
	if _, ok := got[1].Record.(parseval.ConstituencyScore); !ok {
		t.Errorf("record = %T, want ConstituencyScore", got[1].Record)
	}
}

func TestHeadline_Unknown(t *testing.T) {
	if _, _, err := Headline(nil); err == nil {
		t.Error("expected error for nil record")
	}
}
