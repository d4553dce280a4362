// Package bench ranks several prediction sets scored against one gold
// corpus.
package bench

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-parseval"
	"github.com/jamesainslie/go-parseval/dependency"
	"github.com/jamesainslie/go-parseval/tree"
)

// ErrDuplicateName indicates two systems share a name.
var ErrDuplicateName = errors.New("bench: duplicate system name")

// System is one named prediction set.
type System[T any] struct {
	Name        string
	Predictions T
}

// CompareDependencies scores every system against gold and ranks them.
func CompareDependencies(ctx context.Context, ev *parseval.Evaluator, gold dependency.Table, systems []System[dependency.Table]) ([]Entry, error) {
	return rank(ctx, systems, func(ctx context.Context, pred dependency.Table) (parseval.Record, error) {
		return ev.ScoreDependencies(ctx, pred, gold)
	})
}

// CompareConstituencies scores every system against gold and ranks them.
func CompareConstituencies(ctx context.Context, ev *parseval.Evaluator, gold []*tree.Node, systems []System[[]*tree.Node]) ([]Entry, error) {
	return rank(ctx, systems, func(ctx context.Context, pred []*tree.Node) (parseval.Record, error) {
		return ev.ScoreConstituencies(ctx, pred, gold)
	})
}

func rank[T any](ctx context.Context, systems []System[T], score func(context.Context, T) (parseval.Record, error)) ([]Entry, error) {
	seen := make(map[string]bool, len(systems))
	for _, s := range systems {
		if seen[s.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, s.Name)
		}
		seen[s.Name] = true
	}

	entries := make([]Entry, len(systems))
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range systems {
		g.Go(func() error {
			rec, err := score(ctx, s.Predictions)
			if err != nil {
				return fmt.Errorf("scoring %s: %w", s.Name, err)
			}
			metric, value, err := Headline(rec)
			if err != nil {
				return err
			}
			entries[i] = Entry{Name: s.Name, Metric: metric, Score: value, Record: rec}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Sort by score descending, then by name
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}
