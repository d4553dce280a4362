package parsing

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-parseval/dependency"
	"github.com/jamesainslie/go-parseval/tree"
)

// PredictDependencies parses every input with parsers from pool and
// returns a table whose sentence ids follow input order (1-based). Inputs
// and parsers are checked against the pretagged mode before any parsing
// work; a mismatch is reported as ErrInputMode.
func PredictDependencies(ctx context.Context, pool *Pool[DependencyParser], pretagged bool, inputs []Input) (dependency.Table, error) {
	if err := CheckInputs(pretagged, inputs); err != nil {
		return nil, err
	}
	for _, p := range pool.Parsers() {
		if err := CheckParser(pretagged, p); err != nil {
			return nil, err
		}
	}

	sentences := make([][]dependency.Token, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(pool.Size())

	for i, in := range inputs {
		g.Go(func() error {
			p, err := pool.Acquire(ctx)
			if err != nil {
				return err
			}
			defer pool.Release(p)

			toks, err := p.ParseDependencies(ctx, in)
			if err != nil {
				return fmt.Errorf("parsing sentence %d: %w", i+1, err)
			}
			sentences[i] = toks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return dependency.FromSentences(sentences), nil
}

// PredictTrees parses every sentence with parsers from pool, returning one
// tree per sentence in input order. When clean is set each tree goes
// through tree.Clean.
func PredictTrees(ctx context.Context, pool *Pool[ConstituencyParser], sentences []string, clean bool) ([]*tree.Node, error) {
	trees := make([]*tree.Node, len(sentences))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(pool.Size())

	for i, s := range sentences {
		g.Go(func() error {
			p, err := pool.Acquire(ctx)
			if err != nil {
				return err
			}
			defer pool.Release(p)

			t, err := p.ParseTree(ctx, s)
			if err != nil {
				return fmt.Errorf("parsing sentence %d: %w", i+1, err)
			}
			if t == nil {
				return fmt.Errorf("parsing sentence %d: parser returned no tree", i+1)
			}
			if clean {
				t = tree.Clean(t)
			}
			trees[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return trees, nil
}
