package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-parseval"
	"github.com/jamesainslie/go-parseval/corpus"
	"github.com/jamesainslie/go-parseval/dependency"
	"github.com/jamesainslie/go-parseval/internal/bench"
	"github.com/jamesainslie/go-parseval/internal/config"
	"github.com/jamesainslie/go-parseval/internal/render"
	"github.com/jamesainslie/go-parseval/tree"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		gold  string
		preds []string
		kind  string
		label string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank several prediction documents against one gold document",
		Example: "  parseval compare -g gold.yaml -p baseline=base.yaml -p tuned=tuned.yaml\n" +
			"  parseval compare -c runs.yaml",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			goldPath := pick(cmd, "gold", gold, a.cfg.Gold)
			if goldPath == "" {
				return errors.New("--gold is required")
			}
			systems, err := predictionList(cmd, preds, a.cfg.Predictions)
			if err != nil {
				return err
			}

			opts := a.evaluatorOptions()
			var entries []bench.Entry
			selected := pick(cmd, "kind", kind, a.cfg.Kind)
			switch selected {
			case config.KindDependency:
				opts = append(opts, parseval.WithLabelFilter(pick(cmd, "label", label, a.cfg.Label)))
				entries, err = compareDependencies(cmd, parseval.New(opts...), goldPath, systems)
			case config.KindConstituency:
				entries, err = compareConstituencies(cmd, parseval.New(opts...), goldPath, systems, a.cfg.CleanTrees)
			default:
				return fmt.Errorf("unknown kind %q", selected)
			}
			if err != nil {
				return err
			}

			if a.output == "table" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), render.Ranking(entries))
				return err
			}
			return a.print(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().StringVarP(&gold, "gold", "g", "", "gold corpus document")
	cmd.Flags().StringArrayVarP(&preds, "pred", "p", nil, "prediction document as name=path (repeatable)")
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "dependency or constituency")
	cmd.Flags().StringVarP(&label, "label", "l", "", "restrict dependency scoring to one relation")
	return cmd
}

// predictionList parses name=path flags, falling back to the configured
// predictions.
func predictionList(cmd *cobra.Command, flags []string, configured []config.Prediction) ([]config.Prediction, error) {
	if !cmd.Flags().Changed("pred") {
		if len(configured) == 0 {
			return nil, errors.New("at least one --pred is required")
		}
		return configured, nil
	}

	out := make([]config.Prediction, 0, len(flags))
	for _, f := range flags {
		name, path, ok := strings.Cut(f, "=")
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("invalid --pred %q, want name=path", f)
		}
		out = append(out, config.Prediction{Name: name, Path: path})
	}
	return out, nil
}

func compareDependencies(cmd *cobra.Command, ev *parseval.Evaluator, goldPath string, preds []config.Prediction) ([]bench.Entry, error) {
	gold, err := loadGold(ev, goldPath)
	if err != nil {
		return nil, err
	}
	systems := make([]bench.System[dependency.Table], len(preds))
	for i, p := range preds {
		doc, err := corpus.Load(p.Path)
		if err != nil {
			return nil, err
		}
		systems[i] = bench.System[dependency.Table]{Name: p.Name, Predictions: doc.Dependencies}
	}
	return bench.CompareDependencies(cmd.Context(), ev, gold.Dependencies, systems)
}

func compareConstituencies(cmd *cobra.Command, ev *parseval.Evaluator, goldPath string, preds []config.Prediction, clean bool) ([]bench.Entry, error) {
	gold, err := readTrees(goldPath)
	if err != nil {
		return nil, err
	}
	systems := make([]bench.System[[]*tree.Node], len(preds))
	for i, p := range preds {
		pred, err := readTrees(p.Path)
		if err != nil {
			return nil, err
		}
		systems[i] = bench.System[[]*tree.Node]{Name: p.Name, Predictions: cleanTrees(pred, clean)}
	}
	return bench.CompareConstituencies(cmd.Context(), ev, gold, systems)
}
