package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-parseval"
	"github.com/jamesainslie/go-parseval/corpus"
	"github.com/jamesainslie/go-parseval/tree"
)

func newScoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one prediction document against gold",
	}
	cmd.AddCommand(newScoreDepsCmd(a), newScoreConstCmd(a))
	return cmd
}

type scoreFlags struct {
	gold string
	pred string
	save string
}

func (f *scoreFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.gold, "gold", "g", "", "gold corpus document (.yaml, .yml or .json)")
	cmd.Flags().StringVarP(&f.pred, "pred", "p", "", "prediction document (.yaml, .yml or .json)")
	cmd.Flags().StringVar(&f.save, "save", "", "write the predictions as scored to this document")
}

// resolve fills unset paths from the configuration file.
func (f *scoreFlags) resolve(cmd *cobra.Command, a *app) (gold, pred, save string, err error) {
	gold = pick(cmd, "gold", f.gold, a.cfg.Gold)
	pred = f.pred
	if !cmd.Flags().Changed("pred") && len(a.cfg.Predictions) > 0 {
		pred = a.cfg.Predictions[0].Path
	}
	save = pick(cmd, "save", f.save, a.cfg.SavePredictions)
	if gold == "" || pred == "" {
		return "", "", "", errors.New("both --gold and --pred are required")
	}
	return gold, pred, save, nil
}

func newScoreDepsCmd(a *app) *cobra.Command {
	var (
		flags scoreFlags
		label string
	)

	cmd := &cobra.Command{
		Use:     "deps",
		Aliases: []string{"dependencies"},
		Short:   "Labelled/unlabelled attachment and label accuracy",
		Example: "  parseval score deps -g gold.yaml -p pred.yaml\n" +
			"  parseval score deps -g gold.yaml -p pred.yaml --label nmod",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			goldPath, predPath, save, err := flags.resolve(cmd, a)
			if err != nil {
				return err
			}
			opts := append(a.evaluatorOptions(), parseval.WithLabelFilter(pick(cmd, "label", label, a.cfg.Label)))
			ev := parseval.New(opts...)

			gold, err := loadGold(ev, goldPath)
			if err != nil {
				return err
			}
			pred, err := corpus.Load(predPath)
			if err != nil {
				return err
			}

			if save != "" {
				if err := corpus.NewFileSink(save).WriteDependencies(cmd.Context(), pred.Dependencies); err != nil {
					return fmt.Errorf("saving predictions: %w", err)
				}
			}

			rec, err := ev.ScoreDependencies(cmd.Context(), pred.Dependencies, gold.Dependencies)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), rec)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&label, "label", "l", "", `restrict scoring to one relation ("nmod" or "nmod:poss")`)
	return cmd
}

func newScoreConstCmd(a *app) *cobra.Command {
	var flags scoreFlags

	cmd := &cobra.Command{
		Use:     "const",
		Aliases: []string{"constituencies"},
		Short:   "Labelled/unlabelled Parseval and crossing brackets",
		Example: "  parseval score const -g gold.yaml -p pred.json",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			goldPath, predPath, save, err := flags.resolve(cmd, a)
			if err != nil {
				return err
			}
			gold, pred, err := loadTrees(goldPath, predPath, a.cfg.CleanTrees)
			if err != nil {
				return err
			}

			if save != "" {
				if err := corpus.NewFileSink(save).WriteTrees(cmd.Context(), pred); err != nil {
					return fmt.Errorf("saving predictions: %w", err)
				}
			}

			rec, err := parseval.New(a.evaluatorOptions()...).ScoreConstituencies(cmd.Context(), pred, gold)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), rec)
		},
	}
	flags.register(cmd)
	return cmd
}

// loadGold reads a gold dependency document and checks its sentences, if
// any, against the evaluator's input mode.
func loadGold(ev *parseval.Evaluator, path string) (*corpus.Document, error) {
	gold, err := corpus.Load(path)
	if err != nil {
		return nil, err
	}
	if len(gold.Sentences) > 0 {
		if err := ev.CheckInputs(gold.Inputs()); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return gold, nil
}

// loadTrees reads gold and predicted trees, cleaning the predictions when
// clean is set.
func loadTrees(goldPath, predPath string, clean bool) (gold, pred []*tree.Node, err error) {
	gold, err = readTrees(goldPath)
	if err != nil {
		return nil, nil, err
	}
	pred, err = readTrees(predPath)
	if err != nil {
		return nil, nil, err
	}
	return gold, cleanTrees(pred, clean), nil
}

func cleanTrees(trees []*tree.Node, clean bool) []*tree.Node {
	if !clean {
		return trees
	}
	for i, t := range trees {
		trees[i] = tree.Clean(t)
	}
	return trees
}

func readTrees(path string) ([]*tree.Node, error) {
	doc, err := corpus.Load(path)
	if err != nil {
		return nil, err
	}
	trees, err := doc.ParseTrees()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return trees, nil
}
