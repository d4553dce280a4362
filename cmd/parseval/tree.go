package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-parseval"
	"github.com/jamesainslie/go-parseval/tree"
)

func newTreeCmd(_ *app) *cobra.Command {
	var (
		clean   bool
		flatten bool
		spans   bool
	)

	cmd := &cobra.Command{
		Use:   "tree TREE...",
		Short: "Parse, normalise and print bracketed trees",
		Example: `  parseval tree --clean "(TOP (S (NP (_ I)) (VP (V ran))))"` + "\n" +
			`  parseval tree --spans "(S (NP a b) (VP c))"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, arg := range args {
				t, err := tree.Parse(arg)
				if err != nil {
					return fmt.Errorf("tree %d: %w", i+1, err)
				}
				if clean {
					t = tree.Clean(t)
				}
				if flatten {
					t = tree.FlattenCoordination(t)
				}

				if _, err := fmt.Fprintln(out, t); err != nil {
					return err
				}
				if spans {
					if _, err := fmt.Fprintln(out, formatSpans(parseval.ExtractSpans(t, 0, true))); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clean, "clean", false, "remove a TOP wrapper and empty \"_\" tags")
	cmd.Flags().BoolVar(&flatten, "flatten", false, "merge coordinated siblings sharing a label")
	cmd.Flags().BoolVar(&spans, "spans", false, "also list the labelled spans")
	return cmd
}

// formatSpans lists spans ordered by start, widest first.
func formatSpans(set parseval.Set[parseval.Span]) string {
	spans := make([]parseval.Span, 0, set.Len())
	for s := range set {
		spans = append(spans, s)
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		if spans[i].End != spans[j].End {
			return spans[i].End > spans[j].End
		}
		return spans[i].Label < spans[j].Label
	})

	parts := make([]string, len(spans))
	for i, s := range spans {
		parts[i] = fmt.Sprintf("(%d,%d,%s)", s.Start, s.End, s.Label)
	}
	return "  " + strings.Join(parts, " ")
}
