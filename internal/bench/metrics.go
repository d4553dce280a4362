package bench

import (
	"fmt"

	"github.com/jamesainslie/go-parseval"
)

// Entry is one ranked system.
type Entry struct {
	Name   string
	Metric string
	Score  float64
	Record parseval.Record
}

// Headline returns the metric a record is ranked by: LAS for unfiltered
// dependency scores, labelled-attachment F1 for a label filter, and
// labelled Parseval F1 for constituency scores.
func Headline(rec parseval.Record) (metric string, score float64, err error) {
	switch r := rec.(type) {
	case parseval.DependencyScore:
		return "LAS", float64(r.LAS), nil
	case parseval.LabelScore:
		return r.Label + " LAS F1", r.LAS.F1, nil
	case parseval.ConstituencyScore:
		return "Labelled F1", r.Labelled.F1, nil
	default:
		return "", 0, fmt.Errorf("bench: no headline metric for %T", rec)
	}
}
