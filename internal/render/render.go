// Package render formats score records as terminal tables.
package render

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/jamesainslie/go-parseval"
	"github.com/jamesainslie/go-parseval/internal/bench"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

// Record renders any score record. Unknown record types are an error.
func Record(rec parseval.Record) (string, error) {
	switch r := rec.(type) {
	case parseval.DependencyScore:
		return Dependency(r), nil
	case *parseval.DependencyScore:
		return Dependency(*r), nil
	case parseval.LabelScore:
		return Label(r), nil
	case *parseval.LabelScore:
		return Label(*r), nil
	case parseval.ConstituencyScore:
		return Constituency(r), nil
	case *parseval.ConstituencyScore:
		return Constituency(*r), nil
	default:
		return "", fmt.Errorf("render: unsupported record %T", rec)
	}
}

// DependencyTitle heads the unfiltered dependency table.
const DependencyTitle = "Dependency parse score"

// Dependency renders the three attachment accuracies under
// DependencyTitle.
func Dependency(s parseval.DependencyScore) string {
	t := newTable().
		Headers("Metric", "Accuracy").
		Row("LAS", s.LAS.String()).
		Row("UAS", s.UAS.String()).
		Row("LS", s.LS.String())
	return titleStyle.Render(DependencyTitle) + "\n" + t.String()
}

// Label renders a filtered evaluation under a "<label> - specific
// evaluation" title.
func Label(s parseval.LabelScore) string {
	t := newTable().
		Headers("Metric", "Precision", "Recall", "F1").
		Row(evalRow("LAS", s.LAS)...).
		Row(evalRow("LS", s.LS)...)
	return titleStyle.Render(s.Label+" - specific evaluation") + "\n" + t.String()
}

// Constituency renders labelled and unlabelled Parseval scores and the
// cross-bracket total.
func Constituency(s parseval.ConstituencyScore) string {
	return newTable().
		Headers("Metric", "Precision", "Recall", "F1").
		Row(evalRow("Labelled", s.Labelled)...).
		Row(evalRow("Unlabelled", s.Unlabelled)...).
		Row("Cross brackets", strconv.Itoa(s.CrossBrackets), "", "").
		String()
}

// Ranking renders a comparison, best system first.
func Ranking(entries []bench.Entry) string {
	t := newTable().Headers("Rank", "System", "Metric", "Score")
	for i, e := range entries {
		t.Row(strconv.Itoa(i+1), e.Name, e.Metric, fmt.Sprintf("%.4f", e.Score))
	}
	return t.String()
}

func newTable() *table.Table {
	return table.New().Border(lipgloss.NormalBorder())
}

func evalRow(name string, s parseval.EvalScore) []string {
	return []string{
		name,
		fmt.Sprintf("%.4f", s.Precision),
		fmt.Sprintf("%.4f", s.Recall),
		fmt.Sprintf("%.4f", s.F1),
	}
}
