package render

import (
	"strings"
	"testing"

	"github.com/jamesainslie/go-parseval"
	"github.com/jamesainslie/go-parseval/internal/bench"
)

func TestRecord(t *testing.T) {
	tests := []struct {
		name string
		rec  parseval.Record
		want []string
	}{
		{
			name: "dependency",
			rec:  parseval.DependencyScore{LAS: 0.5, UAS: 0.75, LS: 1},
			want: []string{"Dependency parse score", "Metric", "Accuracy", "LAS", "0.50", "UAS", "0.75", "LS", "1.00"},
		},
		{
			name: "label",
			rec: parseval.LabelScore{
				Label: "nmod",
				LAS:   parseval.EvalScore{Precision: 0.5, Recall: 1, F1: 2.0 / 3},
				LS:    parseval.EvalScore{Precision: 1, Recall: 1, F1: 1},
			},
			want: []string{"nmod - specific evaluation", "Precision", "Recall", "F1", "0.5000", "0.6667"},
		},
		{
			name: "constituency",
			rec: &parseval.ConstituencyScore{
				Labelled:      parseval.EvalScore{Precision: 0.25},
				Unlabelled:    parseval.EvalScore{Recall: 0.125},
				CrossBrackets: 42,
			},
			want: []string{"Labelled", "Unlabelled", "0.2500", "0.1250", "Cross brackets", "42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Record(tt.rec)
			if err != nil {
				t.Fatalf("Record() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Record() output missing %q:\n%s", w, got)
				}
			}
		})
	}
}

func TestDependency_TitleFirst(t *testing.T) {
	got := Dependency(parseval.DependencyScore{LAS: 1, UAS: 1, LS: 1})
	first, _, _ := strings.Cut(got, "\n")
	if !strings.Contains(first, DependencyTitle) {
		t.Errorf("first line = %q, want the %q title", first, DependencyTitle)
	}
	if strings.Contains(Label(parseval.LabelScore{Label: "obj"}), DependencyTitle) {
		t.Error("label table should carry only its own title")
	}
}

func TestRecord_Unsupported(t *testing.T) {
	if _, err := Record(nil); err == nil {
		t.Error("expected error for nil record")
	}
}

func TestRanking(t *testing.T) {
	got := Ranking([]bench.Entry{
		{Name: "tuned", Metric: "LAS", Score: 0.91},
		{Name: "baseline", Metric: "LAS", Score: 0.875},
	})

	for _, w := range []string{"Rank", "System", "tuned", "0.9100", "baseline", "0.8750"} {
		if !strings.Contains(got, w) {
			t.Errorf("Ranking() output missing %q:\n%s", w, got)
		}
	}
	if strings.Index(got, "tuned") > strings.Index(got, "baseline") {
		t.Error("entries must keep their ranked order")
	}
}
