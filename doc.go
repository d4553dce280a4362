// Package parseval scores predicted syntactic parses against gold parses.
//
// # Quick Start
//
//	ev := parseval.New(parseval.WithLabelFilter("nmod"))
//	rec, err := ev.ScoreDependencies(ctx, predicted, gold)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(rec)
//
// # Dependency Scores
//
// Without a label filter, ScoreDependencies returns a DependencyScore with
// labelled attachment (LAS), unlabelled attachment (UAS) and label (LS)
// accuracy. Both corpora must hold the same tokens. With a filter it returns
// a LabelScore with precision, recall and F1 over the matching tokens only.
// A filter without ":" is coarse ("nmod" matches "nmod:poss"); a filter with
// ":" matches exactly.
//
// # Constituency Scores
//
// ScoreConstituencies and Parseval compare trees by the leaf spans of their
// internal nodes, with and without labels, and count predicted brackets that
// cross a gold bracket.
//
// # Thread Safety
//
// Evaluator is safe for concurrent use. Per-sentence work runs on a bounded
// number of goroutines, configurable via WithWorkers.
package parseval
