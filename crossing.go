package parseval

// CrossCount counts the predicted spans of one sentence that cross a gold
// span. A predicted span with an exact counterpart in gold never crosses.
// Each remaining predicted span counts at most once, when it overlaps some
// gold span without either containing the other. Labels are ignored by the
// geometric test and spans that only touch at a boundary do not cross.
func CrossCount(gold, pred Set[Span]) int {
	crosses := 0
	for u := range pred.Difference(gold) {
		for g := range gold {
			if crossing(u, g) {
				crosses++
				break
			}
		}
	}
	return crosses
}

func crossing(u, g Span) bool {
	return (u.Start < g.Start && g.Start < u.End && u.End < g.End) ||
		(g.Start < u.Start && u.Start < g.End && g.End < u.End)
}

// CorpusCrossCount sums CrossCount over sentence-aligned span sets.
func CorpusCrossCount(gold, pred []Set[Span]) (int, error) {
	if len(gold) != len(pred) {
		return 0, &SizeMismatchError{What: "sentences", Predicted: len(pred), Gold: len(gold)}
	}
	total := 0
	for i := range gold {
		total += CrossCount(gold[i], pred[i])
	}
	return total, nil
}
