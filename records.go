package parseval

// Record is a score produced by one evaluation call: a DependencyScore,
// a LabelScore or a ConstituencyScore. Records are values and never change
// after they are returned.
type Record interface {
	// Kind names the evaluation that produced the record.
	Kind() string
}

// DependencyScore holds the unfiltered attachment accuracies.
type DependencyScore struct {
	// LAS is the labelled attachment score.
	LAS Accuracy `json:"las" yaml:"las"`
	// UAS is the unlabelled attachment score.
	UAS Accuracy `json:"uas" yaml:"uas"`
	// LS is the label accuracy score.
	LS Accuracy `json:"ls" yaml:"ls"`
}

func (DependencyScore) Kind() string { return "dependency" }

// LabelScore holds the scores restricted to one relation label. Filtering
// can leave the two sides with different token counts, so precision and
// recall replace accuracy.
type LabelScore struct {
	Label string    `json:"label" yaml:"label"`
	LAS   EvalScore `json:"las" yaml:"las"`
	LS    EvalScore `json:"ls" yaml:"ls"`
}

func (LabelScore) Kind() string { return "label" }

// ConstituencyScore holds labelled and unlabelled Parseval scores and the
// corpus cross-bracket total.
type ConstituencyScore struct {
	Labelled      EvalScore `json:"labelled" yaml:"labelled"`
	Unlabelled    EvalScore `json:"unlabelled" yaml:"unlabelled"`
	CrossBrackets int       `json:"cross_brackets" yaml:"cross_brackets"`
}

func (ConstituencyScore) Kind() string { return "constituency" }
