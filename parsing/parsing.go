// Package parsing defines the contracts for the black-box parsers whose output
// is scored, and runs them over a corpus.
package parsing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jamesainslie/go-parseval/dependency"
	"github.com/jamesainslie/go-parseval/tree"
)

// ErrInputMode indicates raw text was handed to a pretagged parser, tagged
// words to a raw-text parser, or a parser whose mode differs from the one
// requested.
var ErrInputMode = errors.New("parsing: input does not match parser mode")

// Input is one sentence handed to a dependency parser: either Text or
// Tagged.
type Input interface {
	pretagged() bool
}

// Text is an untagged sentence.
type Text string

func (Text) pretagged() bool { return false }

// TaggedWord is a token with its part-of-speech annotation.
type TaggedWord struct {
	Text  string `json:"text" yaml:"text"`
	Lemma string `json:"lemma" yaml:"lemma"`
	UPOS  string `json:"upos" yaml:"upos"`
	XPOS  string `json:"xpos" yaml:"xpos"`
}

// Tagged is a sentence that has already been tokenized and tagged.
type Tagged []TaggedWord

func (Tagged) pretagged() bool { return true }

// IsPretagged reports whether in carries tagged words.
func IsPretagged(in Input) bool {
	return in.pretagged()
}

// DependencyParser maps one sentence to its dependency rows. Returned
// tokens need not carry a SentenceID; callers assign it.
type DependencyParser interface {
	ParseDependencies(ctx context.Context, in Input) ([]dependency.Token, error)
	// Pretagged reports whether the parser expects Tagged input.
	Pretagged() bool
}

// ConstituencyParser maps one sentence to its constituency tree.
type ConstituencyParser interface {
	ParseTree(ctx context.Context, sentence string) (*tree.Node, error)
}

// CheckInputs verifies that every input matches the requested mode.
func CheckInputs(pretagged bool, inputs []Input) error {
	for i, in := range inputs {
		if in == nil {
			return fmt.Errorf("%w: sentence %d is nil", ErrInputMode, i+1)
		}
		if in.pretagged() != pretagged {
			if pretagged {
				return fmt.Errorf("%w: sentence %d is raw text but the parser is pretagged", ErrInputMode, i+1)
			}
			return fmt.Errorf("%w: sentence %d is tagged but the parser expects raw text", ErrInputMode, i+1)
		}
	}
	return nil
}

// CheckParser verifies that p runs in the requested mode.
func CheckParser(pretagged bool, p DependencyParser) error {
	if p.Pretagged() != pretagged {
		return fmt.Errorf("%w: parser pretagged=%v, requested pretagged=%v", ErrInputMode, p.Pretagged(), pretagged)
	}
	return nil
}
