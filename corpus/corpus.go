// Package corpus reads and writes the in-memory structures the scoring
// engine consumes: sentences to parse, dependency rows and bracketed trees.
// A Document is encoded as YAML or JSON.
package corpus

import (
	"errors"
	"fmt"

	"github.com/jamesainslie/go-parseval/dependency"
	"github.com/jamesainslie/go-parseval/parsing"
	"github.com/jamesainslie/go-parseval/tree"
)

// ErrFormat indicates a document encoding that is not supported.
var ErrFormat = errors.New("corpus: unsupported format")

// Sentence is one parser input. When Words is set the sentence is
// pretagged and Text is informational.
type Sentence struct {
	Text  string               `json:"text,omitempty" yaml:"text,omitempty"`
	Words []parsing.TaggedWord `json:"words,omitempty" yaml:"words,omitempty"`
}

// Document is a dump of one corpus. Any section may be empty.
type Document struct {
	Sentences    []Sentence       `json:"sentences,omitempty" yaml:"sentences,omitempty"`
	Dependencies dependency.Table `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Trees        []string         `json:"trees,omitempty" yaml:"trees,omitempty"`
}

// Inputs converts the sentences to parser inputs: Tagged when words are
// present, Text otherwise.
func (d *Document) Inputs() []parsing.Input {
	inputs := make([]parsing.Input, len(d.Sentences))
	for i, s := range d.Sentences {
		if len(s.Words) > 0 {
			inputs[i] = parsing.Tagged(s.Words)
			continue
		}
		inputs[i] = parsing.Text(s.Text)
	}
	return inputs
}

// Texts returns the raw text of every sentence.
func (d *Document) Texts() []string {
	texts := make([]string, len(d.Sentences))
	for i, s := range d.Sentences {
		texts[i] = s.Text
	}
	return texts
}

// ParseTrees parses the bracketed trees.
func (d *Document) ParseTrees() ([]*tree.Node, error) {
	trees, err := tree.ParseAll(d.Trees)
	if err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	return trees, nil
}

// SetTrees stores trees in bracket notation.
func (d *Document) SetTrees(trees []*tree.Node) {
	d.Trees = make([]string, len(trees))
	for i, t := range trees {
		d.Trees[i] = t.String()
	}
}
