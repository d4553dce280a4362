// Package dependency holds the flat relational form of dependency parses:
// one row per token keyed by (sentence id, word id).
package dependency

import (
	"fmt"
	"sort"
)

// Root is the head id of a token attached to the virtual root node.
const Root = 0

// Token is one row of a dependency table. SentenceID and WordID are
// 1-based; Head is the WordID of the governing token or Root.
type Token struct {
	SentenceID int    `json:"sentence_id" yaml:"sentence_id"`
	WordID     int    `json:"word_id" yaml:"word_id"`
	Word       string `json:"word" yaml:"word"`
	Label      string `json:"label" yaml:"label"`
	Head       int    `json:"head" yaml:"head"`
}

// Table is a dependency corpus. Rows are kept in the order they were
// produced; scoring only relies on iterating all rows.
type Table []Token

// FromSentences builds a table from per-sentence token lists, assigning
// 1-based sentence ids in order. Existing SentenceID values are replaced.
func FromSentences(sentences [][]Token) Table {
	var t Table
	for i, sent := range sentences {
		for _, tok := range sent {
			tok.SentenceID = i + 1
			t = append(t, tok)
		}
	}
	return t
}

// Sentences groups the rows by sentence id, ordered by id, each sentence
// ordered by word id.
func (t Table) Sentences() [][]Token {
	byID := make(map[int][]Token)
	for _, tok := range t {
		byID[tok.SentenceID] = append(byID[tok.SentenceID], tok)
	}
	ids := make([]int, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([][]Token, 0, len(ids))
	for _, id := range ids {
		sent := byID[id]
		sort.SliceStable(sent, func(i, j int) bool { return sent[i].WordID < sent[j].WordID })
		out = append(out, sent)
	}
	return out
}

// SentenceCount returns the number of distinct sentence ids.
func (t Table) SentenceCount() int {
	seen := make(map[int]struct{})
	for _, tok := range t {
		seen[tok.SentenceID] = struct{}{}
	}
	return len(seen)
}

// Sentence returns the rows of one sentence ordered by word id.
func (t Table) Sentence(id int) []Token {
	var out []Token
	for _, tok := range t {
		if tok.SentenceID == id {
			out = append(out, tok)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].WordID < out[j].WordID })
	return out
}

// Problem describes a way in which a sentence is not a well-formed tree.
type Problem struct {
	SentenceID int
	WordID     int
	Reason     string
}

func (p Problem) String() string {
	return fmt.Sprintf("sentence %d word %d: %s", p.SentenceID, p.WordID, p.Reason)
}

// Check reports rows that keep a sentence from forming a tree rooted at
// Root: duplicated word ids, heads pointing outside the sentence, and
// cycles. Scoring never rejects such input; the problems are advisory.
func (t Table) Check() []Problem {
	var problems []Problem
	for _, sent := range t.Sentences() {
		heads := make(map[int]int, len(sent))
		for _, tok := range sent {
			if _, dup := heads[tok.WordID]; dup {
				problems = append(problems, Problem{tok.SentenceID, tok.WordID, "duplicate word id"})
				continue
			}
			heads[tok.WordID] = tok.Head
		}
		for _, tok := range sent {
			if tok.Head != Root {
				if _, ok := heads[tok.Head]; !ok {
					problems = append(problems, Problem{tok.SentenceID, tok.WordID, fmt.Sprintf("head %d not in sentence", tok.Head)})
				}
			}
		}
		problems = append(problems, cycles(sent, heads)...)
	}
	return problems
}

func cycles(sent []Token, heads map[int]int) []Problem {
	var problems []Problem
	reported := make(map[int]bool)
	for _, tok := range sent {
		if reported[tok.WordID] {
			continue
		}
		visited := map[int]bool{tok.WordID: true}
		cur := tok.WordID
		for {
			next, ok := heads[cur]
			if !ok || next == Root {
				break
			}
			if visited[next] {
				if next == tok.WordID {
					problems = append(problems, Problem{tok.SentenceID, tok.WordID, "token is on a head cycle"})
					reported[tok.WordID] = true
				}
				break
			}
			visited[next] = true
			cur = next
		}
	}
	return problems
}
