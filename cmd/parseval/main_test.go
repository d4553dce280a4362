package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-parseval"
	"github.com/jamesainslie/go-parseval/corpus"
	"github.com/jamesainslie/go-parseval/dependency"
	"github.com/jamesainslie/go-parseval/internal/config"
	"github.com/jamesainslie/go-parseval/parsing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeDoc(t *testing.T, dir, name string, doc *corpus.Document) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, corpus.Save(path, doc))
	return path
}

func deps(labels ...string) dependency.Table {
	t := make(dependency.Table, len(labels))
	for i, l := range labels {
		head := 0
		if l != "root" {
			head = 2
		}
		t[i] = dependency.Token{SentenceID: 1, WordID: i + 1, Label: l, Head: head}
	}
	return t
}

func TestScoreDeps(t *testing.T) {
	dir := t.TempDir()
	gold := writeDoc(t, dir, "gold.yaml", &corpus.Document{Dependencies: deps("nsubj", "root", "obj")})
	pred := writeDoc(t, dir, "pred.json", &corpus.Document{Dependencies: deps("nsubj", "root", "iobj")})

	out, err := run(t, "score", "deps", "-g", gold, "-p", pred, "-o", "json")
	require.NoError(t, err)

	var got map[string]float64
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	assert.InDelta(t, 2.0/3, got["las"], 1e-9)
	assert.Equal(t, 1.0, got["uas"])

	out, err = run(t, "score", "deps", "-g", gold, "-p", pred, "--label", "obj")
	require.NoError(t, err)
	assert.Contains(t, out, "obj - specific evaluation")

	_, err = run(t, "score", "deps", "-g", gold, "-p", pred, "--label", "ob")
	assert.ErrorContains(t, err, `did you mean "obj"`)
}

func TestScoreDeps_Pretagged(t *testing.T) {
	dir := t.TempDir()
	raw := writeDoc(t, dir, "raw.yaml", &corpus.Document{
		Sentences:    []corpus.Sentence{{Text: "a b c"}},
		Dependencies: deps("nsubj", "root", "obj"),
	})
	tagged := writeDoc(t, dir, "tagged.yaml", &corpus.Document{
		Sentences: []corpus.Sentence{{Words: []parsing.TaggedWord{
			{Text: "a", UPOS: "PRON"}, {Text: "b", UPOS: "VERB"}, {Text: "c", UPOS: "NOUN"},
		}}},
		Dependencies: deps("nsubj", "root", "obj"),
	})
	pred := writeDoc(t, dir, "pred.yaml", &corpus.Document{Dependencies: deps("nsubj", "root", "obj")})

	_, err := run(t, "score", "deps", "--pretagged", "-g", raw, "-p", pred)
	assert.ErrorIs(t, err, parseval.ErrConfiguration)
	assert.ErrorIs(t, err, parsing.ErrInputMode)

	_, err = run(t, "score", "deps", "-g", tagged, "-p", pred)
	assert.ErrorIs(t, err, parsing.ErrInputMode)

	_, err = run(t, "score", "deps", "--pretagged", "-g", tagged, "-p", pred, "-o", "json")
	require.NoError(t, err)

	cfgPath := filepath.Join(dir, "run.yaml")
	writeFile(t, cfgPath, "kind: dependency\npretagged: true\n")
	_, err = run(t, "-c", cfgPath, "score", "deps", "-g", raw, "-p", pred)
	assert.ErrorIs(t, err, parsing.ErrInputMode)

	writeFile(t, cfgPath, "kind: constituency\npretagged: true\n")
	_, err = run(t, "-c", cfgPath, "score", "const", "-g", raw, "-p", pred)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestScoreConst(t *testing.T) {
	dir := t.TempDir()
	gold := writeDoc(t, dir, "gold.yaml", &corpus.Document{Trees: []string{"(S (NP a) (VP b))"}})
	pred := writeDoc(t, dir, "pred.yaml", &corpus.Document{Trees: []string{"(TOP (S (NP (_ a)) (VP b)))"}})
	save := filepath.Join(dir, "saved.yaml")

	out, err := run(t, "score", "const", "-g", gold, "-p", pred, "--save", save, "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "cross_brackets: 0")
	assert.Contains(t, out, "f1: 1")

	saved, err := corpus.Load(save)
	require.NoError(t, err)
	assert.Equal(t, []string{"(S (NP a) (VP b))"}, saved.Trees)
}

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	gold := writeDoc(t, dir, "gold.yaml", &corpus.Document{Dependencies: deps("nsubj", "root", "obj")})
	good := writeDoc(t, dir, "good.yaml", &corpus.Document{Dependencies: deps("nsubj", "root", "obj")})
	bad := writeDoc(t, dir, "bad.yaml", &corpus.Document{Dependencies: deps("obj", "root", "nsubj")})

	out, err := run(t, "compare", "-g", gold, "-p", "bad="+bad, "-p", "good="+good)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "good"), strings.Index(out, "bad"), out)

	_, err = run(t, "compare", "-g", gold, "-p", "nopath")
	assert.Error(t, err)

	_, err = run(t, "compare", "-g", gold, "-p", "good="+good, "--kind", "semantic")
	assert.ErrorContains(t, err, `unknown kind "semantic"`)
}

func TestCompare_KindFromConfig(t *testing.T) {
	dir := t.TempDir()
	gold := writeDoc(t, dir, "gold.yaml", &corpus.Document{Trees: []string{"(S (NP a b) (VP c))"}})
	good := writeDoc(t, dir, "good.yaml", &corpus.Document{Trees: []string{"(S (NP a b) (VP c))"}})
	bad := writeDoc(t, dir, "bad.yaml", &corpus.Document{Trees: []string{"(S a (X b c))"}})

	cfgPath := filepath.Join(dir, "run.yaml")
	writeFile(t, cfgPath, "kind: constituency\n")

	out, err := run(t, "-c", cfgPath, "compare", "-g", gold, "-p", "bad="+bad, "-p", "good="+good)
	require.NoError(t, err)
	assert.Contains(t, out, "Labelled F1")
	assert.Less(t, strings.Index(out, "good"), strings.Index(out, "bad"), out)
}

func TestTree(t *testing.T) {
	out, err := run(t, "tree", "--clean", "--spans", "(TOP (S (NP (_ a) b) (VP c)))")
	require.NoError(t, err)
	assert.Equal(t, "(S (NP a b) (VP c))\n  (0,3,S) (0,2,NP) (2,3,VP)\n", out)

	_, err = run(t, "tree", "(S (NP a)")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	gold := writeDoc(t, dir, "gold.yaml", &corpus.Document{Trees: []string{"(S (NP a b) (VP c))"}})
	pred := writeDoc(t, dir, "pred.yaml", &corpus.Document{Trees: []string{"(S a (X b c))"}})

	cfgPath := filepath.Join(dir, "run.yaml")
	writeFile(t, cfgPath, "kind: constituency\ngold: "+gold+"\npredictions:\n  - name: x\n    path: "+pred+"\n")

	out, err := run(t, "-c", cfgPath, "score", "const", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"cross_brackets": 1`)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
