package corpus

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-parseval/dependency"
	"github.com/jamesainslie/go-parseval/parsing"
	"github.com/jamesainslie/go-parseval/tree"
)

func sampleDocument() *Document {
	return &Document{
		Sentences: []Sentence{
			{Text: "The dog barked"},
			{Text: "It ran", Words: []parsing.TaggedWord{
				{Text: "It", Lemma: "it", UPOS: "PRON", XPOS: "PRP"},
				{Text: "ran", Lemma: "run", UPOS: "VERB", XPOS: "VBD"},
			}},
		},
		Dependencies: dependency.Table{
			{SentenceID: 1, WordID: 1, Word: "The", Label: "det", Head: 2},
			{SentenceID: 1, WordID: 2, Word: "dog", Label: "nsubj", Head: 3},
			{SentenceID: 1, WordID: 3, Word: "barked", Label: "root", Head: 0},
		},
		Trees: []string{"(S (NP (DT The) (NN dog)) (VP (VBD barked)))"},
	}
}

func TestEncodeDecode(t *testing.T) {
	for _, f := range []Format{YAML, JSON} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, sampleDocument(), f))

			got, err := Decode(&buf, f)
			require.NoError(t, err)
			assert.Equal(t, sampleDocument(), got)
		})
	}
}

func TestDecode_JSON(t *testing.T) {
	const in = `{"dependencies": [{"sentence_id": 1, "word_id": 1, "word": "hi", "label": "root", "head": 0}],
		"trees": ["(S hi)"]}`

	doc, err := Decode(strings.NewReader(in), JSON)
	require.NoError(t, err)
	require.Len(t, doc.Dependencies, 1)
	assert.Equal(t, dependency.Token{SentenceID: 1, WordID: 1, Word: "hi", Label: "root", Head: 0}, doc.Dependencies[0])
	assert.Equal(t, []string{"(S hi)"}, doc.Trees)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader("{not json"), JSON)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("trees: [unterminated"), YAML)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(""), Format("xml"))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"gold.yaml", YAML, false},
		{"gold.YML", YAML, false},
		{"dir/pred.json", JSON, false},
		{"gold.conllu", "", true},
		{"gold", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrFormat, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"doc.yaml", "doc.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, sampleDocument()))

		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, sampleDocument(), got)
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
	assert.ErrorIs(t, Save(filepath.Join(dir, "doc.txt"), sampleDocument()), ErrFormat)
}

func TestDocument_Inputs(t *testing.T) {
	doc := sampleDocument()
	inputs := doc.Inputs()
	require.Len(t, inputs, 2)

	assert.Equal(t, parsing.Text("The dog barked"), inputs[0])
	assert.False(t, parsing.IsPretagged(inputs[0]))
	assert.True(t, parsing.IsPretagged(inputs[1]))
	assert.Equal(t, []string{"The dog barked", "It ran"}, doc.Texts())
}

func TestDocument_Trees(t *testing.T) {
	doc := sampleDocument()
	trees, err := doc.ParseTrees()
	require.NoError(t, err)
	require.Len(t, trees, 1)
	assert.Equal(t, 3, trees[0].LeafCount())

	var out Document
	out.SetTrees(trees)
	assert.Equal(t, doc.Trees, out.Trees)

	doc.Trees = append(doc.Trees, "(S (broken")
	_, err = doc.ParseTrees()
	assert.ErrorIs(t, err, tree.ErrSyntax)
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pred.yaml")
	sink := NewFileSink(path)
	ctx := context.Background()

	deps := sampleDocument().Dependencies
	require.NoError(t, sink.WriteDependencies(ctx, deps))
	require.NoError(t, sink.WriteTrees(ctx, []*tree.Node{tree.MustParse("(S (NP a) (VP b))")}))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, deps, doc.Dependencies)
	assert.Equal(t, []string{"(S (NP a) (VP b))"}, doc.Trees)
}

func TestFileSink_Canceled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pred.json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFileSink(path).WriteTrees(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
