package corpus

import (
	"context"
	"sync"

	"github.com/jamesainslie/go-parseval/dependency"
	"github.com/jamesainslie/go-parseval/tree"
)

// FileSink persists predictions to a Document file. Each write replaces
// the section it covers and keeps the others.
type FileSink struct {
	path string

	mu  sync.Mutex
	doc Document
}

// NewFileSink returns a sink writing to path. The format follows the
// extension and is checked on the first write.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the destination file.
func (s *FileSink) Path() string { return s.path }

// WriteDependencies saves predicted dependency rows.
func (s *FileSink) WriteDependencies(ctx context.Context, t dependency.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Dependencies = t
	return Save(s.path, &s.doc)
}

// WriteTrees saves predicted trees in bracket notation.
func (s *FileSink) WriteTrees(ctx context.Context, trees []*tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.SetTrees(trees)
	return Save(s.path, &s.doc)
}
