package parsing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("parsing: pool is closed")

// Pool hands out parser instances for concurrent use. Parsers wrapping a
// model or an external process are rarely safe to share, so each goroutine
// takes its own instance.
type Pool[P any] struct {
	parsers chan P
	all     []P
	size    int
	mu      sync.Mutex
	closed  bool
}

// NewPool creates a pool over the given parser instances.
func NewPool[P any](parsers ...P) (*Pool[P], error) {
	if len(parsers) == 0 {
		return nil, errors.New("parsing: pool needs at least one parser")
	}

	pool := &Pool[P]{
		parsers: make(chan P, len(parsers)),
		all:     append([]P(nil), parsers...),
		size:    len(parsers),
	}
	for _, p := range parsers {
		pool.parsers <- p
	}
	return pool, nil
}

// NewPoolFunc creates a pool of size instances built by newParser.
func NewPoolFunc[P any](size int, newParser func() (P, error)) (*Pool[P], error) {
	if size <= 0 {
		size = 1
	}

	parsers := make([]P, 0, size)
	for i := 0; i < size; i++ {
		p, err := newParser()
		if err != nil {
			for _, created := range parsers {
				closeParser(created) // Best-effort cleanup; original error takes precedence
			}
			return nil, fmt.Errorf("creating parser %d: %w", i, err)
		}
		parsers = append(parsers, p)
	}
	return NewPool(parsers...)
}

// Acquire gets a parser from the pool, blocking if none is available.
// Respects context cancellation. Returns ErrPoolClosed if the pool is
// closed.
func (p *Pool[P]) Acquire(ctx context.Context) (P, error) {
	var zero P
	select {
	case parser, ok := <-p.parsers:
		if !ok {
			return zero, ErrPoolClosed
		}
		return parser, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Release returns a parser to the pool.
func (p *Pool[P]) Release(parser P) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		closeParser(parser) // Pool closed; clean up parser
		return
	}

	select {
	case p.parsers <- parser:
	default:
		closeParser(parser) // Pool full; clean up excess parser
	}
}

// Close closes every idle parser that implements io.Closer.
func (p *Pool[P]) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.parsers)
	p.mu.Unlock()

	var errs []error
	for parser := range p.parsers {
		if c, ok := any(parser).(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Parsers returns every instance the pool was built with, idle or not.
// Callers may inspect them but must Acquire before use.
func (p *Pool[P]) Parsers() []P {
	return append([]P(nil), p.all...)
}

// Size returns the pool size.
func (p *Pool[P]) Size() int {
	return p.size
}

func closeParser(parser any) {
	if c, ok := parser.(io.Closer); ok {
		_ = c.Close()
	}
}
