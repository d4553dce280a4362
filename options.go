package parseval

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/jamesainslie/go-parseval/dependency"
	"github.com/jamesainslie/go-parseval/tree"
)

const tracerName = "github.com/jamesainslie/go-parseval"

// PredictionSink persists raw parser output before it is scored.
type PredictionSink interface {
	WriteDependencies(ctx context.Context, t dependency.Table) error
	WriteTrees(ctx context.Context, trees []*tree.Node) error
}

// MetricsRecorder observes evaluation calls.
type MetricsRecorder interface {
	ObserveEvaluation(kind string, sentences int, elapsed time.Duration, err error)
	ObserveCrossBrackets(count int)
}

// Option configures an Evaluator.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	filter     LabelFilter
	pretagged  bool
	sink       PredictionSink
	workers    int
	metrics    MetricsRecorder
	tracer     trace.Tracer
	cleanTrees bool
}

func defaultConfig() config {
	return config{
		logger:     slog.Default(),
		workers:    runtime.NumCPU(),
		tracer:     otel.Tracer(tracerName),
		cleanTrees: true,
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLabelFilter restricts dependency evaluation to one relation label,
// matched case-insensitively. A label without ":" is coarse and matches
// every subtype.
func WithLabelFilter(label string) Option {
	return func(c *config) {
		c.filter = NewLabelFilter(label)
	}
}

// WithPretagged declares that dependency parsing runs on tagged input
// (default: false, raw text).
func WithPretagged(pretagged bool) Option {
	return func(c *config) {
		c.pretagged = pretagged
	}
}

// WithPredictionSink persists predictions before scoring.
func WithPredictionSink(s PredictionSink) Option {
	return func(c *config) {
		c.sink = s
	}
}

// WithWorkers bounds per-sentence concurrency (default: runtime.NumCPU()).
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithTracer sets the tracer (default: the global otel tracer provider).
func WithTracer(t trace.Tracer) Option {
	return func(c *config) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithTreeCleaning controls whether predicted trees go through tree.Clean
// before scoring (default: true).
func WithTreeCleaning(clean bool) Option {
	return func(c *config) {
		c.cleanTrees = clean
	}
}
