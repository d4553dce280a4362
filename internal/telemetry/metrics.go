// Package telemetry provides the Prometheus recorder and slog construction
// used by the parseval commands and server.
package telemetry

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jamesainslie/go-parseval"
)

// Outcome label values.
const (
	OutcomeSuccess       = "success"
	OutcomeConfiguration = "configuration"
	OutcomeSizeMismatch  = "size_mismatch"
	OutcomeEmptyFilter   = "empty_filter"
	OutcomeCanceled      = "canceled"
	OutcomeError         = "error"
)

// Metrics records evaluation calls in Prometheus. It implements
// parseval.MetricsRecorder.
type Metrics struct {
	registry      *prometheus.Registry
	evaluations   *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	sentences     *prometheus.CounterVec
	crossBrackets prometheus.Histogram
}

// NewMetrics registers the parseval metrics in a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parseval_evaluations_total",
				Help: "Evaluation calls by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "parseval_evaluation_duration_seconds",
				Help:    "Time spent scoring one corpus.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		sentences: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parseval_sentences_scored_total",
				Help: "Gold sentences covered by successful evaluations.",
			},
			[]string{"kind"},
		),
		crossBrackets: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "parseval_cross_brackets",
				Help:    "Corpus cross-bracket totals per constituency evaluation.",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
	}
}

// ObserveEvaluation records one evaluation call.
func (m *Metrics) ObserveEvaluation(kind string, sentences int, elapsed time.Duration, err error) {
	m.evaluations.WithLabelValues(kind, Outcome(err)).Inc()
	m.duration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if err == nil {
		m.sentences.WithLabelValues(kind).Add(float64(sentences))
	}
}

// ObserveCrossBrackets records the cross-bracket total of one corpus.
func (m *Metrics) ObserveCrossBrackets(count int) {
	m.crossBrackets.Observe(float64(count))
}

// Registry returns the registry holding the parseval metrics.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Outcome classifies an evaluation error for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, parseval.ErrConfiguration):
		return OutcomeConfiguration
	case errors.Is(err, parseval.ErrSizeMismatch):
		return OutcomeSizeMismatch
	case errors.Is(err, parseval.ErrEmptyFilterResult):
		return OutcomeEmptyFilter
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}
