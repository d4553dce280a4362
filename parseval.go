package parseval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-parseval/dependency"
	"github.com/jamesainslie/go-parseval/parsing"
	"github.com/jamesainslie/go-parseval/tree"
)

// Evaluator scores predicted parses against gold parses. It holds only
// configuration, so one Evaluator may serve concurrent calls.
type Evaluator struct {
	cfg config
}

// New creates an Evaluator.
func New(opts ...Option) *Evaluator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Evaluator{cfg: cfg}
}

// Parseval scores predicted trees against gold trees, pairing them by
// sentence index.
func Parseval(pred, gold []*tree.Node) (ConstituencyScore, error) {
	return scoreTrees(context.Background(), pred, gold, 1)
}

// ScoreDependencies scores a predicted dependency table against gold. With
// no label filter configured the result is a DependencyScore; with one it
// is a LabelScore.
func (e *Evaluator) ScoreDependencies(ctx context.Context, pred, gold dependency.Table) (rec Record, err error) {
	_, log, done := e.begin(ctx, "ScoreDependencies", e.dependencyKind(), gold.SentenceCount(),
		attribute.Int("tokens.predicted", len(pred)),
		attribute.Int("tokens.gold", len(gold)),
	)
	defer func() { done(err) }()

	return e.scoreDependencies(log, pred, gold)
}

// ScoreConstituencies scores predicted trees against gold trees, pairing
// them by sentence index. Sentences are scored concurrently up to the
// configured worker count; the result does not depend on it.
func (e *Evaluator) ScoreConstituencies(ctx context.Context, pred, gold []*tree.Node) (rec ConstituencyScore, err error) {
	ctx, log, done := e.begin(ctx, "ScoreConstituencies", "constituency", len(gold),
		attribute.Int("sentences.predicted", len(pred)),
	)
	defer func() { done(err) }()

	return e.scoreConstituencies(ctx, log, pred, gold)
}

// CheckInputs reports whether sentences match the configured pretagged
// mode. A mismatch wraps both ErrConfiguration and parsing.ErrInputMode.
func (e *Evaluator) CheckInputs(sentences []parsing.Input) error {
	if err := parsing.CheckInputs(e.cfg.pretagged, sentences); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return nil
}

// EvaluateDependencies parses sentences with parsers from pool, persists
// the predictions when a sink is configured, and scores them against gold.
// Inputs and parsers must match the configured pretagged mode; a mismatch
// returns ErrConfiguration before anything is parsed.
func (e *Evaluator) EvaluateDependencies(ctx context.Context, pool *parsing.Pool[parsing.DependencyParser], sentences []parsing.Input, gold dependency.Table) (rec Record, err error) {
	ctx, log, done := e.begin(ctx, "EvaluateDependencies", e.dependencyKind(), gold.SentenceCount(),
		attribute.Int("sentences.input", len(sentences)),
		attribute.Bool("parseval.pretagged", e.cfg.pretagged),
	)
	defer func() { done(err) }()

	if err := e.CheckInputs(sentences); err != nil {
		return nil, err
	}

	log.Info("parsing sentences", "sentences", len(sentences), "pretagged", e.cfg.pretagged)
	pred, err := parsing.PredictDependencies(ctx, pool, e.cfg.pretagged, sentences)
	if err != nil {
		if errors.Is(err, parsing.ErrInputMode) {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		return nil, fmt.Errorf("predicting dependencies: %w", err)
	}
	log.Info("sentences parsed", "tokens", len(pred))

	if e.cfg.sink != nil {
		if err := e.cfg.sink.WriteDependencies(ctx, pred); err != nil {
			return nil, fmt.Errorf("saving predictions: %w", err)
		}
	}

	return e.scoreDependencies(log, pred, gold)
}

// EvaluateConstituencies parses sentences with parsers from pool, cleans
// the trees unless disabled, persists them when a sink is configured, and
// scores them against gold.
func (e *Evaluator) EvaluateConstituencies(ctx context.Context, pool *parsing.Pool[parsing.ConstituencyParser], sentences []string, gold []*tree.Node) (rec ConstituencyScore, err error) {
	ctx, log, done := e.begin(ctx, "EvaluateConstituencies", "constituency", len(gold),
		attribute.Int("sentences.input", len(sentences)),
	)
	defer func() { done(err) }()

	if len(sentences) != len(gold) {
		return ConstituencyScore{}, &SizeMismatchError{What: "sentences", Predicted: len(sentences), Gold: len(gold)}
	}

	log.Info("parsing sentences", "sentences", len(sentences))
	pred, err := parsing.PredictTrees(ctx, pool, sentences, e.cfg.cleanTrees)
	if err != nil {
		return ConstituencyScore{}, fmt.Errorf("predicting trees: %w", err)
	}
	log.Info("sentences parsed")

	if e.cfg.sink != nil {
		if err := e.cfg.sink.WriteTrees(ctx, pred); err != nil {
			return ConstituencyScore{}, fmt.Errorf("saving predictions: %w", err)
		}
	}

	return e.scoreConstituencies(ctx, log, pred, gold)
}

func (e *Evaluator) dependencyKind() string {
	if e.cfg.filter.IsZero() {
		return "dependency"
	}
	return "label"
}

func (e *Evaluator) scoreDependencies(log *slog.Logger, pred, gold dependency.Table) (Record, error) {
	e.reportProblems(log, "predicted", pred)
	e.reportProblems(log, "gold", gold)

	log.Info("evaluating")
	if e.cfg.filter.IsZero() {
		s, err := AttachmentScores(pred, gold)
		if err != nil {
			return nil, err
		}
		log.Info("evaluation complete",
			"las", float64(s.LAS), "uas", float64(s.UAS), "ls", float64(s.LS))
		return s, nil
	}

	s, err := LabelScores(pred, gold, e.cfg.filter)
	if err != nil {
		return nil, err
	}
	log.Info("evaluation complete", "las_f1", s.LAS.F1, "ls_f1", s.LS.F1)
	return s, nil
}

func (e *Evaluator) scoreConstituencies(ctx context.Context, log *slog.Logger, pred, gold []*tree.Node) (ConstituencyScore, error) {
	log.Info("evaluating")
	s, err := scoreTrees(ctx, pred, gold, e.cfg.workers)
	if err != nil {
		return ConstituencyScore{}, err
	}
	if e.cfg.metrics != nil {
		e.cfg.metrics.ObserveCrossBrackets(s.CrossBrackets)
	}
	log.Info("evaluation complete",
		"labelled_f1", s.Labelled.F1, "unlabelled_f1", s.Unlabelled.F1, "cross_brackets", s.CrossBrackets)
	return s, nil
}

// begin opens a span and a run-scoped logger for one evaluation call. The
// returned func closes both and records metrics.
func (e *Evaluator) begin(ctx context.Context, op, kind string, sentences int, attrs ...attribute.KeyValue) (context.Context, *slog.Logger, func(error)) {
	runID := uuid.NewString()
	attrs = append(attrs,
		attribute.String("parseval.run_id", runID),
		attribute.String("parseval.kind", kind),
		attribute.Int("sentences.gold", sentences),
	)
	if !e.cfg.filter.IsZero() && kind != "constituency" {
		attrs = append(attrs, attribute.String("parseval.label", e.cfg.filter.Label()))
	}
	ctx, span := e.cfg.tracer.Start(ctx, "parseval."+op, trace.WithAttributes(attrs...))

	log := e.cfg.logger.With("run_id", runID, "kind", kind)
	if kind == "label" {
		log = log.With("label", e.cfg.filter.Label())
	}

	start := time.Now()
	return ctx, log, func(err error) {
		elapsed := time.Since(start)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.Error("evaluation failed", "error", err, "elapsed", elapsed)
		}
		if e.cfg.metrics != nil {
			e.cfg.metrics.ObserveEvaluation(kind, sentences, elapsed, err)
		}
		span.End()
	}
}

func (e *Evaluator) reportProblems(log *slog.Logger, side string, t dependency.Table) {
	problems := t.Check()
	if len(problems) == 0 {
		return
	}
	log.Warn("malformed dependency structure", "side", side, "problems", len(problems), "first", problems[0].String())
}

type sentenceSpans struct {
	predLabelled, goldLabelled     Set[Span]
	predUnlabelled, goldUnlabelled Set[Span]
	crosses                        int
}

// scoreTrees extracts spans and counts crossing brackets per sentence, up
// to workers sentences at a time, then scores the corpus-wide sets.
func scoreTrees(ctx context.Context, pred, gold []*tree.Node, workers int) (ConstituencyScore, error) {
	if len(pred) != len(gold) {
		return ConstituencyScore{}, &SizeMismatchError{What: "sentences", Predicted: len(pred), Gold: len(gold)}
	}

	per := make([]sentenceSpans, len(gold))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i := range gold {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := sentenceSpans{
				predLabelled:   ExtractSpans(pred[i], 0, true),
				goldLabelled:   ExtractSpans(gold[i], 0, true),
				predUnlabelled: ExtractSpans(pred[i], 0, false),
				goldUnlabelled: ExtractSpans(gold[i], 0, false),
			}
			s.crosses = CrossCount(s.goldLabelled, s.predLabelled)
			per[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ConstituencyScore{}, err
	}

	var (
		predLabelled   = make(Set[SentenceSpan])
		goldLabelled   = make(Set[SentenceSpan])
		predUnlabelled = make(Set[SentenceSpan])
		goldUnlabelled = make(Set[SentenceSpan])
		crosses        int
	)
	for i, s := range per {
		id := i + 1
		addSentence(predLabelled, id, s.predLabelled)
		addSentence(goldLabelled, id, s.goldLabelled)
		addSentence(predUnlabelled, id, s.predUnlabelled)
		addSentence(goldUnlabelled, id, s.goldUnlabelled)
		crosses += s.crosses
	}

	return ConstituencyScore{
		Labelled:      NewEvalScore(predLabelled, goldLabelled),
		Unlabelled:    NewEvalScore(predUnlabelled, goldUnlabelled),
		CrossBrackets: crosses,
	}, nil
}

func addSentence(dst Set[SentenceSpan], id int, spans Set[Span]) {
	for s := range spans {
		dst.Add(SentenceSpan{SentenceID: id, Span: s})
	}
}
