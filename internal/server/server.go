// Package server exposes the scoring engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jamesainslie/go-parseval"
	"github.com/jamesainslie/go-parseval/dependency"
	"github.com/jamesainslie/go-parseval/internal/telemetry"
	"github.com/jamesainslie/go-parseval/tree"
)

const (
	requestIDKey    = "request_id"
	maxRequestBytes = 32 << 20
	shutdownTimeout = 10 * time.Second
)

// DependencyRequest carries two token-aligned dependency tables.
type DependencyRequest struct {
	Gold      []dependency.Token `json:"gold" binding:"required,min=1,dive"`
	Predicted []dependency.Token `json:"predicted" binding:"required,dive"`
	// Label restricts scoring to one relation.
	Label string `json:"label" binding:"omitempty,max=64"`
}

// ConstituencyRequest carries gold and predicted trees in bracket
// notation, paired by index.
type ConstituencyRequest struct {
	Gold      []string `json:"gold" binding:"required,min=1,dive,required"`
	Predicted []string `json:"predicted" binding:"required,dive,required"`
	// Clean strips TOP wrappers and empty tags from predicted trees.
	Clean bool `json:"clean"`
}

// ScoreResponse wraps one score record.
type ScoreResponse struct {
	Kind      string          `json:"kind"`
	Score     parseval.Record `json:"score"`
	RequestID string          `json:"request_id,omitempty"`
}

// Server scores parses sent over HTTP.
type Server struct {
	logger  *slog.Logger
	metrics *telemetry.Metrics
	workers int
}

// New creates a Server. A nil metrics disables /metrics.
func New(logger *slog.Logger, metrics *telemetry.Metrics, workers int) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{logger: logger, metrics: metrics, workers: workers}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestSizeLimit(maxRequestBytes))
	s.SetupRoutes(router)
	return router
}

// SetupRoutes registers the scoring routes on router.
func (s *Server) SetupRoutes(router *gin.Engine) {
	router.GET("/healthz", s.HealthHandler)
	if s.metrics != nil {
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	v1 := router.Group("/v1/score")
	{
		v1.POST("/dependencies", s.ScoreDependenciesHandler)
		v1.POST("/constituencies", s.ScoreConstituenciesHandler)
	}
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// HealthHandler reports liveness.
func (s *Server) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ScoreDependenciesHandler scores a DependencyRequest.
func (s *Server) ScoreDependenciesHandler(c *gin.Context) {
	var req DependencyRequest
	if !bind(c, &req) {
		return
	}

	ev := s.evaluator(parseval.WithLabelFilter(req.Label))
	rec, err := ev.ScoreDependencies(c.Request.Context(), req.Predicted, req.Gold)
	if err != nil {
		sendScoringError(c, err)
		return
	}
	respond(c, rec)
}

// ScoreConstituenciesHandler scores a ConstituencyRequest.
func (s *Server) ScoreConstituenciesHandler(c *gin.Context) {
	var req ConstituencyRequest
	if !bind(c, &req) {
		return
	}

	gold, err := tree.ParseAll(req.Gold)
	if err != nil {
		sendScoringError(c, fmt.Errorf("gold %w", err))
		return
	}
	pred, err := tree.ParseAll(req.Predicted)
	if err != nil {
		sendScoringError(c, fmt.Errorf("predicted %w", err))
		return
	}
	if req.Clean {
		for i, t := range pred {
			pred[i] = tree.Clean(t)
		}
	}

	rec, err := s.evaluator().ScoreConstituencies(c.Request.Context(), pred, gold)
	if err != nil {
		sendScoringError(c, err)
		return
	}
	respond(c, rec)
}

func (s *Server) evaluator(opts ...parseval.Option) *parseval.Evaluator {
	base := []parseval.Option{
		parseval.WithLogger(s.logger),
		parseval.WithWorkers(s.workers),
	}
	if s.metrics != nil {
		base = append(base, parseval.WithMetrics(s.metrics))
	}
	return parseval.New(append(base, opts...)...)
}

func bind(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]ErrorDetail, len(verrs))
		for i, fe := range verrs {
			details[i] = ErrorDetail{Field: fe.Namespace(), Message: "failed " + fe.Tag()}
		}
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "request validation failed", details...)
		return false
	}
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, err.Error())
	return false
}

func respond(c *gin.Context, rec parseval.Record) {
	id, _ := c.Get(requestIDKey)
	resp := ScoreResponse{Kind: rec.Kind(), Score: rec}
	resp.RequestID, _ = id.(string)
	c.JSON(http.StatusOK, resp)
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func requestSizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
