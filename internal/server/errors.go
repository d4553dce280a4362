package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jamesainslie/go-parseval"
	"github.com/jamesainslie/go-parseval/tree"
)

// ErrorCode is a machine-readable error class.
type ErrorCode string

const (
	ErrorCodeInvalidJSON      ErrorCode = "INVALID_JSON"
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeInvalidTree      ErrorCode = "INVALID_TREE"
	ErrorCodeConfiguration    ErrorCode = "INVALID_CONFIGURATION"
	ErrorCodeSizeMismatch     ErrorCode = "SIZE_MISMATCH"
	ErrorCodeEmptyFilter      ErrorCode = "EMPTY_FILTER_RESULT"
	ErrorCodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// ErrorDetail adds context to an error.
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// APIError is the body of every error response.
type APIError struct {
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// SendError writes an error response.
func SendError(c *gin.Context, status int, code ErrorCode, message string, details ...ErrorDetail) {
	resp := APIError{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
	if id, ok := c.Get(requestIDKey); ok {
		if s, ok := id.(string); ok {
			resp.RequestID = s
		}
	}
	c.JSON(status, resp)
}

// sendScoringError maps an evaluation error to a status: configuration and
// syntax problems are the caller's request (400), scoring refusals are
// well-formed but unprocessable (422).
func sendScoringError(c *gin.Context, err error) {
	var ef *parseval.EmptyFilterError
	switch {
	case errors.Is(err, tree.ErrSyntax):
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidTree, err.Error())
	case errors.Is(err, parseval.ErrConfiguration):
		SendError(c, http.StatusBadRequest, ErrorCodeConfiguration, err.Error())
	case errors.As(err, &ef):
		var details []ErrorDetail
		if ef.Suggestion != "" {
			details = append(details, ErrorDetail{Field: "label", Message: "did you mean " + ef.Suggestion})
		}
		SendError(c, http.StatusUnprocessableEntity, ErrorCodeEmptyFilter, err.Error(), details...)
	case errors.Is(err, parseval.ErrSizeMismatch):
		SendError(c, http.StatusUnprocessableEntity, ErrorCodeSizeMismatch, err.Error())
	default:
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, "scoring failed")
	}
}
