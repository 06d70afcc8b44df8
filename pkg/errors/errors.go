// Package errors defines the unified application error type and the
// HTTP error response helpers built on top of it.
package errors

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ForkFiesta/note-graph-service/internal/middleware"
	"github.com/ForkFiesta/note-graph-service/pkg/code"
)

// AppError carries a business code, message, optional details, the request
// trace ID and the original cause.
type AppError struct {
	// Code business error code
	Code int `json:"code"`
	// Message error message
	Message string `json:"message"`
	// Details optional error details
	Details []string `json:"details,omitempty"`
	// TraceID request trace ID
	TraceID string `json:"traceId,omitempty"`
	// Cause original error, not serialized
	Cause error `json:"-"`
	// Timestamp time the error occurred
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap supports errors.Is / errors.As chains.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates an AppError from a registered Code.
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:      c.Code(),
		Message:   c.Msg(),
		Details:   c.Details(),
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// NewAppErrorWithMessage creates an AppError with a custom message.
func NewAppErrorWithMessage(errorCode int, message string, cause error) *AppError {
	return &AppError{
		Code:      errorCode,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// WithTraceID sets the trace ID and returns the error for chaining.
func (e *AppError) WithTraceID(traceID string) *AppError {
	e.TraceID = traceID
	return e
}

// WithDetails sets details and returns the error for chaining.
func (e *AppError) WithDetails(details ...string) *AppError {
	e.Details = details
	return e
}

// ErrorResponse converts err to an AppError, attaches the request trace ID
// and writes the JSON response.
func ErrorResponse(c *gin.Context, err error) {
	traceID := middleware.GetTraceIDFromGin(c)

	var appErr *AppError
	if errors.As(err, &appErr) {
		appErr.TraceID = traceID
		c.JSON(http.StatusOK, appErr)
		return
	}

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		c.JSON(http.StatusOK, &AppError{
			Code:      codeErr.Code(),
			Message:   codeErr.Msg(),
			Details:   codeErr.Details(),
			TraceID:   traceID,
			Timestamp: time.Now(),
		})
		return
	}

	// Unknown error, answer with an internal error envelope.
	c.JSON(http.StatusOK, &AppError{
		Code:      code.ErrorServerInternal.Code(),
		Message:   code.ErrorServerInternal.Msg(),
		TraceID:   traceID,
		Timestamp: time.Now(),
	})
}

// IsAppError reports whether err is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts the AppError from an error chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
