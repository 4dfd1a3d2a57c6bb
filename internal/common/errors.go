// File: internal/common/errors.go
package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies every failure the gateway can report to its caller.
type Kind string

const (
	KindValidation        Kind = "VALIDATION_ERROR"
	KindUpstreamHTTP      Kind = "UPSTREAM_HTTP_ERROR"
	KindUpstreamMalformed Kind = "UPSTREAM_MALFORMED_RESPONSE"
	KindUpstreamHTML      Kind = "UPSTREAM_HTML_ERROR"
	KindTransport         Kind = "TRANSPORT_FAILURE"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindRateLimited       Kind = "RATE_LIMITED"
	KindNotFound          Kind = "NOT_FOUND"
	KindMethodNotAllowed  Kind = "METHOD_NOT_ALLOWED"
	KindInternal          Kind = "INTERNAL_SERVER_ERROR"
)

// APIError represents a failure produced by the gateway itself.
type APIError struct {
	StatusCode int         `json:"-"`
	Code       Kind        `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError: StatusCode=%d, Code=%s, Message=%s", e.StatusCode, e.Code, e.Message)
}

func NewAPIError(statusCode int, code Kind, message string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Message: message}
}

// WithDetails returns a copy carrying details; the package level errors stay untouched.
func (e *APIError) WithDetails(details interface{}) *APIError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithMessage returns a copy with a different caller-facing message.
func (e *APIError) WithMessage(message string) *APIError {
	cp := *e
	cp.Message = message
	return &cp
}

// Response converts the error into the caller contract.
func (e *APIError) Response() NormalizedResponse {
	resp := NormalizedResponse{
		Success: false,
		Message: e.Message,
		Status:  e.StatusCode,
	}
	if e.Details != nil {
		if raw, err := json.Marshal(e.Details); err == nil {
			resp.Data = raw
		}
	}
	return resp
}

var (
	ErrBadRequest       = NewAPIError(http.StatusBadRequest, KindValidation, "The request is invalid.")
	ErrUnauthorized     = NewAPIError(http.StatusUnauthorized, KindUnauthorized, "Authentication required")
	ErrSessionEnded     = NewAPIError(http.StatusUnauthorized, KindUnauthorized, "Session has ended. Please log in again.")
	ErrNotFound         = NewAPIError(http.StatusNotFound, KindNotFound, "The requested endpoint does not exist.")
	ErrMethodNotAllowed = NewAPIError(http.StatusMethodNotAllowed, KindMethodNotAllowed, "The method is not allowed for the requested URL.")
	ErrTooManyRequests  = NewAPIError(http.StatusTooManyRequests, KindRateLimited, "Too many requests. Please try again later.")
	ErrInternalServer   = NewAPIError(http.StatusInternalServerError, KindInternal, "An unexpected error occurred on the server.")
)

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
