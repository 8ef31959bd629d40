package apierrors

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Kind categorizes a failed upstream call so tool handlers can report
// actionable failures without inspecting status codes themselves.
type Kind string

const (
	KindAuthentication Kind = "AUTHENTICATION"
	KindNotFound       Kind = "NOT_FOUND"
	KindRateLimit      Kind = "RATE_LIMIT"
	KindRemote         Kind = "REMOTE"
	KindNetwork        Kind = "NETWORK"
	KindTimeout        Kind = "TIMEOUT"
	KindResponse       Kind = "RESPONSE"
)

// APIError carries the classification of a failed Unusual Whales call
// together with whatever the remote side returned.
type APIError struct {
	Kind     Kind
	Endpoint string
	Message  string
	Status   int
	Body     string
	Err      error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s][%s] %s: %v", e.Kind, e.Endpoint, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s][%s] %s", e.Kind, e.Endpoint, e.Message)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.Err
}

// New creates an APIError for the given endpoint and kind.
func New(kind Kind, endpoint, message string) *APIError {
	return &APIError{Kind: kind, Endpoint: endpoint, Message: message}
}

// Wrap creates an APIError that wraps a lower-level cause.
func Wrap(kind Kind, endpoint, message string, err error) *APIError {
	return &APIError{Kind: kind, Endpoint: endpoint, Message: message, Err: err}
}

// IsKind checks if an error is an APIError with the specified kind
func IsKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}

	return false
}

// KindOf returns the kind of an APIError, or KindRemote for any other error.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindRemote
}

// LogError logs an API error with proper structure
func LogError(logger zerolog.Logger, err *APIError) {
	if err == nil {
		return
	}

	event := logger.Error().
		Str("error_kind", string(err.Kind)).
		Str("endpoint", err.Endpoint)

	if err.Status != 0 {
		event = event.Int("status", err.Status)
	}
	if err.Body != "" {
		event = event.Str("body", err.Body)
	}
	if err.Err != nil {
		event = event.Err(err.Err)
	}

	event.Msg(err.Message)
}
