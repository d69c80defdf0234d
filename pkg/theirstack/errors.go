package theirstack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Error kinds, matched with errors.Is
var (
	ErrNetwork   = errors.New("network error")
	ErrAuth      = errors.New("authorization error")
	ErrRateLimit = errors.New("rate limited")
	ErrProvider  = errors.New("provider error")
	ErrParse     = errors.New("undecodable response")
)

// ConfigError is returned by NewClient when the client cannot be built
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("theirstack: invalid configuration: %s %s", e.Field, e.Reason)
}

// Error is a classified request failure
type Error struct {
	Kind       error
	StatusCode int
	// Body holds the provider response verbatim, capped at maxErrorBody bytes
	Body  string
	Cause error
}

func (e *Error) Error() string {
	msg := "theirstack: " + e.Kind.Error()
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (%d)", e.StatusCode)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Retryable is true for failures a later identical call may not repeat:
// network errors other than caller cancellation, rate limits and 5xx replies.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case ErrNetwork:
		return !errors.Is(e.Cause, context.Canceled)
	case ErrRateLimit:
		return true
	case ErrProvider:
		return e.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}

// LogFields exposes diagnostic context as logger key/values
func (e *Error) LogFields() []any {
	return []any{
		"kind", e.Kind.Error(),
		"status", e.StatusCode,
		"body", truncate(e.Body, 512),
	}
}

func classifyStatus(status int, body string) *Error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Error{Kind: ErrAuth, StatusCode: status, Body: body}
	case status == http.StatusTooManyRequests:
		return &Error{Kind: ErrRateLimit, StatusCode: status, Body: body}
	default:
		return &Error{Kind: ErrProvider, StatusCode: status, Body: body}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
