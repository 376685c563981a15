package registry

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// FetchKind defines the normalized connector failure taxonomy
type FetchKind string

const (
	// FetchTimeout indicates the registry took too long to respond
	FetchTimeout FetchKind = "timeout"

	// FetchUnreachable indicates the registry is unavailable
	FetchUnreachable FetchKind = "unreachable"

	// FetchInvalidResponse indicates the registry returned malformed data
	FetchInvalidResponse FetchKind = "invalid_response"

	// FetchRateLimited indicates too many requests
	FetchRateLimited FetchKind = "rate_limited"
)

// FetchError wraps connector failures with normalized categorization so the
// aggregator can degrade per source instead of failing the whole snapshot.
type FetchError struct {
	Kind       FetchKind
	Source     Source
	Message    string
	Underlying error
	Retryable  bool // Whether this error is worth retrying
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("registry %s [%s]: %s: %v", e.Source, e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("registry %s [%s]: %s", e.Source, e.Kind, e.Message)
}

// Unwrap supports error unwrapping
func (e *FetchError) Unwrap() error {
	return e.Underlying
}

// NewFetchError creates a new normalized fetch error
func NewFetchError(kind FetchKind, source Source, message string, underlying error) *FetchError {
	retryable := kind == FetchTimeout ||
		kind == FetchUnreachable ||
		kind == FetchRateLimited

	return &FetchError{
		Kind:       kind,
		Source:     source,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

// IsRetryable checks if an error is worth retrying
func IsRetryable(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Retryable
	}
	return false
}

// KindOf extracts the failure kind from an error, classifying plain transport
// errors that escaped a connector without wrapping.
func KindOf(err error) FetchKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FetchTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FetchTimeout
	}
	return FetchUnreachable
}
