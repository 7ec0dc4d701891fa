package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies provider failures. The orchestrators switch on the
// kind rather than on error values so every failure path stays visible in
// the signatures.
type ErrorKind string

const (
	// ErrorKindNone is the zero kind; the call succeeded.
	ErrorKindNone ErrorKind = ""

	// ErrorKindAuth means bad or missing credentials. Never retried.
	ErrorKindAuth ErrorKind = "auth_error"

	// ErrorKindRateLimited means the provider throttled the call.
	ErrorKindRateLimited ErrorKind = "rate_limited"

	// ErrorKindTimeout means the call exceeded its deadline or was cancelled.
	ErrorKindTimeout ErrorKind = "timeout"

	// ErrorKindInvalidInput means the request was rejected before or by the
	// provider as malformed (empty question, bad image, bad URL).
	ErrorKindInvalidInput ErrorKind = "invalid_input"

	// ErrorKindUnavailable means the provider is not configured, disabled,
	// or the remote service itself is down.
	ErrorKindUnavailable ErrorKind = "provider_unavailable"
)

// Sentinel errors for chain construction and input validation.
var (
	ErrEmptyChain        = errors.New("fallback chain is empty")
	ErrInvalidChainEntry = errors.New("fallback chain entry is invalid")
	ErrNoTextFallback    = errors.New("fallback chain must end with a text-only entry")
	ErrEmptyPrompt       = errors.New("prompt cannot be empty")
	ErrNoTargets         = errors.New("no fan-out targets selected")
)

// ProviderError wraps a provider failure with its classification.
type ProviderError struct {
	Kind     ErrorKind
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError builds a classified provider failure.
func NewProviderError(kind ErrorKind, provider string, err error) *ProviderError {
	return &ProviderError{Kind: kind, Provider: provider, Err: err}
}

// KindOf extracts the failure classification from an error. Context
// cancellation and deadline expiry count as timeouts; anything unclassified
// is treated as the provider being unavailable.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorKindTimeout
	}
	if errors.Is(err, ErrEmptyPrompt) {
		return ErrorKindInvalidInput
	}
	return ErrorKindUnavailable
}

// ClassifyStatus maps an HTTP status code from a provider API to a kind.
func ClassifyStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorKindAuth
	case status == http.StatusTooManyRequests:
		return ErrorKindRateLimited
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return ErrorKindTimeout
	case status >= 400 && status < 500:
		return ErrorKindInvalidInput
	default:
		return ErrorKindUnavailable
	}
}
