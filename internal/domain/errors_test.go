package domain_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kaleido-ai/kaleido/internal/domain"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.ErrorKind
	}{
		{name: "nil error", err: nil, want: domain.ErrorKindNone},
		{
			name: "classified provider error",
			err:  domain.NewProviderError(domain.ErrorKindRateLimited, "openai", errors.New("429")),
			want: domain.ErrorKindRateLimited,
		},
		{
			name: "wrapped provider error",
			err:  fmt.Errorf("call failed: %w", domain.NewProviderError(domain.ErrorKindAuth, "anthropic", nil)),
			want: domain.ErrorKindAuth,
		},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: domain.ErrorKindTimeout},
		{name: "cancellation", err: context.Canceled, want: domain.ErrorKindTimeout},
		{name: "empty prompt", err: domain.ErrEmptyPrompt, want: domain.ErrorKindInvalidInput},
		{name: "anything else", err: errors.New("connection refused"), want: domain.ErrorKindUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, domain.KindOf(tt.err))
		})
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   domain.ErrorKind
	}{
		{http.StatusUnauthorized, domain.ErrorKindAuth},
		{http.StatusForbidden, domain.ErrorKindAuth},
		{http.StatusTooManyRequests, domain.ErrorKindRateLimited},
		{http.StatusRequestTimeout, domain.ErrorKindTimeout},
		{http.StatusGatewayTimeout, domain.ErrorKindTimeout},
		{http.StatusBadRequest, domain.ErrorKindInvalidInput},
		{http.StatusNotFound, domain.ErrorKindInvalidInput},
		{http.StatusInternalServerError, domain.ErrorKindUnavailable},
		{http.StatusServiceUnavailable, domain.ErrorKindUnavailable},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			require.Equal(t, tt.want, domain.ClassifyStatus(tt.status))
		})
	}
}

func TestProviderError_Unwrap(t *testing.T) {
	inner := errors.New("socket closed")
	err := domain.NewProviderError(domain.ErrorKindUnavailable, "huggingface", inner)

	require.ErrorIs(t, err, inner)
	require.Contains(t, err.Error(), "huggingface")
	require.Contains(t, err.Error(), string(domain.ErrorKindUnavailable))
}
