// Package echo provides a deterministic in-memory provider that answers
// by describing its input. It implements the domain.Provider interface
// without external calls, for local development and tests.
package echo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kaleido-ai/kaleido/internal/domain"
)

const (
	providerName = "echo"
	modelName    = "echo-1"
)

// Provider implements the domain.Provider interface for echo testing.
type Provider struct {
	name string
}

// NewProvider creates a new echo provider. No configuration is required;
// it operates entirely in-memory.
func NewProvider() *Provider {
	return &Provider{name: providerName}
}

// Generate returns a deterministic answer built from the request.
func (p *Provider) Generate(_ context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.Model != modelName {
		return nil, domain.NewProviderError(domain.ErrorKindInvalidInput, p.name,
			fmt.Errorf("model %s is not supported by echo provider", req.Model))
	}

	answer := req.Prompt
	if req.HasImage() {
		answer = fmt.Sprintf("[image %s, %d bytes base64] %s", req.ImageType, len(req.ImageBase64), req.Prompt)
	}

	promptTokens := countTokens(req.Prompt)

	return &domain.GenerationResult{
		Provider:         p.name,
		Model:            modelName,
		Answer:           answer,
		PromptTokens:     promptTokens,
		CompletionTokens: countTokens(answer),
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// SupportedModels lists the models this provider can serve.
func (p *Provider) SupportedModels(_ context.Context) []string {
	return []string{modelName}
}

// countTokens performs simple word-based token counting.
func countTokens(content string) int {
	if content == "" {
		return 0
	}
	return len(strings.Fields(content))
}
