// Package huggingface provides a text-only adapter for the Hugging Face
// Inference API. The API reports no token usage, so counts are estimated
// with the usual four-characters-per-token heuristic.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kaleido-ai/kaleido/internal/domain"
	"github.com/kaleido-ai/kaleido/internal/observability"
)

const (
	providerName      = "huggingface"
	charsPerToken     = 4
	defaultTimeoutSec = 30
)

// Provider implements the domain.Provider interface for Hugging Face.
type Provider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	name       string
}

// NewProvider creates a new Hugging Face provider.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("Hugging Face API key is required")
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeoutSec
	}

	return &Provider{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		name: providerName,
	}, nil
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens,omitempty"`
	Temperature    float64 `json:"temperature,omitempty"`
	ReturnFullText bool    `json:"return_full_text"`
}

type inferenceResponse struct {
	GeneratedText string `json:"generated_text"`
}

// Generate sends a single inference request.
func (p *Provider) Generate(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	if req.HasImage() {
		return nil, domain.NewProviderError(domain.ErrorKindInvalidInput, p.name,
			errors.New("huggingface provider is text-only"))
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling Hugging Face Inference API", observability.String("model", req.Model))

	body, err := json.Marshal(inferenceRequest{
		Inputs: req.Prompt,
		Parameters: inferenceParameters{
			MaxNewTokens:   req.MaxTokens,
			Temperature:    req.Temperature,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", p.baseURL, req.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		logger.Error("Hugging Face API call failed", observability.Error(err))
		return nil, domain.NewProviderError(domain.KindOf(err), p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		kind := domain.ClassifyStatus(resp.StatusCode)
		return nil, domain.NewProviderError(kind, p.name,
			fmt.Errorf("huggingface api error (status %d): %s", resp.StatusCode, string(respBody)))
	}

	var wire []inferenceResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&wire); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	answer := ""
	if len(wire) > 0 {
		answer = wire[0].GeneratedText
	}

	return &domain.GenerationResult{
		Provider:         p.name,
		Model:            req.Model,
		Answer:           answer,
		PromptTokens:     estimateTokens(req.Prompt),
		CompletionTokens: estimateTokens(answer),
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// SupportedModels lists the models this provider can serve.
func (p *Provider) SupportedModels(_ context.Context) []string {
	return []string{
		"gpt2",
		"distilgpt2",
		"mistralai/Mistral-7B-Instruct-v0.2",
		"HuggingFaceH4/zephyr-7b-beta",
	}
}

func estimateTokens(text string) int {
	return len(text) / charsPerToken
}
