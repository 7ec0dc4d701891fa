// Package anthropic provides an adapter for the Anthropic Messages API.
// The wire format is small enough that the client is hand-rolled over
// net/http; image inputs travel as base64 source blocks.
package anthropic

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
	providerName     = "anthropic"
	anthropicVersion = "2023-06-01"
	defaultMaxTokens = 1024
)

// Provider implements the domain.Provider interface for Anthropic.
type Provider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	name       string
}

// NewProvider creates a new Anthropic provider.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("Anthropic API key is required")
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Provider{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		name: providerName,
	}, nil
}

// Messages API request/response structures.
type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature,omitempty"`
	Messages    []message `json:"messages"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type messagesResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// Generate sends a single messages request.
func (p *Provider) Generate(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling Anthropic API", observability.String("model", req.Model))

	body, err := json.Marshal(p.toWireRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		logger.Error("Anthropic API call failed", observability.Error(err))
		return nil, domain.NewProviderError(domain.KindOf(err), p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		kind := domain.ClassifyStatus(resp.StatusCode)
		return nil, domain.NewProviderError(kind, p.name,
			fmt.Errorf("anthropic api error (status %d): %s", resp.StatusCode, string(respBody)))
	}

	var wire messagesResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&wire); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	if len(wire.Content) == 0 {
		return nil, domain.NewProviderError(domain.ErrorKindUnavailable, p.name,
			errors.New("anthropic api returned no content"))
	}

	logger.Debug("Anthropic API call succeeded",
		observability.Int("prompt_tokens", wire.Usage.InputTokens),
		observability.Int("completion_tokens", wire.Usage.OutputTokens),
	)

	return &domain.GenerationResult{
		Provider:         p.name,
		Model:            wire.Model,
		Answer:           wire.Content[0].Text,
		PromptTokens:     wire.Usage.InputTokens,
		CompletionTokens: wire.Usage.OutputTokens,
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// SupportedModels lists the models this provider can serve.
func (p *Provider) SupportedModels(_ context.Context) []string {
	return []string{
		"claude-3-5-sonnet-20241022",
		"claude-3-5-haiku-20241022",
		"claude-3-opus-20240229",
		"claude-3-haiku-20240307",
	}
}

func (p *Provider) toWireRequest(req *domain.GenerationRequest) messagesRequest {
	blocks := make([]contentBlock, 0, 2)
	if req.HasImage() {
		mediaType := req.ImageType
		if mediaType == "" {
			mediaType = "image/jpeg"
		}
		// Image block goes first, matching the Messages API convention.
		blocks = append(blocks, contentBlock{
			Type: "image",
			Source: &imageSource{
				Type:      "base64",
				MediaType: mediaType,
				Data:      req.ImageBase64,
			},
		})
	}
	blocks = append(blocks, contentBlock{Type: "text", Text: req.Prompt})

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return messagesRequest{
		Model:       req.Model,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
		Messages: []message{
			{Role: "user", Content: blocks},
		},
	}
}
