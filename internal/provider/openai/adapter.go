// Package openai provides an adapter for the OpenAI API using the official
// SDK. It implements the domain.Provider interface and handles conversion
// between domain types and SDK types, including image inputs for the
// vision-capable chat models.
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/kaleido-ai/kaleido/internal/domain"
	"github.com/kaleido-ai/kaleido/internal/observability"
)

const providerName = "openai"

// Provider implements the domain.Provider interface for OpenAI.
type Provider struct {
	client openai.Client
	name   string
}

// NewProvider creates a new OpenAI provider.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	return &Provider{
		client: openai.NewClient(opts...),
		name:   providerName,
	}, nil
}

// Generate sends a single completion request. No retries happen here;
// retry policy belongs to the orchestrators.
func (p *Provider) Generate(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI API", observability.String("model", req.Model))

	resp, err := p.client.Chat.Completions.New(ctx, p.toSDKParams(req))
	if err != nil {
		logger.Error("OpenAI API call failed", observability.Error(err))
		return nil, p.classify(err)
	}

	logger.Debug("OpenAI API call succeeded",
		observability.Int("prompt_tokens", int(resp.Usage.PromptTokens)),
		observability.Int("completion_tokens", int(resp.Usage.CompletionTokens)),
	)

	return p.toDomainResult(resp), nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// SupportedModels lists the models this provider can serve.
func (p *Provider) SupportedModels(_ context.Context) []string {
	return SupportedModels()
}

// classify maps SDK errors onto the domain failure taxonomy.
func (p *Provider) classify(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		kind := domain.ClassifyStatus(apierr.StatusCode)
		return domain.NewProviderError(kind, p.name, err)
	}
	return domain.NewProviderError(domain.KindOf(err), p.name, err)
}

func (p *Provider) toSDKParams(req *domain.GenerationRequest) openai.ChatCompletionNewParams {
	var message openai.ChatCompletionMessageParamUnion
	if req.HasImage() {
		mediaType := req.ImageType
		if mediaType == "" {
			mediaType = "image/jpeg"
		}
		message = openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(req.Prompt),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL:    fmt.Sprintf("data:%s;base64,%s", mediaType, req.ImageBase64),
				Detail: "high",
			}),
		})
	} else {
		message = openai.UserMessage(req.Prompt)
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{message},
	}

	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	return params
}

func (p *Provider) toDomainResult(resp *openai.ChatCompletion) *domain.GenerationResult {
	answer := ""
	if len(resp.Choices) > 0 {
		answer = resp.Choices[0].Message.Content
	}

	return &domain.GenerationResult{
		Provider:         p.name,
		Model:            string(resp.Model),
		Answer:           answer,
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
	}
}
