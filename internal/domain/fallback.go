package domain

import (
	"context"
	"strings"
	"time"

	"github.com/kaleido-ai/kaleido/internal/observability"
)

const (
	// SystemFallbackProvider is the synthetic provider name reported when
	// every chain entry has failed.
	SystemFallbackProvider = "system-fallback"

	// SystemFallbackMessage is the fixed user-facing answer returned when
	// the whole chain is exhausted.
	SystemFallbackMessage = "I apologize, but I'm unable to process your image or question at the moment. " +
		"This could be due to API limitations or configuration issues. Please try again later or contact support."

	defaultAttemptTimeout = 30 * time.Second
)

// FallbackService tries chain entries in priority order until one answers.
// It is a total function over valid inputs: Answer always produces a
// result, falling back to the synthetic system answer when everything
// fails. The chain is strictly sequential; trying entry N+1 while entry N
// might still succeed would waste a paid API call and muddy which provider
// actually answered.
type FallbackService struct {
	registry ProviderRegistry
	chain    FallbackChain
	timeout  time.Duration
	events   EventPublisher
}

// FallbackOption configures a FallbackService.
type FallbackOption func(*FallbackService)

// WithAttemptTimeout sets the per-entry timeout (default 30s).
func WithAttemptTimeout(d time.Duration) FallbackOption {
	return func(s *FallbackService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithEventPublisher attaches an event publisher for per-attempt events.
func WithEventPublisher(events EventPublisher) FallbackOption {
	return func(s *FallbackService) {
		s.events = events
	}
}

// NewFallbackService creates a fallback orchestrator over a validated chain.
func NewFallbackService(registry ProviderRegistry, chain FallbackChain, opts ...FallbackOption) (*FallbackService, error) {
	if err := chain.Validate(); err != nil {
		return nil, err
	}
	s := &FallbackService{
		registry: registry,
		chain:    chain,
		timeout:  defaultAttemptTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Chain returns the configured chain. The returned slice must not be
// mutated by callers.
func (s *FallbackService) Chain() FallbackChain {
	return s.chain
}

// Answer runs the chain for a prompt and optional image. The only error it
// can return is an invalid-input rejection, raised before any provider
// call; for every other input it returns a non-nil outcome whose Result is
// either a real provider answer or the synthetic system-fallback answer.
func (s *FallbackService) Answer(ctx context.Context, prompt, imageBase64, imageType string) (*FallbackOutcome, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	logger := observability.FromContext(ctx)
	hasImage := imageBase64 != ""
	attempts := make([]Attempt, 0, len(s.chain))

	for i, entry := range s.chain {
		// Vision entries are pointless without an image; text entries are
		// always eligible.
		if entry.Capability == CapabilityVision && !hasImage {
			attempts = append(attempts, Attempt{Provider: entry.Provider, Model: entry.Model, Skipped: true})
			continue
		}

		result, attempt := s.try(ctx, entry, prompt, imageBase64, imageType)
		attempts = append(attempts, attempt)

		if result != nil {
			result.UsedFallback = i > 0
			logger.Info("fallback chain answered",
				observability.String("provider", result.Provider),
				observability.String("model", result.Model),
				observability.Bool("used_fallback", result.UsedFallback),
				observability.Int("attempts", len(attempts)),
			)
			s.publish(ctx, "fallback.answered", result.Provider, attempt.Kind)
			return &FallbackOutcome{Result: result, Attempts: attempts}, nil
		}

		logger.Warn("fallback chain entry failed",
			observability.String("provider", entry.Provider),
			observability.String("model", entry.Model),
			observability.String("error_kind", string(attempt.Kind)),
		)
		s.publish(ctx, "fallback.entry_failed", entry.Provider, attempt.Kind)
	}

	logger.Warn("fallback chain exhausted", observability.Int("attempts", len(attempts)))
	s.publish(ctx, "fallback.exhausted", SystemFallbackProvider, ErrorKindUnavailable)

	return &FallbackOutcome{
		Result: &GenerationResult{
			Provider:     SystemFallbackProvider,
			Model:        SystemFallbackProvider,
			Answer:       SystemFallbackMessage,
			UsedFallback: true,
		},
		Attempts: attempts,
	}, nil
}

// try invokes one chain entry with the per-attempt timeout applied.
func (s *FallbackService) try(ctx context.Context, entry ChainEntry, prompt, imageBase64, imageType string) (*GenerationResult, Attempt) {
	attempt := Attempt{Provider: entry.Provider, Model: entry.Model}

	provider, err := s.registry.Get(ctx, entry.Provider)
	if err != nil {
		attempt.Kind = ErrorKindUnavailable
		return nil, attempt
	}

	req := &GenerationRequest{
		Prompt:      prompt,
		Model:       entry.Model,
		MaxTokens:   entry.MaxTokens,
		Temperature: entry.Temperature,
	}
	if entry.Capability == CapabilityVision {
		req.ImageBase64 = imageBase64
		req.ImageType = imageType
	}

	attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	result, err := provider.Generate(attemptCtx, req)
	attempt.Latency = time.Since(start)

	if err != nil {
		attempt.Kind = KindOf(err)
		return nil, attempt
	}

	result.LatencySeconds = attempt.Latency.Seconds()
	return result, attempt
}

func (s *FallbackService) publish(ctx context.Context, eventType, provider string, kind ErrorKind) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, eventType, map[string]interface{}{
		"provider":   provider,
		"error_kind": string(kind),
	})
}
