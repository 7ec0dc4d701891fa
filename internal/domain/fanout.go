package domain

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kaleido-ai/kaleido/internal/observability"
)

// FanoutService issues the same prompt to every target concurrently and
// collects all results into a matrix. Results land in a fixed-size slot
// array indexed by target position, so presentation order always matches
// configuration order no matter when each call settles. A slow or failing
// target never blocks or invalidates the others; its cell carries an
// error kind instead of an answer.
type FanoutService struct {
	registry ProviderRegistry
	timeout  time.Duration
}

// NewFanoutService creates a fan-out orchestrator. timeout bounds each
// individual provider call; zero means the 30s default.
func NewFanoutService(registry ProviderRegistry, timeout time.Duration) *FanoutService {
	if timeout <= 0 {
		timeout = defaultAttemptTimeout
	}
	return &FanoutService{registry: registry, timeout: timeout}
}

// Compare fans the prompt out to all targets. It fails only on invalid
// input; individual provider failures are recorded in their cells and the
// matrix always comes back complete.
func (s *FanoutService) Compare(ctx context.Context, prompt string, targets []FanoutTarget) (*ComparisonMatrix, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}

	logger := observability.FromContext(ctx)
	logger.Info("fan-out started", observability.Int("targets", len(targets)))

	cells := make([]ComparisonCell, len(targets))
	group, groupCtx := errgroup.WithContext(ctx)

	for i, target := range targets {
		i, target := i, target
		group.Go(func() error {
			cells[i] = ComparisonCell{
				Target: target,
				Result: s.call(groupCtx, prompt, target),
			}
			return nil
		})
	}
	// Goroutines only fill their own slot and never return an error, so
	// Wait is purely a join.
	_ = group.Wait()

	logger.Info("fan-out settled", observability.Int("targets", len(targets)))

	return &ComparisonMatrix{Query: prompt, Cells: cells}, nil
}

func (s *FanoutService) call(ctx context.Context, prompt string, target FanoutTarget) GenerationResult {
	failed := func(kind ErrorKind) GenerationResult {
		return GenerationResult{
			Provider:  target.Provider,
			Model:     target.Model,
			ErrorKind: kind,
		}
	}

	provider, err := s.registry.Get(ctx, target.Provider)
	if err != nil {
		return failed(ErrorKindUnavailable)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	result, err := provider.Generate(callCtx, &GenerationRequest{
		Prompt:      prompt,
		Model:       target.Model,
		MaxTokens:   target.MaxTokens,
		Temperature: target.Temperature,
	})
	if err != nil {
		res := failed(KindOf(err))
		res.LatencySeconds = time.Since(start).Seconds()
		return res
	}

	result.LatencySeconds = time.Since(start).Seconds()
	return *result
}
