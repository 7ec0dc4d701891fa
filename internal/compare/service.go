// Package compare wires the model catalog to the fan-out orchestrator for
// the comparison tool.
package compare

import (
	"context"
	"fmt"

	"github.com/kaleido-ai/kaleido/internal/catalog"
	"github.com/kaleido-ai/kaleido/internal/domain"
)

// Service runs catalog-driven comparisons.
type Service struct {
	fanout      *domain.FanoutService
	entries     []catalog.Entry
	maxTokens   int
	temperature float64
}

// NewService creates a comparison service over the given catalog.
func NewService(fanout *domain.FanoutService, entries []catalog.Entry, maxTokens int, temperature float64) *Service {
	return &Service{
		fanout:      fanout,
		entries:     entries,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Run fans the query out to every catalog entry matching the provider and
// model-type filters. Individual provider failures land in their matrix
// cells; only invalid input or an empty selection fail the call.
func (s *Service) Run(ctx context.Context, query, provider, modelType string) (*domain.ComparisonMatrix, error) {
	if !catalog.ValidProvider(provider) {
		return nil, fmt.Errorf("unknown provider filter %q", provider)
	}
	if !catalog.ValidModelType(modelType) {
		return nil, fmt.Errorf("unknown model type filter %q", modelType)
	}

	selected := catalog.Filter(s.entries, provider, modelType)
	targets := make([]domain.FanoutTarget, 0, len(selected))
	for _, entry := range selected {
		targets = append(targets, domain.FanoutTarget{
			Provider:    entry.Provider,
			Model:       entry.Model,
			ModelType:   string(entry.Type),
			MaxTokens:   s.maxTokens,
			Temperature: s.temperature,
		})
	}

	return s.fanout.Compare(ctx, query, targets)
}

// Entries exposes the catalog for listing commands.
func (s *Service) Entries() []catalog.Entry {
	return s.entries
}
