package compare_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kaleido-ai/kaleido/internal/catalog"
	"github.com/kaleido-ai/kaleido/internal/compare"
	"github.com/kaleido-ai/kaleido/internal/domain"
	"github.com/kaleido-ai/kaleido/internal/provider/registry"
)

type fakeProvider struct {
	name string
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) SupportedModels(_ context.Context) []string { return nil }

func (p *fakeProvider) Generate(_ context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	return &domain.GenerationResult{Provider: p.name, Model: req.Model, Answer: "answer from " + req.Model}, nil
}

func newService(t *testing.T, entries []catalog.Entry) *compare.Service {
	t.Helper()

	reg := registry.NewRegistry()
	for _, name := range []string{"openai", "anthropic"} {
		require.NoError(t, reg.Register(context.Background(), &fakeProvider{name: name}))
	}

	fanout := domain.NewFanoutService(reg, time.Second)
	return compare.NewService(fanout, entries, 500, 0.7)
}

func TestRun_MapsCatalogToTargets(t *testing.T) {
	entries := []catalog.Entry{
		{Provider: "openai", Model: "gpt-4o", Type: catalog.Instruct},
		{Provider: "anthropic", Model: "claude-3-5-sonnet-20241022", Type: catalog.Instruct},
		{Provider: "huggingface", Model: "gpt2", Type: catalog.Base},
	}
	svc := newService(t, entries)

	matrix, err := svc.Run(context.Background(), "hello", "all", "all")
	require.NoError(t, err)
	require.Len(t, matrix.Cells, 3)

	// Catalog order carries through to the matrix.
	require.Equal(t, "gpt-4o", matrix.Cells[0].Target.Model)
	require.Equal(t, "instruct", matrix.Cells[0].Target.ModelType)
	require.Equal(t, 500, matrix.Cells[0].Target.MaxTokens)

	// huggingface is not registered; its cell fails without failing the run.
	require.Equal(t, domain.ErrorKindUnavailable, matrix.Cells[2].Result.ErrorKind)
	require.Equal(t, "answer from gpt-4o", matrix.Cells[0].Result.Answer)
}

func TestRun_AppliesFilters(t *testing.T) {
	svc := newService(t, []catalog.Entry{
		{Provider: "openai", Model: "davinci-002", Type: catalog.Base},
		{Provider: "openai", Model: "gpt-4o", Type: catalog.Instruct},
		{Provider: "anthropic", Model: "claude-3-5-sonnet-20241022", Type: catalog.Instruct},
	})

	matrix, err := svc.Run(context.Background(), "hello", "openai", "instruct")
	require.NoError(t, err)
	require.Len(t, matrix.Cells, 1)
	require.Equal(t, "gpt-4o", matrix.Cells[0].Target.Model)
}

func TestRun_RejectsBadInput(t *testing.T) {
	svc := newService(t, catalog.Default())

	_, err := svc.Run(context.Background(), "hello", "cohere", "all")
	require.Error(t, err)

	_, err = svc.Run(context.Background(), "hello", "all", "chat")
	require.Error(t, err)

	_, err = svc.Run(context.Background(), "", "all", "all")
	require.ErrorIs(t, err, domain.ErrEmptyPrompt)

	// Valid filters that select nothing are an error, not an empty matrix.
	_, err = svc.Run(context.Background(), "hello", "anthropic", "base")
	require.ErrorIs(t, err, domain.ErrNoTargets)
}
