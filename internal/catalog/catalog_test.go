package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	entries := Default()

	tests := []struct {
		name      string
		provider  string
		modelType string
		wantCount int
	}{
		{name: "everything", provider: "all", modelType: "all", wantCount: len(entries)},
		{name: "empty filters mean all", provider: "", modelType: "", wantCount: len(entries)},
		{name: "by provider", provider: "openai", modelType: "all", wantCount: 4},
		{name: "by type", provider: "all", modelType: "base", wantCount: 2},
		{name: "provider and type", provider: "huggingface", modelType: "instruct", wantCount: 1},
		{name: "underscore spelling", provider: "all", modelType: "fine_tuned", wantCount: 2},
		{name: "no match", provider: "anthropic", modelType: "base", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(entries, tt.provider, tt.modelType)
			require.Len(t, got, tt.wantCount)
		})
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	got := Filter(Default(), "openai", "all")
	require.Equal(t, "davinci-002", got[0].Model)
	require.Equal(t, "gpt-3.5-turbo", got[1].Model)
	require.Equal(t, "gpt-4o", got[2].Model)
}

func TestValidModelType(t *testing.T) {
	require.True(t, ValidModelType("base"))
	require.True(t, ValidModelType("Instruct"))
	require.True(t, ValidModelType("fine-tuned"))
	require.True(t, ValidModelType("fine_tuned"))
	require.True(t, ValidModelType("all"))
	require.True(t, ValidModelType(""))
	require.False(t, ValidModelType("chat"))
}

func TestValidProvider(t *testing.T) {
	require.True(t, ValidProvider("openai"))
	require.True(t, ValidProvider("ANTHROPIC"))
	require.True(t, ValidProvider("all"))
	require.True(t, ValidProvider(""))
	require.False(t, ValidProvider("cohere"))
}
