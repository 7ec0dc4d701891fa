package huggingface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kaleido-ai/kaleido/internal/domain"
)

func TestNewProvider_RequiresAPIKey(t *testing.T) {
	_, err := NewProvider(Config{})
	require.Error(t, err)
}

func TestGenerate_PostsToModelPath(t *testing.T) {
	var captured inferenceRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/gpt2", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"generated_text": "a short completion"},
		})
	}))
	defer server.Close()

	provider, err := NewProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	result, err := provider.Generate(context.Background(), &domain.GenerationRequest{
		Prompt:      "once upon a time",
		Model:       "gpt2",
		MaxTokens:   50,
		Temperature: 0.7,
	})
	require.NoError(t, err)

	require.Equal(t, "huggingface", result.Provider)
	require.Equal(t, "gpt2", result.Model)
	require.Equal(t, "a short completion", result.Answer)

	require.Equal(t, "once upon a time", captured.Inputs)
	require.Equal(t, 50, captured.Parameters.MaxNewTokens)
	require.False(t, captured.Parameters.ReturnFullText)
}

func TestGenerate_EstimatesTokenCounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"generated_text": "12345678"},
		})
	}))
	defer server.Close()

	provider, err := NewProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	result, err := provider.Generate(context.Background(), &domain.GenerationRequest{
		Prompt: "abcdefghijkl", // 12 chars -> 3 estimated tokens
		Model:  "gpt2",
	})
	require.NoError(t, err)
	require.Equal(t, 3, result.PromptTokens)
	require.Equal(t, 2, result.CompletionTokens)
}

func TestGenerate_RejectsImages(t *testing.T) {
	provider, err := NewProvider(Config{APIKey: "test-key", BaseURL: "http://unused"})
	require.NoError(t, err)

	_, err = provider.Generate(context.Background(), &domain.GenerationRequest{
		Prompt:      "describe this",
		Model:       "gpt2",
		ImageBase64: "aW1hZ2U=",
		ImageType:   "image/png",
	})
	require.Error(t, err)
	require.Equal(t, domain.ErrorKindInvalidInput, domain.KindOf(err))
}

func TestGenerate_ClassifiesErrorStatuses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider, err := NewProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = provider.Generate(context.Background(), &domain.GenerationRequest{
		Prompt: "hello",
		Model:  "gpt2",
	})
	require.Error(t, err)
	require.Equal(t, domain.ErrorKindUnavailable, domain.KindOf(err))
}

func TestGenerate_EmptyResponseArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	provider, err := NewProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	result, err := provider.Generate(context.Background(), &domain.GenerationRequest{
		Prompt: "hello",
		Model:  "gpt2",
	})
	require.NoError(t, err)
	require.Empty(t, result.Answer)
}
