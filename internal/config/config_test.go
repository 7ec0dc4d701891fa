package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kaleido-ai/kaleido/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 10, cfg.Upload.MaxFileSizeMB)
	require.Equal(t, int64(10*1024*1024), cfg.Upload.MaxFileSizeBytes())
	require.Equal(t, 1000, cfg.Pipeline.MaxTokens)

	chain, err := cfg.Pipeline.ParseChain()
	require.NoError(t, err)
	require.Len(t, chain, 3)
	require.Equal(t, "openai", chain[0].Provider)
	require.Equal(t, "gpt-4o", chain[0].Model)
	require.Equal(t, domain.CapabilityVision, chain[0].Capability)
	require.Equal(t, domain.CapabilityText, chain[len(chain)-1].Capability)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("FALLBACK_CHAIN", "echo:echo-1:text")
	t.Setenv("ECHO_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.True(t, cfg.Pipeline.EchoEnabled)

	chain, err := cfg.Pipeline.ParseChain()
	require.NoError(t, err)
	require.Len(t, chain, 1)
	require.Equal(t, "echo", chain[0].Provider)
}

func TestParseChain_Validation(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		wantErr bool
	}{
		{
			name:    "valid mixed chain",
			entries: []string{"openai:gpt-4o:vision", "anthropic:claude-3-5-sonnet-20241022:text"},
		},
		{
			name:    "malformed entry",
			entries: []string{"openai:gpt-4o"},
			wantErr: true,
		},
		{
			name:    "unknown capability",
			entries: []string{"openai:gpt-4o:audio"},
			wantErr: true,
		},
		{
			name:    "vision terminal entry",
			entries: []string{"openai:gpt-4o:vision"},
			wantErr: true,
		},
		{
			name:    "empty chain",
			entries: []string{"", "  "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := PipelineConfig{FallbackChain: tt.entries, MaxTokens: 500, Temperature: 0.5}
			chain, err := pipeline.ParseChain()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, entry := range chain {
				require.Equal(t, 500, entry.MaxTokens)
			}
		})
	}
}

func TestIsImageTypeAllowed(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"image/jpeg", true},
		{"image/png", true},
		{"IMAGE/PNG", true},
		{"image/png; charset=binary", true},
		{"image/svg+xml", false},
		{"text/html", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			require.Equal(t, tt.want, IsImageTypeAllowed(tt.contentType))
		})
	}
}
