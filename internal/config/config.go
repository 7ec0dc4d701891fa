// Package config loads process configuration from the environment once at
// startup. The parsed value is immutable and handed explicitly to the
// orchestrator constructors, never read as ambient global state, so tests
// can inject fake chains without touching the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/kaleido-ai/kaleido/internal/domain"
	"github.com/kaleido-ai/kaleido/internal/provider/anthropic"
	"github.com/kaleido-ai/kaleido/internal/provider/huggingface"
	"github.com/kaleido-ai/kaleido/internal/provider/openai"
)

// Config represents the full process configuration.
type Config struct {
	Server      ServerConfig
	CORS        CORSConfig
	Upload      UploadConfig
	Pipeline    PipelineConfig
	OpenAI      openai.Config
	Anthropic   anthropic.Config
	HuggingFace huggingface.Config
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"60"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// UploadConfig bounds what the image endpoints accept.
type UploadConfig struct {
	MaxFileSizeMB int `env:"MAX_FILE_SIZE_MB"    envDefault:"10"`
	FetchTimeout  int `env:"IMAGE_FETCH_TIMEOUT" envDefault:"30"`
}

// MaxFileSizeBytes returns the upload size limit in bytes.
func (u UploadConfig) MaxFileSizeBytes() int64 {
	return int64(u.MaxFileSizeMB) * 1024 * 1024
}

// AllowedImageTypes lists the accepted image MIME types.
func AllowedImageTypes() []string {
	return []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/bmp", "image/webp"}
}

// IsImageTypeAllowed checks an incoming content type against the allow list.
func IsImageTypeAllowed(contentType string) bool {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	for _, allowed := range AllowedImageTypes() {
		if contentType == allowed {
			return true
		}
	}
	return false
}

// PipelineConfig configures the fallback chain and fan-out behavior.
// FallbackChain entries use the form "provider:model:capability".
type PipelineConfig struct {
	FallbackChain  []string `env:"FALLBACK_CHAIN" envSeparator:"," envDefault:"openai:gpt-4o:vision,anthropic:claude-3-5-sonnet-20241022:vision,openai:gpt-3.5-turbo:text"`
	AttemptTimeout int      `env:"ATTEMPT_TIMEOUT" envDefault:"30"`
	MaxTokens      int      `env:"MAX_TOKENS"      envDefault:"1000"`
	Temperature    float64  `env:"TEMPERATURE"     envDefault:"0.7"`
	EchoEnabled    bool     `env:"ECHO_ENABLED"    envDefault:"false"`
}

// ParseChain turns the configured entries into a validated fallback chain.
// Unconfigured providers stay in the chain on purpose: the orchestrator
// skips them as provider_unavailable, which keeps "which entry answered"
// reporting honest.
func (p PipelineConfig) ParseChain() (domain.FallbackChain, error) {
	chain := make(domain.FallbackChain, 0, len(p.FallbackChain))
	for _, raw := range p.FallbackChain {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parts := strings.Split(raw, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid chain entry %q: want provider:model:capability", raw)
		}
		chain = append(chain, domain.ChainEntry{
			Provider:    strings.TrimSpace(parts[0]),
			Model:       strings.TrimSpace(parts[1]),
			Capability:  domain.Capability(strings.TrimSpace(parts[2])),
			MaxTokens:   p.MaxTokens,
			Temperature: p.Temperature,
		})
	}
	if err := chain.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fallback chain: %w", err)
	}
	return chain, nil
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CORSConfig
	*UploadConfig
	*PipelineConfig
	OpenAI      *openai.Config
	Anthropic   *anthropic.Config
	HuggingFace *huggingface.Config
}

// Load loads environment files and parses configuration.
func Load() (*Config, error) {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return &cfg, nil
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Out:            dig.Out{},
		ServerConfig:   &cfg.Server,
		CORSConfig:     &cfg.CORS,
		UploadConfig:   &cfg.Upload,
		PipelineConfig: &cfg.Pipeline,
		OpenAI:         &cfg.OpenAI,
		Anthropic:      &cfg.Anthropic,
		HuggingFace:    &cfg.HuggingFace,
	}
}
