package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/dig"

	"github.com/kaleido-ai/kaleido/internal/config"
	"github.com/kaleido-ai/kaleido/internal/domain"
	"github.com/kaleido-ai/kaleido/internal/http"
	"github.com/kaleido-ai/kaleido/internal/http/middleware"
	"github.com/kaleido-ai/kaleido/internal/image"
	"github.com/kaleido-ai/kaleido/internal/observability"
	"github.com/kaleido-ai/kaleido/internal/provider/anthropic"
	"github.com/kaleido-ai/kaleido/internal/provider/echo"
	"github.com/kaleido-ai/kaleido/internal/provider/huggingface"
	"github.com/kaleido-ai/kaleido/internal/provider/openai"
	"github.com/kaleido-ai/kaleido/internal/provider/registry"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Provide(observability.NewEventBus); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}

	// Provider Registry
	if err := container.Provide(func() domain.ProviderRegistry {
		return registry.NewRegistry()
	}); err != nil {
		log.Fatalf("Failed to provide registry: %v", err)
	}

	// Register configured providers with the registry (invoked for side
	// effects). Unconfigured providers are skipped, not fatal: the
	// fallback chain treats them as unavailable at request time.
	if err := container.Invoke(registerProviders); err != nil {
		log.Fatalf("Failed to register providers: %v", err)
	}

	// Domain Services
	if err := container.Provide(newFallbackService); err != nil {
		log.Fatalf("Failed to provide fallback service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(image.NewFetcher); err != nil {
		log.Fatalf("Failed to provide image fetcher: %v", err)
	}
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware: %v", err)
	}
	if err := container.Provide(credentials); err != nil {
		log.Fatalf("Failed to provide credentials: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

func registerProviders(reg domain.ProviderRegistry, cfg *config.Config) error {
	ctx := context.Background()
	logger := observability.FromContext(ctx)

	if cfg.OpenAI.Configured() {
		provider, err := openai.NewProvider(cfg.OpenAI)
		if err != nil {
			return fmt.Errorf("failed to build OpenAI provider: %w", err)
		}
		if err := reg.Register(ctx, provider); err != nil {
			return fmt.Errorf("failed to register OpenAI provider: %w", err)
		}
	} else {
		logger.Warn("OpenAI provider not configured, skipping")
	}

	if cfg.Anthropic.Configured() {
		provider, err := anthropic.NewProvider(cfg.Anthropic)
		if err != nil {
			return fmt.Errorf("failed to build Anthropic provider: %w", err)
		}
		if err := reg.Register(ctx, provider); err != nil {
			return fmt.Errorf("failed to register Anthropic provider: %w", err)
		}
	} else {
		logger.Warn("Anthropic provider not configured, skipping")
	}

	if cfg.HuggingFace.Configured() {
		provider, err := huggingface.NewProvider(cfg.HuggingFace)
		if err != nil {
			return fmt.Errorf("failed to build Hugging Face provider: %w", err)
		}
		if err := reg.Register(ctx, provider); err != nil {
			return fmt.Errorf("failed to register Hugging Face provider: %w", err)
		}
	} else {
		logger.Warn("Hugging Face provider not configured, skipping")
	}

	if cfg.Pipeline.EchoEnabled {
		if err := reg.Register(ctx, echo.NewProvider()); err != nil {
			return fmt.Errorf("failed to register echo provider: %w", err)
		}
	}

	return nil
}

func newFallbackService(
	reg domain.ProviderRegistry,
	pipeline *config.PipelineConfig,
	events *observability.EventBus,
) (*domain.FallbackService, error) {
	chain, err := pipeline.ParseChain()
	if err != nil {
		return nil, err
	}
	return domain.NewFallbackService(reg, chain,
		domain.WithAttemptTimeout(time.Duration(pipeline.AttemptTimeout)*time.Second),
		domain.WithEventPublisher(events),
	)
}

func credentials(cfg *config.Config) http.ProviderCredentials {
	return http.ProviderCredentials{
		OpenAI:      cfg.OpenAI.Configured(),
		Anthropic:   cfg.Anthropic.Configured(),
		HuggingFace: cfg.HuggingFace.Configured(),
	}
}
