// Package main provides the kaleido CLI: compare a prompt across model
// providers, run tool-assisted reasoning, and inspect the model catalog.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kaleido-ai/kaleido/internal/catalog"
	"github.com/kaleido-ai/kaleido/internal/compare"
	"github.com/kaleido-ai/kaleido/internal/config"
	"github.com/kaleido-ai/kaleido/internal/domain"
	"github.com/kaleido-ai/kaleido/internal/observability"
	"github.com/kaleido-ai/kaleido/internal/provider/anthropic"
	"github.com/kaleido-ai/kaleido/internal/provider/echo"
	"github.com/kaleido-ai/kaleido/internal/provider/huggingface"
	"github.com/kaleido-ai/kaleido/internal/provider/openai"
	"github.com/kaleido-ai/kaleido/internal/provider/registry"
	"github.com/kaleido-ai/kaleido/internal/reasoning"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "kaleido",
		Short:         "Compare and reason across LLM providers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(compareCmd(), reasonCmd(), modelsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app holds the wired services shared by the CLI commands.
type app struct {
	cfg      *config.Config
	compare  *compare.Service
	reasoner *reasoning.Reasoner
}

// buildApp loads configuration and wires the provider registry and
// services. Unconfigured providers are not registered; their catalog
// entries fail per cell at comparison time instead.
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// Terminal output belongs to the renderer; keep the logger quiet.
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	logger, err := logCfg.Build()
	if err != nil {
		return nil, err
	}
	observability.SetLogger(logger)

	reg := registry.NewRegistry()
	ctx := context.Background()

	if cfg.OpenAI.Configured() {
		provider, err := openai.NewProvider(cfg.OpenAI)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(ctx, provider); err != nil {
			return nil, err
		}
	}
	if cfg.Anthropic.Configured() {
		provider, err := anthropic.NewProvider(cfg.Anthropic)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(ctx, provider); err != nil {
			return nil, err
		}
	}
	if cfg.HuggingFace.Configured() {
		provider, err := huggingface.NewProvider(cfg.HuggingFace)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(ctx, provider); err != nil {
			return nil, err
		}
	}
	if cfg.Pipeline.EchoEnabled {
		if err := reg.Register(ctx, echo.NewProvider()); err != nil {
			return nil, err
		}
	}

	timeout := time.Duration(cfg.Pipeline.AttemptTimeout) * time.Second
	fanout := domain.NewFanoutService(reg, timeout)

	chain, err := cfg.Pipeline.ParseChain()
	if err != nil {
		return nil, err
	}
	fallback, err := domain.NewFallbackService(reg, chain, domain.WithAttemptTimeout(timeout))
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		compare:  compare.NewService(fanout, catalog.Default(), cfg.Pipeline.MaxTokens, cfg.Pipeline.Temperature),
		reasoner: reasoning.NewReasoner(fallback),
	}, nil
}

func (a *app) credentials() map[string]bool {
	return map[string]bool{
		"openai":      a.cfg.OpenAI.Configured(),
		"anthropic":   a.cfg.Anthropic.Configured(),
		"huggingface": a.cfg.HuggingFace.Configured(),
	}
}
