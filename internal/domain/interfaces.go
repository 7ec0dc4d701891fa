package domain

import "context"

// Provider represents one hosted language/vision model API.
type Provider interface {
	// Generate sends a single request and returns the provider's answer.
	// Implementations make exactly one outbound call and never retry;
	// retry policy belongs to the orchestrators.
	Generate(ctx context.Context, req *GenerationRequest) (*GenerationResult, error)

	// Name returns the provider identifier.
	Name() string

	// SupportedModels lists the models this provider can serve.
	SupportedModels(ctx context.Context) []string
}

// ProviderRegistry manages the providers configured at startup.
type ProviderRegistry interface {
	// Register adds a provider to the registry.
	Register(ctx context.Context, provider Provider) error

	// Get retrieves a provider by name.
	Get(ctx context.Context, providerName string) (Provider, error)

	// List returns the names of all registered providers.
	List(ctx context.Context) ([]string, error)
}

// EventPublisher publishes pipeline events for observability.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}
