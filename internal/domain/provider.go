package domain

import "context"

// CompletionOptions carries the per-call tuning of a provider request.
type CompletionOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// Provider defines the interface (port) to one LLM vendor/model. A provider
// is stateless after construction; its configuration is read-only.
type Provider interface {
	// ID returns the registry identifier of this provider.
	ID() string

	// Model returns the underlying model name, reported in QuizDraft.AIModel.
	Model() string

	// Complete sends a system and user prompt and returns the raw model text.
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompletionOptions) (string, error)
}

// ProviderRegistry resolves provider identifiers to initialized clients.
// Implementations are built once at startup and read-only afterwards.
type ProviderRegistry interface {
	// Get returns the provider registered under id, or the default provider
	// when id is empty.
	Get(id string) (Provider, error)

	// DefaultID returns the identifier of the default provider.
	DefaultID() string
}
