package provider

import (
	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"go.uber.org/zap"
)

// Registered provider identifiers. "fast" serves generation batches and
// concept extraction; "capable" serves validation and anything that needs
// the stronger model.
const (
	IDFast    = "fast"
	IDCapable = "capable"
	IDLocal   = "local"
)

// Registry maps provider identifiers to initialized clients. It is built
// once at startup and never mutated afterwards, so lookups need no locking.
type Registry struct {
	providers map[string]domain.Provider
	defaultID string
}

// NewRegistry builds the provider set from configuration. OpenAI providers
// are required; the local Ollama provider is registered only when a server
// URL is configured.
func NewRegistry(cfg *config.Config) (*Registry, error) {
	l := logger.Get()
	timeout := cfg.Pipeline.ProviderTimeout

	providers := make(map[string]domain.Provider)

	fast, err := NewOpenAIProvider(IDFast, cfg.Providers.OpenAI.APIKey, cfg.Providers.OpenAI.FastModel, timeout)
	if err != nil {
		return nil, err
	}
	providers[IDFast] = fast
	l.Info("Registered provider", zap.String("id", IDFast), zap.String("model", fast.Model()))

	capable, err := NewOpenAIProvider(IDCapable, cfg.Providers.OpenAI.APIKey, cfg.Providers.OpenAI.CapableModel, timeout)
	if err != nil {
		return nil, err
	}
	providers[IDCapable] = capable
	l.Info("Registered provider", zap.String("id", IDCapable), zap.String("model", capable.Model()))

	if cfg.Providers.Ollama.ServerURL != "" {
		local, err := NewOllamaProvider(IDLocal, cfg.Providers.Ollama.ServerURL, cfg.Providers.Ollama.Model, timeout)
		if err != nil {
			return nil, err
		}
		providers[IDLocal] = local
		l.Info("Registered provider", zap.String("id", IDLocal), zap.String("model", local.Model()))
	}

	defaultID := cfg.Providers.Default
	if defaultID == "" {
		defaultID = IDFast
	}
	if _, ok := providers[defaultID]; !ok {
		return nil, domain.NewUnknownProviderError(defaultID)
	}

	return &Registry{providers: providers, defaultID: defaultID}, nil
}

// NewRegistryFromProviders builds a registry from pre-constructed providers.
// The first provider becomes the default.
func NewRegistryFromProviders(providers ...domain.Provider) *Registry {
	m := make(map[string]domain.Provider, len(providers))
	defaultID := ""
	for _, p := range providers {
		if defaultID == "" {
			defaultID = p.ID()
		}
		m[p.ID()] = p
	}
	return &Registry{providers: m, defaultID: defaultID}
}

// Get returns the provider registered under id, or the default provider
// when id is empty.
func (r *Registry) Get(id string) (domain.Provider, error) {
	if id == "" {
		id = r.defaultID
	}
	p, ok := r.providers[id]
	if !ok {
		return nil, domain.NewUnknownProviderError(id)
	}
	return p, nil
}

// DefaultID returns the identifier of the default provider.
func (r *Registry) DefaultID() string {
	return r.defaultID
}

// IDs returns the identifiers of all registered providers.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	return ids
}
