package provider

import (
	"fmt"
	"net/http"
	"time"

	"quiz-forge/internal/domain"

	"github.com/tmc/langchaingo/llms/ollama"
)

// NewOllamaProvider creates a provider backed by a local Ollama server.
func NewOllamaProvider(id, serverURL, model string, timeout time.Duration) (domain.Provider, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("Ollama server URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("Ollama model name cannot be empty")
	}

	httpClient := &http.Client{Timeout: timeout}
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama LLM client: %w", err)
	}

	return &modelClient{
		id:      id,
		model:   model,
		llm:     llm,
		timeout: timeout,
	}, nil
}
