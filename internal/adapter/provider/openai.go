package provider

import (
	"fmt"
	"time"

	"quiz-forge/internal/domain"

	openaiLLM "github.com/tmc/langchaingo/llms/openai"
)

// NewOpenAIProvider creates a provider backed by the OpenAI chat API. The
// same API key serves both the fast and the capable registered providers;
// only the model name differs.
func NewOpenAIProvider(id, apiKey, model string, timeout time.Duration) (domain.Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("OpenAI model name cannot be empty")
	}

	llm, err := openaiLLM.New(
		openaiLLM.WithToken(apiKey),
		openaiLLM.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI LLM client: %w", err)
	}

	return &modelClient{
		id:      id,
		model:   model,
		llm:     llm,
		timeout: timeout,
	}, nil
}
