// Package provider implements domain.Provider on top of LangchainGo model
// clients. Providers are constructed once at startup from configuration and
// are read-only afterwards; they are safe for concurrent use.
package provider

import (
	"context"
	"errors"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// modelClient is the shared completion logic behind every vendor adapter.
type modelClient struct {
	id      string
	model   string
	llm     llms.Model
	timeout time.Duration
}

func (c *modelClient) ID() string {
	return c.id
}

func (c *modelClient) Model() string {
	return c.model
}

// Complete sends the prompts to the model and returns the raw response text.
// Every call is bounded by the configured timeout; these are interactive
// user-facing requests.
func (c *modelClient) Complete(ctx context.Context, systemPrompt, userPrompt string, opts domain.CompletionOptions) (string, error) {
	l := logger.Get()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, userPrompt),
	}

	callOpts := []llms.CallOption{}
	model := c.model
	if opts.Model != "" {
		model = opts.Model
	}
	if model != "" {
		callOpts = append(callOpts, llms.WithModel(model))
	}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}
	callOpts = append(callOpts, llms.WithTemperature(opts.Temperature))

	start := time.Now()
	response, err := c.llm.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("Provider request timed out",
				zap.String("provider", c.id),
				zap.Duration("timeout", c.timeout))
		} else {
			l.Error("Provider call failed",
				zap.String("provider", c.id),
				zap.Error(err))
		}
		return "", domain.NewProviderError(c.id, err)
	}

	if len(response.Choices) == 0 {
		l.Error("Provider returned no choices", zap.String("provider", c.id))
		return "", domain.NewProviderError(c.id, errors.New("empty response"))
	}

	l.Debug("Provider call completed",
		zap.String("provider", c.id),
		zap.String("model", model),
		zap.Duration("duration", time.Since(start)))

	return response.Choices[0].Content, nil
}
