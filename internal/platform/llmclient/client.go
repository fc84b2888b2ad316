// Package llmclient wraps the external chat model the screening
// orchestrator delegates resume analysis to. The core never depends on
// a live model: Analyzer is an interface so the
// orchestrator can substitute a stub in tests and fall back to the
// keyword heuristic when no client is configured or the call fails.
package llmclient

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Analyzer sends a resume-screening prompt to a chat model and returns
// its raw free-form text response plus the model identifier used.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (text string, modelUsed string, err error)
}

// AnthropicAnalyzer calls the Anthropic Messages API.
type AnthropicAnalyzer struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
}

func NewAnthropicAnalyzer(baseURL, apiKey, model string, timeout time.Duration) *AnthropicAnalyzer {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &AnthropicAnalyzer{
		client:  anthropic.NewClient(opts...),
		model:   model,
		timeout: timeout,
	}
}

func (a *AnthropicAnalyzer) Analyze(ctx context.Context, prompt string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", a.model, fmt.Errorf("anthropic messages.new: %w", err)
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	return text, string(message.Model), nil
}
