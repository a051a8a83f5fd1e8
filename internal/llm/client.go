// Package llm wraps the xAI chat-completions endpoint behind a small
// interface so the orchestrator and tests can swap in fakes.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultModel   = "grok-4-1-fast-reasoning"
	defaultBaseURL = "https://api.x.ai/v1"

	// Sampling settings are fixed; variety comes from the prompts.
	temperature    = 0.8
	maxTokens      = 500
	requestTimeout = 60 * time.Second
)

// Client generates a completion for a system/user prompt pair.
// Implementations do not retry; retrying is the caller's responsibility.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// XAIClient is a chat-completions client for the xAI API. The endpoint is
// OpenAI-compatible, so it rides on the official openai-go SDK with a
// custom base URL.
type XAIClient struct {
	client openai.Client
	model  string
}

// Config holds configuration for the xAI client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// NewXAIClient creates a new xAI chat-completions client.
func NewXAIClient(cfg Config) (*XAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("xAI API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &XAIClient{
		client: openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(baseURL),
			option.WithRequestTimeout(requestTimeout),
			// Retrying is the orchestrator's job, not the transport's.
			option.WithMaxRetries(0),
		),
		model: model,
	}, nil
}

// Complete sends a completion request and returns the trimmed response text.
func (c *XAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("response contained no content")
	}

	return text, nil
}
