// Package openai provides a completion.Completer for the OpenAI chat
// completions API and any endpoint compatible with it.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/scry-study/internal/completion"
	"github.com/phrazzld/scry-study/internal/config"
	goopenai "github.com/sashabaranov/go-openai"
)

// Completer implements completion.Completer with a single chat completion call.
type Completer struct {
	logger  *slog.Logger
	client  *goopenai.Client
	model   string
	timeout time.Duration
}

var _ completion.Completer = (*Completer)(nil)

// NewCompleter builds a Completer from the LLM configuration. A non-empty
// OpenAIBaseURL redirects requests to a compatible server. httpClient may be nil.
func NewCompleter(logger *slog.Logger, cfg config.LLMConfig, httpClient *http.Client) (*Completer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", completion.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", completion.ErrInvalidConfig)
	}

	clientConfig := goopenai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	if httpClient != nil {
		clientConfig.HTTPClient = httpClient
	}

	var timeout time.Duration
	if cfg.RequestTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	}

	return &Completer{
		logger:  logger.With(slog.String("component", "openai_completer")),
		client:  goopenai.NewClientWithConfig(clientConfig),
		model:   cfg.ModelName,
		timeout: timeout,
	}, nil
}

// Complete sends prompt as one user message and returns the first choice's content.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.logger.DebugContext(ctx, "Calling chat completion API",
		"model", c.model,
		"prompt_length", len(prompt))

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role:    goopenai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "Chat completion call failed", "error", err)
		return "", fmt.Errorf("%w: %v", completion.ErrTransport, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", completion.ErrMalformedResponse)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == goopenai.FinishReasonContentFilter {
		return "", fmt.Errorf("%w: %w", completion.ErrMalformedResponse, completion.ErrContentBlocked)
	}
	if choice.Message.Content == "" {
		return "", fmt.Errorf("%w: empty message content", completion.ErrMalformedResponse)
	}

	c.logger.DebugContext(ctx, "Chat completion call successful",
		"response_length", len(choice.Message.Content))
	return choice.Message.Content, nil
}
