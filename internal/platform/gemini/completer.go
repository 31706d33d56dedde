package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/scry-study/internal/completion"
	"github.com/phrazzld/scry-study/internal/config"
	"google.golang.org/genai"
)

// Option customises a Completer at construction time.
type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL points the client at a different Gemini API endpoint.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// Completer implements completion.Completer on top of the Gemini API.
type Completer struct {
	logger  *slog.Logger
	client  *genai.Client
	model   string
	timeout time.Duration
}

var _ completion.Completer = (*Completer)(nil)

// NewCompleter creates a Gemini-backed Completer from the LLM configuration.
func NewCompleter(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig, opts ...Option) (*Completer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	logger = logger.With(slog.String("component", "gemini_completer"))

	if err := validateConfig(ctx, logger, cfg); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.GeminiAPIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: o.httpClient,
	}
	if o.baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: o.baseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", completion.ErrInvalidConfig, err)
	}

	var timeout time.Duration
	if cfg.RequestTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	}

	return &Completer{
		logger:  logger,
		client:  client,
		model:   cfg.ModelName,
		timeout: timeout,
	}, nil
}

// Complete sends prompt as a single user turn and returns the concatenated
// text of the first candidate.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.logger.DebugContext(ctx, "Calling Gemini API",
		"model", c.model,
		"prompt_length", len(prompt))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		c.logger.ErrorContext(ctx, "Gemini API call failed", "error", err)
		return "", fmt.Errorf("%w: %v", completion.ErrTransport, err)
	}

	text, err := extractText(resp)
	if err != nil {
		c.logger.ErrorContext(ctx, "Unusable Gemini response", "error", err)
		return "", err
	}

	c.logger.DebugContext(ctx, "Gemini API call successful", "response_length", len(text))
	return text, nil
}

// extractText joins the text of candidates[0].content.parts, skipping
// thought summaries emitted by thinking models.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", completion.ErrMalformedResponse)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no candidates in response", completion.ErrMalformedResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: %w", completion.ErrMalformedResponse, completion.ErrContentBlocked)
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty content in response", completion.ErrMalformedResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String(), nil
}
