// Package completion defines the boundary between the application and the
// third-party text-completion services that generate quizzes and flashcards.
package completion

import (
	"context"
	"errors"
)

// Errors returned by Completer implementations.
var (
	// ErrTransport is returned when the request could not be sent or the
	// service answered with a non-success status.
	ErrTransport = errors.New("completion service unreachable")

	// ErrMalformedResponse is returned when a success response does not carry
	// generated text at the expected location.
	ErrMalformedResponse = errors.New("malformed completion response")

	// ErrContentBlocked is returned when the service refused to generate text
	// for safety reasons. It is always wrapped together with ErrMalformedResponse.
	ErrContentBlocked = errors.New("content blocked by safety filters")

	// ErrInvalidConfig is returned when a client is constructed with missing settings.
	ErrInvalidConfig = errors.New("invalid completion client configuration")
)

// Completer sends a single-turn prompt and returns the raw generated text.
// Implementations make exactly one round trip and keep no conversation history.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts an ordinary function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f(ctx, prompt).
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
