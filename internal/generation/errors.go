package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrInvalidArgument is returned when a generator is asked for a
	// non-positive number of items.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnexpectedFormat is returned when the completion decodes as JSON but
	// has neither of the accepted top-level shapes.
	ErrUnexpectedFormat = errors.New("unexpected JSON format")

	// ErrInvalidCard is returned when a generated flashcard lacks a front or back.
	ErrInvalidCard = errors.New("invalid flashcard in response")
)

// GenerationError reports a failed generation together with whatever raw text
// the completion service returned. Raw is empty when the call itself failed.
type GenerationError struct {
	// Op names the generation step, e.g. "generate quiz".
	Op string
	// Raw is the unprocessed completion text.
	Raw string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *GenerationError) Unwrap() error {
	return e.Err
}
