package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/grading"
	"github.com/phrazzld/scry-study/internal/store"
)

// Sentinel errors returned by StudyService. Handlers match them with errors.Is
// and translate them into flash messages or HTTP status codes.
var (
	// ErrEmptySourceText is returned when the submitted study text is blank.
	ErrEmptySourceText = fmt.Errorf("%w: source text is empty", domain.ErrValidation)

	// ErrInvalidCount is returned when the requested count is not a whole number.
	ErrInvalidCount = fmt.Errorf("%w: count is not a number", domain.ErrValidation)

	// ErrCountOutOfRange is returned when the count is outside 1..MaxQuestions.
	ErrCountOutOfRange = fmt.Errorf("%w: count out of range", domain.ErrValidation)

	// ErrNoActiveQuiz is returned when a submission arrives with no usable
	// pending quiz for its key.
	ErrNoActiveQuiz = errors.New("no active quiz")

	// ErrDeckNotFound indicates that the requested deck does not exist.
	ErrDeckNotFound = errors.New("deck not found")
)

// ServiceError wraps unexpected failures with the operation that hit them.
type ServiceError struct {
	// Operation is the use case that failed (e.g. "generate_quiz", "create_deck").
	Operation string
	// Message is a human-readable description of the failure.
	Message string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("study service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("study service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err in a ServiceError. Store and grading sentinels that
// callers act on are translated to the service sentinels and returned directly.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrDeckNotFound), errors.Is(err, store.ErrDeckNotFound):
		return ErrDeckNotFound
	case errors.Is(err, ErrNoActiveQuiz), errors.Is(err, store.ErrQuizNotFound):
		return ErrNoActiveQuiz
	case errors.Is(err, grading.ErrMalformedQuestion):
		return fmt.Errorf("%w: %w", ErrNoActiveQuiz, err)
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
