package store

import (
	"context"

	"github.com/phrazzld/scry-study/internal/domain"
)

// PendingQuizStore holds generated quizzes between generation and grading,
// keyed by an opaque session key. Writing to an existing key replaces the
// previous quiz.
type PendingQuizStore interface {
	// Put stores questions under key, replacing any earlier quiz.
	Put(ctx context.Context, key string, questions []domain.Question) error

	// Take removes and returns the quiz stored under key.
	// Returns ErrQuizNotFound if there is none.
	Take(ctx context.Context, key string) ([]domain.Question, error)
}
