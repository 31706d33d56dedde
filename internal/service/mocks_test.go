package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockDeckStore mocks the store.DeckStore interface
type MockDeckStore struct {
	mock.Mock
}

func (m *MockDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckStore) List(ctx context.Context) ([]*domain.Deck, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deck), args.Error(1)
}

func (m *MockDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *MockDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return m
}

// mockQuizGenerator is a function-field QuizGenerator.
type mockQuizGenerator struct {
	GenerateQuizFn func(ctx context.Context, sourceText string, count int) ([]domain.Question, error)
}

func (m *mockQuizGenerator) GenerateQuiz(ctx context.Context, sourceText string, count int) ([]domain.Question, error) {
	return m.GenerateQuizFn(ctx, sourceText, count)
}

// mockFlashcardGenerator is a function-field FlashcardGenerator.
type mockFlashcardGenerator struct {
	GenerateFlashcardsFn func(ctx context.Context, sourceText string, count int) ([]domain.Flashcard, error)
}

func (m *mockFlashcardGenerator) GenerateFlashcards(ctx context.Context, sourceText string, count int) ([]domain.Flashcard, error) {
	return m.GenerateFlashcardsFn(ctx, sourceText, count)
}
