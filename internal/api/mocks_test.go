package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/service"
)

// mockStudyService is a function-field service.StudyService. ParseRequest
// and MaxQuestions use a real service-like default unless overridden.
type mockStudyService struct {
	ParseRequestFn func(sourceText, count string) (service.StudyRequest, error)
	GenerateQuizFn func(ctx context.Context, key string, req service.StudyRequest) ([]domain.Question, error)
	SubmitQuizFn   func(ctx context.Context, key string, sub domain.Submission) (domain.Result, error)
	CreateDeckFn   func(ctx context.Context, req service.StudyRequest) (*domain.Deck, error)
	ListDecksFn    func(ctx context.Context) ([]*domain.Deck, error)
	GetDeckFn      func(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
	DeleteDeckFn   func(ctx context.Context, id uuid.UUID) error
}

var _ service.StudyService = (*mockStudyService)(nil)

func (m *mockStudyService) ParseRequest(sourceText, count string) (service.StudyRequest, error) {
	return m.ParseRequestFn(sourceText, count)
}

func (m *mockStudyService) MaxQuestions() int { return 50 }

func (m *mockStudyService) GenerateQuiz(ctx context.Context, key string, req service.StudyRequest) ([]domain.Question, error) {
	return m.GenerateQuizFn(ctx, key, req)
}

func (m *mockStudyService) SubmitQuiz(ctx context.Context, key string, sub domain.Submission) (domain.Result, error) {
	return m.SubmitQuizFn(ctx, key, sub)
}

func (m *mockStudyService) CreateDeck(ctx context.Context, req service.StudyRequest) (*domain.Deck, error) {
	return m.CreateDeckFn(ctx, req)
}

func (m *mockStudyService) ListDecks(ctx context.Context) ([]*domain.Deck, error) {
	return m.ListDecksFn(ctx)
}

func (m *mockStudyService) GetDeck(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	return m.GetDeckFn(ctx, id)
}

func (m *mockStudyService) DeleteDeck(ctx context.Context, id uuid.UUID) error {
	return m.DeleteDeckFn(ctx, id)
}
