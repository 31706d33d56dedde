package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/grading"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/store"
)

// DefaultMaxQuestions bounds the count of a request when no limit is configured.
const DefaultMaxQuestions = 50

// QuizGenerator produces quiz questions from study text.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, sourceText string, count int) ([]domain.Question, error)
}

// FlashcardGenerator produces flashcards from study text.
type FlashcardGenerator interface {
	GenerateFlashcards(ctx context.Context, sourceText string, count int) ([]domain.Flashcard, error)
}

// StudyRequest is a validated generation request.
type StudyRequest struct {
	SourceText string
	Count      int
}

// StudyService provides the quiz and flashcard use cases.
type StudyService interface {
	// ParseRequest trims and validates raw form input. It returns
	// ErrEmptySourceText, ErrInvalidCount or ErrCountOutOfRange.
	ParseRequest(sourceText, count string) (StudyRequest, error)

	// MaxQuestions is the largest count ParseRequest accepts.
	MaxQuestions() int

	// GenerateQuiz generates a quiz and stores it as the pending quiz for key,
	// replacing any earlier one.
	GenerateQuiz(ctx context.Context, key string, req StudyRequest) ([]domain.Question, error)

	// SubmitQuiz grades sub against the pending quiz for key and clears it.
	// Returns ErrNoActiveQuiz when nothing gradeable is pending.
	SubmitQuiz(ctx context.Context, key string, sub domain.Submission) (domain.Result, error)

	// CreateDeck generates flashcards and persists them as a new deck.
	CreateDeck(ctx context.Context, req StudyRequest) (*domain.Deck, error)

	// ListDecks returns every deck, newest first, without cards.
	ListDecks(ctx context.Context) ([]*domain.Deck, error)

	// GetDeck returns a deck with its cards in order.
	GetDeck(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// DeleteDeck removes a deck and its cards.
	DeleteDeck(ctx context.Context, id uuid.UUID) error
}

type studyServiceImpl struct {
	quizzes      QuizGenerator
	cards        FlashcardGenerator
	decks        store.DeckStore
	pending      store.PendingQuizStore
	maxQuestions int
	logger       *slog.Logger
}

var _ StudyService = (*studyServiceImpl)(nil)

// NewStudyService creates a StudyService.
// It returns an error if any of the required dependencies are nil.
// A maxQuestions of zero or less falls back to DefaultMaxQuestions.
func NewStudyService(
	quizzes QuizGenerator,
	cards FlashcardGenerator,
	decks store.DeckStore,
	pending store.PendingQuizStore,
	maxQuestions int,
	log *slog.Logger,
) (StudyService, error) {
	if quizzes == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "quiz generator cannot be nil"}
	}
	if cards == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "flashcard generator cannot be nil"}
	}
	if decks == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "deck store cannot be nil"}
	}
	if pending == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "pending quiz store cannot be nil"}
	}
	if log == nil {
		log = slog.Default()
	}
	if maxQuestions <= 0 {
		maxQuestions = DefaultMaxQuestions
	}

	return &studyServiceImpl{
		quizzes:      quizzes,
		cards:        cards,
		decks:        decks,
		pending:      pending,
		maxQuestions: maxQuestions,
		logger:       log.With(slog.String("component", "study_service")),
	}, nil
}

func (s *studyServiceImpl) MaxQuestions() int {
	return s.maxQuestions
}

func (s *studyServiceImpl) ParseRequest(sourceText, count string) (StudyRequest, error) {
	sourceText = strings.TrimSpace(sourceText)
	if sourceText == "" {
		return StudyRequest{}, ErrEmptySourceText
	}

	count = strings.TrimSpace(count)
	if !isDigits(count) {
		return StudyRequest{}, ErrInvalidCount
	}

	// Digit strings that overflow int are simply too large.
	n, err := strconv.Atoi(count)
	if err != nil || n < 1 || n > s.maxQuestions {
		return StudyRequest{}, ErrCountOutOfRange
	}

	return StudyRequest{SourceText: sourceText, Count: n}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *studyServiceImpl) GenerateQuiz(ctx context.Context, key string, req StudyRequest) ([]domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	questions, err := s.quizzes.GenerateQuiz(ctx, req.SourceText, req.Count)
	if err != nil {
		log.ErrorContext(ctx, "quiz generation failed",
			slog.Int("count", req.Count),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.pending.Put(ctx, key, questions); err != nil {
		return nil, NewServiceError("generate_quiz", "failed to store pending quiz", err)
	}

	log.InfoContext(ctx, "quiz generated",
		slog.Int("requested", req.Count),
		slog.Int("questions", len(questions)))
	return questions, nil
}

func (s *studyServiceImpl) SubmitQuiz(ctx context.Context, key string, sub domain.Submission) (domain.Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	questions, err := s.pending.Take(ctx, key)
	if err != nil {
		return domain.Result{}, NewServiceError("submit_quiz", "failed to load pending quiz", err)
	}
	if len(questions) == 0 {
		return domain.Result{}, ErrNoActiveQuiz
	}

	result, err := grading.Grade(questions, sub)
	if err != nil {
		log.WarnContext(ctx, "pending quiz could not be graded", slog.String("error", err.Error()))
		return domain.Result{}, NewServiceError("submit_quiz", "failed to grade quiz", err)
	}

	log.InfoContext(ctx, "quiz graded",
		slog.Int("total", result.Total),
		slog.Int("correct", result.Correct),
		slog.Int("wrong", result.Wrong),
		slog.Int("blank", result.Blank),
		slog.String("score", result.Score))
	return result, nil
}

func (s *studyServiceImpl) CreateDeck(ctx context.Context, req StudyRequest) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cards.GenerateFlashcards(ctx, req.SourceText, req.Count)
	if err != nil {
		log.ErrorContext(ctx, "flashcard generation failed",
			slog.Int("count", req.Count),
			slog.String("error", err.Error()))
		return nil, err
	}

	deck, err := domain.NewDeck(domain.TopicFromSource(req.SourceText), cards)
	if err != nil {
		return nil, NewServiceError("create_deck", "generated deck is invalid", err)
	}

	if err := s.decks.Create(ctx, deck); err != nil {
		return nil, NewServiceError("create_deck", "failed to save deck", err)
	}

	log.InfoContext(ctx, "deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("cards", len(deck.Cards)))
	return deck, nil
}

func (s *studyServiceImpl) ListDecks(ctx context.Context) ([]*domain.Deck, error) {
	decks, err := s.decks.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_decks", "failed to list decks", err)
	}
	return decks, nil
}

func (s *studyServiceImpl) GetDeck(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	deck, err := s.decks.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("get_deck", "failed to load deck", err)
	}
	return deck, nil
}

func (s *studyServiceImpl) DeleteDeck(ctx context.Context, id uuid.UUID) error {
	if err := s.decks.Delete(ctx, id); err != nil {
		if !errors.Is(err, store.ErrDeckNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).ErrorContext(ctx, "deck deletion failed",
				slog.String("deck_id", id.String()),
				slog.String("error", err.Error()))
		}
		return NewServiceError("delete_deck", "failed to delete deck", err)
	}
	return nil
}
