package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/store"
)

type pendingQuiz struct {
	questions []domain.Question
	expiresAt time.Time // zero means never
}

// MemoryQuizStore is a process-local store.PendingQuizStore.
// Quizzes do not survive a restart. With a TTL set, a quiz that was not taken
// in time is dropped; expired entries are swept on every Put.
type MemoryQuizStore struct {
	mu       sync.Mutex
	quizzes  map[string]pendingQuiz
	ttl      time.Duration
	timeFunc func() time.Time
	logger   *slog.Logger
}

var _ store.PendingQuizStore = (*MemoryQuizStore)(nil)

// NewMemoryQuizStore creates an empty MemoryQuizStore. A ttl of zero or less
// keeps quizzes until they are taken.
func NewMemoryQuizStore(logger *slog.Logger, ttl time.Duration) *MemoryQuizStore {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl < 0 {
		ttl = 0
	}
	return &MemoryQuizStore{
		quizzes:  make(map[string]pendingQuiz),
		ttl:      ttl,
		timeFunc: time.Now,
		logger:   logger.With(slog.String("component", "pending_quiz_store")),
	}
}

// WithTimeFunc makes s read the current time from now. Call it before the
// store is shared.
func (s *MemoryQuizStore) WithTimeFunc(now func() time.Time) *MemoryQuizStore {
	s.timeFunc = now
	return s
}

// Put implements store.PendingQuizStore.Put.
func (s *MemoryQuizStore) Put(ctx context.Context, key string, questions []domain.Question) error {
	if key == "" {
		return errors.New("session key cannot be empty")
	}

	copied := make([]domain.Question, len(questions))
	copy(copied, questions)

	s.mu.Lock()
	now := s.timeFunc()
	swept := s.sweepLocked(now)
	_, replaced := s.quizzes[key]
	entry := pendingQuiz{questions: copied}
	if s.ttl > 0 {
		entry.expiresAt = now.Add(s.ttl)
	}
	s.quizzes[key] = entry
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "pending quiz stored",
		"questions", len(questions),
		"replaced", replaced,
		"expired_swept", swept)
	return nil
}

// Take implements store.PendingQuizStore.Take. An expired quiz is dropped
// and reported as ErrQuizNotFound.
func (s *MemoryQuizStore) Take(ctx context.Context, key string) ([]domain.Question, error) {
	s.mu.Lock()
	entry, ok := s.quizzes[key]
	delete(s.quizzes, key)
	now := s.timeFunc()
	s.mu.Unlock()

	if !ok || entry.expired(now) {
		return nil, store.ErrQuizNotFound
	}
	return entry.questions, nil
}

// Len reports how many quizzes are held, including expired ones not yet swept.
func (s *MemoryQuizStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.quizzes)
}

func (s *MemoryQuizStore) sweepLocked(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	n := 0
	for key, entry := range s.quizzes {
		if entry.expired(now) {
			delete(s.quizzes, key)
			n++
		}
	}
	return n
}

func (p pendingQuiz) expired(now time.Time) bool {
	return !p.expiresAt.IsZero() && !now.Before(p.expiresAt)
}
