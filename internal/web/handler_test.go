package web

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/generation"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/service"
	"github.com/phrazzld/scry-study/internal/session"
	"github.com/phrazzld/scry-study/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuizGenerator struct {
	questions []domain.Question
	err       error
}

func (s *stubQuizGenerator) GenerateQuiz(ctx context.Context, sourceText string, count int) ([]domain.Question, error) {
	return s.questions, s.err
}

type stubFlashcardGenerator struct {
	cards []domain.Flashcard
	err   error
}

func (s *stubFlashcardGenerator) GenerateFlashcards(ctx context.Context, sourceText string, count int) ([]domain.Flashcard, error) {
	return s.cards, s.err
}

// memoryDeckStore is a map-backed store.DeckStore for handler tests.
type memoryDeckStore struct {
	mu    sync.Mutex
	decks map[uuid.UUID]*domain.Deck
}

func newMemoryDeckStore() *memoryDeckStore {
	return &memoryDeckStore{decks: make(map[uuid.UUID]*domain.Deck)}
}

func (m *memoryDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decks[deck.ID] = deck
	return nil
}

func (m *memoryDeckStore) List(ctx context.Context) ([]*domain.Deck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Deck, 0, len(m.decks))
	for _, d := range m.decks {
		out = append(out, &domain.Deck{ID: d.ID, Topic: d.Topic, CreatedAt: d.CreatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.decks[id]
	if !ok {
		return nil, store.ErrDeckNotFound
	}
	return d, nil
}

func (m *memoryDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.decks[id]; !ok {
		return store.ErrDeckNotFound
	}
	delete(m.decks, id)
	return nil
}

func (m *memoryDeckStore) WithTx(tx *sql.Tx) store.DeckStore { return m }

type testApp struct {
	router  http.Handler
	quizzes *stubQuizGenerator
	cards   *stubFlashcardGenerator
	decks   *memoryDeckStore
	cookies []*http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log, _ := logger.NewTestLogger(t)

	app := &testApp{
		quizzes: &stubQuizGenerator{},
		cards:   &stubFlashcardGenerator{},
		decks:   newMemoryDeckStore(),
	}
	svc, err := service.NewStudyService(app.quizzes, app.cards, app.decks, session.NewMemoryQuizStore(log, time.Hour), 50, log)
	require.NoError(t, err)

	h, err := NewHandler(svc, session.NewCookieManager("test-secret-that-is-at-least-32-characters", false), log)
	require.NoError(t, err)

	r := chi.NewRouter()
	h.Routes(r)
	r.Get("/health", Health)
	app.router = r
	return app
}

// do sends a request carrying the cookies collected so far, like a browser.
func (a *testApp) do(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range a.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	// Like a browser, a later cookie replaces an earlier one of the same name.
	for _, c := range rec.Result().Cookies() {
		replaced := false
		for i, have := range a.cookies {
			if have.Name == c.Name {
				a.cookies[i] = c
				replaced = true
			}
		}
		if !replaced {
			a.cookies = append(a.cookies, c)
		}
	}
	return rec
}

func generateForm(text, count, action string) url.Values {
	return url.Values{fieldText: {text}, fieldCount: {count}, fieldAction: {action}}
}

func TestGenerate_ValidationFlashes(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		count string
		want  string
	}{
		{"empty text", "   ", "5", "Paste the study text first."},
		{"not a number", "notes", "five", "Invalid number."},
		{"negative", "notes", "-1", "Invalid number."},
		{"zero", "notes", "0", "The number must be between 1 and 50."},
		{"too many", "notes", "51", "The number must be between 1 and 50."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)

			rec := app.do(t, http.MethodPost, "/generate", generateForm(tt.text, tt.count, "quiz"))
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/", rec.Header().Get("Location"))

			page := app.do(t, http.MethodGet, "/", nil)
			assert.Equal(t, http.StatusOK, page.Code)
			assert.Contains(t, page.Body.String(), tt.want)

			again := app.do(t, http.MethodGet, "/", nil)
			assert.NotContains(t, again.Body.String(), tt.want, "flash should be shown once")
		})
	}
}

func TestQuizFlow(t *testing.T) {
	app := newTestApp(t)
	app.quizzes.questions = []domain.Question{
		{Text: "Capital of France?", QType: domain.QuestionTypeMCQ, Options: []string{"A", "B", "C", "D"}, Answer: "A"},
		{Text: "Capital of Italy?", QType: domain.QuestionTypeOpen, Answer: "Rome"},
		{Text: "Capital of Spain?", QType: domain.QuestionTypeOpen, Answer: "Madrid"},
	}

	rec := app.do(t, http.MethodPost, "/generate", generateForm("European capitals", "3", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Capital of France?")
	assert.Contains(t, body, `name="q0" value="A"`)
	assert.Contains(t, body, `type="text" name="q1"`)
	assert.NotContains(t, body, "Madrid")

	rec = app.do(t, http.MethodPost, "/submit", url.Values{"q0": {"A"}, "q1": {" rome "}, "q2": {"Lisbon"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "Result: 1.90")
	assert.Contains(t, body, "2 correct, 1 wrong, 0 blank out of 3")

	// The pending quiz is consumed by grading.
	rec = app.do(t, http.MethodPost, "/submit", url.Values{"q0": {"A"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	page := app.do(t, http.MethodGet, "/", nil)
	assert.Contains(t, page.Body.String(), "No active quiz.")
}

func TestSubmit_WithoutSession(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/submit", url.Values{"q0": {"A"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	page := app.do(t, http.MethodGet, "/", nil)
	assert.Contains(t, page.Body.String(), "No active quiz.")
}

func TestGenerate_QuizError(t *testing.T) {
	app := newTestApp(t)
	app.quizzes.err = &generation.GenerationError{Op: "generate quiz", Err: generation.ErrUnexpectedFormat}

	rec := app.do(t, http.MethodPost, "/generate", generateForm("notes", "3", "quiz"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Len(t, rec.Result().Header.Values("Set-Cookie"), 1, "session cookie must be written once")

	page := app.do(t, http.MethodGet, "/", nil)
	assert.Contains(t, page.Body.String(), "Quiz error: generate quiz: unexpected JSON format")
}

func TestGenerate_QuizWritesSessionOnce(t *testing.T) {
	app := newTestApp(t)
	app.quizzes.questions = []domain.Question{{Text: "Capital of Italy?", QType: domain.QuestionTypeOpen, Answer: "Rome"}}

	rec := app.do(t, http.MethodPost, "/generate", generateForm("notes", "1", "quiz"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Result().Header.Values("Set-Cookie"), 1)

	rec = app.do(t, http.MethodPost, "/submit", url.Values{"q0": {"rome"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Result: 1.00")
}

func TestSubmissionFromForm_CanonicalIndexes(t *testing.T) {
	form := url.Values{
		"q0":      {"A"},
		"q1":      {"X"},
		"q01":     {"shadow"},
		"q+2":     {"plus"},
		"q00":     {"zeros"},
		"q-1":     {"negative"},
		"qx":      {"letters"},
		"program": {"ignored"},
	}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.NoError(t, req.ParseForm())

	assert.Equal(t, domain.Submission{0: "A", 1: "X"}, submissionFromForm(req))
}

func TestFlashcardFlow(t *testing.T) {
	app := newTestApp(t)
	app.cards.cards = []domain.Flashcard{
		{Front: "Mitochondria", Back: "Powerhouse of the cell"},
		{Front: "Ribosome", Back: "Builds proteins"},
	}

	rec := app.do(t, http.MethodPost, "/generate", generateForm("Cell biology\nchapter 2", "2", "flashcards"))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	location := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/flashcards/"), "unexpected redirect %s", location)

	rec = app.do(t, http.MethodGet, location, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Cell biology chapter 2...")
	assert.Less(t, strings.Index(body, "Mitochondria"), strings.Index(body, "Ribosome"))

	rec = app.do(t, http.MethodGet, "/saved_flashcards", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), location)

	rec = app.do(t, http.MethodPost, location+"/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/saved_flashcards", rec.Header().Get("Location"))

	rec = app.do(t, http.MethodGet, location, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerate_FlashcardError(t *testing.T) {
	app := newTestApp(t)
	app.cards.err = &generation.GenerationError{Op: "generate flashcards", Err: generation.ErrInvalidCard}

	rec := app.do(t, http.MethodPost, "/generate", generateForm("notes", "2", "flashcards"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	page := app.do(t, http.MethodGet, "/", nil)
	assert.Contains(t, page.Body.String(), "Flashcard error: generate flashcards: invalid flashcard in response")
	assert.Empty(t, app.decks.decks)
}

func TestViewDeck_NotFound(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/flashcards/42", "/flashcards/" + uuid.NewString()} {
		rec := app.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestSavedDecks_Empty(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/saved_flashcards", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No decks saved yet.")
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
