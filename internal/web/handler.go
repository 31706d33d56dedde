package web

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/redact"
	"github.com/phrazzld/scry-study/internal/service"
	"github.com/phrazzld/scry-study/internal/session"
)

// Flash messages shown on the input form.
const (
	msgEmptyText    = "Paste the study text first."
	msgInvalidCount = "Invalid number."
	msgNoActiveQuiz = "No active quiz."
)

// Form field names.
const (
	fieldText   = "program_text"
	fieldCount  = "num_questions"
	fieldAction = "action"

	actionFlashcards = "flashcards"
	answerPrefix     = "q"
)

type pageData struct {
	Flashes      []string
	MaxQuestions int
	Questions    []domain.Question
	Result       domain.Result
	Decks        []*domain.Deck
	Deck         *domain.Deck
}

// Handler serves the HTML pages.
type Handler struct {
	studyService service.StudyService
	cookies      *session.CookieManager
	templates    map[string]*template.Template
	logger       *slog.Logger
}

// NewHandler creates a Handler, parsing the embedded page templates.
func NewHandler(studyService service.StudyService, cookies *session.CookieManager, log *slog.Logger) (*Handler, error) {
	if studyService == nil {
		return nil, errors.New("study service cannot be nil")
	}
	if cookies == nil {
		return nil, errors.New("cookie manager cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &Handler{
		studyService: studyService,
		cookies:      cookies,
		templates:    templates,
		logger:       log.With(slog.String("component", "web_handler")),
	}, nil
}

// Routes registers the HTML routes on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Index)
	r.Post("/generate", h.Generate)
	r.Post("/submit", h.Submit)
	r.Get("/saved_flashcards", h.SavedDecks)
	r.Get("/flashcards/{id}", h.ViewDeck)
	r.Post("/flashcards/{id}/delete", h.DeleteDeck)
}

// Index handles GET / and shows the input form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageIndex, pageData{
		Flashes:      h.flashes(w, r),
		MaxQuestions: h.studyService.MaxQuestions(),
	})
}

// Generate handles POST /generate. It builds a quiz (the default) or a
// flashcard deck depending on the action field.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := h.studyService.ParseRequest(r.PostFormValue(fieldText), r.PostFormValue(fieldCount))
	if err != nil {
		h.flashAndRedirect(w, r, h.validationMessage(err), "/")
		return
	}

	if r.PostFormValue(fieldAction) == actionFlashcards {
		deck, err := h.studyService.CreateDeck(ctx, req)
		if err != nil {
			h.flashAndRedirect(w, r, "Flashcard error: "+redact.Error(err), "/")
			return
		}
		http.Redirect(w, r, "/flashcards/"+deck.ID.String(), http.StatusSeeOther)
		return
	}

	// The session is written exactly once below, by the flash or by Save.
	key := h.cookies.Key(r)

	questions, err := h.studyService.GenerateQuiz(ctx, key, req)
	if err != nil {
		h.flashAndRedirect(w, r, "Quiz error: "+redact.Error(err), "/")
		return
	}

	if err := h.cookies.Save(w, r); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, pageQuiz, pageData{Questions: questions})
}

func (h *Handler) validationMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrEmptySourceText):
		return msgEmptyText
	case errors.Is(err, service.ErrInvalidCount):
		return msgInvalidCount
	case errors.Is(err, service.ErrCountOutOfRange):
		return fmt.Sprintf("The number must be between 1 and %d.", h.studyService.MaxQuestions())
	default:
		return redact.Error(err)
	}
}

// Submit handles POST /submit and grades the pending quiz.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	key, ok := h.cookies.ExistingKey(r)
	if !ok {
		h.flashAndRedirect(w, r, msgNoActiveQuiz, "/")
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	result, err := h.studyService.SubmitQuiz(r.Context(), key, submissionFromForm(r))
	if err != nil {
		if errors.Is(err, service.ErrNoActiveQuiz) {
			h.flashAndRedirect(w, r, msgNoActiveQuiz, "/")
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, pageResult, pageData{Result: result})
}

// submissionFromForm collects the q0, q1, ... fields. Other fields and
// non-canonical indexes such as q01 or q+1 are ignored.
func submissionFromForm(r *http.Request) domain.Submission {
	sub := make(domain.Submission)
	for name, values := range r.PostForm {
		if !strings.HasPrefix(name, answerPrefix) || len(values) == 0 {
			continue
		}
		suffix := strings.TrimPrefix(name, answerPrefix)
		i, err := strconv.Atoi(suffix)
		if err != nil || i < 0 || strconv.Itoa(i) != suffix {
			continue
		}
		sub[i] = values[0]
	}
	return sub
}

// SavedDecks handles GET /saved_flashcards.
func (h *Handler) SavedDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.studyService.ListDecks(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, pageDecks, pageData{Flashes: h.flashes(w, r), Decks: decks})
}

// ViewDeck handles GET /flashcards/{id}.
func (h *Handler) ViewDeck(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	deck, err := h.studyService.GetDeck(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDeckNotFound) {
			http.NotFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, pageDeck, pageData{Deck: deck})
}

// DeleteDeck handles POST /flashcards/{id}/delete.
func (h *Handler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.studyService.DeleteDeck(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrDeckNotFound) {
			http.NotFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.flashAndRedirect(w, r, "Deck deleted.", "/saved_flashcards")
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) flashes(w http.ResponseWriter, r *http.Request) []string {
	msgs, err := h.cookies.Flashes(w, r)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			WarnContext(r.Context(), "failed to read flash messages", slog.String("error", err.Error()))
	}
	return msgs
}

func (h *Handler) flashAndRedirect(w http.ResponseWriter, r *http.Request, msg, to string) {
	if err := h.cookies.AddFlash(w, r, msg); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			WarnContext(r.Context(), "failed to store flash message", slog.String("error", err.Error()))
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContextOrDefault(r.Context(), h.logger).ErrorContext(r.Context(), "request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", redact.Error(err)))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
