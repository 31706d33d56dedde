package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/scry-study/internal/api/shared"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/service"
	"github.com/phrazzld/scry-study/internal/session"
)

// QuizTokens issues and validates the tokens that tie an API client to its
// pending quiz.
type QuizTokens interface {
	Issue(ctx context.Context, key string) (string, error)
	Validate(ctx context.Context, token string) (string, error)
}

// QuizHandler handles quiz generation and grading over JSON.
type QuizHandler struct {
	studyService service.StudyService
	tokens       QuizTokens
	logger       *slog.Logger
}

// NewQuizHandler creates a new QuizHandler
func NewQuizHandler(studyService service.StudyService, tokens QuizTokens, logger *slog.Logger) *QuizHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for QuizHandler")
	}
	return &QuizHandler{
		studyService: studyService,
		tokens:       tokens,
		logger:       logger.With(slog.String("component", "quiz_handler")),
	}
}

// CreateQuiz handles POST /api/quizzes requests.
func (h *QuizHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	studyReq, ok := decodeGenerateRequest(w, r, h.studyService)
	if !ok {
		return
	}

	key := session.NewKey()
	token, err := h.tokens.Issue(ctx, key)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to issue quiz token")
		return
	}

	questions, err := h.studyService.GenerateQuiz(ctx, key, studyReq)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate quiz")
		return
	}

	log.Debug("quiz created", slog.Int("questions", len(questions)))
	shared.RespondWithJSON(w, r, http.StatusCreated, QuizResponse{
		QuizToken: token,
		Questions: questionsToResponse(questions),
	})
}

// SubmitQuiz handles POST /api/quizzes/submit requests.
func (h *QuizHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SubmitQuizRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	sub, err := answersToSubmission(req.Answers)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Answer keys must be question indexes", err)
		return
	}

	key, err := h.tokens.Validate(ctx, req.QuizToken)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.studyService.SubmitQuiz(ctx, key, sub)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to grade quiz")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

func answersToSubmission(answers map[string]string) (domain.Submission, error) {
	sub := make(domain.Submission, len(answers))
	for k, v := range answers {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 {
			return nil, fmt.Errorf("invalid answer key %q", k)
		}
		sub[i] = v
	}
	return sub, nil
}

// decodeGenerateRequest decodes and validates a GenerateRequest, writing the
// error response itself when it returns false.
func decodeGenerateRequest(w http.ResponseWriter, r *http.Request, svc service.StudyService) (service.StudyRequest, bool) {
	var req GenerateRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return service.StudyRequest{}, false
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return service.StudyRequest{}, false
	}

	studyReq, err := svc.ParseRequest(req.SourceText, strconv.Itoa(req.Count))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return service.StudyRequest{}, false
	}
	return studyReq, true
}
