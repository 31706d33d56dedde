package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/phrazzld/scry-study/internal/completion"
	"github.com/phrazzld/scry-study/internal/domain"
)

// QuizGenerator produces quiz questions from study text.
type QuizGenerator struct {
	completer completion.Completer
	logger    *slog.Logger
	prompt    *template.Template
}

// NewQuizGenerator creates a QuizGenerator. templatePath optionally replaces
// the built-in prompt; it is rendered with Count, MCQ, Open and SourceText.
func NewQuizGenerator(completer completion.Completer, logger *slog.Logger, templatePath string) (*QuizGenerator, error) {
	if completer == nil {
		return nil, errors.New("completer cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	tmpl, err := loadTemplate(quizTemplateName, templatePath)
	if err != nil {
		return nil, err
	}

	return &QuizGenerator{
		completer: completer,
		logger:    logger.With(slog.String("component", "quiz_generator")),
		prompt:    tmpl,
	}, nil
}

// GenerateQuiz asks the completion service for count questions about
// sourceText, mixing multiple-choice and open questions. The mix is a request
// to the model; the returned questions are not checked against it.
func (g *QuizGenerator) GenerateQuiz(ctx context.Context, sourceText string, count int) ([]domain.Question, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: question count must be positive, got %d", ErrInvalidArgument, count)
	}

	mix := domain.NewQuestionMix(count)
	prompt, err := render(g.prompt, quizPromptData{
		Count:      count,
		MCQ:        mix.MCQ,
		Open:       mix.Open,
		SourceText: sourceText,
	})
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "Generating quiz",
		"count", count,
		"mcq", mix.MCQ,
		"open", mix.Open,
		"source_length", len(sourceText))

	raw, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, g.fail(ctx, raw, err)
	}

	questions, err := decodeQuestions(ExtractJSON(raw))
	if err != nil {
		return nil, g.fail(ctx, raw, err)
	}

	g.logger.InfoContext(ctx, "Quiz generated", "questions", len(questions))
	return questions, nil
}

func (g *QuizGenerator) fail(ctx context.Context, raw string, err error) error {
	g.logger.ErrorContext(ctx, "Quiz generation failed",
		"error", err,
		"raw_response", raw)
	return &GenerationError{Op: "generate quiz", Raw: raw, Err: err}
}

// decodeQuestions accepts either a bare array of questions or an object
// carrying them under "questions". The shape is chosen by the first token.
func decodeQuestions(payload string) ([]domain.Question, error) {
	data := []byte(payload)
	if !json.Valid(data) {
		var probe any
		err := json.Unmarshal(data, &probe)
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	data = bytes.TrimSpace(data)
	switch data[0] {
	case '[':
		var questions []domain.Question
		if err := json.Unmarshal(data, &questions); err != nil {
			return nil, fmt.Errorf("failed to decode questions: %w", err)
		}
		return questions, nil

	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("failed to decode response object: %w", err)
		}
		raw, ok := envelope["questions"]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, fmt.Errorf("%w: missing %q key", ErrUnexpectedFormat, "questions")
		}
		var questions []domain.Question
		if err := json.Unmarshal(raw, &questions); err != nil {
			return nil, fmt.Errorf("%w: %q is not a list of questions: %v", ErrUnexpectedFormat, "questions", err)
		}
		return questions, nil

	default:
		return nil, fmt.Errorf("%w: expected an object or array", ErrUnexpectedFormat)
	}
}
