package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/phrazzld/scry-study/internal/completion"
	"github.com/phrazzld/scry-study/internal/domain"
)

// FlashcardGenerator produces front/back flashcards from study text.
type FlashcardGenerator struct {
	completer completion.Completer
	logger    *slog.Logger
	prompt    *template.Template
	policy    *bluemonday.Policy
}

type cardSchema struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// NewFlashcardGenerator creates a FlashcardGenerator. templatePath optionally
// replaces the built-in prompt; it is rendered with Count and SourceText.
func NewFlashcardGenerator(completer completion.Completer, logger *slog.Logger, templatePath string) (*FlashcardGenerator, error) {
	if completer == nil {
		return nil, errors.New("completer cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	tmpl, err := loadTemplate(flashcardTemplateName, templatePath)
	if err != nil {
		return nil, err
	}

	return &FlashcardGenerator{
		completer: completer,
		logger:    logger.With(slog.String("component", "flashcard_generator")),
		prompt:    tmpl,
		policy:    bluemonday.UGCPolicy(),
	}, nil
}

// GenerateFlashcards asks the completion service for count cards about
// sourceText. Card text is sanitised as untrusted HTML before it is returned.
// The returned cards have no IDs; domain.NewDeck assigns them.
func (g *FlashcardGenerator) GenerateFlashcards(ctx context.Context, sourceText string, count int) ([]domain.Flashcard, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: card count must be positive, got %d", ErrInvalidArgument, count)
	}

	prompt, err := render(g.prompt, flashcardPromptData{
		Count:      count,
		SourceText: sourceText,
	})
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "Generating flashcards",
		"count", count,
		"source_length", len(sourceText))

	raw, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, g.fail(ctx, raw, err)
	}

	cards, err := g.decodeCards(ExtractJSON(raw))
	if err != nil {
		return nil, g.fail(ctx, raw, err)
	}

	g.logger.InfoContext(ctx, "Flashcards generated", "cards", len(cards))
	return cards, nil
}

func (g *FlashcardGenerator) fail(ctx context.Context, raw string, err error) error {
	g.logger.ErrorContext(ctx, "Flashcard generation failed",
		"error", err,
		"raw_response", raw)
	return &GenerationError{Op: "generate flashcards", Raw: raw, Err: err}
}

func (g *FlashcardGenerator) decodeCards(payload string) ([]domain.Flashcard, error) {
	trimmed := strings.TrimSpace(payload)
	if json.Valid([]byte(trimmed)) && !strings.HasPrefix(trimmed, "[") {
		return nil, fmt.Errorf("%w: expected an array of cards", ErrUnexpectedFormat)
	}

	var schemas []cardSchema
	if err := json.Unmarshal([]byte(trimmed), &schemas); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	cards := make([]domain.Flashcard, 0, len(schemas))
	for i, s := range schemas {
		front := strings.TrimSpace(g.policy.Sanitize(s.Front))
		back := strings.TrimSpace(g.policy.Sanitize(s.Back))
		if front == "" {
			return nil, fmt.Errorf("%w: card %d missing front side", ErrInvalidCard, i)
		}
		if back == "" {
			return nil, fmt.Errorf("%w: card %d missing back side", ErrInvalidCard, i)
		}
		cards = append(cards, domain.Flashcard{
			Front:    front,
			Back:     back,
			Position: i,
		})
	}
	return cards, nil
}
