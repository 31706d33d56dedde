package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-study/internal/domain"
)

// GenerateRequest is the payload for quiz and deck generation.
type GenerateRequest struct {
	SourceText string `json:"source_text" validate:"required"`
	Count      int    `json:"count"       validate:"required,min=1"`
}

// QuestionResponse is a quiz question as shown to the client. The expected
// answer is withheld until the quiz is submitted.
type QuestionResponse struct {
	Index   int                 `json:"index"`
	Text    string              `json:"text"`
	QType   domain.QuestionType `json:"qtype"`
	Options []string            `json:"options,omitempty"`
}

// QuizResponse is returned when a quiz is generated. QuizToken must be sent
// back with the answers.
type QuizResponse struct {
	QuizToken string             `json:"quiz_token"`
	Questions []QuestionResponse `json:"questions"`
}

// SubmitQuizRequest carries answers keyed by question index ("0", "1", ...).
type SubmitQuizRequest struct {
	QuizToken string            `json:"quiz_token" validate:"required"`
	Answers   map[string]string `json:"answers"`
}

// FlashcardResponse is one card of a deck.
type FlashcardResponse struct {
	ID       uuid.UUID `json:"id"`
	Front    string    `json:"front"`
	Back     string    `json:"back"`
	Position int       `json:"position"`
}

// DeckResponse is a deck with its cards in order.
type DeckResponse struct {
	ID        uuid.UUID           `json:"id"`
	Topic     string              `json:"topic"`
	CreatedAt time.Time           `json:"created_at"`
	Cards     []FlashcardResponse `json:"cards"`
}

// DeckSummary is a deck as listed, without cards.
type DeckSummary struct {
	ID        uuid.UUID `json:"id"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
}

// DeckListResponse lists decks newest first.
type DeckListResponse struct {
	Decks []DeckSummary `json:"decks"`
}

func questionsToResponse(questions []domain.Question) []QuestionResponse {
	out := make([]QuestionResponse, len(questions))
	for i, q := range questions {
		out[i] = QuestionResponse{
			Index:   i,
			Text:    q.Text,
			QType:   q.QType,
			Options: q.Options,
		}
	}
	return out
}

func deckToResponse(deck *domain.Deck) DeckResponse {
	cards := make([]FlashcardResponse, len(deck.Cards))
	for i, c := range deck.Cards {
		cards[i] = FlashcardResponse{
			ID:       c.ID,
			Front:    c.Front,
			Back:     c.Back,
			Position: c.Position,
		}
	}
	return DeckResponse{
		ID:        deck.ID,
		Topic:     deck.Topic,
		CreatedAt: deck.CreatedAt,
		Cards:     cards,
	}
}

func decksToListResponse(decks []*domain.Deck) DeckListResponse {
	out := make([]DeckSummary, len(decks))
	for i, d := range decks {
		out[i] = DeckSummary{ID: d.ID, Topic: d.Topic, CreatedAt: d.CreatedAt}
	}
	return DeckListResponse{Decks: out}
}
