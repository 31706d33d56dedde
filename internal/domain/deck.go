package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Deck and flashcard validation errors
var (
	// ErrDeckIDEmpty is returned when a deck ID is empty or nil.
	ErrDeckIDEmpty = errors.New("deck ID cannot be empty")

	// ErrDeckTopicEmpty is returned when a deck has no topic.
	ErrDeckTopicEmpty = errors.New("deck topic cannot be empty")

	// ErrDeckTopicTooLong is returned when a topic exceeds MaxTopicLength characters.
	ErrDeckTopicTooLong = errors.New("deck topic is too long")

	// ErrCardFrontEmpty is returned when a flashcard has no front side.
	ErrCardFrontEmpty = errors.New("flashcard front cannot be empty")

	// ErrCardBackEmpty is returned when a flashcard has no back side.
	ErrCardBackEmpty = errors.New("flashcard back cannot be empty")
)

const (
	// topicRunes is how much of the source text is kept as a deck label.
	topicRunes = 50

	// MaxTopicLength matches the width of the decks.topic column.
	MaxTopicLength = 200
)

// Flashcard is one front/back pair belonging to exactly one Deck.
type Flashcard struct {
	ID       uuid.UUID `json:"id"`
	DeckID   uuid.UUID `json:"deck_id"`
	Front    string    `json:"front"`
	Back     string    `json:"back"`
	Position int       `json:"position"`
}

// Validate checks that both sides of the card carry text.
func (c Flashcard) Validate() error {
	if strings.TrimSpace(c.Front) == "" {
		return ErrCardFrontEmpty
	}
	if strings.TrimSpace(c.Back) == "" {
		return ErrCardBackEmpty
	}
	return nil
}

// Deck is a persisted, ordered collection of flashcards generated from one
// block of study text. A deck exclusively owns its cards.
type Deck struct {
	ID        uuid.UUID   `json:"id"`
	Topic     string      `json:"topic"`
	CreatedAt time.Time   `json:"created_at"`
	Cards     []Flashcard `json:"cards"`
}

// NewDeck creates a Deck with a fresh ID and creation timestamp and attaches
// cards to it in order. Returns an error if the deck or any card is invalid.
func NewDeck(topic string, cards []Flashcard) (*Deck, error) {
	deck := &Deck{
		ID:        uuid.New(),
		Topic:     topic,
		CreatedAt: time.Now().UTC(),
		Cards:     make([]Flashcard, 0, len(cards)),
	}

	for i, c := range cards {
		deck.Cards = append(deck.Cards, Flashcard{
			ID:       uuid.New(),
			DeckID:   deck.ID,
			Front:    c.Front,
			Back:     c.Back,
			Position: i,
		})
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks the deck and each of its cards.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}

	if strings.TrimSpace(d.Topic) == "" {
		return ErrDeckTopicEmpty
	}

	if utf8.RuneCountInString(d.Topic) > MaxTopicLength {
		return ErrDeckTopicTooLong
	}

	for _, c := range d.Cards {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// TopicFromSource derives a short deck label from study text: the first 50
// characters with newlines replaced by spaces, followed by an ellipsis.
func TopicFromSource(source string) string {
	runes := []rune(source)
	if len(runes) > topicRunes {
		runes = runes[:topicRunes]
	}
	return strings.ReplaceAll(string(runes), "\n", " ") + "..."
}
