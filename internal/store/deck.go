package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-study/internal/domain"
)

// DeckStore persists flashcard decks together with their cards.
type DeckStore interface {
	// Create inserts the deck and all of its cards. Implementations must make
	// the write atomic: either the deck and every card are stored, or nothing is.
	// Returns ErrInvalidEntity if the deck fails domain validation.
	Create(ctx context.Context, deck *domain.Deck) error

	// List returns all decks, newest first, without their cards.
	List(ctx context.Context) ([]*domain.Deck, error)

	// GetByID returns the deck with its cards ordered by position.
	// Returns ErrDeckNotFound if no such deck exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// Delete removes the deck and every card it owns.
	// Returns ErrDeckNotFound if no such deck exists.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a DeckStore whose operations run inside tx.
	WithTx(tx *sql.Tx) DeckStore
}
