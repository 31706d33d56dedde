package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/store"
)

// DeckStore implements store.DeckStore on a SQL database.
type DeckStore struct {
	db      store.DBTX
	conn    *sql.DB // nil when bound to a transaction
	dialect Dialect
	logger  *slog.Logger
}

// Ensure DeckStore implements store.DeckStore interface
var _ store.DeckStore = (*DeckStore)(nil)

// NewDeckStore creates a DeckStore on db. If logger is nil, a default logger will be used.
func NewDeckStore(db *sql.DB, dialect Dialect, logger *slog.Logger) *DeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DeckStore{
		db:      db,
		conn:    db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "deck_store")),
	}
}

// WithTx returns a DeckStore whose statements run inside tx.
func (s *DeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &DeckStore{
		db:      tx,
		dialect: s.dialect,
		logger:  s.logger,
	}
}

// inTx runs fn in a new transaction, or directly when the store is already
// bound to one.
func (s *DeckStore) inTx(ctx context.Context, fn func(ctx context.Context, db store.DBTX) error) error {
	if s.conn == nil {
		return fn(ctx, s.db)
	}
	return store.RunInTransaction(ctx, s.conn, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, tx)
	})
}

// Create implements store.DeckStore.Create.
// The deck row and all card rows are inserted in one transaction.
func (s *DeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during create",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	insertDeck := s.dialect.Rebind(`
		INSERT INTO decks (id, topic, created_at)
		VALUES (?, ?, ?)
	`)
	insertCard := s.dialect.Rebind(`
		INSERT INTO flashcards (id, deck_id, front, back, position)
		VALUES (?, ?, ?, ?, ?)
	`)

	err := s.inTx(ctx, func(ctx context.Context, db store.DBTX) error {
		if _, err := db.ExecContext(ctx, insertDeck, deck.ID, deck.Topic, deck.CreatedAt); err != nil {
			return store.NewStoreError("deck", "create", "failed to insert deck", MapError(err))
		}

		for _, card := range deck.Cards {
			if _, err := db.ExecContext(ctx, insertCard, card.ID, deck.ID, card.Front, card.Back, card.Position); err != nil {
				return store.NewStoreError("flashcard", "create",
					fmt.Sprintf("failed to insert card %d", card.Position), MapError(err))
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return err
	}

	log.Info("deck created successfully",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("cards", len(deck.Cards)))
	return nil
}

// List implements store.DeckStore.List.
func (s *DeckStore) List(ctx context.Context) ([]*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, topic, created_at
		FROM decks
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list decks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("deck", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	decks := make([]*domain.Deck, 0)
	for rows.Next() {
		var d domain.Deck
		if err := rows.Scan(&d.ID, &d.Topic, &d.CreatedAt); err != nil {
			return nil, store.NewStoreError("deck", "list", "failed to scan deck", err)
		}
		d.CreatedAt = d.CreatedAt.UTC()
		decks = append(decks, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("deck", "list", "failed to iterate decks", err)
	}

	log.Debug("decks listed", slog.Int("count", len(decks)))
	return decks, nil
}

// GetByID implements store.DeckStore.GetByID.
func (s *DeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving deck by ID", slog.String("deck_id", id.String()))

	var deck domain.Deck
	err := s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`SELECT id, topic, created_at FROM decks WHERE id = ?`),
		id,
	).Scan(&deck.ID, &deck.Topic, &deck.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found", slog.String("deck_id", id.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck by ID",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, store.NewStoreError("deck", "get", "query failed", MapError(err))
	}
	deck.CreatedAt = deck.CreatedAt.UTC()

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(`
		SELECT id, deck_id, front, back, position
		FROM flashcards
		WHERE deck_id = ?
		ORDER BY position ASC
	`), id)
	if err != nil {
		return nil, store.NewStoreError("flashcard", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	deck.Cards = make([]domain.Flashcard, 0)
	for rows.Next() {
		var c domain.Flashcard
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.Position); err != nil {
			return nil, store.NewStoreError("flashcard", "list", "failed to scan card", err)
		}
		deck.Cards = append(deck.Cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("flashcard", "list", "failed to iterate cards", err)
	}

	log.Debug("deck retrieved successfully",
		slog.String("deck_id", id.String()),
		slog.Int("cards", len(deck.Cards)))
	return &deck, nil
}

// Delete implements store.DeckStore.Delete.
// Cards are removed explicitly in the same transaction, so deletion does not
// depend on the connection having foreign-key cascades enabled.
func (s *DeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.inTx(ctx, func(ctx context.Context, db store.DBTX) error {
		if _, err := db.ExecContext(ctx,
			s.dialect.Rebind(`DELETE FROM flashcards WHERE deck_id = ?`), id); err != nil {
			return store.NewStoreError("flashcard", "delete", "failed to delete cards", MapError(err))
		}

		result, err := db.ExecContext(ctx, s.dialect.Rebind(`DELETE FROM decks WHERE id = ?`), id)
		if err != nil {
			return store.NewStoreError("deck", "delete", "failed to delete deck", MapError(err))
		}
		return checkRowsAffected(result, store.ErrDeckNotFound)
	})
	if err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			log.Debug("deck not found for deletion", slog.String("deck_id", id.String()))
		} else {
			log.Error("failed to delete deck",
				slog.String("error", err.Error()),
				slog.String("deck_id", id.String()))
		}
		return err
	}

	log.Info("deck deleted successfully", slog.String("deck_id", id.String()))
	return nil
}
