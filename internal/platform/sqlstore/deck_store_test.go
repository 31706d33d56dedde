package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/platform/sqlstore"
	"github.com/phrazzld/scry-study/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeckStore(t *testing.T) (*sqlstore.DeckStore, *sql.DB) {
	t.Helper()
	db := openTestDB(t)
	log, _ := logger.NewTestLogger(t)
	return sqlstore.NewDeckStore(db, sqlstore.DialectSQLite, log), db
}

func makeDeck(t *testing.T, topic string, n int) *domain.Deck {
	t.Helper()
	cards := make([]domain.Flashcard, n)
	for i := range cards {
		cards[i] = domain.Flashcard{
			Front: "front " + string(rune('A'+i)),
			Back:  "back " + string(rune('A'+i)),
		}
	}
	deck, err := domain.NewDeck(topic, cards)
	require.NoError(t, err)
	return deck
}

func countCards(t *testing.T, db *sql.DB, deckID uuid.UUID) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM flashcards WHERE deck_id = ?`, deckID).Scan(&n))
	return n
}

func TestDeckStore_CreateAndGet(t *testing.T) {
	s, _ := newDeckStore(t)
	ctx := context.Background()

	deck := makeDeck(t, "Cell biology...", 3)
	require.NoError(t, s.Create(ctx, deck))

	got, err := s.GetByID(ctx, deck.ID)
	require.NoError(t, err)

	assert.Equal(t, deck.ID, got.ID)
	assert.Equal(t, deck.Topic, got.Topic)
	assert.WithinDuration(t, deck.CreatedAt, got.CreatedAt, time.Millisecond)
	require.Len(t, got.Cards, 3)
	for i, c := range got.Cards {
		assert.Equal(t, deck.Cards[i].ID, c.ID)
		assert.Equal(t, deck.ID, c.DeckID)
		assert.Equal(t, i, c.Position)
		assert.Equal(t, deck.Cards[i].Front, c.Front)
		assert.Equal(t, deck.Cards[i].Back, c.Back)
	}
}

func TestDeckStore_CreateInvalid(t *testing.T) {
	s, _ := newDeckStore(t)

	err := s.Create(context.Background(), &domain.Deck{ID: uuid.New(), Topic: ""})

	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrDeckTopicEmpty)
}

func TestDeckStore_CreateIsAtomic(t *testing.T) {
	s, db := newDeckStore(t)
	ctx := context.Background()

	existing := makeDeck(t, "first...", 1)
	require.NoError(t, s.Create(ctx, existing))

	// The second card reuses an existing card ID, so its insert fails after
	// the deck row and first card were written.
	deck := makeDeck(t, "second...", 2)
	deck.Cards[1].ID = existing.Cards[0].ID

	err := s.Create(ctx, deck)
	require.Error(t, err)

	_, err = s.GetByID(ctx, deck.ID)
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
	assert.Equal(t, 0, countCards(t, db, deck.ID))
}

func TestDeckStore_ListNewestFirst(t *testing.T) {
	s, _ := newDeckStore(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		d := makeDeck(t, "deck...", 1)
		d.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, s.Create(ctx, d))
		ids = append(ids, d.ID)
	}

	decks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, decks, 3)
	assert.Equal(t, ids[2], decks[0].ID)
	assert.Equal(t, ids[1], decks[1].ID)
	assert.Equal(t, ids[0], decks[2].ID)
	assert.True(t, base.Add(2*time.Hour).Equal(decks[0].CreatedAt), "got %s", decks[0].CreatedAt)
}

func TestDeckStore_ListEmpty(t *testing.T) {
	s, _ := newDeckStore(t)

	decks, err := s.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, decks)
	assert.Empty(t, decks)
}

func TestDeckStore_GetUnknown(t *testing.T) {
	s, _ := newDeckStore(t)

	_, err := s.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, store.ErrDeckNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeckStore_DeleteRemovesCards(t *testing.T) {
	s, db := newDeckStore(t)
	ctx := context.Background()

	keep := makeDeck(t, "keep...", 2)
	drop := makeDeck(t, "drop...", 4)
	require.NoError(t, s.Create(ctx, keep))
	require.NoError(t, s.Create(ctx, drop))
	require.Equal(t, 4, countCards(t, db, drop.ID))

	require.NoError(t, s.Delete(ctx, drop.ID))

	_, err := s.GetByID(ctx, drop.ID)
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
	assert.Equal(t, 0, countCards(t, db, drop.ID))
	assert.Equal(t, 2, countCards(t, db, keep.ID))
}

func TestDeckStore_CascadeOnDirectDelete(t *testing.T) {
	s, db := newDeckStore(t)
	ctx := context.Background()

	deck := makeDeck(t, "cascade...", 2)
	require.NoError(t, s.Create(ctx, deck))

	_, err := db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, deck.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, countCards(t, db, deck.ID))
}

func TestDeckStore_DeleteUnknown(t *testing.T) {
	s, _ := newDeckStore(t)

	err := s.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, store.ErrDeckNotFound)
}

func TestDeckStore_WithTx(t *testing.T) {
	s, db := newDeckStore(t)
	ctx := context.Background()
	deck := makeDeck(t, "tx...", 1)

	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).Create(ctx, deck)
	})
	require.NoError(t, err)

	got, err := s.GetByID(ctx, deck.ID)
	require.NoError(t, err)
	assert.Len(t, got.Cards, 1)
}
