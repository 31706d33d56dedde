package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-study/internal/api/shared"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/service"
)

// DeckHandler handles flashcard deck requests over JSON.
type DeckHandler struct {
	studyService service.StudyService
	logger       *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(studyService service.StudyService, logger *slog.Logger) *DeckHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DeckHandler")
	}
	return &DeckHandler{
		studyService: studyService,
		logger:       logger.With(slog.String("component", "deck_handler")),
	}
}

// CreateDeck handles POST /api/decks requests.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	studyReq, ok := decodeGenerateRequest(w, r, h.studyService)
	if !ok {
		return
	}

	deck, err := h.studyService.CreateDeck(r.Context(), studyReq)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create deck")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("deck created",
		slog.String("deck_id", deck.ID.String()))
	w.Header().Set("Location", "/api/decks/"+deck.ID.String())
	shared.RespondWithJSON(w, r, http.StatusCreated, deckToResponse(deck))
}

// ListDecks handles GET /api/decks requests.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.studyService.ListDecks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list decks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, decksToListResponse(decks))
}

// GetDeck handles GET /api/decks/{id} requests.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	deck, err := h.studyService.GetDeck(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load deck")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(deck))
}

// DeleteDeck handles DELETE /api/decks/{id} requests.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.studyService.DeleteDeck(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete deck")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
