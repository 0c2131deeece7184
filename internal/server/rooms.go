package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/barboracab/hangthedj/internal/shared"
	"github.com/barboracab/hangthedj/internal/store"
	"github.com/charmbracelet/log"
)

// RoomsHandler serves the room queue API: load, add and vote.
type RoomsHandler struct {
	store  *store.SongStore
	logger *log.Logger
}

// NewRoomsHandler creates a RoomsHandler over the given store.
func NewRoomsHandler(s *store.SongStore, logger *log.Logger) *RoomsHandler {
	return &RoomsHandler{store: s, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *RoomsHandler) Routes() []string {
	return []string{
		"/rooms/{room}/songs",
		"/songs/{id}/vote",
	}
}

func (h *RoomsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.PathValue("room") != "" && r.Method == http.MethodGet:
		h.handleQueue(w, r)
	case r.PathValue("room") != "" && r.Method == http.MethodPost:
		h.handleAdd(w, r)
	case r.PathValue("id") != "" && r.Method == http.MethodPost:
		h.handleVote(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleQueue returns the room's full queue ordered by votes descending.
func (h *RoomsHandler) handleQueue(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("room")

	songs, err := h.store.LoadQueue(r.Context(), roomID)
	if err != nil {
		logError(h.logger, "failed to load queue", "room", roomID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load queue")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"songs": songs,
		"total": len(songs),
	})
}

type addSongRequest struct {
	Title string `json:"title"`
}

// handleAdd inserts a new song with zero votes into the room's queue.
func (h *RoomsHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("room")

	var req addSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	song, err := h.store.Add(r.Context(), roomID, req.Title)
	if errors.Is(err, shared.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if err != nil {
		logError(h.logger, "failed to add song", "room", roomID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add song")
		return
	}

	writeJSON(w, http.StatusCreated, song)
}

type voteRequest struct {
	Delta int `json:"delta"`
}

// handleVote applies a +1 or -1 delta to a song.
func (h *RoomsHandler) handleVote(w http.ResponseWriter, r *http.Request) {
	songID := r.PathValue("id")

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.store.Vote(r.Context(), songID, req.Delta)
	switch {
	case errors.Is(err, shared.ErrInvalidDelta):
		writeError(w, http.StatusBadRequest, "delta must be +1 or -1")
	case errors.Is(err, shared.ErrSongNotFound):
		writeError(w, http.StatusNotFound, "song not found")
	case err != nil:
		logError(h.logger, "failed to apply vote", "song", songID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to apply vote")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
