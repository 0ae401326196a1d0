package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/showquiz/tvtrivia/internal/api/request"
	"github.com/showquiz/tvtrivia/internal/api/response"
	"github.com/showquiz/tvtrivia/internal/services/shows"
	"github.com/showquiz/tvtrivia/internal/web/sse"
)

// ShowsHandler handles decade and show-selection endpoints
type ShowsHandler struct {
	showService *shows.Service
	broadcaster *sse.Broadcaster
}

// NewShowsHandler creates a new shows handler
func NewShowsHandler(showService *shows.Service, hubManager *sse.HubManager, logger *slog.Logger) *ShowsHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &ShowsHandler{
		showService: showService,
		broadcaster: broadcaster,
	}
}

// Decades handles GET /api/v1/decades
func (h *ShowsHandler) Decades(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string][]string{"decades": shows.Decades()})
}

// Presets handles GET /api/v1/decades/{decade}/shows
func (h *ShowsHandler) Presets(w http.ResponseWriter, r *http.Request) {
	decade := mux.Vars(r)["decade"]

	titles, err := h.showService.PresetShows(decade)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Shows{Decade: decade, Shows: titles})
}

// Selected handles GET /api/v1/sessions/{session_id}/selections/{decade}
func (h *ShowsHandler) Selected(w http.ResponseWriter, r *http.Request) {
	decade := mux.Vars(r)["decade"]

	titles, err := h.showService.Selected(r.Context(), sessionID(r), decade)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Shows{Decade: decade, Shows: titles})
}

// Toggle handles POST /api/v1/sessions/{session_id}/selections
func (h *ShowsHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req request.ToggleShowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	id := sessionID(r)
	titles, err := h.showService.Toggle(r.Context(), id, req.Decade, req.Show)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastSelectionsUpdate(id, req.Decade, titles)
	}
	response.JSON(w, http.StatusOK, response.Shows{Decade: req.Decade, Shows: titles})
}
