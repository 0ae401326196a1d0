package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/showquiz/tvtrivia/internal/api/request"
	"github.com/showquiz/tvtrivia/internal/api/response"
	"github.com/showquiz/tvtrivia/internal/model"
	"github.com/showquiz/tvtrivia/internal/services/roster"
	"github.com/showquiz/tvtrivia/internal/web/sse"
)

// RosterHandler handles scoreboard endpoints
type RosterHandler struct {
	rosterService *roster.Service
	broadcaster   *sse.Broadcaster
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(rosterService *roster.Service, hubManager *sse.HubManager, logger *slog.Logger) *RosterHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &RosterHandler{
		rosterService: rosterService,
		broadcaster:   broadcaster,
	}
}

// Get handles GET /api/v1/sessions/{session_id}/roster
func (h *RosterHandler) Get(w http.ResponseWriter, r *http.Request) {
	players, err := h.rosterService.Get(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RosterFromModel(players))
}

// AddPlayer handles POST /api/v1/sessions/{session_id}/roster/players
func (h *RosterHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	players, err := h.rosterService.AddPlayer(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastRoster(players)
	response.JSON(w, http.StatusCreated, response.RosterFromModel(players))
}

// RenamePlayer handles PATCH /api/v1/sessions/{session_id}/roster/players/{player_id}
func (h *RosterHandler) RenamePlayer(w http.ResponseWriter, r *http.Request) {
	var req request.RenamePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	players, err := h.rosterService.Rename(r.Context(), sessionID(r), playerID(r), req.Name, req.Commit)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastRoster(players)
	response.JSON(w, http.StatusOK, response.RosterFromModel(players))
}

// RemovePlayer handles DELETE /api/v1/sessions/{session_id}/roster/players/{player_id}
func (h *RosterHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	players, err := h.rosterService.RemovePlayer(r.Context(), sessionID(r), playerID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastRoster(players)
	response.JSON(w, http.StatusOK, response.RosterFromModel(players))
}

// ApplyScoreDelta handles POST /api/v1/sessions/{session_id}/roster/players/{player_id}/score
func (h *RosterHandler) ApplyScoreDelta(w http.ResponseWriter, r *http.Request) {
	var req request.ScoreDeltaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	players, err := h.rosterService.ApplyScoreDelta(r.Context(), sessionID(r), playerID(r), req.Delta)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastRoster(players)
	response.JSON(w, http.StatusOK, response.RosterFromModel(players))
}

func (h *RosterHandler) broadcastRoster(players *model.Roster) {
	if h.broadcaster != nil {
		h.broadcaster.BroadcastRosterUpdate(players)
	}
}

func playerID(r *http.Request) model.PlayerID {
	return model.PlayerID(mux.Vars(r)["player_id"])
}
