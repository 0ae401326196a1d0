package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/showquiz/tvtrivia/internal/api/request"
	"github.com/showquiz/tvtrivia/internal/api/response"
	"github.com/showquiz/tvtrivia/internal/model"
	"github.com/showquiz/tvtrivia/internal/services/session"
	"github.com/showquiz/tvtrivia/internal/web/sse"
)

// SessionHandler handles session lifecycle and turn-flow endpoints
type SessionHandler struct {
	controller  *session.Controller
	hubManager  *sse.HubManager
	broadcaster *sse.Broadcaster
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(controller *session.Controller, hubManager *sse.HubManager, logger *slog.Logger) *SessionHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &SessionHandler{
		controller:  controller,
		hubManager:  hubManager,
		broadcaster: broadcaster,
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	sess, err := h.controller.CreateSession(r.Context(), req.Decade)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(sess))
}

// Get handles GET /api/v1/sessions/{session_id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.controller.GetSession(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// Delete handles DELETE /api/v1/sessions/{session_id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if err := h.controller.DeleteSession(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	if h.hubManager != nil {
		h.hubManager.RemoveHub(id)
	}
	response.NoContent(w)
}

// SetDecade handles PATCH /api/v1/sessions/{session_id}/decade
func (h *SessionHandler) SetDecade(w http.ResponseWriter, r *http.Request) {
	var req request.SetDecadeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	sess, err := h.controller.SetDecade(r.Context(), sessionID(r), req.Decade)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastSession(sess)
	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// SelectShow handles POST /api/v1/sessions/{session_id}/select-show
func (h *SessionHandler) SelectShow(w http.ResponseWriter, r *http.Request) {
	var req request.SelectShowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	sess, err := h.controller.SelectShow(r.Context(), sessionID(r), req.Show)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastSession(sess)
	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// SpinShow handles POST /api/v1/sessions/{session_id}/spin-show
func (h *SessionHandler) SpinShow(w http.ResponseWriter, r *http.Request) {
	sess, err := h.controller.SpinShow(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastSession(sess)
	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// DrawQuestion handles POST /api/v1/sessions/{session_id}/draw
func (h *SessionHandler) DrawQuestion(w http.ResponseWriter, r *http.Request) {
	sess, err := h.controller.DrawQuestion(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastSession(sess)
	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// RevealAnswer handles POST /api/v1/sessions/{session_id}/reveal
func (h *SessionHandler) RevealAnswer(w http.ResponseWriter, r *http.Request) {
	sess, err := h.controller.RevealAnswer(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastSession(sess)
	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// SkipQuestion handles POST /api/v1/sessions/{session_id}/skip
func (h *SessionHandler) SkipQuestion(w http.ResponseWriter, r *http.Request) {
	sess, err := h.controller.SkipQuestion(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastSession(sess)
	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// ResolveTurn handles POST /api/v1/sessions/{session_id}/resolve
func (h *SessionHandler) ResolveTurn(w http.ResponseWriter, r *http.Request) {
	var req request.ResolveTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	sess, err := h.controller.ResolveTurn(r.Context(), sessionID(r), req.IsCorrect)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil && sess.Phase == model.PhaseRoundComplete {
		h.broadcaster.BroadcastRoundComplete(sess)
	} else {
		h.broadcastSession(sess)
	}
	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// NewRound handles POST /api/v1/sessions/{session_id}/new-round
func (h *SessionHandler) NewRound(w http.ResponseWriter, r *http.Request) {
	var req request.NewRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Allow empty body; default is no shuffle
		req = request.NewRoundRequest{}
	}

	sess, err := h.controller.StartNewRound(r.Context(), sessionID(r), req.Shuffle)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastSession(sess)
	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// GetTheme handles GET /api/v1/sessions/{session_id}/theme
func (h *SessionHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.controller.GetTheme(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Theme{Theme: string(theme)})
}

// SetTheme handles PUT /api/v1/sessions/{session_id}/theme
func (h *SessionHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req request.SetThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	id := sessionID(r)
	theme := model.Theme(req.Theme)
	if err := h.controller.SetTheme(r.Context(), id, theme); err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastThemeUpdate(id, theme)
	}
	response.JSON(w, http.StatusOK, response.Theme{Theme: req.Theme})
}

// Events handles GET /api/v1/sessions/{session_id}/events (SSE)
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if _, err := h.controller.GetSession(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	sse.ServeSSE(w, r, hub, uuid.NewString())
}

func (h *SessionHandler) broadcastSession(sess *model.GameSession) {
	if h.broadcaster != nil {
		h.broadcaster.BroadcastSessionUpdate(sess)
	}
}

func sessionID(r *http.Request) model.SessionID {
	return model.SessionID(mux.Vars(r)["session_id"])
}
