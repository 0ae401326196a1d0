package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/showquiz/tvtrivia/internal/model"
)

// Broadcaster pushes game state updates to SSE clients as JSON events
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// BroadcastSessionUpdate pushes the full session state after a turn
// transition
func (b *Broadcaster) BroadcastSessionUpdate(session *model.GameSession) {
	b.broadcastJSON(session.ID, "session-update", session)
}

// BroadcastRosterUpdate pushes the scoreboard after roster or score
// changes
func (b *Broadcaster) BroadcastRosterUpdate(roster *model.Roster) {
	b.broadcastJSON(roster.SessionID, "roster-update", roster)
}

// BroadcastSelectionsUpdate pushes the show picks for a decade
func (b *Broadcaster) BroadcastSelectionsUpdate(sessionID model.SessionID, decade string, shows []string) {
	b.broadcastJSON(sessionID, "selections-update", map[string]any{
		"decade": decade,
		"shows":  shows,
	})
}

// BroadcastThemeUpdate pushes a theme change
func (b *Broadcaster) BroadcastThemeUpdate(sessionID model.SessionID, theme model.Theme) {
	b.broadcastJSON(sessionID, "theme-update", map[string]any{
		"theme": theme,
	})
}

// BroadcastRoundComplete signals that a round has ended
func (b *Broadcaster) BroadcastRoundComplete(session *model.GameSession) {
	b.broadcastJSON(session.ID, "round-complete", session)
}

func (b *Broadcaster) broadcastJSON(sessionID model.SessionID, eventName string, payload any) {
	hub := b.hubManager.GetHub(sessionID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("sse failed to marshal event",
			slog.String("session", string(sessionID)),
			slog.String("event", eventName),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(eventName, string(data))
}
