package model

import "time"

// PlayerID uniquely identifies a player within a session
type PlayerID string

// DefaultPlayerName is substituted when a committed rename is empty
const DefaultPlayerName = "Unnamed Player"

// Player represents a scoreboard participant
type Player struct {
	ID    PlayerID `json:"id"`
	Name  string   `json:"name"`
	Score int      `json:"score"`
}

// Roster is the ordered list of players for a session.
// Order defines turn rotation.
type Roster struct {
	SessionID SessionID `json:"session_id"`
	Players   []Player  `json:"players"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultRoster returns the starting two-player roster
func DefaultRoster(sessionID SessionID, now time.Time) *Roster {
	return &Roster{
		SessionID: sessionID,
		Players: []Player{
			{ID: "player-1", Name: "Player 1", Score: 0},
			{ID: "player-2", Name: "Player 2", Score: 0},
		},
		UpdatedAt: now,
	}
}

// IndexOf returns the position of a player, or -1 if absent
func (r *Roster) IndexOf(id PlayerID) int {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the player with the given ID, or nil
func (r *Roster) Get(id PlayerID) *Player {
	if idx := r.IndexOf(id); idx >= 0 {
		return &r.Players[idx]
	}
	return nil
}

// NormalizeIndex maps a turn pointer onto a valid roster index.
// An empty roster normalizes to 0.
func (r *Roster) NormalizeIndex(idx int) int {
	if len(r.Players) == 0 || idx < 0 {
		return 0
	}
	return idx % len(r.Players)
}

// HighestScore returns the best score on the roster, 0 when empty
func (r *Roster) HighestScore() int {
	best := 0
	for _, p := range r.Players {
		if p.Score > best {
			best = p.Score
		}
	}
	return best
}
