package model

import "time"

// SessionID uniquely identifies a game session
type SessionID string

// Phase represents the current step of the turn state machine
type Phase string

const (
	PhaseAwaitingShowSelection Phase = "awaiting_show_selection" // Current player must pick a show
	PhaseShowSelected          Phase = "show_selected"           // Show picked, no question drawn yet
	PhaseQuestionDrawn         Phase = "question_drawn"          // A question is active
	PhaseRoundComplete         Phase = "round_complete"          // A player hit the winning score
)

// GameSession is the turn/round state for one party.
// Persisted wholesale after every transition.
type GameSession struct {
	ID     SessionID `json:"id"`
	Decade string    `json:"decade"`
	Phase  Phase     `json:"phase"`

	RoundNumber        int `json:"round_number"`
	TurnNumber         int `json:"turn_number"`
	CurrentPlayerIndex int `json:"current_player_index"`

	// Show selection for the current turn. SelectedAtTurn records which
	// turn the selection was made for, so a stale selection cannot feed
	// a draw after the turn has advanced.
	SelectedShow   string `json:"selected_show,omitempty"`
	SelectedAtTurn int    `json:"selected_at_turn"`

	ActiveQuestion *Question `json:"active_question,omitempty"`
	AnswerRevealed bool      `json:"answer_revealed"`

	StatusMessage string `json:"status_message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasSelectionForCurrentTurn reports whether the recorded show selection
// belongs to the turn in progress
func (s *GameSession) HasSelectionForCurrentTurn() bool {
	return s.SelectedShow != "" && s.SelectedAtTurn == s.TurnNumber
}

// ClearTurn resets the per-turn selection and question state
func (s *GameSession) ClearTurn() {
	s.SelectedShow = ""
	s.ActiveQuestion = nil
	s.AnswerRevealed = false
}

// ShowSelections holds the per-decade show picks for a session.
// The whole map is one persisted document.
type ShowSelections struct {
	SessionID SessionID           `json:"session_id"`
	ByDecade  map[string][]string `json:"by_decade"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// User is a registered host account, allowed to seed question banks
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
