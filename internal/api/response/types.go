package response

import (
	"time"

	"github.com/showquiz/tvtrivia/internal/model"
	"github.com/showquiz/tvtrivia/internal/services/auth"
)

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthResponseFromToken creates an AuthResponse from an issued token
func AuthResponseFromToken(t *auth.Token) AuthResponse {
	return AuthResponse{
		Username:  t.Username,
		Token:     t.Value,
		ExpiresAt: t.ExpiresAt,
	}
}

// Player represents a scoreboard entry in API responses
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Roster represents the full scoreboard
type Roster struct {
	Players []Player `json:"players"`
}

// RosterFromModel converts a model.Roster
func RosterFromModel(r *model.Roster) Roster {
	players := make([]Player, len(r.Players))
	for i, p := range r.Players {
		players[i] = Player{
			ID:    string(p.ID),
			Name:  p.Name,
			Score: p.Score,
		}
	}
	return Roster{Players: players}
}

// Question represents the active question. The answer is included only
// once revealed.
type Question struct {
	ID         string `json:"id"`
	ShowTitle  string `json:"show_title"`
	Difficulty string `json:"difficulty"`
	Prompt     string `json:"prompt"`
	Answer     string `json:"answer,omitempty"`
}

// Session represents the game session state
type Session struct {
	ID                 string    `json:"id"`
	Decade             string    `json:"decade"`
	Phase              string    `json:"phase"`
	RoundNumber        int       `json:"round_number"`
	TurnNumber         int       `json:"turn_number"`
	CurrentPlayerIndex int       `json:"current_player_index"`
	SelectedShow       string    `json:"selected_show,omitempty"`
	ActiveQuestion     *Question `json:"active_question,omitempty"`
	AnswerRevealed     bool      `json:"answer_revealed"`
	StatusMessage      string    `json:"status_message,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SessionFromModel converts a model.GameSession, hiding the answer
// until it has been revealed
func SessionFromModel(s *model.GameSession) Session {
	resp := Session{
		ID:                 string(s.ID),
		Decade:             s.Decade,
		Phase:              string(s.Phase),
		RoundNumber:        s.RoundNumber,
		TurnNumber:         s.TurnNumber,
		CurrentPlayerIndex: s.CurrentPlayerIndex,
		SelectedShow:       s.SelectedShow,
		AnswerRevealed:     s.AnswerRevealed,
		StatusMessage:      s.StatusMessage,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
	if s.ActiveQuestion != nil {
		q := &Question{
			ID:         s.ActiveQuestion.ID,
			ShowTitle:  s.ActiveQuestion.ShowTitle,
			Difficulty: string(s.ActiveQuestion.Difficulty),
			Prompt:     s.ActiveQuestion.Prompt,
		}
		if s.AnswerRevealed {
			q.Answer = s.ActiveQuestion.Answer
		}
		resp.ActiveQuestion = q
	}
	return resp
}

// BankStatus reports whether a usable question bank exists
type BankStatus struct {
	HasBank              bool     `json:"has_bank"`
	QuestionCount        int      `json:"question_count"`
	StoredShows          []string `json:"stored_shows,omitempty"`
	MatchesSelectedShows *bool    `json:"matches_selected_shows,omitempty"`
}

// BankStatusFromModel converts a model.BankStatus
func BankStatusFromModel(s *model.BankStatus) BankStatus {
	return BankStatus{
		HasBank:              s.HasBank,
		QuestionCount:        s.QuestionCount,
		StoredShows:          s.StoredShows,
		MatchesSelectedShows: s.MatchesSelectedShows,
	}
}

// Bank summarizes a seeded question bank
type Bank struct {
	ID            string    `json:"id"`
	Decade        string    `json:"decade"`
	Shows         []string  `json:"shows"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// BankFromModel converts a model.QuestionBank to a summary
func BankFromModel(b *model.QuestionBank) Bank {
	return Bank{
		ID:            b.ID,
		Decade:        b.Decade,
		Shows:         b.Shows,
		QuestionCount: len(b.Questions),
		CreatedAt:     b.CreatedAt,
	}
}

// Shows is a list of show titles for a decade
type Shows struct {
	Decade string   `json:"decade"`
	Shows  []string `json:"shows"`
}

// Theme is the session's display theme
type Theme struct {
	Theme string `json:"theme"`
}
