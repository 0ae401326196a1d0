package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AuthResult:
		o.printAuthResult(v)
	case Session:
		o.printSession(v)
	case Roster:
		o.printRoster(v)
	case BankStatus:
		o.printBankStatus(v)
	case Bank:
		o.printBank(v)
	case Shows:
		o.printShows(v)
	case Theme:
		fmt.Printf("Theme: %s\n", v.Theme)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// AuthResult response type (matches API)
type AuthResult struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Question response type
type Question struct {
	ID         string `json:"id"`
	ShowTitle  string `json:"show_title"`
	Difficulty string `json:"difficulty"`
	Prompt     string `json:"prompt"`
	Answer     string `json:"answer,omitempty"`
}

// Session response type
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
}

// Player response type
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Roster response type
type Roster struct {
	Players []Player `json:"players"`
}

// BankStatus response type
type BankStatus struct {
	HasBank              bool     `json:"has_bank"`
	QuestionCount        int      `json:"question_count"`
	StoredShows          []string `json:"stored_shows,omitempty"`
	MatchesSelectedShows *bool    `json:"matches_selected_shows,omitempty"`
}

// Bank response type
type Bank struct {
	ID            string    `json:"id"`
	Decade        string    `json:"decade"`
	Shows         []string  `json:"shows"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Shows response type
type Shows struct {
	Decade string   `json:"decade"`
	Shows  []string `json:"shows"`
}

// Theme response type
type Theme struct {
	Theme string `json:"theme"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Printf("Logged in as: %s\n", a.Username)
	fmt.Printf("Token: %s\n", a.Token)
	fmt.Printf("Expires: %s\n", a.ExpiresAt.Format(time.RFC3339))
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.ID)
	fmt.Printf("Decade: %s\n", s.Decade)
	fmt.Printf("Phase: %s\n", s.Phase)
	fmt.Printf("Round: %d  Turn: %d  Player index: %d\n", s.RoundNumber, s.TurnNumber, s.CurrentPlayerIndex)
	if s.SelectedShow != "" {
		fmt.Printf("Selected Show: %s\n", s.SelectedShow)
	}
	if s.ActiveQuestion != nil {
		fmt.Printf("\nQuestion (%s, %s):\n  %s\n",
			s.ActiveQuestion.ShowTitle, s.ActiveQuestion.Difficulty, s.ActiveQuestion.Prompt)
		if s.AnswerRevealed && s.ActiveQuestion.Answer != "" {
			fmt.Printf("Answer: %s\n", s.ActiveQuestion.Answer)
		}
	}
	if s.StatusMessage != "" {
		fmt.Printf("\n%s\n", s.StatusMessage)
	}
}

func (o *Output) printRoster(r Roster) {
	fmt.Printf("Players (%d):\n", len(r.Players))
	for _, p := range r.Players {
		fmt.Printf("  - %s (%s): %d points\n", p.Name, p.ID, p.Score)
	}
}

func (o *Output) printBankStatus(s BankStatus) {
	if !s.HasBank {
		fmt.Println("No question bank for this decade")
		return
	}
	fmt.Printf("Questions: %d\n", s.QuestionCount)
	if len(s.StoredShows) > 0 {
		fmt.Printf("Stored Shows: %s\n", strings.Join(s.StoredShows, ", "))
	}
	if s.MatchesSelectedShows != nil {
		matchStr := "no"
		if *s.MatchesSelectedShows {
			matchStr = "yes"
		}
		fmt.Printf("Matches Selected Shows: %s\n", matchStr)
	}
}

func (o *Output) printBank(b Bank) {
	fmt.Printf("Bank: %s\n", b.ID)
	fmt.Printf("Decade: %s\n", b.Decade)
	fmt.Printf("Shows: %s\n", strings.Join(b.Shows, ", "))
	fmt.Printf("Questions: %d\n", b.QuestionCount)
	fmt.Printf("Created: %s\n", b.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printShows(s Shows) {
	fmt.Printf("Shows (%s):\n", s.Decade)
	for _, show := range s.Shows {
		fmt.Printf("  - %s\n", show)
	}
}
