package model

import "time"

// Difficulty classifies how hard a question is
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether the difficulty is one of the known levels
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Question is a single trivia question.
// Immutable once fetched from the provider within a session.
type Question struct {
	ID         string     `json:"id"`
	ShowID     string     `json:"show_id"`
	ShowTitle  string     `json:"show_title"`
	Difficulty Difficulty `json:"difficulty"`
	Prompt     string     `json:"prompt"`
	Answer     string     `json:"answer"`
}

// QuestionBank is a decade-scoped, show-set-scoped collection of questions.
// Two banks are equivalent iff their normalized show-set hashes match.
type QuestionBank struct {
	ID          string     `json:"id"`
	Decade      string     `json:"decade"`
	Shows       []string   `json:"shows"`
	ShowSetHash string     `json:"show_set_hash"`
	Questions   []Question `json:"questions"`
	ObjectKey   string     `json:"object_key,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// QuestionsForShow returns the bank's questions for a single show title
func (b *QuestionBank) QuestionsForShow(showTitle string) []Question {
	var out []Question
	for _, q := range b.Questions {
		if q.ShowTitle == showTitle {
			out = append(out, q)
		}
	}
	return out
}

// BankStatus describes whether a stored bank matches a selection.
// MatchesSelectedShows is nil when no shows were supplied to compare.
type BankStatus struct {
	HasBank              bool
	QuestionCount        int
	StoredShows          []string
	MatchesSelectedShows *bool
}

// UsedQuestions is the per-session, per-decade record of consumed
// question IDs. Written wholesale on every draw.
type UsedQuestions struct {
	SessionID SessionID `json:"session_id"`
	Decade    string    `json:"decade"`
	IDs       []string  `json:"ids"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Contains reports whether an ID has already been consumed
func (u *UsedQuestions) Contains(id string) bool {
	for _, used := range u.IDs {
		if used == id {
			return true
		}
	}
	return false
}
