package request

// RegisterRequest is the request body for registering a host account
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateSessionRequest is the request body for creating a session
type CreateSessionRequest struct {
	Decade string `json:"decade"`
}

// SetDecadeRequest is the request body for switching decades
type SetDecadeRequest struct {
	Decade string `json:"decade"`
}

// SelectShowRequest is the request body for picking a show
type SelectShowRequest struct {
	Show string `json:"show"`
}

// ResolveTurnRequest is the request body for judging an answer
type ResolveTurnRequest struct {
	IsCorrect bool `json:"is_correct"`
}

// NewRoundRequest is the request body for starting a new round
type NewRoundRequest struct {
	Shuffle bool `json:"shuffle"`
}

// RenamePlayerRequest is the request body for renaming a player
type RenamePlayerRequest struct {
	Name   string `json:"name"`
	Commit bool   `json:"commit"`
}

// ScoreDeltaRequest is the request body for a manual score adjustment
type ScoreDeltaRequest struct {
	Delta int `json:"delta"`
}

// ToggleShowRequest is the request body for toggling a show selection
type ToggleShowRequest struct {
	Decade string `json:"decade"`
	Show   string `json:"show"`
}

// SetThemeRequest is the request body for changing the display theme
type SetThemeRequest struct {
	Theme string `json:"theme"`
}

// SeedBankRequest is the request body for seeding a question bank
type SeedBankRequest struct {
	Decade           string   `json:"decade"`
	Shows            []string `json:"shows"`
	QuestionsPerShow int      `json:"questions_per_show,omitempty"`
	Seed             int64    `json:"seed,omitempty"`
}
