package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrRoundComplete    = errors.New("round is complete")
	ErrRoundNotComplete = errors.New("round is not complete")
	ErrRosterEmpty      = errors.New("no players on the roster")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrNegativeDelta  = errors.New("score delta must not be negative")
	ErrRosterNotFound = errors.New("roster not found")

	// Show selection errors
	ErrInvalidDecade     = errors.New("decade must look like 1980s")
	ErrShowCapReached    = errors.New("show selection cap reached")
	ErrEmptyShowTitle    = errors.New("show title must not be empty")
	ErrSelectionNotFound = errors.New("show selections not found")

	// Turn flow errors
	ErrNoShowSelected       = errors.New("no show selected for this turn")
	ErrStaleShowSelection   = errors.New("show selection is from a previous turn")
	ErrQuestionAlreadyDrawn = errors.New("a question is already active")
	ErrNoActiveQuestion     = errors.New("no question is active")
	ErrNoUnusedQuestions    = errors.New("no unused questions remain for this show")

	// Bank errors
	ErrBankNotFound          = errors.New("question bank not found")
	ErrUsedQuestionsNotFound = errors.New("used question record not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Theme errors
	ErrThemeNotFound = errors.New("theme not found")
	ErrInvalidTheme  = errors.New("unknown theme")
)
