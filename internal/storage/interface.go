package storage

import (
	"context"

	"github.com/showquiz/tvtrivia/internal/model"
)

// Storage defines the interface for data persistence.
// Every document is written wholesale; partial updates are expressed as
// read-modify-write at document granularity.
type Storage interface {
	// Session operations
	SaveSession(ctx context.Context, session *model.GameSession) error
	GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
	SessionExists(ctx context.Context, id model.SessionID) (bool, error)

	// Roster operations
	SaveRoster(ctx context.Context, roster *model.Roster) error
	GetRoster(ctx context.Context, sessionID model.SessionID) (*model.Roster, error)

	// Show selection operations
	SaveShowSelections(ctx context.Context, selections *model.ShowSelections) error
	GetShowSelections(ctx context.Context, sessionID model.SessionID) (*model.ShowSelections, error)

	// Used-question operations
	SaveUsedQuestions(ctx context.Context, used *model.UsedQuestions) error
	GetUsedQuestions(ctx context.Context, sessionID model.SessionID, decade string) (*model.UsedQuestions, error)

	// Question bank operations
	SaveQuestionBank(ctx context.Context, bank *model.QuestionBank) error
	GetLatestQuestionBank(ctx context.Context, decade string) (*model.QuestionBank, error)
	SetQuestionBankObjectKey(ctx context.Context, bankID string, objectKey string) error

	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Theme operations
	SaveTheme(ctx context.Context, sessionID model.SessionID, theme model.Theme) error
	GetTheme(ctx context.Context, sessionID model.SessionID) (model.Theme, error)
}
