package memory

import (
	"context"
	"sync"

	"github.com/showquiz/tvtrivia/internal/model"
	"github.com/showquiz/tvtrivia/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	sessions      map[model.SessionID]*model.GameSession
	rosters       map[model.SessionID]*model.Roster
	selections    map[model.SessionID]*model.ShowSelections
	usedQuestions map[usedKey]*model.UsedQuestions
	banks         map[string]*model.QuestionBank
	latestBanks   map[string]string
	users         map[string]*model.User
	usernameIndex map[string]string
	themes        map[model.SessionID]model.Theme
}

type usedKey struct {
	sessionID model.SessionID
	decade    string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions:      make(map[model.SessionID]*model.GameSession),
		rosters:       make(map[model.SessionID]*model.Roster),
		selections:    make(map[model.SessionID]*model.ShowSelections),
		usedQuestions: make(map[usedKey]*model.UsedQuestions),
		banks:         make(map[string]*model.QuestionBank),
		latestBanks:   make(map[string]string),
		users:         make(map[string]*model.User),
		usernameIndex: make(map[string]string),
		themes:        make(map[model.SessionID]model.Theme),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *Storage) SessionExists(ctx context.Context, id model.SessionID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok, nil
}

// Roster operations

func (s *Storage) SaveRoster(ctx context.Context, roster *model.Roster) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rosters[roster.SessionID] = roster
	return nil
}

func (s *Storage) GetRoster(ctx context.Context, sessionID model.SessionID) (*model.Roster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roster, ok := s.rosters[sessionID]
	if !ok {
		return nil, model.ErrRosterNotFound
	}
	return roster, nil
}

// Show selection operations

func (s *Storage) SaveShowSelections(ctx context.Context, selections *model.ShowSelections) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections[selections.SessionID] = selections
	return nil
}

func (s *Storage) GetShowSelections(ctx context.Context, sessionID model.SessionID) (*model.ShowSelections, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	selections, ok := s.selections[sessionID]
	if !ok {
		return nil, model.ErrSelectionNotFound
	}
	return selections, nil
}

// Used-question operations

func (s *Storage) SaveUsedQuestions(ctx context.Context, used *model.UsedQuestions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usedQuestions[usedKey{sessionID: used.SessionID, decade: used.Decade}] = used
	return nil
}

func (s *Storage) GetUsedQuestions(ctx context.Context, sessionID model.SessionID, decade string) (*model.UsedQuestions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	used, ok := s.usedQuestions[usedKey{sessionID: sessionID, decade: decade}]
	if !ok {
		return nil, model.ErrUsedQuestionsNotFound
	}
	return used, nil
}

// Question bank operations

func (s *Storage) SaveQuestionBank(ctx context.Context, bank *model.QuestionBank) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.banks[bank.ID] = bank
	s.latestBanks[bank.Decade] = bank.ID
	return nil
}

func (s *Storage) GetLatestQuestionBank(ctx context.Context, decade string) (*model.QuestionBank, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bankID, ok := s.latestBanks[decade]
	if !ok {
		return nil, model.ErrBankNotFound
	}
	bank, ok := s.banks[bankID]
	if !ok {
		return nil, model.ErrBankNotFound
	}
	return bank, nil
}

func (s *Storage) SetQuestionBankObjectKey(ctx context.Context, bankID string, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bank, ok := s.banks[bankID]
	if !ok {
		return model.ErrBankNotFound
	}
	bank.ObjectKey = objectKey
	return nil
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	s.usernameIndex[user.Username] = user.ID
	return nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// Theme operations

func (s *Storage) SaveTheme(ctx context.Context, sessionID model.SessionID, theme model.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[sessionID] = theme
	return nil
}

func (s *Storage) GetTheme(ctx context.Context, sessionID model.SessionID) (model.Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	theme, ok := s.themes[sessionID]
	if !ok {
		return "", model.ErrThemeNotFound
	}
	return theme, nil
}
