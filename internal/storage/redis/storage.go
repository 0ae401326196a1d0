package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/showquiz/tvtrivia/internal/model"
	"github.com/showquiz/tvtrivia/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *Storage) getJSON(ctx context.Context, key string, v any, missing error) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return missing
		}
		return err
	}
	// Corrupt documents read as missing so callers fall back to defaults
	if err := json.Unmarshal(data, v); err != nil {
		return missing
	}
	return nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	return s.setJSON(ctx, sessionKey(session.ID), session, s.cfg.SessionTTL)
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	var session model.GameSession
	if err := s.getJSON(ctx, sessionKey(id), &session, model.ErrSessionNotFound); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

func (s *Storage) SessionExists(ctx context.Context, id model.SessionID) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Roster operations

func (s *Storage) SaveRoster(ctx context.Context, roster *model.Roster) error {
	return s.setJSON(ctx, rosterKey(roster.SessionID), roster, s.cfg.SessionTTL)
}

func (s *Storage) GetRoster(ctx context.Context, sessionID model.SessionID) (*model.Roster, error) {
	var roster model.Roster
	if err := s.getJSON(ctx, rosterKey(sessionID), &roster, model.ErrRosterNotFound); err != nil {
		return nil, err
	}
	return &roster, nil
}

// Show selection operations

func (s *Storage) SaveShowSelections(ctx context.Context, selections *model.ShowSelections) error {
	return s.setJSON(ctx, selectionsKey(selections.SessionID), selections, s.cfg.SessionTTL)
}

func (s *Storage) GetShowSelections(ctx context.Context, sessionID model.SessionID) (*model.ShowSelections, error) {
	var selections model.ShowSelections
	if err := s.getJSON(ctx, selectionsKey(sessionID), &selections, model.ErrSelectionNotFound); err != nil {
		return nil, err
	}
	return &selections, nil
}

// Used-question operations

func (s *Storage) SaveUsedQuestions(ctx context.Context, used *model.UsedQuestions) error {
	return s.setJSON(ctx, usedQuestionsKey(used.SessionID, used.Decade), used, s.cfg.SessionTTL)
}

func (s *Storage) GetUsedQuestions(ctx context.Context, sessionID model.SessionID, decade string) (*model.UsedQuestions, error) {
	var used model.UsedQuestions
	if err := s.getJSON(ctx, usedQuestionsKey(sessionID, decade), &used, model.ErrUsedQuestionsNotFound); err != nil {
		return nil, err
	}
	return &used, nil
}

// Question bank operations

func (s *Storage) SaveQuestionBank(ctx context.Context, bank *model.QuestionBank) error {
	data, err := json.Marshal(bank)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + latest-bank index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, bankKey(bank.ID), data, s.cfg.BankTTL)
	pipe.Set(ctx, latestBankIndexKey(bank.Decade), bank.ID, s.cfg.BankTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetLatestQuestionBank(ctx context.Context, decade string) (*model.QuestionBank, error) {
	bankID, err := s.client.Get(ctx, latestBankIndexKey(decade)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrBankNotFound
		}
		return nil, err
	}

	var bank model.QuestionBank
	if err := s.getJSON(ctx, bankKey(bankID), &bank, model.ErrBankNotFound); err != nil {
		return nil, err
	}
	return &bank, nil
}

func (s *Storage) SetQuestionBankObjectKey(ctx context.Context, bankID string, objectKey string) error {
	var bank model.QuestionBank
	if err := s.getJSON(ctx, bankKey(bankID), &bank, model.ErrBankNotFound); err != nil {
		return err
	}
	bank.ObjectKey = objectKey
	return s.setJSON(ctx, bankKey(bankID), &bank, s.cfg.BankTTL)
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, usernameIndexKey(user.Username), user.ID, 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	userID, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := s.getJSON(ctx, userKey(userID), &user, model.ErrUserNotFound); err != nil {
		return nil, err
	}
	return &user, nil
}

// Theme operations

func (s *Storage) SaveTheme(ctx context.Context, sessionID model.SessionID, theme model.Theme) error {
	return s.client.Set(ctx, themeKey(sessionID), string(theme), s.cfg.SessionTTL).Err()
}

func (s *Storage) GetTheme(ctx context.Context, sessionID model.SessionID) (model.Theme, error) {
	value, err := s.client.Get(ctx, themeKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrThemeNotFound
		}
		return "", err
	}
	return model.Theme(value), nil
}
