package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/showquiz/tvtrivia/internal/dependencies/clock"
	"github.com/showquiz/tvtrivia/internal/model"
	"github.com/showquiz/tvtrivia/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUsernameExists     = errors.New("username already exists")
)

// Token is an authenticated host session
type Token struct {
	Value     string
	UserID    string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles host authentication and token management
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	mu     sync.RWMutex
	tokens map[string]*Token

	tokenDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	TokenDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = DefaultConfig().TokenDuration
	}
	return &Service{
		storage:       storage,
		clock:         clock,
		tokens:        make(map[string]*Token),
		tokenDuration: cfg.TokenDuration,
	}
}

// Register creates a host account and issues a token
func (s *Service) Register(ctx context.Context, username, password string) (*Token, error) {
	_, err := s.storage.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &model.User{
		ID:           s.generateID("u_"),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user), nil
}

// Login authenticates a host and issues a token
func (s *Service) Login(ctx context.Context, username, password string) (*Token, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user), nil
}

// ValidateToken checks a bearer token and returns its session
func (s *Service) ValidateToken(token string) (*Token, error) {
	s.mu.RLock()
	t, ok := s.tokens[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidToken
	}

	if s.clock.Now().After(t.ExpiresAt) {
		s.mu.Lock()
		delete(s.tokens, token)
		s.mu.Unlock()
		return nil, ErrInvalidToken
	}

	return t, nil
}

// InvalidateToken removes a token
func (s *Service) InvalidateToken(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// CleanExpiredTokens removes expired tokens (call periodically)
func (s *Service) CleanExpiredTokens() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for value, t := range s.tokens {
		if now.After(t.ExpiresAt) {
			delete(s.tokens, value)
		}
	}
}

func (s *Service) issueToken(user *model.User) *Token {
	now := s.clock.Now()
	t := &Token{
		Value:     s.generateID("tok_"),
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenDuration),
	}

	s.mu.Lock()
	s.tokens[t.Value] = t
	s.mu.Unlock()

	return t
}

func (s *Service) generateID(prefix string) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}
