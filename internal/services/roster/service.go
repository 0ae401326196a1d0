package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/showquiz/tvtrivia/internal/dependencies/clock"
	"github.com/showquiz/tvtrivia/internal/model"
	"github.com/showquiz/tvtrivia/internal/storage"
)

// Service manages the player roster for a session
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewService creates a new roster Service
func NewService(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Get returns the session's roster, falling back to the default
// two-player roster when none has been saved yet
func (s *Service) Get(ctx context.Context, sessionID model.SessionID) (*model.Roster, error) {
	roster, err := s.storage.GetRoster(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrRosterNotFound) {
			return model.DefaultRoster(sessionID, s.clock.Now()), nil
		}
		return nil, err
	}
	return roster, nil
}

// AddPlayer appends a new player with a generated name and zero score
func (s *Service) AddPlayer(ctx context.Context, sessionID model.SessionID) (*model.Roster, error) {
	roster, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	player := model.Player{
		ID:   model.PlayerID(uuid.NewString()),
		Name: fmt.Sprintf("Player %d", len(roster.Players)+1),
	}
	roster.Players = append(roster.Players, player)

	if err := s.save(ctx, roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// Rename updates a player's display name. Non-committed edits keep the
// raw text so typing can round-trip; a committed edit trims, and an
// empty result falls back to the default name.
func (s *Service) Rename(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, name string, commit bool) (*model.Roster, error) {
	roster, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := roster.IndexOf(playerID)
	if idx < 0 {
		return nil, model.ErrPlayerNotFound
	}

	if commit {
		name = strings.TrimSpace(name)
		if name == "" {
			name = model.DefaultPlayerName
		}
	}
	roster.Players[idx].Name = name

	if err := s.save(ctx, roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// RemovePlayer deletes a player from the roster. The session's current
// player index is renormalized so turn order stays valid.
func (s *Service) RemovePlayer(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID) (*model.Roster, error) {
	roster, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := roster.IndexOf(playerID)
	if idx < 0 {
		return nil, model.ErrPlayerNotFound
	}

	roster.Players = append(roster.Players[:idx], roster.Players[idx+1:]...)

	if err := s.save(ctx, roster); err != nil {
		return nil, err
	}

	if err := s.renormalizeSessionIndex(ctx, sessionID, roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// ApplyScoreDelta adds points to a player's score. Deltas below zero
// are rejected.
func (s *Service) ApplyScoreDelta(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, delta int) (*model.Roster, error) {
	if delta < 0 {
		return nil, model.ErrNegativeDelta
	}

	roster, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := roster.IndexOf(playerID)
	if idx < 0 {
		return nil, model.ErrPlayerNotFound
	}
	roster.Players[idx].Score += delta

	if err := s.save(ctx, roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// ResetScores zeroes every player's score
func (s *Service) ResetScores(ctx context.Context, sessionID model.SessionID) (*model.Roster, error) {
	roster, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for i := range roster.Players {
		roster.Players[i].Score = 0
	}

	if err := s.save(ctx, roster); err != nil {
		return nil, err
	}
	return roster, nil
}

func (s *Service) save(ctx context.Context, roster *model.Roster) error {
	roster.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveRoster(ctx, roster); err != nil {
		s.logger.Error("failed to save roster",
			slog.String("session_id", string(roster.SessionID)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

func (s *Service) renormalizeSessionIndex(ctx context.Context, sessionID model.SessionID, roster *model.Roster) error {
	session, err := s.storage.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	normalized := roster.NormalizeIndex(session.CurrentPlayerIndex)
	if normalized == session.CurrentPlayerIndex {
		return nil
	}

	session.CurrentPlayerIndex = normalized
	session.UpdatedAt = s.clock.Now()
	return s.storage.SaveSession(ctx, session)
}
