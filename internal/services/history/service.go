package history

import (
	"context"
	"errors"
	"log/slog"

	"github.com/showquiz/tvtrivia/internal/dependencies/clock"
	"github.com/showquiz/tvtrivia/internal/model"
	"github.com/showquiz/tvtrivia/internal/storage"
)

// Service tracks which questions a session has already spent per decade
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewService creates a new used-question history Service
func NewService(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// UsedIDs returns the spent question IDs as a lookup set. A missing
// history doc reads as empty.
func (s *Service) UsedIDs(ctx context.Context, sessionID model.SessionID, decade string) (map[string]bool, error) {
	used, err := s.storage.GetUsedQuestions(ctx, sessionID, decade)
	if err != nil {
		if errors.Is(err, model.ErrUsedQuestionsNotFound) {
			return map[string]bool{}, nil
		}
		return nil, err
	}

	ids := make(map[string]bool, len(used.IDs))
	for _, id := range used.IDs {
		ids[id] = true
	}
	return ids, nil
}

// Record marks a question as spent for the session and decade. Already
// recorded IDs are left alone.
func (s *Service) Record(ctx context.Context, sessionID model.SessionID, decade, questionID string) error {
	used, err := s.storage.GetUsedQuestions(ctx, sessionID, decade)
	if err != nil {
		if !errors.Is(err, model.ErrUsedQuestionsNotFound) {
			return err
		}
		used = &model.UsedQuestions{
			SessionID: sessionID,
			Decade:    decade,
		}
	}

	if used.Contains(questionID) {
		return nil
	}

	used.IDs = append(used.IDs, questionID)
	used.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveUsedQuestions(ctx, used); err != nil {
		s.logger.Error("failed to save used questions",
			slog.String("session_id", string(sessionID)),
			slog.String("decade", decade),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}
