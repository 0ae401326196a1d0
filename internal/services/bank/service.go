package bank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/showquiz/tvtrivia/internal/ai"
	"github.com/showquiz/tvtrivia/internal/dependencies/clock"
	"github.com/showquiz/tvtrivia/internal/model"
	"github.com/showquiz/tvtrivia/internal/services/shows"
	"github.com/showquiz/tvtrivia/internal/storage"
	"github.com/showquiz/tvtrivia/internal/storage/snapshot"
)

// Service manages question banks: seeding via the AI provider,
// lookups, and status checks
type Service struct {
	storage   storage.Storage
	provider  ai.Provider
	snapshots snapshot.Store
	clock     clock.Clock
	logger    *slog.Logger
}

// NewService creates a new question bank Service
func NewService(
	storage storage.Storage,
	provider ai.Provider,
	snapshots snapshot.Store,
	clock clock.Clock,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:   storage,
		provider:  provider,
		snapshots: snapshots,
		clock:     clock,
		logger:    logger,
	}
}

// GetLatest returns the most recent bank for a decade
func (s *Service) GetLatest(ctx context.Context, decade string) (*model.QuestionBank, error) {
	if !shows.ValidDecade(decade) {
		return nil, model.ErrInvalidDecade
	}
	return s.storage.GetLatestQuestionBank(ctx, decade)
}

// Seed generates and stores a fresh question bank for the decade and
// show set. The previous bank for the decade stops being the latest but
// is not deleted.
func (s *Service) Seed(ctx context.Context, decade string, showTitles []string, questionsPerShow int, mix ai.DifficultyMix, seed int64) (*model.QuestionBank, error) {
	if !shows.ValidDecade(decade) {
		return nil, model.ErrInvalidDecade
	}
	normalized := shows.Normalize(showTitles)
	if len(normalized) == 0 {
		return nil, model.ErrEmptyShowTitle
	}
	if questionsPerShow <= 0 {
		questionsPerShow = mix.Easy + mix.Medium + mix.Hard
	}

	generated, err := s.provider.GenerateQuestions(ctx, ai.GenerateBankRequest{
		Decade:           decade,
		Shows:            showTitles,
		QuestionsPerShow: questionsPerShow,
		DifficultyMix:    mix,
		Seed:             seed,
	})
	if err != nil {
		return nil, fmt.Errorf("generating questions: %w", err)
	}
	if len(generated) == 0 {
		return nil, errors.New("provider returned no usable questions")
	}

	bank := &model.QuestionBank{
		ID:          uuid.NewString(),
		Decade:      decade,
		Shows:       showTitles,
		ShowSetHash: shows.SetHash(showTitles),
		Questions:   toQuestions(generated),
		CreatedAt:   s.clock.Now(),
	}

	if err := s.storage.SaveQuestionBank(ctx, bank); err != nil {
		s.logger.Error("failed to save question bank",
			slog.String("decade", decade),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.uploadSnapshot(ctx, bank)

	s.logger.Info("seeded question bank",
		slog.String("bank_id", bank.ID),
		slog.String("decade", decade),
		slog.Int("question_count", len(bank.Questions)),
	)
	return bank, nil
}

// Status reports whether a usable bank exists for the decade and, when
// selected shows are supplied, whether the stored bank matches them
func (s *Service) Status(ctx context.Context, decade string, selectedShows []string) (*model.BankStatus, error) {
	if !shows.ValidDecade(decade) {
		return nil, model.ErrInvalidDecade
	}

	bank, err := s.storage.GetLatestQuestionBank(ctx, decade)
	if err != nil {
		if errors.Is(err, model.ErrBankNotFound) {
			return &model.BankStatus{HasBank: false}, nil
		}
		return nil, err
	}

	status := &model.BankStatus{
		HasBank:       true,
		QuestionCount: len(bank.Questions),
		StoredShows:   bank.Shows,
	}
	if len(selectedShows) > 0 {
		matches := shows.Equivalent(bank.Shows, selectedShows)
		status.MatchesSelectedShows = &matches
	}
	return status, nil
}

// PopularShows asks the provider for the decade's 20 best-known shows
func (s *Service) PopularShows(ctx context.Context, decade string) ([]string, error) {
	if !shows.ValidDecade(decade) {
		return nil, model.ErrInvalidDecade
	}
	return s.provider.PopularShows(ctx, decade)
}

// uploadSnapshot is best-effort: a failed upload never fails the seed
func (s *Service) uploadSnapshot(ctx context.Context, bank *model.QuestionBank) {
	key, err := s.snapshots.Upload(ctx, bank)
	if err != nil {
		s.logger.Warn("failed to upload bank snapshot",
			slog.String("bank_id", bank.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	if key == "" {
		return
	}

	if err := s.storage.SetQuestionBankObjectKey(ctx, bank.ID, key); err != nil {
		s.logger.Warn("failed to record snapshot key",
			slog.String("bank_id", bank.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	bank.ObjectKey = key
}

func toQuestions(generated []ai.GeneratedQuestion) []model.Question {
	perShow := make(map[string]int)
	questions := make([]model.Question, 0, len(generated))
	for _, g := range generated {
		showID := sanitizeForID(g.Show)
		idx := perShow[showID]
		perShow[showID] = idx + 1

		questions = append(questions, model.Question{
			ID:         fmt.Sprintf("%s-%d", showID, idx),
			ShowID:     showID,
			ShowTitle:  g.Show,
			Difficulty: g.Difficulty,
			Prompt:     g.Question,
			Answer:     firstAnswer(g.AcceptedAnswers),
		})
	}
	return questions
}

func firstAnswer(accepted []string) string {
	for _, answer := range accepted {
		answer = strings.TrimSpace(answer)
		if answer != "" {
			return answer
		}
	}
	return ""
}

func sanitizeForID(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
