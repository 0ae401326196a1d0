package factory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/showquiz/tvtrivia/internal/ai"
	"github.com/showquiz/tvtrivia/internal/dependencies/mocks"
	"github.com/showquiz/tvtrivia/internal/model"
	"github.com/showquiz/tvtrivia/internal/services/auth"
	"github.com/showquiz/tvtrivia/internal/services/session"
	"github.com/showquiz/tvtrivia/internal/storage/memory"
	"github.com/showquiz/tvtrivia/internal/storage/snapshot"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock    *mocks.MockClock
	MockRandom   *mocks.MockRandom
	FakeProvider *FakeProvider
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	fakeProvider := NewFakeProvider()

	app := newWithDependencies(store, snapshot.Disabled{}, fakeProvider, mockClock, mockRandom, auth.DefaultConfig(), session.DefaultConfig(), newNopLogger())

	return &TestApp{
		App:          app,
		MockClock:    mockClock,
		MockRandom:   mockRandom,
		FakeProvider: fakeProvider,
	}
}

// SeedTestBank stores a small deterministic question bank for a decade
func (t *TestApp) SeedTestBank(ctx context.Context, decade string, showTitles []string, questionsPerShow int) (*model.QuestionBank, error) {
	t.FakeProvider.QuestionsPerShow = questionsPerShow
	return t.BankService.Seed(ctx, decade, showTitles, questionsPerShow, ai.DefaultDifficultyMix(), 0)
}

func newNopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// FakeProvider is a deterministic in-memory ai.Provider for tests
type FakeProvider struct {
	// QuestionsPerShow controls how many questions GenerateQuestions
	// emits per requested show
	QuestionsPerShow int
	// Shows overrides the PopularShows result when non-nil
	Shows []string
	// Err is returned from both methods when set
	Err error
}

// NewFakeProvider creates a FakeProvider emitting three questions per show
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{QuestionsPerShow: 3}
}

var _ ai.Provider = (*FakeProvider)(nil)

// GenerateQuestions emits deterministic questions cycling through
// difficulties
func (p *FakeProvider) GenerateQuestions(_ context.Context, req ai.GenerateBankRequest) ([]ai.GeneratedQuestion, error) {
	if p.Err != nil {
		return nil, p.Err
	}

	count := p.QuestionsPerShow
	if req.QuestionsPerShow > 0 {
		count = req.QuestionsPerShow
	}

	difficulties := []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}
	var out []ai.GeneratedQuestion
	for _, show := range req.Shows {
		for i := 0; i < count; i++ {
			out = append(out, ai.GeneratedQuestion{
				Show:                   show,
				Question:               fmt.Sprintf("Test question %d about %s?", i+1, show),
				AnswerType:             "exact",
				AcceptedAnswers:        []string{fmt.Sprintf("Answer %d", i+1)},
				Difficulty:             difficulties[i%len(difficulties)],
				Season:                 "1",
				EpisodeNumber:          fmt.Sprintf("%d", i+1),
				EpisodeTitle:           "Pilot",
				EvidenceSummary:        "Shown in the opening scene.",
				InternalReasoningCheck: "Verified against the episode.",
				FactualConfidence:      9,
				AmbiguityRisk:          "low",
			})
		}
	}
	return out, nil
}

// PopularShows returns twenty generated titles unless overridden
func (p *FakeProvider) PopularShows(_ context.Context, decade string) ([]string, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	if p.Shows != nil {
		return p.Shows, nil
	}

	out := make([]string, 20)
	for i := range out {
		out[i] = fmt.Sprintf("%s Show %d", decade, i+1)
	}
	return out, nil
}
