package bank

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/showquiz/tvtrivia/internal/ai"
	"github.com/showquiz/tvtrivia/internal/dependencies/mocks"
	"github.com/showquiz/tvtrivia/internal/model"
	"github.com/showquiz/tvtrivia/internal/services/shows"
	"github.com/showquiz/tvtrivia/internal/storage/memory"
	"github.com/showquiz/tvtrivia/internal/storage/snapshot"
	"github.com/showquiz/tvtrivia/internal/testutil"
)

// stubProvider emits deterministic questions for tests
type stubProvider struct {
	perShow int
	shows   []string
	err     error

	lastRequest ai.GenerateBankRequest
}

func (p *stubProvider) GenerateQuestions(_ context.Context, req ai.GenerateBankRequest) ([]ai.GeneratedQuestion, error) {
	p.lastRequest = req
	if p.err != nil {
		return nil, p.err
	}

	count := p.perShow
	if req.QuestionsPerShow > 0 {
		count = req.QuestionsPerShow
	}

	difficulties := []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}
	var out []ai.GeneratedQuestion
	for _, show := range req.Shows {
		for i := 0; i < count; i++ {
			out = append(out, ai.GeneratedQuestion{
				Show:                   show,
				Question:               fmt.Sprintf("Question %d about %s?", i+1, show),
				AnswerType:             "exact",
				AcceptedAnswers:        []string{fmt.Sprintf("Answer %d", i+1)},
				Difficulty:             difficulties[i%len(difficulties)],
				Season:                 "1",
				EpisodeNumber:          "1",
				EpisodeTitle:           "Pilot",
				EvidenceSummary:        "Stated on screen.",
				InternalReasoningCheck: "Checked.",
				FactualConfidence:      9,
				AmbiguityRisk:          "low",
			})
		}
	}
	return out, nil
}

func (p *stubProvider) PopularShows(_ context.Context, decade string) ([]string, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.shows, nil
}

type ServiceSuite struct {
	suite.Suite
	storage  *memory.Storage
	provider *stubProvider
	service  *Service
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.provider = &stubProvider{perShow: 3}
	clock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = NewService(s.storage, s.provider, snapshot.Disabled{}, clock, testutil.NopLogger())
	s.ctx = context.Background()
}

// Seed tests

func (s *ServiceSuite) TestSeedStoresBank() {
	bank, err := s.service.Seed(s.ctx, "1990s", []string{"Seinfeld", "Friends"}, 3, ai.DefaultDifficultyMix(), 0)
	s.Require().NoError(err)

	s.NotEmpty(bank.ID)
	s.Equal("1990s", bank.Decade)
	s.Len(bank.Questions, 6)
	s.Equal(shows.SetHash([]string{"Seinfeld", "Friends"}), bank.ShowSetHash)

	stored, err := s.storage.GetLatestQuestionBank(s.ctx, "1990s")
	s.Require().NoError(err)
	s.Equal(bank.ID, stored.ID)
}

func (s *ServiceSuite) TestSeedAssignsStableQuestionIDs() {
	bank, err := s.service.Seed(s.ctx, "1990s", []string{"The X-Files"}, 2, ai.DefaultDifficultyMix(), 0)
	s.Require().NoError(err)

	s.Require().Len(bank.Questions, 2)
	s.Equal("the-x-files-0", bank.Questions[0].ID)
	s.Equal("the-x-files-1", bank.Questions[1].ID)
	s.Equal("the-x-files", bank.Questions[0].ShowID)
}

func (s *ServiceSuite) TestSeedReplacesLatestBank() {
	first, err := s.service.Seed(s.ctx, "1990s", []string{"Seinfeld"}, 3, ai.DefaultDifficultyMix(), 0)
	s.Require().NoError(err)
	second, err := s.service.Seed(s.ctx, "1990s", []string{"Friends"}, 3, ai.DefaultDifficultyMix(), 0)
	s.Require().NoError(err)
	s.NotEqual(first.ID, second.ID)

	latest, err := s.storage.GetLatestQuestionBank(s.ctx, "1990s")
	s.Require().NoError(err)
	s.Equal(second.ID, latest.ID)
}

func (s *ServiceSuite) TestSeedDefaultsQuestionsPerShowFromMix() {
	mix := ai.DifficultyMix{Easy: 2, Medium: 2, Hard: 1}
	_, err := s.service.Seed(s.ctx, "1990s", []string{"Seinfeld"}, 0, mix, 0)
	s.Require().NoError(err)

	s.Equal(5, s.provider.lastRequest.QuestionsPerShow)
}

func (s *ServiceSuite) TestSeedFailsWithInvalidDecade() {
	_, err := s.service.Seed(s.ctx, "90s", []string{"Seinfeld"}, 3, ai.DefaultDifficultyMix(), 0)
	s.ErrorIs(err, model.ErrInvalidDecade)
}

func (s *ServiceSuite) TestSeedFailsWithNoShows() {
	_, err := s.service.Seed(s.ctx, "1990s", []string{"  ", ""}, 3, ai.DefaultDifficultyMix(), 0)
	s.ErrorIs(err, model.ErrEmptyShowTitle)
}

func (s *ServiceSuite) TestSeedPropagatesProviderError() {
	s.provider.err = errors.New("rate limited")

	_, err := s.service.Seed(s.ctx, "1990s", []string{"Seinfeld"}, 3, ai.DefaultDifficultyMix(), 0)
	s.ErrorContains(err, "rate limited")
}

// Status tests

func (s *ServiceSuite) TestStatusWithoutBank() {
	status, err := s.service.Status(s.ctx, "1990s", nil)
	s.Require().NoError(err)

	s.False(status.HasBank)
	s.Zero(status.QuestionCount)
	s.Nil(status.MatchesSelectedShows)
}

func (s *ServiceSuite) TestStatusWithBank() {
	_, err := s.service.Seed(s.ctx, "1990s", []string{"Seinfeld"}, 3, ai.DefaultDifficultyMix(), 0)
	s.Require().NoError(err)

	status, err := s.service.Status(s.ctx, "1990s", nil)
	s.Require().NoError(err)

	s.True(status.HasBank)
	s.Equal(3, status.QuestionCount)
	s.Equal([]string{"Seinfeld"}, status.StoredShows)
	s.Nil(status.MatchesSelectedShows)
}

func (s *ServiceSuite) TestStatusComparesSelectedShows() {
	_, err := s.service.Seed(s.ctx, "1990s", []string{"Seinfeld", "Friends"}, 3, ai.DefaultDifficultyMix(), 0)
	s.Require().NoError(err)

	status, err := s.service.Status(s.ctx, "1990s", []string{" friends ", "SEINFELD"})
	s.Require().NoError(err)
	s.Require().NotNil(status.MatchesSelectedShows)
	s.True(*status.MatchesSelectedShows)

	status, err = s.service.Status(s.ctx, "1990s", []string{"Seinfeld", "Frasier"})
	s.Require().NoError(err)
	s.Require().NotNil(status.MatchesSelectedShows)
	s.False(*status.MatchesSelectedShows)
}

// PopularShows tests

func (s *ServiceSuite) TestPopularShowsDelegatesToProvider() {
	s.provider.shows = []string{"Seinfeld", "Friends"}

	result, err := s.service.PopularShows(s.ctx, "1990s")
	s.Require().NoError(err)
	s.Equal([]string{"Seinfeld", "Friends"}, result)
}

func (s *ServiceSuite) TestPopularShowsFailsWithInvalidDecade() {
	_, err := s.service.PopularShows(s.ctx, "nineties")
	s.ErrorIs(err, model.ErrInvalidDecade)
}

// ID sanitization tests

func TestSanitizeForID(t *testing.T) {
	cases := map[string]string{
		"Seinfeld":                    "seinfeld",
		"M*A*S*H":                     "m-a-s-h",
		"The Fresh Prince of Bel-Air": "the-fresh-prince-of-bel-air",
		"24":                          "24",
		"Three's Company":             "three-s-company",
	}
	for in, want := range cases {
		assert.Equal(t, want, sanitizeForID(in), in)
	}
}
