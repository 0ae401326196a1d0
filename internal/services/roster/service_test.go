package roster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/showquiz/tvtrivia/internal/dependencies/mocks"
	"github.com/showquiz/tvtrivia/internal/model"
	"github.com/showquiz/tvtrivia/internal/storage/memory"
	"github.com/showquiz/tvtrivia/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = NewService(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

// Get tests

func (s *ServiceSuite) TestGetDefaultsToTwoPlayers() {
	roster, err := s.service.Get(s.ctx, "SESSION1")
	s.Require().NoError(err)

	s.Len(roster.Players, 2)
	s.Equal(model.PlayerID("player-1"), roster.Players[0].ID)
	s.Equal(model.PlayerID("player-2"), roster.Players[1].ID)
}

func (s *ServiceSuite) TestGetReturnsSavedRoster() {
	saved := &model.Roster{
		SessionID: "SESSION1",
		Players:   []model.Player{{ID: "p1", Name: "Alice", Score: 100}},
	}
	s.Require().NoError(s.storage.SaveRoster(s.ctx, saved))

	roster, err := s.service.Get(s.ctx, "SESSION1")
	s.Require().NoError(err)
	s.Len(roster.Players, 1)
	s.Equal("Alice", roster.Players[0].Name)
}

// AddPlayer tests

func (s *ServiceSuite) TestAddPlayerGeneratesNameAndID() {
	roster, err := s.service.AddPlayer(s.ctx, "SESSION1")
	s.Require().NoError(err)

	s.Len(roster.Players, 3)
	added := roster.Players[2]
	s.NotEmpty(added.ID)
	s.Equal("Player 3", added.Name)
	s.Equal(0, added.Score)
}

func (s *ServiceSuite) TestAddPlayerPersists() {
	_, err := s.service.AddPlayer(s.ctx, "SESSION1")
	s.Require().NoError(err)

	roster, err := s.storage.GetRoster(s.ctx, "SESSION1")
	s.Require().NoError(err)
	s.Len(roster.Players, 3)
}

// Rename tests

func (s *ServiceSuite) TestRenameCommitTrims() {
	roster, err := s.service.Rename(s.ctx, "SESSION1", "player-1", "  Alice  ", true)
	s.Require().NoError(err)
	s.Equal("Alice", roster.Players[0].Name)
}

func (s *ServiceSuite) TestRenameCommitEmptyFallsBack() {
	roster, err := s.service.Rename(s.ctx, "SESSION1", "player-1", "   ", true)
	s.Require().NoError(err)
	s.Equal(model.DefaultPlayerName, roster.Players[0].Name)
}

func (s *ServiceSuite) TestRenameUncommittedKeepsRawText() {
	roster, err := s.service.Rename(s.ctx, "SESSION1", "player-1", "Ali ", false)
	s.Require().NoError(err)
	s.Equal("Ali ", roster.Players[0].Name)
}

func (s *ServiceSuite) TestRenameFailsForUnknownPlayer() {
	_, err := s.service.Rename(s.ctx, "SESSION1", "ghost", "Alice", true)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// RemovePlayer tests

func (s *ServiceSuite) TestRemovePlayer() {
	roster, err := s.service.RemovePlayer(s.ctx, "SESSION1", "player-1")
	s.Require().NoError(err)

	s.Len(roster.Players, 1)
	s.Equal(model.PlayerID("player-2"), roster.Players[0].ID)
}

func (s *ServiceSuite) TestRemovePlayerFailsForUnknownPlayer() {
	_, err := s.service.RemovePlayer(s.ctx, "SESSION1", "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestRemovePlayerRenormalizesSessionIndex() {
	session := &model.GameSession{
		ID:                 "SESSION1",
		Decade:             "1990s",
		Phase:              model.PhaseAwaitingShowSelection,
		CurrentPlayerIndex: 1,
	}
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	_, err := s.service.RemovePlayer(s.ctx, "SESSION1", "player-2")
	s.Require().NoError(err)

	updated, err := s.storage.GetSession(s.ctx, "SESSION1")
	s.Require().NoError(err)
	s.Equal(0, updated.CurrentPlayerIndex)
}

func (s *ServiceSuite) TestRemovePlayerWithoutSessionDocSucceeds() {
	_, err := s.service.RemovePlayer(s.ctx, "SESSION1", "player-1")
	s.NoError(err)
}

// ApplyScoreDelta tests

func (s *ServiceSuite) TestApplyScoreDeltaAccumulates() {
	_, err := s.service.ApplyScoreDelta(s.ctx, "SESSION1", "player-1", 100)
	s.Require().NoError(err)
	roster, err := s.service.ApplyScoreDelta(s.ctx, "SESSION1", "player-1", 200)
	s.Require().NoError(err)

	s.Equal(300, roster.Players[0].Score)
	s.Equal(0, roster.Players[1].Score)
}

func (s *ServiceSuite) TestApplyScoreDeltaRejectsNegative() {
	_, err := s.service.ApplyScoreDelta(s.ctx, "SESSION1", "player-1", -50)
	s.ErrorIs(err, model.ErrNegativeDelta)
}

func (s *ServiceSuite) TestApplyScoreDeltaZeroIsAllowed() {
	roster, err := s.service.ApplyScoreDelta(s.ctx, "SESSION1", "player-1", 0)
	s.Require().NoError(err)
	s.Equal(0, roster.Players[0].Score)
}

func (s *ServiceSuite) TestApplyScoreDeltaFailsForUnknownPlayer() {
	_, err := s.service.ApplyScoreDelta(s.ctx, "SESSION1", "ghost", 100)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// ResetScores tests

func (s *ServiceSuite) TestResetScores() {
	_, err := s.service.ApplyScoreDelta(s.ctx, "SESSION1", "player-1", 500)
	s.Require().NoError(err)

	roster, err := s.service.ResetScores(s.ctx, "SESSION1")
	s.Require().NoError(err)
	for _, p := range roster.Players {
		s.Equal(0, p.Score)
	}
}
