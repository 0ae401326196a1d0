package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/showquiz/tvtrivia/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour
	cfg.BankTTL = 0

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	session := &model.GameSession{
		ID:          "SESSION1",
		Decade:      "1990s",
		Phase:       model.PhaseShowSelected,
		RoundNumber: 2,
		TurnNumber:  7,
	}

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "SESSION1")
	s.Require().NoError(err)
	s.Equal(session.ID, retrieved.ID)
	s.Equal(model.PhaseShowSelected, retrieved.Phase)
	s.Equal(7, retrieved.TurnNumber)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	_ = s.storage.SaveSession(s.ctx, &model.GameSession{ID: "SESSION1"})

	err := s.storage.DeleteSession(s.ctx, "SESSION1")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "SESSION1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionExists() {
	exists, err := s.storage.SessionExists(s.ctx, "SESSION1")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveSession(s.ctx, &model.GameSession{ID: "SESSION1"})

	exists, err = s.storage.SessionExists(s.ctx, "SESSION1")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestSessionDocumentsHaveTTL() {
	_ = s.storage.SaveSession(s.ctx, &model.GameSession{ID: "SESSION1"})

	ttl := s.mini.TTL(sessionKey("SESSION1"))
	s.True(ttl > 0, "session documents should expire")
}

func (s *StorageSuite) TestActiveQuestionRoundTrips() {
	session := &model.GameSession{
		ID:     "SESSION1",
		Decade: "1990s",
		Phase:  model.PhaseQuestionDrawn,
		ActiveQuestion: &model.Question{
			ID:         "seinfeld-0",
			ShowTitle:  "Seinfeld",
			Difficulty: model.DifficultyHard,
			Prompt:     "What is the name of Kramer's first name?",
			Answer:     "Cosmo",
		},
	}
	_ = s.storage.SaveSession(s.ctx, session)

	retrieved, err := s.storage.GetSession(s.ctx, "SESSION1")
	s.Require().NoError(err)
	s.Require().NotNil(retrieved.ActiveQuestion)
	s.Equal("Cosmo", retrieved.ActiveQuestion.Answer)
}

// Roster tests

func (s *StorageSuite) TestSaveAndGetRoster() {
	roster := &model.Roster{
		SessionID: "SESSION1",
		Players: []model.Player{
			{ID: "player-1", Name: "Alice", Score: 350},
			{ID: "player-2", Name: "Bob", Score: 200},
		},
	}

	err := s.storage.SaveRoster(s.ctx, roster)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoster(s.ctx, "SESSION1")
	s.Require().NoError(err)
	s.Len(retrieved.Players, 2)
	s.Equal(350, retrieved.Players[0].Score)
}

func (s *StorageSuite) TestGetRosterNotFound() {
	_, err := s.storage.GetRoster(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrRosterNotFound)
}

// Show selection tests

func (s *StorageSuite) TestSaveAndGetShowSelections() {
	selections := &model.ShowSelections{
		SessionID: "SESSION1",
		ByDecade: map[string][]string{
			"1990s": {"Seinfeld"},
			"1980s": {"Cheers", "The A-Team"},
		},
	}

	err := s.storage.SaveShowSelections(s.ctx, selections)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetShowSelections(s.ctx, "SESSION1")
	s.Require().NoError(err)
	s.Equal([]string{"Cheers", "The A-Team"}, retrieved.ByDecade["1980s"])
}

func (s *StorageSuite) TestGetShowSelectionsNotFound() {
	_, err := s.storage.GetShowSelections(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSelectionNotFound)
}

// Used-question tests

func (s *StorageSuite) TestSaveAndGetUsedQuestions() {
	used := &model.UsedQuestions{
		SessionID: "SESSION1",
		Decade:    "1990s",
		IDs:       []string{"q-1"},
	}

	err := s.storage.SaveUsedQuestions(s.ctx, used)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUsedQuestions(s.ctx, "SESSION1", "1990s")
	s.Require().NoError(err)
	s.Equal([]string{"q-1"}, retrieved.IDs)
}

func (s *StorageSuite) TestGetUsedQuestionsNotFound() {
	_, err := s.storage.GetUsedQuestions(s.ctx, "SESSION1", "1990s")
	s.ErrorIs(err, model.ErrUsedQuestionsNotFound)
}

func (s *StorageSuite) TestCorruptUsedQuestionsReadAsMissing() {
	err := s.mini.Set(usedQuestionsKey("SESSION1", "1990s"), "{not json")
	s.Require().NoError(err)

	_, err = s.storage.GetUsedQuestions(s.ctx, "SESSION1", "1990s")
	s.ErrorIs(err, model.ErrUsedQuestionsNotFound)
}

func (s *StorageSuite) TestCorruptSessionReadsAsMissing() {
	err := s.mini.Set(sessionKey("SESSION1"), "][")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "SESSION1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Question bank tests

func (s *StorageSuite) TestSaveAndGetLatestQuestionBank() {
	bank := &model.QuestionBank{
		ID:          "bank-1",
		Decade:      "1990s",
		Shows:       []string{"Seinfeld"},
		ShowSetHash: "abc123",
		Questions: []model.Question{
			{ID: "seinfeld-0", ShowTitle: "Seinfeld", Difficulty: model.DifficultyMedium},
		},
	}

	err := s.storage.SaveQuestionBank(s.ctx, bank)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetLatestQuestionBank(s.ctx, "1990s")
	s.Require().NoError(err)
	s.Equal("bank-1", retrieved.ID)
	s.Equal("abc123", retrieved.ShowSetHash)
}

func (s *StorageSuite) TestLatestBankIndexFollowsNewestSave() {
	_ = s.storage.SaveQuestionBank(s.ctx, &model.QuestionBank{ID: "bank-1", Decade: "1990s"})
	_ = s.storage.SaveQuestionBank(s.ctx, &model.QuestionBank{ID: "bank-2", Decade: "1990s"})

	latest, err := s.storage.GetLatestQuestionBank(s.ctx, "1990s")
	s.Require().NoError(err)
	s.Equal("bank-2", latest.ID)
}

func (s *StorageSuite) TestGetLatestQuestionBankNotFound() {
	_, err := s.storage.GetLatestQuestionBank(s.ctx, "1990s")
	s.ErrorIs(err, model.ErrBankNotFound)
}

func (s *StorageSuite) TestSetQuestionBankObjectKey() {
	_ = s.storage.SaveQuestionBank(s.ctx, &model.QuestionBank{ID: "bank-1", Decade: "1990s"})

	err := s.storage.SetQuestionBankObjectKey(s.ctx, "bank-1", "1990s/abc.json")
	s.Require().NoError(err)

	bank, err := s.storage.GetLatestQuestionBank(s.ctx, "1990s")
	s.Require().NoError(err)
	s.Equal("1990s/abc.json", bank.ObjectKey)
}

// User tests

func (s *StorageSuite) TestSaveAndGetUserByUsername() {
	user := &model.User{
		ID:           "u_1",
		Username:     "host",
		PasswordHash: "hash123",
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "host")
	s.Require().NoError(err)
	s.Equal("u_1", retrieved.ID)
	s.Equal("hash123", retrieved.PasswordHash)
}

func (s *StorageSuite) TestGetUserByUsernameNotFound() {
	_, err := s.storage.GetUserByUsername(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Theme tests

func (s *StorageSuite) TestSaveAndGetTheme() {
	err := s.storage.SaveTheme(s.ctx, "SESSION1", model.ThemeClassicNight)
	s.Require().NoError(err)

	theme, err := s.storage.GetTheme(s.ctx, "SESSION1")
	s.Require().NoError(err)
	s.Equal(model.ThemeClassicNight, theme)
}

func (s *StorageSuite) TestGetThemeNotFound() {
	_, err := s.storage.GetTheme(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrThemeNotFound)
}
