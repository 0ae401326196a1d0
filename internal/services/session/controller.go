package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/showquiz/tvtrivia/internal/dependencies/clock"
	"github.com/showquiz/tvtrivia/internal/dependencies/random"
	"github.com/showquiz/tvtrivia/internal/model"
	"github.com/showquiz/tvtrivia/internal/services/history"
	"github.com/showquiz/tvtrivia/internal/services/roster"
	"github.com/showquiz/tvtrivia/internal/services/shows"
	"github.com/showquiz/tvtrivia/internal/storage"
)

const sessionIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Scoring maps question difficulty to points awarded
type Scoring struct {
	Easy   int
	Medium int
	Hard   int
}

// Points returns the award for a difficulty
func (s Scoring) Points(d model.Difficulty) int {
	switch d {
	case model.DifficultyEasy:
		return s.Easy
	case model.DifficultyMedium:
		return s.Medium
	case model.DifficultyHard:
		return s.Hard
	default:
		return 0
	}
}

// Config tunes the game rules
type Config struct {
	Scoring      Scoring
	WinningScore int
}

// DefaultConfig returns the standard rules
func DefaultConfig() Config {
	return Config{
		Scoring:      Scoring{Easy: 50, Medium: 100, Hard: 200},
		WinningScore: 1000,
	}
}

// Controller manages session lifecycle and the turn state machine
type Controller struct {
	storage       storage.Storage
	rosterService *roster.Service
	showService   *shows.Service
	history       *history.Service
	clock         clock.Clock
	random        random.Random
	logger        *slog.Logger
	config        Config
}

// NewController creates a new session Controller
func NewController(
	storage storage.Storage,
	rosterService *roster.Service,
	showService *shows.Service,
	historyService *history.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	config Config,
) *Controller {
	return &Controller{
		storage:       storage,
		rosterService: rosterService,
		showService:   showService,
		history:       historyService,
		clock:         clock,
		random:        random,
		logger:        logger,
		config:        config,
	}
}

// CreateSession starts a new game session for a decade with the
// default roster
func (c *Controller) CreateSession(ctx context.Context, decade string) (*model.GameSession, error) {
	if !shows.ValidDecade(decade) {
		return nil, model.ErrInvalidDecade
	}

	now := c.clock.Now()
	session := &model.GameSession{
		ID:            model.SessionID(c.random.String(12, sessionIDAlphabet)),
		Decade:        decade,
		Phase:         model.PhaseAwaitingShowSelection,
		RoundNumber:   1,
		TurnNumber:    0,
		StatusMessage: "Pick a show to start the turn.",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	if err := c.storage.SaveRoster(ctx, model.DefaultRoster(session.ID, now)); err != nil {
		return nil, err
	}

	c.logger.Info("created session",
		slog.String("session_id", string(session.ID)),
		slog.String("decade", decade),
	)
	return session, nil
}

// GetSession fetches a session by ID
func (c *Controller) GetSession(ctx context.Context, sessionID model.SessionID) (*model.GameSession, error) {
	return c.storage.GetSession(ctx, sessionID)
}

// DeleteSession removes a session
func (c *Controller) DeleteSession(ctx context.Context, sessionID model.SessionID) error {
	return c.storage.DeleteSession(ctx, sessionID)
}

// SetDecade switches the session to another decade. Any in-flight turn
// state is cleared since it belonged to the old decade's bank.
func (c *Controller) SetDecade(ctx context.Context, sessionID model.SessionID, decade string) (*model.GameSession, error) {
	if !shows.ValidDecade(decade) {
		return nil, model.ErrInvalidDecade
	}

	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Phase == model.PhaseRoundComplete {
		return nil, model.ErrRoundComplete
	}

	session.Decade = decade
	session.ClearTurn()
	session.Phase = model.PhaseAwaitingShowSelection
	session.StatusMessage = fmt.Sprintf("Switched to the %s. Pick a show to start the turn.", decade)
	return session, c.save(ctx, session)
}

// SelectShow records the current player's show pick for this turn
func (c *Controller) SelectShow(ctx context.Context, sessionID model.SessionID, show string) (*model.GameSession, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Phase == model.PhaseRoundComplete {
		return nil, model.ErrRoundComplete
	}
	if session.ActiveQuestion != nil {
		return nil, model.ErrQuestionAlreadyDrawn
	}
	if show == "" {
		return nil, model.ErrEmptyShowTitle
	}

	players, err := c.rosterService.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(players.Players) == 0 {
		return nil, model.ErrRosterEmpty
	}

	session.SelectedShow = show
	session.SelectedAtTurn = session.TurnNumber
	session.Phase = model.PhaseShowSelected
	session.StatusMessage = fmt.Sprintf("%s selected. Draw a question when ready.", show)
	return session, c.save(ctx, session)
}

// SpinShow picks a show at random for the current turn. The pool is
// the session's selected shows for its decade, or the decade presets
// when nothing has been picked.
func (c *Controller) SpinShow(ctx context.Context, sessionID model.SessionID) (*model.GameSession, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	pool, err := c.showService.Selected(ctx, sessionID, session.Decade)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		pool, err = c.showService.PresetShows(session.Decade)
		if err != nil {
			return nil, err
		}
	}
	if len(pool) == 0 {
		return nil, model.ErrNoShowSelected
	}

	pick := pool[c.random.Intn(len(pool))]
	return c.SelectShow(ctx, sessionID, pick)
}

// DrawQuestion draws an unused question for the selected show from the
// decade's latest bank. The question is marked as used immediately, so
// it stays spent even if later skipped.
func (c *Controller) DrawQuestion(ctx context.Context, sessionID model.SessionID) (*model.GameSession, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Phase == model.PhaseRoundComplete {
		return nil, model.ErrRoundComplete
	}
	if session.ActiveQuestion != nil {
		return nil, model.ErrQuestionAlreadyDrawn
	}
	if session.SelectedShow == "" {
		return nil, model.ErrNoShowSelected
	}
	if !session.HasSelectionForCurrentTurn() {
		return nil, model.ErrStaleShowSelection
	}

	bank, err := c.storage.GetLatestQuestionBank(ctx, session.Decade)
	if err != nil {
		return nil, err
	}

	used, err := c.history.UsedIDs(ctx, sessionID, session.Decade)
	if err != nil {
		return nil, err
	}

	var available []model.Question
	for _, q := range bank.QuestionsForShow(session.SelectedShow) {
		if !used[q.ID] {
			available = append(available, q)
		}
	}
	if len(available) == 0 {
		return nil, model.ErrNoUnusedQuestions
	}

	question := available[c.random.Intn(len(available))]
	if err := c.history.Record(ctx, sessionID, session.Decade, question.ID); err != nil {
		return nil, err
	}

	session.ActiveQuestion = &question
	session.AnswerRevealed = false
	session.Phase = model.PhaseQuestionDrawn
	session.StatusMessage = fmt.Sprintf("Question drawn for %s.", session.SelectedShow)
	return session, c.save(ctx, session)
}

// RevealAnswer flips the answer visible. Idempotent.
func (c *Controller) RevealAnswer(ctx context.Context, sessionID model.SessionID) (*model.GameSession, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.ActiveQuestion == nil {
		return nil, model.ErrNoActiveQuestion
	}
	if session.AnswerRevealed {
		return session, nil
	}

	session.AnswerRevealed = true
	return session, c.save(ctx, session)
}

// SkipQuestion discards the active question without scoring. The show
// selection stands so another question can be drawn, but the skipped
// question stays spent.
func (c *Controller) SkipQuestion(ctx context.Context, sessionID model.SessionID) (*model.GameSession, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.ActiveQuestion == nil {
		return nil, model.ErrNoActiveQuestion
	}

	session.ActiveQuestion = nil
	session.AnswerRevealed = false
	session.Phase = model.PhaseShowSelected
	session.StatusMessage = fmt.Sprintf("Question skipped. Draw another for %s.", session.SelectedShow)
	return session, c.save(ctx, session)
}

// ResolveTurn scores the active question and advances to the next
// player. Clearing the active question here is what makes resolution
// single-shot: a second resolve finds no question to score.
func (c *Controller) ResolveTurn(ctx context.Context, sessionID model.SessionID, isCorrect bool) (*model.GameSession, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Phase == model.PhaseRoundComplete {
		return nil, model.ErrRoundComplete
	}
	if session.ActiveQuestion == nil {
		return nil, model.ErrNoActiveQuestion
	}

	players, err := c.rosterService.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(players.Players) == 0 {
		return nil, model.ErrRosterEmpty
	}

	idx := players.NormalizeIndex(session.CurrentPlayerIndex)
	current := players.Players[idx]

	if isCorrect {
		points := c.config.Scoring.Points(session.ActiveQuestion.Difficulty)
		players, err = c.rosterService.ApplyScoreDelta(ctx, sessionID, current.ID, points)
		if err != nil {
			return nil, err
		}
		session.StatusMessage = fmt.Sprintf("%s scored %d points.", current.Name, points)
	} else {
		session.StatusMessage = fmt.Sprintf("%s missed it. No points.", current.Name)
	}

	session.ClearTurn()
	session.TurnNumber++
	session.CurrentPlayerIndex = (idx + 1) % len(players.Players)
	session.Phase = model.PhaseAwaitingShowSelection

	if players.HighestScore() >= c.config.WinningScore {
		session.Phase = model.PhaseRoundComplete
		session.StatusMessage = fmt.Sprintf("Round %d complete! %s takes it.", session.RoundNumber, winnerName(players))
	}

	return session, c.save(ctx, session)
}

// StartNewRound resets scores and begins the next round. Only valid
// after a round has completed. With shuffle, the turn order rotates to
// a random permutation of the roster and a random starter.
func (c *Controller) StartNewRound(ctx context.Context, sessionID model.SessionID, shuffle bool) (*model.GameSession, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Phase != model.PhaseRoundComplete {
		return nil, model.ErrRoundNotComplete
	}

	players, err := c.rosterService.ResetScores(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if shuffle && len(players.Players) > 1 {
		perm := c.random.Perm(len(players.Players))
		shuffled := make([]model.Player, len(players.Players))
		for i, j := range perm {
			shuffled[i] = players.Players[j]
		}
		players.Players = shuffled
		players.UpdatedAt = c.clock.Now()
		if err := c.storage.SaveRoster(ctx, players); err != nil {
			return nil, err
		}
	}

	session.ClearTurn()
	session.RoundNumber++
	session.TurnNumber = 0
	session.CurrentPlayerIndex = 0
	session.Phase = model.PhaseAwaitingShowSelection
	session.StatusMessage = fmt.Sprintf("Round %d. Pick a show to start the turn.", session.RoundNumber)
	return session, c.save(ctx, session)
}

// SetTheme applies a display theme to the session
func (c *Controller) SetTheme(ctx context.Context, sessionID model.SessionID, theme model.Theme) error {
	if !theme.Valid() {
		return model.ErrInvalidTheme
	}
	if exists, err := c.storage.SessionExists(ctx, sessionID); err != nil {
		return err
	} else if !exists {
		return model.ErrSessionNotFound
	}
	return c.storage.SaveTheme(ctx, sessionID, theme)
}

// GetTheme returns the session's theme, defaulting when unset
func (c *Controller) GetTheme(ctx context.Context, sessionID model.SessionID) (model.Theme, error) {
	theme, err := c.storage.GetTheme(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrThemeNotFound) {
			return model.DefaultTheme, nil
		}
		return "", err
	}
	return theme, nil
}

func (c *Controller) save(ctx context.Context, session *model.GameSession) error {
	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

func winnerName(r *model.Roster) string {
	best := r.HighestScore()
	for _, p := range r.Players {
		if p.Score == best {
			return p.Name
		}
	}
	return model.DefaultPlayerName
}
