package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/showquiz/tvtrivia/internal/ai"
	"github.com/showquiz/tvtrivia/internal/dependencies/clock"
	"github.com/showquiz/tvtrivia/internal/dependencies/random"
	"github.com/showquiz/tvtrivia/internal/services/auth"
	"github.com/showquiz/tvtrivia/internal/services/bank"
	"github.com/showquiz/tvtrivia/internal/services/history"
	"github.com/showquiz/tvtrivia/internal/services/roster"
	"github.com/showquiz/tvtrivia/internal/services/session"
	"github.com/showquiz/tvtrivia/internal/services/shows"
	"github.com/showquiz/tvtrivia/internal/storage"
	"github.com/showquiz/tvtrivia/internal/storage/memory"
	"github.com/showquiz/tvtrivia/internal/storage/postgres"
	redisstorage "github.com/showquiz/tvtrivia/internal/storage/redis"
	"github.com/showquiz/tvtrivia/internal/storage/snapshot"
	"github.com/showquiz/tvtrivia/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage   storage.Storage
	Snapshots snapshot.Store

	// External dependencies
	Clock    clock.Clock
	Random   random.Random
	Provider ai.Provider

	// Services
	ShowService       *shows.Service
	HistoryService    *history.Service
	RosterService     *roster.Service
	BankService       *bank.Service
	SessionController *session.Controller
	AuthService       *auth.Service
	HubManager        *sse.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresDSN is the Postgres connection string (required if StorageType is "postgres")
	PostgresDSN string
	// SnapshotDir is the directory for question bank snapshots (optional)
	// If empty, snapshots are disabled
	SnapshotDir string
	// Provider is the AI provider for question generation (required for seeding)
	Provider ai.Provider
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// GameConfig tunes scoring and the round threshold (optional)
	// If zero value, defaults to session.DefaultConfig()
	GameConfig session.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypePostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("PostgresDSN required when StorageType is postgres")
		}
		pgStore, err := postgres.New(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	var snapshots snapshot.Store = snapshot.Disabled{}
	if cfg.SnapshotDir != "" {
		snapshots = snapshot.NewFileStore(cfg.SnapshotDir)
	}

	clk := clock.New()
	rnd := random.New()

	authCfg := cfg.AuthConfig
	if authCfg.TokenDuration == 0 {
		authCfg = auth.DefaultConfig()
	}
	gameCfg := cfg.GameConfig
	if gameCfg.WinningScore == 0 {
		gameCfg = session.DefaultConfig()
	}

	return newWithDependencies(store, snapshots, cfg.Provider, clk, rnd, authCfg, gameCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	snapshots snapshot.Store,
	provider ai.Provider,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	gameCfg session.Config,
	logger *slog.Logger,
) *App {
	showService := shows.NewService(store, clk, logger)
	historyService := history.NewService(store, clk, logger)
	rosterService := roster.NewService(store, clk, logger)
	bankService := bank.NewService(store, provider, snapshots, clk, logger)
	sessionController := session.NewController(store, rosterService, showService, historyService, clk, rnd, logger, gameCfg)
	authService := auth.New(store, clk, authCfg)
	hubManager := sse.NewHubManager(logger)

	return &App{
		Storage:           store,
		Snapshots:         snapshots,
		Clock:             clk,
		Random:            rnd,
		Provider:          provider,
		ShowService:       showService,
		HistoryService:    historyService,
		RosterService:     rosterService,
		BankService:       bankService,
		SessionController: sessionController,
		AuthService:       authService,
		HubManager:        hubManager,
	}
}
