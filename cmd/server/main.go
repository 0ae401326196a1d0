package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/showquiz/tvtrivia/internal/ai/openai"
	"github.com/showquiz/tvtrivia/internal/api"
	"github.com/showquiz/tvtrivia/internal/factory"
	"github.com/showquiz/tvtrivia/internal/services/session"
	redisstorage "github.com/showquiz/tvtrivia/internal/storage/redis"
)

func main() {
	cfg := &config{}
	cmd := newCmd(cfg)
	if err := cmd.Execute(); err != nil {
		slog.Error("fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config) error {
	// Set up logging with JSON output
	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Build factory config
	gameCfg := session.DefaultConfig()
	if cfg.winningScore > 0 {
		gameCfg.WinningScore = cfg.winningScore
	}

	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.storageType,
		PostgresDSN: cfg.postgresDSN,
		SnapshotDir: cfg.snapshotDir,
		Provider:    openai.New(cfg.openAIKey, cfg.openAIBaseURL, cfg.openAIModel),
		GameConfig:  gameCfg,
	}

	if cfg.storageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.redisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		return err
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		AuthService:       app.AuthService,
		SessionController: app.SessionController,
		RosterService:     app.RosterService,
		ShowService:       app.ShowService,
		BankService:       app.BankService,
		HubManager:        app.HubManager,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.bind
	serverConfig.Port = cfg.port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return server.Shutdown(context.Background())
	}
}
