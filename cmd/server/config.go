package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type config struct {
	bind        string
	port        int
	storageType string
	redisURL    string
	postgresDSN string
	snapshotDir string

	openAIKey     string
	openAIModel   string
	openAIBaseURL string

	winningScore int
	verbose      bool
}

func (c *config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	switch c.storageType {
	case "memory", "redis", "postgres":
	default:
		return fmt.Errorf("invalid storage type: %q", c.storageType)
	}
	if c.storageType == "redis" && c.redisURL == "" {
		return errors.New("--redis-url required when --storage-type=redis")
	}
	if c.storageType == "postgres" && c.postgresDSN == "" {
		return errors.New("--postgres-dsn required when --storage-type=postgres")
	}
	return nil
}

func newCmd(cfg *config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("TVTRIVIA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "tvtrivia-server",
		Short:         "TV trivia party game server",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "", "address to bind to (env: TVTRIVIA_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: TVTRIVIA_PORT)")
	fs.StringVar(&cfg.storageType, "storage-type", "memory", "storage backend: memory, redis or postgres (env: TVTRIVIA_STORAGE_TYPE)")
	fs.StringVar(&cfg.redisURL, "redis-url", "", "redis connection URL (env: TVTRIVIA_REDIS_URL)")
	fs.StringVar(&cfg.postgresDSN, "postgres-dsn", "", "postgres connection string (env: TVTRIVIA_POSTGRES_DSN)")
	fs.StringVar(&cfg.snapshotDir, "snapshot-dir", "", "directory for question bank snapshots (env: TVTRIVIA_SNAPSHOT_DIR)")
	fs.StringVar(&cfg.openAIKey, "openai-key", "", "OpenAI API key (env: TVTRIVIA_OPENAI_KEY)")
	fs.StringVar(&cfg.openAIModel, "openai-model", "", "OpenAI model override (env: TVTRIVIA_OPENAI_MODEL)")
	fs.StringVar(&cfg.openAIBaseURL, "openai-base-url", "", "OpenAI API base URL override (env: TVTRIVIA_OPENAI_BASE_URL)")
	fs.IntVar(&cfg.winningScore, "winning-score", 1000, "score that completes a round (env: TVTRIVIA_WINNING_SCORE)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display debug output (env: TVTRIVIA_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}
