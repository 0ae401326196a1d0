package redis

import "time"

// Config holds Redis connection and expiry settings
type Config struct {
	// URL is the Redis connection URL (redis://...)
	URL string

	// PoolSize is the maximum number of connections
	PoolSize int

	// MinIdleConns is the minimum number of idle connections
	MinIdleConns int

	// SessionTTL applies to session-scoped documents (session, roster,
	// selections, used questions, theme). Zero means no expiry.
	SessionTTL time.Duration

	// BankTTL applies to question banks. Zero means no expiry.
	BankTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis storage
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		SessionTTL:   7 * 24 * time.Hour,
		BankTTL:      0,
	}
}
