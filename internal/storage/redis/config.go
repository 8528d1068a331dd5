package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// EventTTL applies to the event record and its roster keys.
	// Every write refreshes it, so only idle events expire.
	EventTTL time.Duration

	// Event lock settings
	LockTTL       time.Duration // Upper bound on how long a crashed holder blocks an event
	LockRetryWait time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:           "redis://localhost:6379",
		PoolSize:      10,
		MinIdleConns:  2,
		EventTTL:      14 * 24 * time.Hour,
		LockTTL:       5 * time.Second,
		LockRetryWait: 20 * time.Millisecond,
	}
}
