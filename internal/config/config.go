// Package config reads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting the server reads from the environment
type Config struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"raidroster.db"`

	RedisURL      string        `env:"REDIS_URL"`
	RedisPoolSize int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	EventTTL      time.Duration `env:"EVENT_TTL" envDefault:"336h"`
	LockTTL       time.Duration `env:"LOCK_TTL" envDefault:"5s"`

	// TemplatesPath overrides the built-in template catalogue
	TemplatesPath string `env:"TEMPLATES_PATH"`

	// TransportTokenHash is a bcrypt hash; when set, mutating API routes need the matching bearer token
	TransportTokenHash string `env:"TRANSPORT_TOKEN_HASH"`

	AuthorName    string `env:"AUTHOR_NAME" envDefault:"Raid Roster"`
	AuthorIconURL string `env:"AUTHOR_ICON_URL"`

	StaticDir string `env:"STATIC_DIR"`
}

// Load reads an optional .env file, then parses the environment.
// Variables already set in the environment win over the file.
func Load(dotenvFiles ...string) (Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements
func (c Config) Validate() error {
	switch c.StorageType {
	case "memory", "sqlite":
	case "redis":
		if c.RedisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be memory, redis or sqlite", c.StorageType)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a LOG_LEVEL value to a slog level
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(level)))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	return l, nil
}
