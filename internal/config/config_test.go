package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "memory", cfg.StorageType)
	assert.Equal(t, 14*24*time.Hour, cfg.EventTTL)
	assert.Equal(t, 5*time.Second, cfg.LockTTL)
	assert.Empty(t, cfg.TransportTokenHash)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_TYPE", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("EVENT_TTL", "1h")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "redis", cfg.StorageType)
	assert.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
	assert.Equal(t, time.Hour, cfg.EventTTL)
}

func TestLoadDotenvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("AUTHOR_NAME=From File\nSQLITE_PATH=/tmp/file.db\n"), 0o600))
	t.Setenv("AUTHOR_NAME", "From Env")
	t.Cleanup(func() { _ = os.Unsetenv("SQLITE_PATH") })

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "From Env", cfg.AuthorName)
	assert.Equal(t, "/tmp/file.db", cfg.SQLitePath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{StorageType: "memory", LogLevel: "info"}, false},
		{"sqlite", Config{StorageType: "sqlite", LogLevel: "debug"}, false},
		{"redis without url", Config{StorageType: "redis", LogLevel: "info"}, true},
		{"redis with url", Config{StorageType: "redis", RedisURL: "redis://x", LogLevel: "info"}, false},
		{"unknown storage", Config{StorageType: "postgres", LogLevel: "info"}, true},
		{"bad level", Config{StorageType: "memory", LogLevel: "loud"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}
