package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/raidroster/internal/lock"
)

// releaseScript deletes the lock only if it still carries our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker is a lock.Locker shared between processes through Redis.
// Holders that crash release implicitly after LockTTL.
type Locker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
	logger *slog.Logger
}

// NewLocker creates a Redis-backed locker
func NewLocker(client *redis.Client, cfg Config, logger *slog.Logger) *Locker {
	ttl := cfg.LockTTL
	if ttl <= 0 {
		ttl = DefaultConfig().LockTTL
	}
	retry := cfg.LockRetryWait
	if retry <= 0 {
		retry = DefaultConfig().LockRetryWait
	}
	return &Locker{
		client: client,
		ttl:    ttl,
		retry:  retry,
		logger: logger.With(slog.String("component", "redis_lock")),
	}
}

// Ensure Locker implements the interface
var _ lock.Locker = (*Locker)(nil)

// Lock polls SET NX until it wins or ctx is done
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}
	k := lockKey(key)

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, err
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		l.release(k, token)
	}, nil
}

// release runs on a background context since the caller's may already be
// cancelled. A failed release holds the event until the lock TTL runs out.
func (l *Locker) release(key, token string) {
	deleted, err := releaseScript.Run(context.Background(), l.client, []string{key}, token).Int64()
	switch {
	case err != nil:
		l.logger.Error("release event lock",
			slog.String("key", key),
			slog.Duration("held_until_ttl", l.ttl),
			slog.String("error", err.Error()),
		)
	case deleted == 0:
		l.logger.Warn("event lock expired before release", slog.String("key", key))
	}
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
