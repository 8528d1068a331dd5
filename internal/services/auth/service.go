package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/raidroster/internal/model"
)

// Config holds configuration for the auth service
type Config struct {
	// TokenHash is the bcrypt hash of the transport token. Empty disables auth.
	TokenHash string
}

// Service authenticates transports (chat bots, the CLI) against a shared token
type Service struct {
	hash   []byte
	logger *slog.Logger

	mu       sync.RWMutex
	verified [sha256.Size]byte // Digest of the last token that passed bcrypt
	hasCache bool
}

// New creates a new auth Service, rejecting malformed hashes up front
func New(cfg Config, logger *slog.Logger) (*Service, error) {
	s := &Service{logger: logger.With("component", "auth")}
	if cfg.TokenHash == "" {
		s.logger.Warn("transport token auth disabled")
		return s, nil
	}
	if _, err := bcrypt.Cost([]byte(cfg.TokenHash)); err != nil {
		return nil, fmt.Errorf("transport token hash: %w", err)
	}
	s.hash = []byte(cfg.TokenHash)
	return s, nil
}

// Enabled reports whether requests must carry a token
func (s *Service) Enabled() bool {
	return len(s.hash) > 0
}

// Verify checks a bearer token. It always succeeds when auth is disabled.
func (s *Service) Verify(token string) error {
	if !s.Enabled() {
		return nil
	}
	if token == "" {
		return model.ErrUnauthorized
	}

	digest := sha256.Sum256([]byte(token))
	s.mu.RLock()
	cached := s.hasCache && subtle.ConstantTimeCompare(digest[:], s.verified[:]) == 1
	s.mu.RUnlock()
	if cached {
		return nil
	}

	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(token)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Error("token verification failed", slog.Any("error", err))
		}
		return model.ErrUnauthorized
	}

	s.mu.Lock()
	s.verified = digest
	s.hasCache = true
	s.mu.Unlock()
	return nil
}

// HashToken produces the bcrypt hash to put in TRANSPORT_TOKEN_HASH
func HashToken(token string) (string, error) {
	if token == "" {
		return "", errors.New("token must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
