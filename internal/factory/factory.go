package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/raidroster/internal/catalogue"
	"github.com/mcoot/raidroster/internal/dependencies/clock"
	"github.com/mcoot/raidroster/internal/dependencies/random"
	"github.com/mcoot/raidroster/internal/lock"
	"github.com/mcoot/raidroster/internal/model"
	"github.com/mcoot/raidroster/internal/services/auth"
	"github.com/mcoot/raidroster/internal/services/event"
	"github.com/mcoot/raidroster/internal/services/roster"
	"github.com/mcoot/raidroster/internal/storage"
	"github.com/mcoot/raidroster/internal/storage/memory"
	redisstorage "github.com/mcoot/raidroster/internal/storage/redis"
	"github.com/mcoot/raidroster/internal/storage/sqlite"
	"github.com/mcoot/raidroster/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage
	Locker  lock.Locker

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Catalogue        catalogue.CatalogueInterface
	EventController  *event.Controller
	RosterController *roster.Controller
	AuthService      *auth.Service
	HubManager       *sse.HubManager
	Broadcaster      *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// TemplatesPath overrides the embedded template catalogue (optional)
	TemplatesPath string
	// AuthConfig holds the transport token hash. Zero value disables auth.
	AuthConfig auth.Config
	// Author is shown on every rendered roster (optional)
	Author *model.DocumentAuthor
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	cat, err := loadCatalogue(cfg.TemplatesPath)
	if err != nil {
		return nil, err
	}

	authService, err := auth.New(cfg.AuthConfig, logger)
	if err != nil {
		return nil, err
	}

	// Create storage based on type. Redis also provides the event lock so
	// that several server replicas serialize on the same event.
	var (
		store  storage.Storage
		locker lock.Locker
	)
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
		locker = lock.NewLocal()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
		locker = redisstorage.NewLocker(redisStore.Client(), *cfg.RedisConfig, logger)
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
		locker = lock.NewLocal()
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'sqlite'", storageType)
	}

	logger.Info("storage configured", slog.String("type", storageType))

	return newWithDependencies(store, locker, cat, clock.New(), random.New(), authService, cfg.Author, logger), nil
}

func loadCatalogue(path string) (*catalogue.Catalogue, error) {
	if path == "" {
		return catalogue.Default()
	}
	cat, err := catalogue.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load templates from %s: %w", path, err)
	}
	return cat, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	locker lock.Locker,
	cat catalogue.CatalogueInterface,
	clk clock.Clock,
	rnd random.Random,
	authService *auth.Service,
	author *model.DocumentAuthor,
	logger *slog.Logger,
) *App {
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	eventController := event.NewController(store, cat, locker, clk, rnd, logger)
	rosterController := roster.NewController(store, cat, locker, roster.NewRenderer(author), broadcaster, logger)

	return &App{
		Storage:          store,
		Locker:           locker,
		Clock:            clk,
		Random:           rnd,
		Catalogue:        cat,
		EventController:  eventController,
		RosterController: rosterController,
		AuthService:      authService,
		HubManager:       hubManager,
		Broadcaster:      broadcaster,
	}
}

// Close disconnects SSE viewers and releases the storage backend
func (a *App) Close() error {
	a.HubManager.CloseAll()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
