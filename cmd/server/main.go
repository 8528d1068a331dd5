package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/raidroster/internal/api"
	"github.com/mcoot/raidroster/internal/config"
	"github.com/mcoot/raidroster/internal/factory"
	"github.com/mcoot/raidroster/internal/model"
	"github.com/mcoot/raidroster/internal/services/auth"
	redisstorage "github.com/mcoot/raidroster/internal/storage/redis"
	"github.com/mcoot/raidroster/internal/web"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return 1
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:        logger,
		StorageType:   cfg.StorageType,
		SQLitePath:    cfg.SQLitePath,
		TemplatesPath: cfg.TemplatesPath,
		AuthConfig:    auth.Config{TokenHash: cfg.TransportTokenHash},
	}
	if cfg.AuthorName != "" {
		factoryCfg.Author = &model.DocumentAuthor{Name: cfg.AuthorName, IconURL: cfg.AuthorIconURL}
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.PoolSize = cfg.RedisPoolSize
		redisCfg.EventTTL = cfg.EventTTL
		redisCfg.LockTTL = cfg.LockTTL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("close application", slog.String("error", err.Error()))
		}
	}()

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		Auth:             app.AuthService,
		Catalogue:        app.Catalogue,
		EventController:  app.EventController,
		RosterController: app.RosterController,
		HubManager:       app.HubManager,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:           logger,
		Catalogue:        app.Catalogue,
		EventController:  app.EventController,
		RosterController: app.RosterController,
		HubManager:       app.HubManager,
		StaticDir:        cfg.StaticDir,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(api.Combine(apiRouter, webRouter), serverConfig, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("server starting",
		slog.String("addr", serverConfig.Addr()),
		slog.String("storage", cfg.StorageType),
		slog.Bool("auth", app.AuthService.Enabled()),
	)

	if err := server.ListenAndRun(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		return 1
	}
	return 0
}
