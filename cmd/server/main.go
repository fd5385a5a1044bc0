package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ambusos/ambusos-api/internal/api"
	"github.com/ambusos/ambusos-api/internal/auth"
	"github.com/ambusos/ambusos-api/internal/cache"
	"github.com/ambusos/ambusos-api/internal/config"
	"github.com/ambusos/ambusos-api/internal/database"
	"github.com/ambusos/ambusos-api/internal/projection"
	"github.com/ambusos/ambusos-api/internal/service"
	"github.com/ambusos/ambusos-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.Logging)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, cleanup, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open store")
	}
	defer cleanup()

	refs, err := cache.New(cfg.Cache, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create cache")
	}
	defer refs.Close()

	guard := service.NewStoreGuard(logger)
	creds := auth.NewCredentials()

	catalog := service.NewCatalogService(st, guard, logger)
	if err := catalog.SeedRoles(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to seed roles")
	}

	svcs := api.Services{
		Store:       st,
		Catalog:     catalog,
		Personnel:   service.NewPersonnelService(st, creds, guard, logger),
		Fleet:       service.NewFleetService(st, refs, guard, logger),
		Assignments: service.NewAssignmentService(st, guard, logger),
		Accidents:   service.NewAccidentService(st, guard, logger),
		Projector:   projection.New(st, refs, logger),
	}

	server := api.NewServer(*cfg, svcs, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	logger.WithFields(logrus.Fields{
		"host":   cfg.Server.Host,
		"port":   cfg.Server.Port,
		"driver": cfg.Database.Driver,
	}).Info("Starting AmbuSOS API server")

	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}
	logger.Info("Server stopped")
}

// openStore builds the configured store backend. Postgres runs migrations on
// startup; SQLite creates its schema inline.
func openStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (store.Store, func(), error) {
	switch cfg.Database.Driver {
	case "sqlite":
		st, err := store.NewSQLite(cfg.Database.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { st.Close() }, nil

	default:
		migrator, err := database.NewMigrator(cfg.Database.URL(), cfg.Database.MigrationsPath, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := migrator.Up(); err != nil {
			migrator.Close()
			return nil, nil, err
		}
		migrator.Close()

		db, err := database.Connect(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		st := store.NewPostgres(db.Pool, logger)
		return st, func() { db.Close() }, nil
	}
}

func newLogger(cfg config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}
