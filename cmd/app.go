package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/qurancms/recitation-api/api/types"
	"github.com/qurancms/recitation-api/internal/database"
	"github.com/qurancms/recitation-api/internal/events"
	"github.com/qurancms/recitation-api/internal/lease"
	"github.com/qurancms/recitation-api/internal/objectstore"
	"github.com/qurancms/recitation-api/internal/services/auth"
	"github.com/qurancms/recitation-api/internal/services/bulk"
	"github.com/qurancms/recitation-api/internal/services/manifest"
	"github.com/qurancms/recitation-api/internal/services/tracks"
	"github.com/qurancms/recitation-api/internal/services/uploads"
	"github.com/qurancms/recitation-api/pkg/audio"
	"github.com/qurancms/recitation-api/pkg/config"
)

// app holds every long-lived collaborator a command needs
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *database.DB
	store    objectstore.Gateway
	notifier events.Notifier
	locker   lease.Locker

	uploads  uploads.Service
	manifest manifest.Service
	bulk     bulk.Service
	tracks   tracks.Service
	auth     *auth.Service
}

// newApp opens the database, migrates it and wires the services
func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	store, err := objectstore.New(ctx, cfg.Storage)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating object store: %w", err)
	}

	prober, err := audio.NewProber(cfg.Duration)
	if err != nil {
		db.Close()
		return nil, err
	}

	notifier, err := events.New(cfg.Events)
	if err != nil {
		// events are best effort; run without them
		logger.Warn("event publishing disabled", zap.Error(err))
		notifier = events.Noop{}
	}

	trackRepo := tracks.NewRepository(db.DB)

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		store:    store,
		notifier: notifier,
		locker:   lease.New(cfg.Redis),
		uploads: uploads.NewService(store, trackRepo, prober, uploads.ConfigFrom(cfg.Uploads),
			uploads.WithLogger(logger.Named("uploads")),
			uploads.WithNotifier(notifier)),
		manifest: manifest.NewService(manifest.NewRepository(db.DB), store,
			manifest.ConfigFrom(cfg.Storage, cfg.Manifest), logger.Named("manifest"), notifier),
		bulk:   bulk.NewService(store, trackRepo, prober, logger.Named("bulk"), notifier),
		tracks: tracks.NewService(trackRepo, logger.Named("tracks")),
		auth:   auth.NewService(cfg.Auth),
	}, nil
}

// dependencies exposes the app to the HTTP handlers
func (a *app) dependencies() *types.Dependencies {
	return &types.Dependencies{
		DB:       a.db,
		Store:    a.store,
		Auth:     a.auth,
		Uploads:  a.uploads,
		Tracks:   a.tracks,
		Manifest: a.manifest,
		Bulk:     a.bulk,
		Config:   a.cfg,
		Logger:   a.logger,
	}
}

func (a *app) close() {
	if err := a.notifier.Close(); err != nil {
		a.logger.Warn("closing notifier", zap.Error(err))
	}
	if closer, ok := a.locker.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			a.logger.Warn("closing lease store", zap.Error(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("closing database", zap.Error(err))
	}
}
