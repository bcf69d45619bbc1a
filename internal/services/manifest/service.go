package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/qurancms/recitation-api/internal/events"
	"github.com/qurancms/recitation-api/internal/objectstore"
	"github.com/qurancms/recitation-api/pkg/config"
	apperrors "github.com/qurancms/recitation-api/pkg/errors"
)

const contentTypeJSON = "application/json"

// Config holds the publisher settings
type Config struct {
	PublicBaseURL string
	CacheControl  string
}

// ConfigFrom builds a publisher config from the application config
func ConfigFrom(storage config.StorageConfig, m config.ManifestConfig) Config {
	return Config{PublicBaseURL: storage.PublicBaseURL, CacheControl: m.CacheControl}
}

// service implements Service
type service struct {
	repo     Repository
	store    objectstore.Gateway
	cfg      Config
	logger   *zap.Logger
	notifier events.Notifier
}

// NewService creates a new manifest publisher
func NewService(repo Repository, store objectstore.Gateway, cfg Config, logger *zap.Logger, notifier events.Notifier) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = events.Noop{}
	}
	return &service{
		repo:     repo,
		store:    store,
		cfg:      cfg,
		logger:   logger,
		notifier: notifier,
	}
}

// SyncAssetManifest reads and writes inside one transaction. The object is
// written before the version row so a failed PUT leaves the row untouched.
func (s *service) SyncAssetManifest(ctx context.Context, assetID uint) (*Result, error) {
	var result *Result

	err := s.repo.Transaction(ctx, func(repo Repository) error {
		asset, err := repo.FindAsset(ctx, assetID)
		if err != nil {
			return err
		}
		version, err := repo.LatestVersion(ctx, asset.ID)
		if err != nil {
			return err
		}
		rows, err := repo.FinalizedTracks(ctx, asset.ID)
		if err != nil {
			return fmt.Errorf("loading tracks: %w", err)
		}

		entries, err := BuildEntries(rows, s.cfg.PublicBaseURL)
		if err != nil {
			return err
		}
		payload, err := Encode(entries)
		if err != nil {
			return fmt.Errorf("encoding manifest: %w", err)
		}

		filename := Filename(asset)
		key := objectstore.ManifestKey(asset.ID, filename)
		size := int64(len(payload))

		if err := s.store.PutObject(ctx, key.StoreKey(), bytes.NewReader(payload), size, contentTypeJSON, s.cfg.CacheControl); err != nil {
			return fmt.Errorf("writing manifest object %s: %w", key, err)
		}
		if err := repo.AttachManifest(ctx, version.ID, string(key), size); err != nil {
			return fmt.Errorf("attaching manifest to version %d: %w", version.ID, err)
		}

		version.FileURL = string(key)
		version.SizeBytes = size
		result = &Result{
			Version:   version,
			Filename:  filename,
			PublicURL: objectstore.PublicURL(s.cfg.PublicBaseURL, key),
			Tracks:    len(entries),
		}
		return nil
	})
	if err != nil {
		return nil, s.mapError(assetID, err)
	}

	s.logger.Info("manifest published",
		zap.Uint("asset_id", assetID),
		zap.Uint("version_id", result.Version.ID),
		zap.String("filename", result.Filename),
		zap.Int64("size_bytes", result.Version.SizeBytes),
		zap.Int("tracks", result.Tracks))

	if err := s.notifier.Publish(ctx, events.ManifestPublishedKey, events.ManifestPublished{
		AssetID:   assetID,
		VersionID: result.Version.ID,
		Filename:  result.Filename,
		FileURL:   result.PublicURL,
		SizeBytes: result.Version.SizeBytes,
		Tracks:    result.Tracks,
	}); err != nil {
		s.logger.Warn("event publish failed", zap.String("event", events.ManifestPublishedKey), zap.Error(err))
	}

	return result, nil
}

func (s *service) Render(ctx context.Context, assetID uint) ([]byte, error) {
	asset, err := s.repo.FindAsset(ctx, assetID)
	if err != nil {
		return nil, s.mapError(assetID, err)
	}
	rows, err := s.repo.FinalizedTracks(ctx, asset.ID)
	if err != nil {
		return nil, fmt.Errorf("loading tracks: %w", err)
	}
	entries, err := BuildEntries(rows, s.cfg.PublicBaseURL)
	if err != nil {
		return nil, err
	}
	return Encode(entries)
}

func (s *service) mapError(assetID uint, err error) error {
	switch {
	case errors.Is(err, ErrAssetNotFound):
		return apperrors.Newf(apperrors.ErrCodeAssetNotFound, "Asset %d not found", assetID)
	case errors.Is(err, ErrNoAssetVersion):
		return apperrors.Newf(apperrors.ErrCodeNoAssetVersion, "Asset %d has no version to attach the manifest to", assetID)
	}
	s.logger.Error("manifest publish failed", zap.Uint("asset_id", assetID), zap.Error(err))
	return fmt.Errorf("publishing manifest for asset %d: %w", assetID, err)
}
