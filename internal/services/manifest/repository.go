package manifest

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/qurancms/recitation-api/internal/models"
	"github.com/qurancms/recitation-api/internal/services/tracks"
)

// repository implements Repository
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new manifest repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAsset(ctx context.Context, assetID uint) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).Preload("Reciter").First(&asset, assetID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return &asset, nil
}

func (r *repository) LatestVersion(ctx context.Context, assetID uint) (*models.AssetVersion, error) {
	var version models.AssetVersion
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("id DESC").
		First(&version).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAssetVersion
		}
		return nil, err
	}
	return &version, nil
}

func (r *repository) FinalizedTracks(ctx context.Context, assetID uint) ([]models.RecitationSurahTrack, error) {
	return tracks.NewRepository(r.db).ListFinalizedWithTimings(ctx, assetID)
}

func (r *repository) AttachManifest(ctx context.Context, versionID uint, fileURL string, sizeBytes int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.AssetVersion{}).
		Where("id = ?", versionID).
		Updates(map[string]any{
			"file_url":   fileURL,
			"size_bytes": sizeBytes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoAssetVersion
	}
	return nil
}

func (r *repository) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}
