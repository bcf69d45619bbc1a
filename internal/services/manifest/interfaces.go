package manifest

import (
	"context"

	"github.com/qurancms/recitation-api/internal/models"
)

// Repository reads assets and tracks and writes the manifest slot of an asset version
type Repository interface {
	// FindAsset loads an asset with its reciter
	FindAsset(ctx context.Context, assetID uint) (*models.Asset, error)

	// LatestVersion returns the asset version with the highest id
	LatestVersion(ctx context.Context, assetID uint) (*models.AssetVersion, error)

	// FinalizedTracks returns finalized tracks by ascending surah with timings
	FinalizedTracks(ctx context.Context, assetID uint) ([]models.RecitationSurahTrack, error)

	// AttachManifest points a version at a manifest object
	AttachManifest(ctx context.Context, versionID uint, fileURL string, sizeBytes int64) error

	// Transaction runs fn against a repository bound to one transaction
	Transaction(ctx context.Context, fn func(repo Repository) error) error
}

// Result describes a published manifest
type Result struct {
	Version   *models.AssetVersion
	Filename  string
	PublicURL string
	Tracks    int
}

// Service publishes per-asset track manifests
type Service interface {
	// SyncAssetManifest renders the asset's manifest and swaps it into the latest version
	SyncAssetManifest(ctx context.Context, assetID uint) (*Result, error)

	// Render returns the manifest bytes without publishing them
	Render(ctx context.Context, assetID uint) ([]byte, error)
}
