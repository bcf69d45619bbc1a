package uploads

import (
	"context"
	"time"

	"github.com/qurancms/recitation-api/internal/objectstore"
	"github.com/qurancms/recitation-api/pkg/config"
)

// Service coordinates browser-to-bucket multipart uploads with track rows
type Service interface {
	// StartUpload opens a multipart upload and reserves the (asset, surah) slot
	StartUpload(ctx context.Context, req StartRequest) (*StartResult, error)

	// SignPart presigns one part PUT. It touches neither the database nor the bucket,
	// so signing for an upload that was already completed or aborted still returns
	// a URL; the bucket rejects the PUT with NoSuchUpload.
	SignPart(ctx context.Context, key objectstore.DBKey, uploadID string, partNumber int) (string, error)

	// FinishUpload completes the multipart upload and finalizes the reservation
	FinishUpload(ctx context.Context, key objectstore.DBKey, uploadID string, parts []objectstore.CompletedPart) (*FinishResult, error)

	// AbortUpload aborts the multipart upload and deletes unfinished rows for key
	AbortUpload(ctx context.Context, key objectstore.DBKey, uploadID string) (*AbortResult, error)

	// ValidateFilenames reports, without side effects, how each filename would be ingested
	ValidateFilenames(ctx context.Context, filenames []string, assetID *uint) ([]FilenameResult, error)

	// Sweep aborts in-progress uploads older than the stuck threshold
	Sweep(ctx context.Context, dryRun bool) (*SweepReport, error)
}

// Config carries the coordinator settings; services never read global config
type Config struct {
	PartURLTTL     time.Duration
	StuckThreshold time.Duration
	GuardBand      time.Duration
}

// ConfigFrom converts loaded settings into a Config
func ConfigFrom(c config.UploadsConfig) Config {
	return Config{
		PartURLTTL:     c.PartURLTTL(),
		StuckThreshold: c.StuckThreshold(),
		GuardBand:      c.SweepGuardBand,
	}
}

// DefaultConfig matches the documented defaults
func DefaultConfig() Config {
	return Config{
		PartURLTTL:     objectstore.DefaultPartURLTTL,
		StuckThreshold: 2 * time.Hour,
		GuardBand:      5 * time.Minute,
	}
}
