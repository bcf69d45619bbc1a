package tracks

import (
	"context"
	"time"

	"github.com/qurancms/recitation-api/internal/models"
	"github.com/qurancms/recitation-api/internal/objectstore"
)

// Repository owns the recitation_surah_tracks and recitation_ayah_timings tables
type Repository interface {
	// Create inserts a track row. A unique index hit returns ErrDuplicateTrack.
	Create(ctx context.Context, track *models.RecitationSurahTrack) error

	// FindByID loads a track without timings
	FindByID(ctx context.Context, id uint) (*models.RecitationSurahTrack, error)

	// FindByAudioFile loads the track stored under key
	FindByAudioFile(ctx context.Context, key objectstore.DBKey) (*models.RecitationSurahTrack, error)

	// Finalize sets size, duration and upload_finished_at on the row stored
	// under key and returns the updated row. Re-finalizing is allowed.
	Finalize(ctx context.Context, key objectstore.DBKey, sizeBytes, durationMS int64, finishedAt time.Time) (*models.RecitationSurahTrack, error)

	// DeleteReservations removes unfinished rows stored under key.
	// Finalized rows are never touched.
	DeleteReservations(ctx context.Context, key objectstore.DBKey) (int64, error)

	// ExistingSurahs reports which of surahs already have a row for the asset
	ExistingSurahs(ctx context.Context, assetID uint, surahs []int) (map[int]bool, error)

	// ListFinalizedWithTimings returns finalized tracks by ascending surah with timings loaded
	ListFinalizedWithTimings(ctx context.Context, assetID uint) ([]models.RecitationSurahTrack, error)

	// ReplaceTimings swaps every timing of a track for the given set
	ReplaceTimings(ctx context.Context, trackID uint, timings []models.RecitationAyahTiming) error

	// Transaction runs fn against a repository bound to one transaction
	Transaction(ctx context.Context, fn func(repo Repository) error) error
}

// TimingInput is one ayah timing as submitted by an operator
type TimingInput struct {
	AyahKey string `json:"ayah_key" binding:"required"`
	StartMS int64  `json:"start_ms"`
	EndMS   int64  `json:"end_ms"`
}

// Service exposes the registry operations that carry validation
type Service interface {
	// ReplaceTimings validates and stores a track's ayah timings, returning the stored count
	ReplaceTimings(ctx context.Context, trackID uint, timings []TimingInput) (int, error)
}
