package tracks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/qurancms/recitation-api/internal/database"
	"github.com/qurancms/recitation-api/internal/models"
	"github.com/qurancms/recitation-api/internal/objectstore"
)

// timingBatchSize keeps inserts under sqlite's bound-parameter limit
const timingBatchSize = 200

// repository implements Repository
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new track repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, track *models.RecitationSurahTrack) error {
	if err := r.db.WithContext(ctx).Create(track).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: asset %d surah %d", ErrDuplicateTrack, track.AssetID, track.SurahNumber)
		}
		return err
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*models.RecitationSurahTrack, error) {
	var track models.RecitationSurahTrack
	err := r.db.WithContext(ctx).First(&track, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, err
	}
	return &track, nil
}

func (r *repository) FindByAudioFile(ctx context.Context, key objectstore.DBKey) (*models.RecitationSurahTrack, error) {
	var track models.RecitationSurahTrack
	err := r.db.WithContext(ctx).
		Where("audio_file = ?", string(key)).
		First(&track).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, err
	}
	return &track, nil
}

func (r *repository) Finalize(ctx context.Context, key objectstore.DBKey, sizeBytes, durationMS int64, finishedAt time.Time) (*models.RecitationSurahTrack, error) {
	result := r.db.WithContext(ctx).
		Model(&models.RecitationSurahTrack{}).
		Where("audio_file = ?", string(key)).
		Updates(map[string]any{
			"size_bytes":         sizeBytes,
			"duration_ms":        durationMS,
			"upload_finished_at": finishedAt.UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrTrackNotFound
	}
	return r.FindByAudioFile(ctx, key)
}

func (r *repository) DeleteReservations(ctx context.Context, key objectstore.DBKey) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("audio_file = ? AND upload_finished_at IS NULL", string(key)).
		Delete(&models.RecitationSurahTrack{})
	return result.RowsAffected, result.Error
}

func (r *repository) ExistingSurahs(ctx context.Context, assetID uint, surahs []int) (map[int]bool, error) {
	existing := make(map[int]bool)
	if len(surahs) == 0 {
		return existing, nil
	}

	var numbers []int
	err := r.db.WithContext(ctx).
		Model(&models.RecitationSurahTrack{}).
		Where("asset_id = ? AND surah_number IN ?", assetID, surahs).
		Pluck("surah_number", &numbers).Error
	if err != nil {
		return nil, err
	}
	for _, n := range numbers {
		existing[n] = true
	}
	return existing, nil
}

func (r *repository) ListFinalizedWithTimings(ctx context.Context, assetID uint) ([]models.RecitationSurahTrack, error) {
	var tracks []models.RecitationSurahTrack
	err := r.db.WithContext(ctx).
		Where("asset_id = ? AND upload_finished_at IS NOT NULL", assetID).
		Order("surah_number ASC").
		Preload("Timings").
		Find(&tracks).Error
	if err != nil {
		return nil, err
	}
	return tracks, nil
}

func (r *repository) ReplaceTimings(ctx context.Context, trackID uint, timings []models.RecitationAyahTiming) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("track_id = ?", trackID).Delete(&models.RecitationAyahTiming{}).Error; err != nil {
			return err
		}
		if len(timings) == 0 {
			return nil
		}
		for i := range timings {
			timings[i].ID = 0
			timings[i].TrackID = trackID
		}
		return tx.CreateInBatches(timings, timingBatchSize).Error
	})
}

func (r *repository) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}
