package tracks

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/qurancms/recitation-api/internal/catalog"
	"github.com/qurancms/recitation-api/internal/models"
)

// service implements Service
type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new track service
func NewService(repo Repository, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{repo: repo, logger: logger}
}

// ReplaceTimings validates every timing against the track's surah before
// anything is written, so a bad row leaves the stored set unchanged.
func (s *service) ReplaceTimings(ctx context.Context, trackID uint, inputs []TimingInput) (int, error) {
	track, err := s.repo.FindByID(ctx, trackID)
	if err != nil {
		return 0, err
	}

	surah, err := catalog.Lookup(track.SurahNumber)
	if err != nil {
		return 0, err
	}

	seen := make(map[int]bool, len(inputs))
	timings := make([]models.RecitationAyahTiming, 0, len(inputs))
	for i, in := range inputs {
		surahNumber, ayah, err := models.ParseAyahKey(in.AyahKey)
		if err != nil {
			return 0, fmt.Errorf("%w: entry %d: %v", ErrInvalidTiming, i, err)
		}
		if surahNumber != track.SurahNumber {
			return 0, fmt.Errorf("%w: entry %d: %s belongs to surah %d, track is surah %d",
				ErrInvalidTiming, i, in.AyahKey, surahNumber, track.SurahNumber)
		}
		if ayah > surah.AyahCount {
			return 0, fmt.Errorf("%w: entry %d: surah %d has %d ayahs", ErrInvalidTiming, i, surah.Number, surah.AyahCount)
		}
		if in.StartMS < 0 || in.EndMS < in.StartMS {
			return 0, fmt.Errorf("%w: entry %d: need 0 <= start_ms <= end_ms, got %d..%d", ErrInvalidTiming, i, in.StartMS, in.EndMS)
		}
		if seen[ayah] {
			return 0, fmt.Errorf("%w: entry %d: %s repeated", ErrInvalidTiming, i, in.AyahKey)
		}
		seen[ayah] = true

		timings = append(timings, models.RecitationAyahTiming{
			AyahKey:    models.AyahKey(surahNumber, ayah),
			StartMS:    in.StartMS,
			EndMS:      in.EndMS,
			DurationMS: in.EndMS - in.StartMS,
		})
	}

	if err := s.repo.ReplaceTimings(ctx, trackID, timings); err != nil {
		return 0, err
	}

	s.logger.Info("ayah timings replaced",
		zap.Uint("track_id", trackID),
		zap.Int("surah_number", track.SurahNumber),
		zap.Int("count", len(timings)))
	return len(timings), nil
}
