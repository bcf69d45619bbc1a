package bulk

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/qurancms/recitation-api/internal/events"
	"github.com/qurancms/recitation-api/internal/models"
	"github.com/qurancms/recitation-api/internal/objectstore"
	"github.com/qurancms/recitation-api/internal/services/filenames"
	"github.com/qurancms/recitation-api/internal/services/tracks"
	"github.com/qurancms/recitation-api/pkg/audio"
	apperrors "github.com/qurancms/recitation-api/pkg/errors"
)

// previewLimit caps the detail lists returned to operators
const previewLimit = 20

// service implements Service
type service struct {
	store    objectstore.Gateway
	tracks   tracks.Repository
	prober   audio.DurationProber
	logger   *zap.Logger
	notifier events.Notifier
	now      func() time.Time
}

// NewService creates a new bulk ingestion service
func NewService(store objectstore.Gateway, repo tracks.Repository, prober audio.DurationProber, logger *zap.Logger, notifier events.Notifier) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = events.Noop{}
	}
	return &service{
		store:    store,
		tracks:   repo,
		prober:   prober,
		logger:   logger,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type accepted struct {
	file  File
	surah int
	key   objectstore.DBKey
}

func (s *service) Ingest(ctx context.Context, assetID uint, files []File) (*Result, error) {
	if assetID == 0 {
		return nil, apperrors.InvalidRequest("assetId", "must be a positive asset id")
	}
	if len(files) == 0 {
		return nil, apperrors.InvalidRequest("files", "at least one file is required")
	}

	result := &Result{DuplicateDetails: []string{}, OtherErrorDetails: []string{}}

	var batch []accepted
	seen := make(map[int]string)
	for _, f := range files {
		n, err := filenames.ParseSurahNumber(f.Filename)
		if err != nil {
			result.FilenameErrors++
			continue
		}
		if first, ok := seen[n]; ok {
			result.SkippedDuplicates++
			addDetail(&result.DuplicateDetails, fmt.Sprintf("%s: surah %d already selected as %s", f.Filename, n, first))
			continue
		}
		seen[n] = f.Filename
		batch = append(batch, accepted{file: f, surah: n, key: objectstore.TrackKey(assetID, n)})
	}

	surahs := make([]int, 0, len(batch))
	for _, a := range batch {
		surahs = append(surahs, a.surah)
	}
	existing, err := s.tracks.ExistingSurahs(ctx, assetID, surahs)
	if err != nil {
		return nil, fmt.Errorf("checking existing tracks for asset %d: %w", assetID, err)
	}

	fresh := batch[:0]
	for _, a := range batch {
		if existing[a.surah] {
			result.SkippedDuplicates++
			addDetail(&result.DuplicateDetails, fmt.Sprintf("%s: track already exists for surah %d", a.file.Filename, a.surah))
			continue
		}
		fresh = append(fresh, a)
	}

	if len(fresh) == 0 {
		return result, nil
	}

	// written holds every object stored during the attempt, for compensation
	var written []objectstore.StoreKey
	var created []models.RecitationSurahTrack

	err = s.tracks.Transaction(ctx, func(repo tracks.Repository) error {
		for _, a := range fresh {
			track, err := s.ingestOne(ctx, repo, assetID, a, &written)
			if err != nil {
				return fmt.Errorf("%s: %w", a.file.Filename, err)
			}
			created = append(created, *track)
		}
		return nil
	})
	if err != nil {
		result.OtherErrors++
		addDetail(&result.OtherErrorDetails, err.Error())
		result.CleanupErrors = s.compensate(ctx, written)
		s.logger.Error("bulk ingest rolled back",
			zap.Uint("asset_id", assetID),
			zap.Int("objects_written", len(written)),
			zap.Int("cleanup_errors", result.CleanupErrors),
			zap.Error(err))
		return result, nil
	}

	result.Created = len(created)
	for _, t := range created {
		s.publish(ctx, t)
	}

	s.logger.Info("bulk ingest finished",
		zap.Uint("asset_id", assetID),
		zap.Int("created", result.Created),
		zap.Int("filename_errors", result.FilenameErrors),
		zap.Int("skipped_duplicates", result.SkippedDuplicates))

	return result, nil
}

// ingestOne inserts the row before writing the object so the unique index
// settles the slot. A lost race returns ErrDuplicateTrack without touching
// the bucket, and only keys of inserted rows land in written.
func (s *service) ingestOne(ctx context.Context, repo tracks.Repository, assetID uint, a accepted, written *[]objectstore.StoreKey) (*models.RecitationSurahTrack, error) {
	storeKey := a.key.StoreKey()

	finishedAt := s.now().UTC()
	track := &models.RecitationSurahTrack{
		AssetID:          assetID,
		SurahNumber:      a.surah,
		AudioFile:        string(a.key),
		OriginalFilename: a.file.Filename,
		DurationMS:       s.probe(ctx, a.file),
		SizeBytes:        a.file.Size,
		UploadFinishedAt: &finishedAt,
	}
	if err := repo.Create(ctx, track); err != nil {
		return nil, err
	}

	body, err := a.file.Open()
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	err = s.store.PutObject(ctx, storeKey, body, a.file.Size, objectstore.ContentTypeMP3, "")
	body.Close()
	if err != nil {
		return nil, fmt.Errorf("storing object: %w", err)
	}
	*written = append(*written, storeKey)

	info, err := s.store.HeadObject(ctx, storeKey)
	if err != nil || info.ContentLength == track.SizeBytes {
		return track, nil
	}
	return repo.Finalize(ctx, a.key, info.ContentLength, track.DurationMS, finishedAt)
}

func (s *service) probe(ctx context.Context, f File) int64 {
	if s.prober == nil {
		return 0
	}
	body, err := f.Open()
	if err != nil {
		return 0
	}
	defer body.Close()

	d, err := s.prober.Probe(ctx, body)
	if err != nil {
		s.logger.Warn("bulk ingest: duration unavailable", zap.String("filename", f.Filename), zap.Error(err))
		return 0
	}
	return d.Milliseconds()
}

// compensate deletes the objects written by a rolled back batch and returns
// how many deletions failed
func (s *service) compensate(ctx context.Context, written []objectstore.StoreKey) int {
	ctx = context.WithoutCancel(ctx)
	failures := 0
	for _, key := range written {
		if err := s.store.DeleteObject(ctx, key); err != nil {
			failures++
			s.logger.Error("bulk ingest cleanup failed", zap.String("key", string(key)), zap.Error(err))
		}
	}
	return failures
}

func (s *service) publish(ctx context.Context, t models.RecitationSurahTrack) {
	var finishedAt time.Time
	if t.UploadFinishedAt != nil {
		finishedAt = *t.UploadFinishedAt
	}
	err := s.notifier.Publish(ctx, events.TrackFinalizedKey, events.TrackFinalized{
		TrackID:     t.ID,
		AssetID:     t.AssetID,
		SurahNumber: t.SurahNumber,
		Key:         t.AudioFile,
		SizeBytes:   t.SizeBytes,
		DurationMS:  t.DurationMS,
		FinishedAt:  finishedAt,
	})
	if err != nil {
		s.logger.Warn("event publish failed", zap.String("event", events.TrackFinalizedKey), zap.Error(err))
	}
}

func addDetail(details *[]string, detail string) {
	if len(*details) < previewLimit {
		*details = append(*details, detail)
	}
}
