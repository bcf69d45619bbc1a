package uploads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/qurancms/recitation-api/internal/catalog"
	"github.com/qurancms/recitation-api/internal/events"
	"github.com/qurancms/recitation-api/internal/models"
	"github.com/qurancms/recitation-api/internal/objectstore"
	"github.com/qurancms/recitation-api/internal/services/filenames"
	"github.com/qurancms/recitation-api/internal/services/tracks"
	"github.com/qurancms/recitation-api/pkg/audio"
	apperrors "github.com/qurancms/recitation-api/pkg/errors"
)

const (
	abortReasonClient = "client"
	abortReasonSweep  = "sweep"
)

// service implements Service
type service struct {
	store    objectstore.Gateway
	tracks   tracks.Repository
	prober   audio.DurationProber
	notifier events.Notifier
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
}

// Option customizes a service
type Option func(*service)

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *service) { s.logger = logger }
}

// WithNotifier sets where lifecycle events go
func WithNotifier(n events.Notifier) Option {
	return func(s *service) { s.notifier = n }
}

// NewService creates a new upload coordinator
func NewService(store objectstore.Gateway, repo tracks.Repository, prober audio.DurationProber, cfg Config, opts ...Option) Service {
	if cfg.PartURLTTL <= 0 {
		cfg.PartURLTTL = objectstore.DefaultPartURLTTL
	}
	s := &service{
		store:    store,
		tracks:   repo,
		prober:   prober,
		notifier: events.Noop{},
		cfg:      cfg,
		logger:   zap.NewNop(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) StartUpload(ctx context.Context, req StartRequest) (*StartResult, error) {
	surahNumber, err := filenames.ParseSurahNumber(req.Filename)
	if err != nil {
		return nil, err
	}
	if req.AssetID == 0 {
		return nil, apperrors.InvalidRequest("assetId", "must be a positive asset id")
	}
	if req.DurationMSHint < 0 {
		return nil, apperrors.InvalidRequest("durationMs", "must not be negative")
	}

	dbKey := objectstore.TrackKey(req.AssetID, surahNumber)
	storeKey := dbKey.StoreKey()

	uploadID, err := s.store.CreateMultipart(ctx, storeKey, objectstore.ContentTypeMP3)
	if err != nil {
		return nil, fmt.Errorf("creating multipart upload for %s: %w", dbKey, err)
	}

	reservation := &models.RecitationSurahTrack{
		AssetID:          req.AssetID,
		SurahNumber:      surahNumber,
		AudioFile:        string(dbKey),
		OriginalFilename: req.Filename,
		DurationMS:       req.DurationMSHint,
	}
	if err := s.tracks.Create(ctx, reservation); err != nil {
		// The fresh multipart upload must not outlive a failed reservation
		if abortErr := s.store.AbortMultipart(ctx, storeKey, uploadID); abortErr != nil {
			s.logger.Error("failed to abort multipart after rejected reservation",
				zap.String("key", string(dbKey)),
				zap.String("upload_id", uploadID),
				zap.Error(abortErr))
		}
		if errors.Is(err, tracks.ErrDuplicateTrack) {
			return nil, apperrors.DuplicateTrack(req.AssetID, surahNumber)
		}
		return nil, fmt.Errorf("reserving %s: %w", dbKey, err)
	}

	s.logger.Info("upload started",
		zap.Uint("asset_id", req.AssetID),
		zap.Int("surah_number", surahNumber),
		zap.String("key", string(dbKey)),
		zap.String("upload_id", uploadID))

	return &StartResult{
		Key:         dbKey,
		UploadID:    uploadID,
		ContentType: objectstore.ContentTypeMP3,
		SurahNumber: surahNumber,
	}, nil
}

// SignPart does not check whether uploadID is still open. Presigning is
// offline, and a part PUT against a completed upload fails at the bucket.
func (s *service) SignPart(ctx context.Context, key objectstore.DBKey, uploadID string, partNumber int) (string, error) {
	if partNumber < objectstore.MinPartNumber || partNumber > objectstore.MaxPartNumber {
		return "", apperrors.Newf(apperrors.ErrCodeInvalidPartNumber,
			"Part number %d is out of range (%d-%d)", partNumber, objectstore.MinPartNumber, objectstore.MaxPartNumber).
			WithDetail("part_number", partNumber)
	}
	if uploadID == "" {
		return "", apperrors.InvalidRequest("uploadId", "is required")
	}

	url, err := s.store.SignPartURL(ctx, key.StoreKey(), uploadID, int32(partNumber), s.cfg.PartURLTTL)
	if err != nil {
		return "", fmt.Errorf("signing part %d of %s: %w", partNumber, key, err)
	}
	return url, nil
}

// FinishUpload runs complete, head, duration and finalize in that order.
// No transaction spans the bucket calls; a crash between them is repaired by
// replaying FinishUpload, by AbortUpload, or by the sweeper.
func (s *service) FinishUpload(ctx context.Context, key objectstore.DBKey, uploadID string, parts []objectstore.CompletedPart) (*FinishResult, error) {
	if uploadID == "" {
		return nil, apperrors.InvalidRequest("uploadId", "is required")
	}
	if len(parts) == 0 {
		return nil, apperrors.InvalidRequest("parts", "at least one part is required")
	}
	for _, p := range parts {
		if p.PartNumber < objectstore.MinPartNumber || p.PartNumber > objectstore.MaxPartNumber {
			return nil, apperrors.Newf(apperrors.ErrCodeInvalidPartNumber,
				"Part number %d is out of range (%d-%d)", p.PartNumber, objectstore.MinPartNumber, objectstore.MaxPartNumber)
		}
	}

	storeKey := key.StoreKey()
	log := s.logger.With(zap.String("key", string(key)), zap.String("upload_id", uploadID))

	var (
		info     objectstore.ObjectInfo
		haveInfo bool
	)
	if err := s.store.CompleteMultipart(ctx, storeKey, uploadID, parts); err != nil {
		// A replay after a crash finds the upload gone but the object present
		if !errors.Is(err, objectstore.ErrNoSuchUpload) {
			log.Error("complete multipart failed", zap.Error(err))
			return nil, finalizeFailed(err)
		}
		head, headErr := s.store.HeadObject(ctx, storeKey)
		if headErr != nil {
			log.Error("complete multipart failed and no object exists", zap.Error(err), zap.NamedError("head_error", headErr))
			return nil, finalizeFailed(err)
		}
		log.Info("multipart upload already complete, converging row")
		info, haveInfo = head, true
	}

	if !haveInfo {
		head, err := s.store.HeadObject(ctx, storeKey)
		if err != nil {
			log.Warn("head after complete failed, recording size 0", zap.Error(err))
		} else {
			info = head
		}
	}

	track, err := s.tracks.FindByAudioFile(ctx, key)
	if err != nil {
		if errors.Is(err, tracks.ErrTrackNotFound) {
			return nil, trackNotFound(key)
		}
		return nil, fmt.Errorf("loading reservation %s: %w", key, err)
	}

	durationMS := track.DurationMS
	if durationMS == 0 {
		durationMS = s.probeDuration(ctx, storeKey, log)
	}

	finalized, err := s.tracks.Finalize(ctx, key, info.ContentLength, durationMS, s.now().UTC())
	if err != nil {
		if errors.Is(err, tracks.ErrTrackNotFound) {
			return nil, trackNotFound(key)
		}
		return nil, fmt.Errorf("finalizing %s: %w", key, err)
	}

	finishedAt := finalized.UploadFinishedAt.UTC()
	result := &FinishResult{
		TrackID:     finalized.ID,
		AssetID:     finalized.AssetID,
		SurahNumber: finalized.SurahNumber,
		SizeBytes:   finalized.SizeBytes,
		DurationMS:  finalized.DurationMS,
		FinishedAt:  finishedAt,
		Key:         key,
	}

	log.Info("upload finalized",
		zap.Uint("track_id", result.TrackID),
		zap.Int64("size_bytes", result.SizeBytes),
		zap.Int64("duration_ms", result.DurationMS))

	s.publish(ctx, events.TrackFinalizedKey, events.TrackFinalized{
		TrackID:     result.TrackID,
		AssetID:     result.AssetID,
		SurahNumber: result.SurahNumber,
		Key:         string(key),
		SizeBytes:   result.SizeBytes,
		DurationMS:  result.DurationMS,
		FinishedAt:  finishedAt,
	})

	return result, nil
}

// probeDuration streams the object through the prober. Every failure yields 0.
func (s *service) probeDuration(ctx context.Context, key objectstore.StoreKey, log *zap.Logger) int64 {
	if s.prober == nil {
		return 0
	}

	body, err := s.store.GetObject(ctx, key)
	if err != nil {
		log.Warn("duration fallback: get object failed", zap.Error(err))
		return 0
	}
	defer body.Close()

	d, err := s.prober.Probe(ctx, body)
	if err != nil {
		log.Warn("duration fallback: probe failed", zap.Error(err))
		return 0
	}
	return d.Milliseconds()
}

func (s *service) AbortUpload(ctx context.Context, key objectstore.DBKey, uploadID string) (*AbortResult, error) {
	if uploadID == "" {
		return nil, apperrors.InvalidRequest("uploadId", "is required")
	}
	return s.abort(ctx, key, uploadID, abortReasonClient)
}

func (s *service) abort(ctx context.Context, key objectstore.DBKey, uploadID, reason string) (*AbortResult, error) {
	if err := s.store.AbortMultipart(ctx, key.StoreKey(), uploadID); err != nil {
		return nil, fmt.Errorf("aborting multipart %s: %w", key, err)
	}

	deleted, err := s.tracks.DeleteReservations(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("deleting reservations for %s: %w", key, err)
	}

	s.logger.Info("upload aborted",
		zap.String("key", string(key)),
		zap.String("upload_id", uploadID),
		zap.String("reason", reason),
		zap.Int64("db_records_deleted", deleted))

	if deleted > 0 {
		s.publish(ctx, events.TrackAbortedKey, events.TrackAborted{
			Key:              string(key),
			UploadID:         uploadID,
			DBRecordsDeleted: deleted,
			Reason:           reason,
		})
	}

	return &AbortResult{
		Key:              key,
		UploadID:         uploadID,
		Aborted:          true,
		DBRecordsDeleted: deleted,
	}, nil
}

func (s *service) ValidateFilenames(ctx context.Context, names []string, assetID *uint) ([]FilenameResult, error) {
	results := make([]FilenameResult, len(names))
	var surahs []int

	for i, name := range names {
		results[i].Filename = name
		n, err := filenames.ParseSurahNumber(name)
		if err != nil {
			results[i].ErrorName = string(apperrors.GetCode(err))
			if appErr, ok := apperrors.As(err); ok {
				results[i].ErrorMessage = appErr.Message
			}
			continue
		}
		surah := catalog.MustLookup(n)
		results[i].Valid = true
		results[i].SurahNumber = n
		results[i].SurahNameEn = surah.NameEn
		results[i].SurahNameAr = surah.NameAr
		surahs = append(surahs, n)
	}

	if assetID == nil {
		return results, nil
	}

	existing, err := s.tracks.ExistingSurahs(ctx, *assetID, surahs)
	if err != nil {
		return nil, fmt.Errorf("checking existing tracks for asset %d: %w", *assetID, err)
	}
	for i := range results {
		if results[i].Valid {
			exists := existing[results[i].SurahNumber]
			results[i].Exists = &exists
		}
	}
	return results, nil
}

func (s *service) publish(ctx context.Context, routingKey string, payload any) {
	if err := s.notifier.Publish(ctx, routingKey, payload); err != nil {
		s.logger.Warn("event publish failed", zap.String("event", routingKey), zap.Error(err))
	}
}

func finalizeFailed(cause error) *apperrors.AppError {
	return apperrors.Wrap(cause, apperrors.ErrCodeUploadFinalizeFailed, "The object store rejected the multipart completion")
}

func trackNotFound(key objectstore.DBKey) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeTrackNotFound, "No track is reserved for %s", key)
}
