package uploads

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qurancms/recitation-api/internal/database"
	"github.com/qurancms/recitation-api/internal/events"
	"github.com/qurancms/recitation-api/internal/objectstore"
	"github.com/qurancms/recitation-api/internal/services/tracks"
	apperrors "github.com/qurancms/recitation-api/pkg/errors"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type stubProber struct {
	mu    sync.Mutex
	calls int
	d     time.Duration
	err   error
}

func (p *stubProber) Probe(ctx context.Context, r io.Reader) (time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if _, err := io.Copy(io.Discard, r); err != nil {
		return 0, err
	}
	return p.d, p.err
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (n *recordingNotifier) Publish(ctx context.Context, routingKey string, payload any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, routingKey)
	return n.err
}

func (n *recordingNotifier) Close() error { return nil }

type fixture struct {
	svc      Service
	store    *objectstore.Memory
	repo     tracks.Repository
	prober   *stubProber
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, conn.Migrate())
	t.Cleanup(func() { conn.Close() })

	store := objectstore.NewMemory("test")
	store.SetClock(func() time.Time { return testNow })
	repo := tracks.NewRepository(conn.DB)
	prober := &stubProber{d: 61500 * time.Millisecond}
	notifier := &recordingNotifier{}

	svc := NewService(store, repo, prober, DefaultConfig(),
		WithClock(func() time.Time { return testNow }),
		WithNotifier(notifier))

	return &fixture{svc: svc, store: store, repo: repo, prober: prober, notifier: notifier}
}

// upload pushes parts the way the browser does and returns the completion list
func (f *fixture) upload(t *testing.T, start *StartResult, chunks ...string) []objectstore.CompletedPart {
	t.Helper()
	parts := make([]objectstore.CompletedPart, 0, len(chunks))
	for i, chunk := range chunks {
		n := int32(i + 1)
		etag, err := f.store.UploadPart(start.Key.StoreKey(), start.UploadID, n, []byte(chunk))
		require.NoError(t, err)
		parts = append(parts, objectstore.CompletedPart{PartNumber: n, ETag: etag})
	}
	return parts
}

func TestStartUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("reserves the slot and opens a multipart upload", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "saad_007.mp3"})
		require.NoError(t, err)
		assert.Equal(t, objectstore.DBKey("uploads/assets/42/recitations/007.mp3"), res.Key)
		assert.Equal(t, "audio/mpeg", res.ContentType)
		assert.Equal(t, 7, res.SurahNumber)
		assert.True(t, f.store.HasUpload(res.UploadID))

		track, err := f.repo.FindByAudioFile(ctx, res.Key)
		require.NoError(t, err)
		assert.False(t, track.IsFinalized())
		assert.Equal(t, "saad_007.mp3", track.OriginalFilename)
		assert.Equal(t, int64(0), track.DurationMS)
	})

	t.Run("stores the duration hint", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 1, Filename: "001.mp3", DurationMSHint: 42000})
		require.NoError(t, err)

		track, err := f.repo.FindByAudioFile(ctx, res.Key)
		require.NoError(t, err)
		assert.Equal(t, int64(42000), track.DurationMS)
	})

	filenameCases := []struct {
		filename string
		code     apperrors.ErrorCode
	}{
		{filename: "000.mp3", code: apperrors.ErrCodeInvalidSurahNumber},
		{filename: "115.mp3", code: apperrors.ErrCodeInvalidSurahNumber},
		{filename: "foo.mp3", code: apperrors.ErrCodeInvalidFilename},
	}
	for _, tc := range filenameCases {
		t.Run("rejects "+tc.filename, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: tc.filename})
			assert.Equal(t, tc.code, apperrors.GetCode(err))
			assert.Equal(t, 0, f.store.Calls(objectstore.OpCreateMultipart))
		})
	}

	t.Run("duplicate of a finalized track aborts the new upload", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "saad_007.mp3"})
		require.NoError(t, err)
		_, err = f.svc.FinishUpload(ctx, first.Key, first.UploadID, f.upload(t, first, "abc"))
		require.NoError(t, err)

		_, err = f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "other_007.mp3"})
		require.Error(t, err)
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeDuplicateTrack, appErr.Code)
		assert.Equal(t, "Track already exists for asset 42 and surah 7", appErr.Message)
		assert.Equal(t, 400, appErr.GetHTTPCode())

		assert.Equal(t, 0, f.store.UploadCount())
		assert.Equal(t, 1, f.store.Calls(objectstore.OpAbortMultipart))
	})

	t.Run("duplicate of a live reservation aborts only the loser", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "008.mp3"})
		require.NoError(t, err)

		_, err = f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "again_008.mp3"})
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeDuplicateTrack))

		assert.Equal(t, 1, f.store.UploadCount())
		assert.True(t, f.store.HasUpload(first.UploadID))
	})

	t.Run("bucket failure creates no row", func(t *testing.T) {
		f := newFixture(t)
		f.store.FailNext(objectstore.OpCreateMultipart, errors.New("bucket unavailable"))

		_, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "009.mp3"})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeServerError, apperrors.GetCode(err))

		_, err = f.repo.FindByAudioFile(ctx, objectstore.TrackKey(42, 9))
		assert.ErrorIs(t, err, tracks.ErrTrackNotFound)
	})

	t.Run("missing asset id", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.StartUpload(ctx, StartRequest{Filename: "001.mp3"})
		assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.GetCode(err))
	})
}

func TestStartUpload_ConcurrentStartsLeaveOneUpload(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	const racers = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		duplicates int
	)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 5, Filename: "036.mp3"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if apperrors.Is(err, apperrors.ErrCodeDuplicateTrack) {
				duplicates++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, racers-1, duplicates)
	assert.Equal(t, 1, f.store.UploadCount())
}

func TestSignPart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	key := objectstore.TrackKey(42, 7)

	tests := []struct {
		partNumber int
		wantErr    bool
	}{
		{partNumber: 0, wantErr: true},
		{partNumber: -3, wantErr: true},
		{partNumber: 1},
		{partNumber: 10000},
		{partNumber: 10001, wantErr: true},
	}

	for _, tt := range tests {
		url, err := f.svc.SignPart(ctx, key, "upload-1", tt.partNumber)
		if tt.wantErr {
			assert.Equal(t, apperrors.ErrCodeInvalidPartNumber, apperrors.GetCode(err), tt.partNumber)
			continue
		}
		require.NoError(t, err, tt.partNumber)
		assert.Contains(t, url, "uploadId=upload-1")
		assert.Contains(t, url, "X-Amz-Expires=3600")
	}
}

func TestFinishUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path finalizes the reservation", func(t *testing.T) {
		f := newFixture(t)

		start, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "saad_007.mp3"})
		require.NoError(t, err)
		parts := f.upload(t, start, "first-part-", "second-part")

		res, err := f.svc.FinishUpload(ctx, start.Key, start.UploadID, parts)
		require.NoError(t, err)
		assert.Equal(t, uint(42), res.AssetID)
		assert.Equal(t, 7, res.SurahNumber)
		assert.Equal(t, int64(len("first-part-second-part")), res.SizeBytes)
		assert.Equal(t, int64(61500), res.DurationMS)
		assert.True(t, testNow.Equal(res.FinishedAt))
		assert.Equal(t, start.Key, res.Key)
		assert.Equal(t, 1, f.prober.calls)

		track, err := f.repo.FindByAudioFile(ctx, start.Key)
		require.NoError(t, err)
		assert.True(t, track.IsFinalized())
		assert.Equal(t, res.TrackID, track.ID)

		// The finalized row's object exists
		_, err = f.store.HeadObject(ctx, start.Key.StoreKey())
		assert.NoError(t, err)
		assert.Equal(t, []string{events.TrackFinalizedKey}, f.notifier.events)
	})

	t.Run("duration hint skips the parser", func(t *testing.T) {
		f := newFixture(t)

		start, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "001.mp3", DurationMSHint: 5000})
		require.NoError(t, err)

		res, err := f.svc.FinishUpload(ctx, start.Key, start.UploadID, f.upload(t, start, "x"))
		require.NoError(t, err)
		assert.Equal(t, int64(5000), res.DurationMS)
		assert.Equal(t, 0, f.prober.calls)
		assert.Equal(t, 0, f.store.Calls(objectstore.OpGetObject))
	})

	t.Run("head failure records size zero and still finalizes", func(t *testing.T) {
		f := newFixture(t)

		start, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "002.mp3"})
		require.NoError(t, err)
		parts := f.upload(t, start, "data")
		f.store.FailNext(objectstore.OpHeadObject, errors.New("503 slow down"))

		res, err := f.svc.FinishUpload(ctx, start.Key, start.UploadID, parts)
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.SizeBytes)

		track, err := f.repo.FindByAudioFile(ctx, start.Key)
		require.NoError(t, err)
		assert.True(t, track.IsFinalized())
	})

	t.Run("duration failures are swallowed", func(t *testing.T) {
		f := newFixture(t)
		f.prober.err = errors.New("not an mp3")

		start, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "003.mp3"})
		require.NoError(t, err)

		res, err := f.svc.FinishUpload(ctx, start.Key, start.UploadID, f.upload(t, start, "data"))
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.DurationMS)
	})

	t.Run("rejected part list leaves the reservation", func(t *testing.T) {
		f := newFixture(t)

		start, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "004.mp3"})
		require.NoError(t, err)
		f.upload(t, start, "data")

		_, err = f.svc.FinishUpload(ctx, start.Key, start.UploadID, []objectstore.CompletedPart{{PartNumber: 1, ETag: "wrong"}})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeUploadFinalizeFailed, apperrors.GetCode(err))
		assert.Equal(t, 500, apperrors.GetHTTPCode(err))

		track, err := f.repo.FindByAudioFile(ctx, start.Key)
		require.NoError(t, err)
		assert.False(t, track.IsFinalized())
	})

	t.Run("unknown upload without an object fails", func(t *testing.T) {
		f := newFixture(t)

		start, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "005.mp3"})
		require.NoError(t, err)

		_, err = f.svc.FinishUpload(ctx, start.Key, "no-such-upload", []objectstore.CompletedPart{{PartNumber: 1, ETag: "e"}})
		assert.Equal(t, apperrors.ErrCodeUploadFinalizeFailed, apperrors.GetCode(err))
	})

	t.Run("replay after a crash converges the row", func(t *testing.T) {
		f := newFixture(t)

		start, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "saad_007.mp3"})
		require.NoError(t, err)
		parts := f.upload(t, start, "part-one", "part-two")

		// Completion reached the bucket but the process died before the row update
		require.NoError(t, f.store.CompleteMultipart(ctx, start.Key.StoreKey(), start.UploadID, parts))

		res, err := f.svc.FinishUpload(ctx, start.Key, start.UploadID, parts)
		require.NoError(t, err)
		assert.Equal(t, int64(len("part-onepart-two")), res.SizeBytes)

		track, err := f.repo.FindByAudioFile(ctx, start.Key)
		require.NoError(t, err)
		assert.True(t, track.IsFinalized())

		// A further replay on the finalized row is a harmless update
		again, err := f.svc.FinishUpload(ctx, start.Key, start.UploadID, parts)
		require.NoError(t, err)
		assert.Equal(t, res.TrackID, again.TrackID)
	})

	t.Run("object without a reservation", func(t *testing.T) {
		f := newFixture(t)

		start, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "006.mp3"})
		require.NoError(t, err)
		parts := f.upload(t, start, "data")
		_, err = f.repo.DeleteReservations(ctx, start.Key)
		require.NoError(t, err)

		_, err = f.svc.FinishUpload(ctx, start.Key, start.UploadID, parts)
		assert.Equal(t, apperrors.ErrCodeTrackNotFound, apperrors.GetCode(err))
	})

	t.Run("empty part list", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.FinishUpload(ctx, objectstore.TrackKey(1, 1), "u", nil)
		assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.GetCode(err))
	})

	t.Run("notifier failure does not fail the finish", func(t *testing.T) {
		f := newFixture(t)
		f.notifier.err = errors.New("broker down")

		start, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "010.mp3"})
		require.NoError(t, err)
		_, err = f.svc.FinishUpload(ctx, start.Key, start.UploadID, f.upload(t, start, "data"))
		assert.NoError(t, err)
	})
}

func TestAbortUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("mid-upload abort removes the upload and the row", func(t *testing.T) {
		f := newFixture(t)

		start, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "saad_007.mp3"})
		require.NoError(t, err)
		f.upload(t, start, "only-part")

		res, err := f.svc.AbortUpload(ctx, start.Key, start.UploadID)
		require.NoError(t, err)
		assert.True(t, res.Aborted)
		assert.Equal(t, int64(1), res.DBRecordsDeleted)
		assert.False(t, f.store.HasUpload(start.UploadID))

		_, err = f.repo.FindByAudioFile(ctx, start.Key)
		assert.ErrorIs(t, err, tracks.ErrTrackNotFound)
		assert.Equal(t, []string{events.TrackAbortedKey}, f.notifier.events)
	})

	t.Run("repeated aborts leave the same state", func(t *testing.T) {
		f := newFixture(t)

		start, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "011.mp3"})
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			res, err := f.svc.AbortUpload(ctx, start.Key, start.UploadID)
			require.NoError(t, err)
			assert.True(t, res.Aborted)
			if i == 0 {
				assert.Equal(t, int64(1), res.DBRecordsDeleted)
			} else {
				assert.Equal(t, int64(0), res.DBRecordsDeleted)
			}
		}
	})

	t.Run("finalized tracks survive an abort", func(t *testing.T) {
		f := newFixture(t)

		start, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "012.mp3"})
		require.NoError(t, err)
		_, err = f.svc.FinishUpload(ctx, start.Key, start.UploadID, f.upload(t, start, "data"))
		require.NoError(t, err)

		res, err := f.svc.AbortUpload(ctx, start.Key, start.UploadID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.DBRecordsDeleted)

		track, err := f.repo.FindByAudioFile(ctx, start.Key)
		require.NoError(t, err)
		assert.True(t, track.IsFinalized())
	})

	t.Run("bucket errors surface and keep the row", func(t *testing.T) {
		f := newFixture(t)

		start, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "013.mp3"})
		require.NoError(t, err)
		f.store.FailNext(objectstore.OpAbortMultipart, errors.New("access denied"))

		_, err = f.svc.AbortUpload(ctx, start.Key, start.UploadID)
		require.Error(t, err)

		_, err = f.repo.FindByAudioFile(ctx, start.Key)
		assert.NoError(t, err)
	})
}

func TestValidateFilenames(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "001.mp3"})
	require.NoError(t, err)

	names := []string{"001.mp3", "saad_002.mp3", "000.mp3", "foo.mp3"}

	t.Run("without asset", func(t *testing.T) {
		results, err := f.svc.ValidateFilenames(ctx, names, nil)
		require.NoError(t, err)
		require.Len(t, results, 4)

		assert.True(t, results[0].Valid)
		assert.Equal(t, 1, results[0].SurahNumber)
		assert.Equal(t, "Al-Fatihah", results[0].SurahNameEn)
		assert.Equal(t, "الفاتحة", results[0].SurahNameAr)
		assert.Nil(t, results[0].Exists)

		assert.False(t, results[2].Valid)
		assert.Equal(t, "invalid_surah_number", results[2].ErrorName)
		assert.NotEmpty(t, results[2].ErrorMessage)
		assert.Equal(t, "invalid_filename", results[3].ErrorName)
	})

	t.Run("with asset reports existing slots", func(t *testing.T) {
		assetID := uint(42)
		results, err := f.svc.ValidateFilenames(ctx, names, &assetID)
		require.NoError(t, err)

		require.NotNil(t, results[0].Exists)
		assert.True(t, *results[0].Exists)
		require.NotNil(t, results[1].Exists)
		assert.False(t, *results[1].Exists)
		assert.Nil(t, results[2].Exists)
	})

	t.Run("is read only", func(t *testing.T) {
		assert.Equal(t, 1, f.store.Calls(objectstore.OpCreateMultipart))
	})
}
