package uploads

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qurancms/recitation-api/internal/lease"
	"github.com/qurancms/recitation-api/internal/objectstore"
	"github.com/qurancms/recitation-api/internal/services/tracks"
)

func startAt(t *testing.T, f *fixture, filename string, initiated time.Time) *StartResult {
	t.Helper()
	res, err := f.svc.StartUpload(context.Background(), StartRequest{AssetID: 42, Filename: filename})
	require.NoError(t, err)
	require.True(t, f.store.Backdate(res.UploadID, initiated))
	return res
}

func TestSweep(t *testing.T) {
	ctx := context.Background()

	t.Run("aborts stale uploads and keeps fresh ones", func(t *testing.T) {
		f := newFixture(t)

		stale1 := startAt(t, f, "001.mp3", testNow.Add(-3*time.Hour))
		stale2 := startAt(t, f, "002.mp3", testNow.Add(-26*time.Hour))
		fresh := startAt(t, f, "003.mp3", testNow.Add(-10*time.Minute))

		// A finalized track on another slot must be untouched
		done, err := f.svc.StartUpload(ctx, StartRequest{AssetID: 42, Filename: "004.mp3"})
		require.NoError(t, err)
		_, err = f.svc.FinishUpload(ctx, done.Key, done.UploadID, f.upload(t, done, "data"))
		require.NoError(t, err)

		report, err := f.svc.Sweep(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, 3, report.Scanned)
		assert.Equal(t, 2, report.Aborted)
		assert.Equal(t, 1, report.Skipped)
		assert.Equal(t, int64(2), report.DBRecordsDeleted)
		assert.Empty(t, report.Errors)

		assert.False(t, f.store.HasUpload(stale1.UploadID))
		assert.False(t, f.store.HasUpload(stale2.UploadID))
		assert.True(t, f.store.HasUpload(fresh.UploadID))

		_, err = f.repo.FindByAudioFile(ctx, stale1.Key)
		assert.ErrorIs(t, err, tracks.ErrTrackNotFound)
		_, err = f.repo.FindByAudioFile(ctx, fresh.Key)
		assert.NoError(t, err)

		track, err := f.repo.FindByAudioFile(ctx, done.Key)
		require.NoError(t, err)
		assert.True(t, track.IsFinalized())
	})

	t.Run("guard band protects uploads just past the threshold", func(t *testing.T) {
		f := newFixture(t)

		inBand := startAt(t, f, "005.mp3", testNow.Add(-2*time.Hour-2*time.Minute))
		pastBand := startAt(t, f, "006.mp3", testNow.Add(-2*time.Hour-6*time.Minute))

		report, err := f.svc.Sweep(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Aborted)
		assert.True(t, f.store.HasUpload(inBand.UploadID))
		assert.False(t, f.store.HasUpload(pastBand.UploadID))
	})

	t.Run("dry run changes nothing", func(t *testing.T) {
		f := newFixture(t)
		stale := startAt(t, f, "007.mp3", testNow.Add(-5*time.Hour))

		report, err := f.svc.Sweep(ctx, true)
		require.NoError(t, err)
		assert.True(t, report.DryRun)
		assert.Equal(t, 1, report.Stale)
		assert.Equal(t, 0, report.Aborted)
		assert.True(t, f.store.HasUpload(stale.UploadID))
		assert.Equal(t, 0, f.store.Calls(objectstore.OpAbortMultipart))
	})

	t.Run("one failing entry does not stop the sweep", func(t *testing.T) {
		f := newFixture(t)
		first := startAt(t, f, "008.mp3", testNow.Add(-5*time.Hour))
		second := startAt(t, f, "009.mp3", testNow.Add(-5*time.Hour))

		f.store.FailNext(objectstore.OpAbortMultipart, errors.New("internal error"))

		report, err := f.svc.Sweep(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Stale)
		assert.Equal(t, 1, report.Aborted)
		require.Len(t, report.Errors, 1)
		assert.Equal(t, string(first.Key), report.Errors[0].Key)
		assert.Equal(t, first.UploadID, report.Errors[0].UploadID)
		assert.False(t, f.store.HasUpload(second.UploadID))

		// The failed entry is retried by the next sweep
		report, err = f.svc.Sweep(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Aborted)
		assert.Empty(t, report.Errors)
	})

	t.Run("listing failure", func(t *testing.T) {
		f := newFixture(t)
		f.store.FailNext(objectstore.OpListMultiparts, errors.New("timeout"))

		_, err := f.svc.Sweep(ctx, false)
		assert.Error(t, err)
	})

	t.Run("stale upload without a row is still aborted", func(t *testing.T) {
		f := newFixture(t)
		key := objectstore.TrackKey(99, 10).StoreKey()
		uploadID, err := f.store.CreateMultipart(ctx, key, objectstore.ContentTypeMP3)
		require.NoError(t, err)
		f.store.Backdate(uploadID, testNow.Add(-48*time.Hour))

		report, err := f.svc.Sweep(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Aborted)
		assert.Equal(t, int64(0), report.DBRecordsDeleted)
		assert.Equal(t, 0, f.store.UploadCount())
	})
}

type denyLocker struct {
	err error
}

func (d denyLocker) TryAcquire(ctx context.Context, name string, ttl time.Duration) (lease.Lease, bool, error) {
	return nil, false, d.err
}

func TestRunner_RunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("sweeps when the lease is free", func(t *testing.T) {
		f := newFixture(t)
		stale := startAt(t, f, "011.mp3", testNow.Add(-5*time.Hour))

		r := NewRunner(f.svc, lease.Local{}, time.Hour, 0, nil)
		assert.True(t, r.RunOnce(ctx))
		assert.False(t, f.store.HasUpload(stale.UploadID))
	})

	t.Run("skips when another process holds the lease", func(t *testing.T) {
		f := newFixture(t)
		stale := startAt(t, f, "012.mp3", testNow.Add(-5*time.Hour))

		r := NewRunner(f.svc, denyLocker{}, time.Hour, time.Minute, nil)
		assert.False(t, r.RunOnce(ctx))
		assert.True(t, f.store.HasUpload(stale.UploadID))
	})

	t.Run("skips when the lease store is down", func(t *testing.T) {
		f := newFixture(t)
		r := NewRunner(f.svc, denyLocker{err: errors.New("connection refused")}, time.Hour, time.Minute, nil)
		assert.False(t, r.RunOnce(ctx))
	})
}

func TestRunner_StartStop(t *testing.T) {
	f := newFixture(t)
	stale := startAt(t, f, "013.mp3", testNow.Add(-5*time.Hour))

	r := NewRunner(f.svc, nil, time.Hour, 0, nil)
	r.Start(context.Background())

	assert.Eventually(t, func() bool {
		return !f.store.HasUpload(stale.UploadID)
	}, time.Second, 10*time.Millisecond)

	r.Stop()
}
