package recitations_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qurancms/recitation-api/api"
	"github.com/qurancms/recitation-api/api/types"
	"github.com/qurancms/recitation-api/internal/database"
	"github.com/qurancms/recitation-api/internal/models"
	"github.com/qurancms/recitation-api/internal/objectstore"
	"github.com/qurancms/recitation-api/internal/services/auth"
	"github.com/qurancms/recitation-api/internal/services/bulk"
	"github.com/qurancms/recitation-api/internal/services/manifest"
	"github.com/qurancms/recitation-api/internal/services/tracks"
	"github.com/qurancms/recitation-api/internal/services/uploads"
	"github.com/qurancms/recitation-api/pkg/config"
)

const publicBaseURL = "https://cdn.example.com"

type fixedProber struct{}

func (fixedProber) Probe(ctx context.Context, r io.Reader) (time.Duration, error) {
	_, err := io.Copy(io.Discard, r)
	return 95 * time.Second, err
}

// RecitationSuite holds an HTTP server wired to sqlite and the in-memory bucket
type RecitationSuite struct {
	t      *testing.T
	db     *database.DB
	store  *objectstore.Memory
	server *api.Server
	token  string
}

func setupSuite(t *testing.T) *RecitationSuite {
	t.Helper()

	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	reciter := models.Reciter{Name: "Mahmoud Khalil Al-Husary", Slug: "husary"}
	require.NoError(t, db.Create(&reciter).Error)
	require.NoError(t, db.Create(&models.Asset{ID: 42, Title: "Murattal", ReciterID: &reciter.ID}).Error)
	require.NoError(t, db.Create(&models.AssetVersion{AssetID: 42, Version: "1"}).Error)

	cfg := &config.Config{
		Storage:  config.StorageConfig{Driver: "memory", Bucket: "recitations", PublicBaseURL: publicBaseURL},
		Uploads:  config.UploadsConfig{PartURLTTLSeconds: 3600, StuckThresholdHours: 2, SweepGuardBand: 5 * time.Minute},
		Manifest: config.ManifestConfig{CacheControl: "public, max-age=300", RedirectPath: "/admin/assets/%d/"},
		Auth:     config.AuthConfig{JWTSecret: "integration-secret", StaffRole: "staff"},
		Security: config.SecurityConfig{EnableRequestID: true},
	}

	store := objectstore.NewMemory(cfg.Storage.Bucket)
	trackRepo := tracks.NewRepository(db.DB)
	authSvc := auth.NewService(cfg.Auth)

	deps := &types.Dependencies{
		DB:       db,
		Store:    store,
		Auth:     authSvc,
		Uploads:  uploads.NewService(store, trackRepo, fixedProber{}, uploads.ConfigFrom(cfg.Uploads)),
		Tracks:   tracks.NewService(trackRepo, nil),
		Manifest: manifest.NewService(manifest.NewRepository(db.DB), store, manifest.ConfigFrom(cfg.Storage, cfg.Manifest), nil, nil),
		Bulk:     bulk.NewService(store, trackRepo, fixedProber{}, nil, nil),
		Config:   cfg,
	}

	server := api.NewServer(":0", deps)
	require.NoError(t, server.Initialize())

	token, err := authSvc.IssueToken("staff-1", "staff@example.com", true, time.Hour)
	require.NoError(t, err)

	return &RecitationSuite{t: t, db: db, store: store, server: server, token: token}
}

func (s *RecitationSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	w := httptest.NewRecorder()
	s.server.Engine().ServeHTTP(w, req)
	return w
}

func (s *RecitationSuite) decode(w *httptest.ResponseRecorder, target any) {
	s.t.Helper()
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), target), w.Body.String())
}

type startResponse struct {
	Key         string `json:"key"`
	UploadID    string `json:"uploadId"`
	ContentType string `json:"contentType"`
	SurahNumber int    `json:"surahNumber"`
}

func (s *RecitationSuite) start(filename string) startResponse {
	s.t.Helper()
	w := s.do(http.MethodPost, "/uploads/start", map[string]any{"assetId": 42, "filename": filename})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var resp startResponse
	s.decode(w, &resp)
	return resp
}

// uploadParts plays the browser: one PUT per chunk against the bucket
func (s *RecitationSuite) uploadParts(start startResponse, chunks ...string) []objectstore.CompletedPart {
	s.t.Helper()
	parts := make([]objectstore.CompletedPart, 0, len(chunks))
	for i, chunk := range chunks {
		n := int32(i + 1)
		w := s.do(http.MethodPost, "/uploads/sign-part", map[string]any{"key": start.Key, "uploadId": start.UploadID, "partNumber": n})
		require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

		etag, err := s.store.UploadPart(objectstore.DBKey(start.Key).StoreKey(), start.UploadID, n, []byte(chunk))
		require.NoError(s.t, err)
		parts = append(parts, objectstore.CompletedPart{ETag: etag, PartNumber: n})
	}
	return parts
}

func (s *RecitationSuite) finish(start startResponse, parts []objectstore.CompletedPart) map[string]any {
	s.t.Helper()
	w := s.do(http.MethodPost, "/uploads/finish", map[string]any{"key": start.Key, "uploadId": start.UploadID, "parts": parts})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]any
	s.decode(w, &resp)
	return resp
}

func (s *RecitationSuite) trackCount() int64 {
	var n int64
	require.NoError(s.t, s.db.Model(&models.RecitationSurahTrack{}).Count(&n).Error)
	return n
}

func TestHappyPath(t *testing.T) {
	s := setupSuite(t)

	start := s.start("saad_007.mp3")
	assert.Equal(t, "uploads/assets/42/recitations/007.mp3", start.Key)
	assert.Equal(t, "audio/mpeg", start.ContentType)
	assert.Equal(t, 7, start.SurahNumber)

	resp := s.finish(start, s.uploadParts(start, "first-part", "second-part"))
	assert.Equal(t, float64(42), resp["assetId"])
	assert.Equal(t, float64(7), resp["surahNumber"])
	assert.Equal(t, float64(len("first-part")+len("second-part")), resp["sizeBytes"])
	assert.Equal(t, start.Key, resp["key"])
	_, err := time.Parse(time.RFC3339, resp["finishedAt"].(string))
	assert.NoError(t, err)

	var track models.RecitationSurahTrack
	require.NoError(t, s.db.Where("asset_id = ? AND surah_number = ?", 42, 7).First(&track).Error)
	assert.True(t, track.IsFinalized())
	assert.Equal(t, int64(95000), track.DurationMS)
	assert.Equal(t, int64(1), s.trackCount())
}

func TestDuplicateStart(t *testing.T) {
	s := setupSuite(t)
	first := s.start("saad_007.mp3")
	s.finish(first, s.uploadParts(first, "audio"))

	w := s.do(http.MethodPost, "/uploads/start", map[string]any{"assetId": 42, "filename": "other_007.mp3"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	s.decode(w, &body)
	assert.Equal(t, "duplicate_track", body["error_name"])
	assert.Equal(t, "Track already exists for asset 42 and surah 7", body["message"])
	assert.Equal(t, 0, s.store.UploadCount())
}

func TestAbortMidUpload(t *testing.T) {
	s := setupSuite(t)
	start := s.start("saad_007.mp3")
	s.uploadParts(start, "only-part")

	w := s.do(http.MethodPost, "/uploads/abort", map[string]any{"key": start.Key, "uploadId": start.UploadID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]any
	s.decode(w, &body)
	assert.Equal(t, true, body["aborted"])
	assert.Equal(t, float64(1), body["dbRecordsDeleted"])
	assert.False(t, s.store.HasUpload(start.UploadID))
	assert.Equal(t, int64(0), s.trackCount())
}

func TestStuckSweep(t *testing.T) {
	s := setupSuite(t)

	done := s.start("001.mp3")
	s.finish(done, s.uploadParts(done, "fatiha"))

	stuck8 := s.start("008.mp3")
	stuck9 := s.start("009.mp3")
	past := time.Now().Add(-3 * time.Hour)
	require.True(t, s.store.Backdate(stuck8.UploadID, past))
	require.True(t, s.store.Backdate(stuck9.UploadID, past))

	w := s.do(http.MethodPost, "/uploads/sweep", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report map[string]any
	s.decode(w, &report)
	assert.Equal(t, float64(2), report["aborted"])
	assert.Equal(t, float64(2), report["dbRecordsDeleted"])

	assert.False(t, s.store.HasUpload(stuck8.UploadID))
	assert.False(t, s.store.HasUpload(stuck9.UploadID))
	assert.Equal(t, int64(1), s.trackCount())
}

func TestManifestSync(t *testing.T) {
	s := setupSuite(t)

	for _, name := range []string{"114.mp3", "001.mp3"} {
		start := s.start(name)
		resp := s.finish(start, s.uploadParts(start, "audio-"+name))
		trackID := uint(resp["trackId"].(float64))

		w := s.do(http.MethodPut, "/tracks/"+jsonNumber(trackID)+"/timings", map[string]any{
			"timings": []map[string]any{
				{"ayah_key": keyFor(start.SurahNumber, 2), "start_ms": 4000, "end_ms": 9000},
				{"ayah_key": keyFor(start.SurahNumber, 1), "start_ms": 0, "end_ms": 4000},
			},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	sync := func() []byte {
		w := s.do(http.MethodPost, "/assets/42/sync-recitations-json", nil)
		require.Equal(t, http.StatusFound, w.Code, w.Body.String())
		assert.Equal(t, "/admin/assets/42/", w.Header().Get("Location"))

		obj, ok := s.store.Object(objectstore.ManifestKey(42, "asset_42_husary_recitations.json").StoreKey())
		require.True(t, ok)
		assert.Equal(t, "application/json", obj.ContentType)
		return obj.Data
	}

	first := sync()
	var entries []struct {
		SurahNumber  int    `json:"surah_number"`
		AudioURL     string `json:"audio_url"`
		AyahsTimings []struct {
			AyahKey string `json:"ayah_key"`
		} `json:"ayahs_timings"`
	}
	require.NoError(t, json.Unmarshal(first, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].SurahNumber)
	assert.Equal(t, 114, entries[1].SurahNumber)
	assert.Equal(t, publicBaseURL+"/media/uploads/assets/42/recitations/001.mp3", entries[0].AudioURL)
	assert.Equal(t, publicBaseURL+"/media/uploads/assets/42/recitations/114.mp3", entries[1].AudioURL)
	assert.Equal(t, "1:1", entries[0].AyahsTimings[0].AyahKey)
	assert.Equal(t, "1:2", entries[0].AyahsTimings[1].AyahKey)

	assert.Equal(t, first, sync())

	var version models.AssetVersion
	require.NoError(t, s.db.Where("asset_id = ?", 42).Order("id DESC").First(&version).Error)
	assert.Equal(t, "uploads/assets/42/manifests/asset_42_husary_recitations.json", version.FileURL)
	assert.Equal(t, int64(len(first)), version.SizeBytes)
}

func TestFinishReplayAfterCrash(t *testing.T) {
	s := setupSuite(t)
	start := s.start("saad_007.mp3")
	parts := s.uploadParts(start, "first-part", "second-part")

	// the bucket completed the upload but the process died before the DB update
	require.NoError(t, s.store.CompleteMultipart(context.Background(),
		objectstore.DBKey(start.Key).StoreKey(), start.UploadID, parts))

	resp := s.finish(start, parts)
	assert.Equal(t, float64(7), resp["surahNumber"])
	assert.Equal(t, float64(len("first-part")+len("second-part")), resp["sizeBytes"])

	var track models.RecitationSurahTrack
	require.NoError(t, s.db.Where("asset_id = ? AND surah_number = ?", 42, 7).First(&track).Error)
	assert.True(t, track.IsFinalized())
	assert.Equal(t, int64(1), s.trackCount())
}

func TestBulkIngest(t *testing.T) {
	s := setupSuite(t)

	existing := s.start("002.mp3")
	s.finish(existing, s.uploadParts(existing, "baqarah"))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range []string{"001.mp3", "002.mp3", "notes.mp3", "003.mp3"} {
		part, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("audio-" + name))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/assets/42/recitations/bulk", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.server.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result bulk.Result
	s.decode(w, &result)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.FilenameErrors)
	assert.Equal(t, 1, result.SkippedDuplicates)
	assert.Equal(t, 0, result.OtherErrors)
	assert.Equal(t, int64(3), s.trackCount())

	_, ok := s.store.Object(objectstore.TrackKey(42, 3).StoreKey())
	assert.True(t, ok)
}

func TestAnonymousIsForbidden(t *testing.T) {
	s := setupSuite(t)

	req := httptest.NewRequest(http.MethodPost, "/uploads/start", bytes.NewBufferString(`{"assetId":42,"filename":"007.mp3"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.server.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, s.store.UploadCount())
	assert.Equal(t, int64(0), s.trackCount())
}

func jsonNumber(n uint) string {
	raw, _ := json.Marshal(n)
	return string(raw)
}

func keyFor(surah, ayah int) string {
	return models.AyahKey(surah, ayah)
}
