package tracks

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/qurancms/recitation-api/api/types"
	trackService "github.com/qurancms/recitation-api/internal/services/tracks"
	apperrors "github.com/qurancms/recitation-api/pkg/errors"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ReplaceTimings(ctx context.Context, trackID uint, timings []trackService.TimingInput) (int, error) {
	args := m.Called(ctx, trackID, timings)
	return args.Int(0), args.Error(1)
}

func put(t *testing.T, svc trackService.Service, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/tracks"), &types.Dependencies{Tracks: svc})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestReplaceTimings(t *testing.T) {
	t.Run("stores the timings", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ReplaceTimings", mock.Anything, uint(9), []trackService.TimingInput{
			{AyahKey: "1:1", StartMS: 0, EndMS: 4000},
			{AyahKey: "1:2", StartMS: 4000, EndMS: 9000},
		}).Return(2, nil)

		w := put(t, svc, "/tracks/9/timings",
			`{"timings":[{"ayah_key":"1:1","start_ms":0,"end_ms":4000},{"ayah_key":"1:2","start_ms":4000,"end_ms":9000}]}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp ReplaceTimingsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, ReplaceTimingsResponse{TrackID: 9, Count: 2}, resp)
	})

	t.Run("validation errors pass through", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ReplaceTimings", mock.Anything, uint(9), mock.Anything).
			Return(0, apperrors.New(apperrors.ErrCodeInvalidTiming, "end_ms must not be before start_ms"))

		w := put(t, svc, "/tracks/9/timings", `{"timings":[{"ayah_key":"1:1","start_ms":10,"end_ms":5}]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "invalid_timing", body["error_name"])
	})

	t.Run("unknown track", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ReplaceTimings", mock.Anything, uint(404), mock.Anything).
			Return(0, apperrors.New(apperrors.ErrCodeTrackNotFound, "Track 404 not found"))

		w := put(t, svc, "/tracks/404/timings", `{"timings":[]}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing ayah key", func(t *testing.T) {
		svc := new(MockService)
		w := put(t, svc, "/tracks/9/timings", `{"timings":[{"start_ms":0,"end_ms":5}]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "ReplaceTimings", mock.Anything, mock.Anything, mock.Anything)
	})
}
