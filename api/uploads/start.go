package uploads

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qurancms/recitation-api/api/types"
	uploadsService "github.com/qurancms/recitation-api/internal/services/uploads"
	apperrors "github.com/qurancms/recitation-api/pkg/errors"
)

// Start reserves the (asset, surah) slot and opens a multipart upload
// @Summary      Start a track upload
// @Description  Parses the surah number from the filename, opens a multipart upload and reserves the slot.
// @Description  A second start for a slot that is reserved or finalized fails with duplicate_track.
// @Tags         uploads
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body StartRequest true "Upload to start"
// @Success      200 {object} StartResponse
// @Failure      400 {object} types.ErrorResponse "invalid_filename, invalid_surah_number or duplicate_track"
// @Failure      403 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /uploads/start [post]
func Start(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StartRequest
		if !types.BindJSONOrError(c, deps, &req) {
			return
		}
		if req.DurationMS < 0 {
			types.SendError(c, deps, apperrors.InvalidRequest("durationMs", "must not be negative"))
			return
		}

		res, err := deps.Uploads.StartUpload(c.Request.Context(), uploadsService.StartRequest{
			AssetID:        req.AssetID,
			Filename:       req.Filename,
			DurationMSHint: req.DurationMS,
		})
		if err != nil {
			types.SendError(c, deps, err)
			return
		}

		c.JSON(http.StatusOK, StartResponse{
			Key:         string(res.Key),
			UploadID:    res.UploadID,
			ContentType: res.ContentType,
			SurahNumber: res.SurahNumber,
		})
	}
}
