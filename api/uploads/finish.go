package uploads

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qurancms/recitation-api/api/types"
)

// Finish completes the multipart upload and finalizes the track
// @Summary      Finish a track upload
// @Description  Completes the multipart upload, records size and duration and marks the track finalized.
// @Description  Replaying a finish after a crash converges on the same finalized row.
// @Tags         uploads
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body FinishRequest true "Parts uploaded by the browser"
// @Success      200 {object} FinishResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      403 {object} types.ErrorResponse
// @Failure      404 {object} types.ErrorResponse "track_not_found"
// @Failure      500 {object} types.ErrorResponse "upload_finalize_failed"
// @Router       /uploads/finish [post]
func Finish(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FinishRequest
		if !types.BindJSONOrError(c, deps, &req) {
			return
		}
		key, ok := parseKey(c, deps, req.Key)
		if !ok {
			return
		}

		res, err := deps.Uploads.FinishUpload(c.Request.Context(), key, req.UploadID, req.Parts)
		if err != nil {
			types.SendError(c, deps, err)
			return
		}

		c.JSON(http.StatusOK, FinishResponse{
			TrackID:     res.TrackID,
			AssetID:     res.AssetID,
			SurahNumber: res.SurahNumber,
			SizeBytes:   res.SizeBytes,
			DurationMS:  res.DurationMS,
			FinishedAt:  res.FinishedAt,
			Key:         string(res.Key),
		})
	}
}
