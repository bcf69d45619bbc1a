package uploads

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qurancms/recitation-api/api/types"
)

// Abort cancels the multipart upload and frees the reservation
// @Summary      Abort a track upload
// @Description  Aborts the multipart upload and deletes the unfinished reservation. Finalized tracks are never removed.
// @Description  Repeating an abort is safe.
// @Tags         uploads
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body AbortRequest true "Upload to abort"
// @Success      200 {object} AbortResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      403 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /uploads/abort [post]
func Abort(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AbortRequest
		if !types.BindJSONOrError(c, deps, &req) {
			return
		}
		key, ok := parseKey(c, deps, req.Key)
		if !ok {
			return
		}

		res, err := deps.Uploads.AbortUpload(c.Request.Context(), key, req.UploadID)
		if err != nil {
			types.SendError(c, deps, err)
			return
		}

		c.JSON(http.StatusOK, AbortResponse{
			Key:              string(res.Key),
			UploadID:         res.UploadID,
			Aborted:          res.Aborted,
			DBRecordsDeleted: res.DBRecordsDeleted,
		})
	}
}
