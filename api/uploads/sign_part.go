package uploads

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qurancms/recitation-api/api/types"
	"github.com/qurancms/recitation-api/internal/objectstore"
	apperrors "github.com/qurancms/recitation-api/pkg/errors"
)

// SignPart returns a presigned PUT URL for one part
// @Summary      Sign an upload part
// @Description  Returns a presigned URL the browser PUTs one part to. Part numbers run from 1 to 10000.
// @Description  The upload is not checked for being open; a PUT to a completed or aborted upload is rejected by the bucket.
// @Tags         uploads
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body SignPartRequest true "Part to sign"
// @Success      200 {object} SignPartResponse
// @Failure      400 {object} types.ErrorResponse "invalid_part_number"
// @Failure      403 {object} types.ErrorResponse
// @Router       /uploads/sign-part [post]
func SignPart(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignPartRequest
		if !types.BindJSONOrError(c, deps, &req) {
			return
		}
		key, ok := parseKey(c, deps, req.Key)
		if !ok {
			return
		}

		url, err := deps.Uploads.SignPart(c.Request.Context(), key, req.UploadID, req.PartNumber)
		if err != nil {
			types.SendError(c, deps, err)
			return
		}
		c.JSON(http.StatusOK, SignPartResponse{URL: url})
	}
}

// parseKey accepts only recitation track keys, with or without the media prefix
func parseKey(c *gin.Context, deps *types.Dependencies, raw string) (objectstore.DBKey, bool) {
	key, _, _, err := objectstore.ParseTrackKey(raw)
	if err != nil {
		types.SendError(c, deps, apperrors.InvalidRequest("key", "is not a recitation track key"))
		return "", false
	}
	return key, true
}
