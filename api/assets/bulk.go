package assets

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qurancms/recitation-api/api/types"
	"github.com/qurancms/recitation-api/internal/services/bulk"
	apperrors "github.com/qurancms/recitation-api/pkg/errors"
)

const bulkFormField = "files"

// BulkIngest stores a selection of MP3 files as finalized tracks in one batch
// @Summary      Bulk ingest recitation tracks
// @Description  Accepts many MP3 files at once. Filename errors and duplicates are skipped;
// @Description  any other failure rolls the whole batch back and deletes the objects it wrote.
// @Tags         assets
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path int true "Asset ID"
// @Param        files formData file true "MP3 files"
// @Success      200 {object} bulk.Result
// @Failure      400 {object} types.ErrorResponse
// @Failure      403 {object} types.ErrorResponse
// @Router       /assets/{id}/recitations/bulk [post]
func BulkIngest(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		assetID, ok := types.ParseUintParam(c, deps, "id")
		if !ok {
			return
		}

		if deps.Config != nil && deps.Config.Uploads.BulkMaxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, deps.Config.Uploads.BulkMaxBytes)
		}

		form, err := c.MultipartForm()
		if err != nil {
			types.SendError(c, deps, apperrors.InvalidRequest(bulkFormField, "a multipart form is required"))
			return
		}
		headers := form.File[bulkFormField]
		if len(headers) == 0 {
			types.SendError(c, deps, apperrors.InvalidRequest(bulkFormField, "at least one file is required"))
			return
		}

		result, err := deps.Bulk.Ingest(c.Request.Context(), assetID, bulk.FromMultipart(headers))
		if err != nil {
			types.SendError(c, deps, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
