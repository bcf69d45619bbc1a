package uploads

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qurancms/recitation-api/api/types"
)

// ValidateFilenames parses a selection of filenames without touching the store
// @Summary      Validate filenames
// @Description  Reports the surah each filename maps to. With asset_id, also reports whether the slot is taken.
// @Tags         uploads
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body ValidateFilenamesRequest true "Filenames to check"
// @Success      200 {object} ValidateFilenamesResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      403 {object} types.ErrorResponse
// @Router       /uploads/validate-filenames [post]
func ValidateFilenames(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValidateFilenamesRequest
		if !types.BindJSONOrError(c, deps, &req) {
			return
		}

		results, err := deps.Uploads.ValidateFilenames(c.Request.Context(), req.Filenames, req.AssetID)
		if err != nil {
			types.SendError(c, deps, err)
			return
		}
		c.JSON(http.StatusOK, ValidateFilenamesResponse{Results: results})
	}
}
