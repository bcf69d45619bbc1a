package tracks

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qurancms/recitation-api/api/types"
	trackService "github.com/qurancms/recitation-api/internal/services/tracks"
)

// ReplaceTimingsRequest carries the full timing set for a track
type ReplaceTimingsRequest struct {
	Timings []trackService.TimingInput `json:"timings" binding:"dive"`
}

// ReplaceTimingsResponse reports how many timings were stored
type ReplaceTimingsResponse struct {
	TrackID uint `json:"trackId"`
	Count   int  `json:"count"`
}

// ReplaceTimings replaces every ayah timing of a track
// @Summary      Replace ayah timings
// @Description  Replaces the ayah timings of a track. An empty list clears them.
// @Tags         tracks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Track ID"
// @Param        request body ReplaceTimingsRequest true "Timings"
// @Success      200 {object} ReplaceTimingsResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      403 {object} types.ErrorResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /tracks/{id}/timings [put]
func ReplaceTimings(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		trackID, ok := types.ParseUintParam(c, deps, "id")
		if !ok {
			return
		}

		var req ReplaceTimingsRequest
		if !types.BindJSONOrError(c, deps, &req) {
			return
		}

		count, err := deps.Tracks.ReplaceTimings(c.Request.Context(), trackID, req.Timings)
		if err != nil {
			types.SendError(c, deps, err)
			return
		}

		c.JSON(http.StatusOK, ReplaceTimingsResponse{TrackID: trackID, Count: count})
	}
}
