package uploads

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qurancms/recitation-api/api/types"
)

// Sweep runs the stuck upload sweeper on demand
// @Summary      Sweep stuck uploads
// @Description  Aborts in-progress uploads older than the stuck threshold plus the guard band and deletes their reservations.
// @Tags         uploads
// @Security     BearerAuth
// @Produce      json
// @Param        dryRun query bool false "Report without aborting" default(false)
// @Success      200 {object} uploads.SweepReport
// @Failure      403 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /uploads/sweep [post]
func Sweep(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		dryRun, _ := strconv.ParseBool(c.DefaultQuery("dryRun", "false"))

		report, err := deps.Uploads.Sweep(c.Request.Context(), dryRun)
		if err != nil {
			types.SendError(c, deps, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}
