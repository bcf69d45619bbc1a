package tracks

import (
	"github.com/gin-gonic/gin"
	"github.com/qurancms/recitation-api/api/types"
)

// RegisterRoutes registers track routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.PUT("/:id/timings", ReplaceTimings(deps))
}
