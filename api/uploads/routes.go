package uploads

import (
	"github.com/gin-gonic/gin"

	"github.com/qurancms/recitation-api/api/types"
)

// RegisterRoutes registers upload coordinator routes.
// The router group already carries the staff middleware.
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/start", Start(deps))
	router.POST("/sign-part", SignPart(deps))
	router.POST("/finish", Finish(deps))
	router.POST("/abort", Abort(deps))
	router.POST("/validate-filenames", ValidateFilenames(deps))
	router.POST("/sweep", Sweep(deps))
}
