package assets

import (
	"github.com/gin-gonic/gin"

	"github.com/qurancms/recitation-api/api/types"
)

// RegisterRoutes registers asset-level recitation routes behind the staff middleware
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/:id/sync-recitations-json", SyncRecitationsJSON(deps))
	router.GET("/:id/recitations.json", PreviewManifest(deps))
	router.POST("/:id/recitations/bulk", BulkIngest(deps))
}
