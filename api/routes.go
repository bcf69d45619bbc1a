package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/qurancms/recitation-api/api/assets"
	"github.com/qurancms/recitation-api/api/auth"
	"github.com/qurancms/recitation-api/api/health"
	"github.com/qurancms/recitation-api/api/tracks"
	"github.com/qurancms/recitation-api/api/types"
	"github.com/qurancms/recitation-api/api/uploads"
	"github.com/qurancms/recitation-api/api/version"
	_ "github.com/qurancms/recitation-api/docs/swagger"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Public routes
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler(deps))
	engine.NoMethod(MethodNotAllowedHandler(deps))

	maxBody := int64(defaultMaxBodyBytes)
	if deps.Config != nil && deps.Config.Server.MaxBodyBytes > 0 {
		maxBody = deps.Config.Server.MaxBodyBytes
	}
	jsonLimit := RequestSizeLimitWithSize(maxBody)

	// Everything below requires a staff principal
	staff := engine.Group("/", auth.RequireStaff(deps))
	staff.GET("/me", auth.Me(deps))

	uploadsGroup := staff.Group("/uploads", jsonLimit)
	if deps.Config != nil && deps.Config.RateLimiting.Enabled {
		rps, burst := deps.Config.RateLimiting.UploadsRPS, deps.Config.RateLimiting.UploadsBurst
		if rps <= 0 {
			rps = 20
		}
		if burst <= 0 {
			burst = 40
		}
		uploadsGroup.Use(PerClientRateLimit(deps, rateLimiters, cleanupStop, cleanupInitialized, rps, burst))
	}
	uploads.RegisterRoutes(uploadsGroup, deps)

	// Bulk bodies are bounded by uploads.bulk_max_bytes inside the handler
	assets.RegisterRoutes(staff.Group("/assets"), deps)

	tracks.RegisterRoutes(staff.Group("/tracks", jsonLimit), deps)

	return nil
}
