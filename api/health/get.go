package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qurancms/recitation-api/api/types"
	"github.com/qurancms/recitation-api/api/version"
	"github.com/qurancms/recitation-api/internal/objectstore"
)

const pingTimeout = 3 * time.Second

// Get handles health check requests
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := getDatabaseStatus(deps)
		storageStatus := getStorageStatus(c.Request.Context(), deps)

		status, code := "healthy", http.StatusOK
		if dbStatus["status"] == "unhealthy" || storageStatus["status"] == "unhealthy" {
			status, code = "unhealthy", http.StatusServiceUnavailable
			deps.Log().Warn("health check failed",
				zap.Any("database", dbStatus),
				zap.Any("storage", storageStatus))
		}

		c.JSON(code, gin.H{
			"status":    status,
			"version":   version.Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  dbStatus,
			"storage":   storageStatus,
		})
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) gin.H {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return gin.H{"status": "not configured", "connected": false}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return gin.H{"status": "unhealthy", "connected": false, "error": err.Error()}
	}

	return gin.H{"status": "healthy", "connected": true}
}

func getStorageStatus(ctx context.Context, deps *types.Dependencies) gin.H {
	if deps == nil || deps.Store == nil {
		return gin.H{"status": "not configured", "connected": false}
	}

	pinger, ok := deps.Store.(objectstore.Pinger)
	if !ok {
		return gin.H{"status": "unknown", "connected": false}
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pinger.Ping(ctx); err != nil {
		return gin.H{"status": "unhealthy", "connected": false, "error": err.Error()}
	}
	return gin.H{"status": "healthy", "connected": true}
}
