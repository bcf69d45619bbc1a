package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is overridden at build time with -ldflags "-X .../api/version.Version=..."
var Version = "1.0.0"

// Info describes the running service
type Info struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Current returns the service description served at the root
func Current() Info {
	return Info{
		Name:        "Recitation API",
		Version:     Version,
		Description: "Ingestion of Quran recitation audio tracks and manifest publishing",
		Status:      "running",
	}
}

// Get handles version requests
// @Summary Service version
// @Tags version
// @Produce json
// @Success 200 {object} Info
// @Router / [get]
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Current())
	}
}
