package types

import (
	"go.uber.org/zap"

	"github.com/qurancms/recitation-api/internal/database"
	"github.com/qurancms/recitation-api/internal/objectstore"
	"github.com/qurancms/recitation-api/internal/services/auth"
	"github.com/qurancms/recitation-api/internal/services/bulk"
	"github.com/qurancms/recitation-api/internal/services/manifest"
	"github.com/qurancms/recitation-api/internal/services/tracks"
	"github.com/qurancms/recitation-api/internal/services/uploads"
	"github.com/qurancms/recitation-api/pkg/config"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB       *database.DB
	Store    objectstore.Gateway
	Auth     *auth.Service
	Uploads  uploads.Service
	Tracks   tracks.Service
	Manifest manifest.Service
	Bulk     bulk.Service
	Config   *config.Config
	Logger   *zap.Logger
}

// Log returns the configured logger or a no-op one
func (d *Dependencies) Log() *zap.Logger {
	if d == nil || d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
