package objectstore

import (
	"context"
	"fmt"

	"github.com/qurancms/recitation-api/pkg/config"
)

// New builds the Gateway selected by storage.driver
func New(ctx context.Context, cfg config.StorageConfig) (Gateway, error) {
	switch cfg.Driver {
	case "", "s3":
		return NewS3(ctx, cfg)
	case "minio":
		return NewMinio(cfg)
	case "memory":
		return NewMemory(cfg.Bucket), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
