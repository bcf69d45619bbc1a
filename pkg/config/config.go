package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/qurancms/recitation-api/pkg/errors"
)

var (
	once    sync.Once
	initErr error

	// ConfigPath is the optional settings file; a missing file is not an error
	ConfigPath = "./config/settings.yaml"
)

// envBindings maps config keys to the environment names used by deployments.
// These are read without the RECITATION_ prefix.
var envBindings = map[string]string{
	"storage.bucket":                "R2_BUCKET",
	"storage.endpoint":              "R2_ENDPOINT",
	"storage.access_key_id":         "R2_ACCESS_KEY_ID",
	"storage.secret_access_key":     "R2_SECRET_ACCESS_KEY",
	"storage.public_base_url":       "R2_PUBLIC_BASE_URL",
	"storage.region":                "REGION",
	"storage.addressing_style":      "MULTIPART_ADDRESSING_STYLE",
	"storage.signature_version":     "SIGNATURE_VERSION",
	"uploads.part_url_ttl_seconds":  "PART_URL_TTL_SECONDS",
	"uploads.stuck_threshold_hours": "STUCK_UPLOAD_THRESHOLD_HOURS",
	"database.dsn":                  "DATABASE_URL",
	"auth.jwt_secret":               "JWT_SECRET",
	"redis.addr":                    "REDIS_ADDR",
	"events.amqp_url":               "AMQP_URL",
}

// Init initializes the configuration system once per process
func Init() error {
	once.Do(func() {
		initErr = Load()
	})
	return initErr
}

// Load reads defaults, the optional settings file, .env and the environment.
// Unlike Init it can be called repeatedly (tests reset viper between calls).
func Load() error {
	// .env is a development convenience; real deployments set the environment
	_ = godotenv.Load()

	setDefaults()

	viper.SetEnvPrefix("RECITATION")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	for key, env := range envBindings {
		if err := viper.BindEnv(key, "RECITATION_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return fmt.Errorf("binding %s: %w", env, err)
		}
	}

	configPath := filepath.Clean(ConfigPath)
	viper.SetConfigFile(configPath)
	if err := viper.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) && !os.IsNotExist(err) {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	if err := validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// validate validates the configuration using Viper values
func validate() error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate checks a Config struct
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return apperrors.ConfigError("server.port", fmt.Sprintf("invalid port %d", c.Server.Port))
	}

	switch c.Database.Driver {
	case "", "sqlite":
	case "postgres":
		if c.Database.DSN == "" {
			return apperrors.ConfigError("database.dsn", "required for the postgres driver")
		}
	default:
		return apperrors.ConfigError("database.driver", "must be sqlite or postgres")
	}

	switch c.Storage.Driver {
	case "memory":
	case "s3", "minio":
		if c.Storage.Bucket == "" {
			return apperrors.ConfigError("storage.bucket", "R2_BUCKET is required")
		}
		if c.Storage.Endpoint == "" {
			return apperrors.ConfigError("storage.endpoint", "R2_ENDPOINT is required")
		}
	default:
		return apperrors.ConfigError("storage.driver", "must be s3, minio or memory")
	}

	if c.Uploads.PartURLTTLSeconds <= 0 {
		return apperrors.ConfigError("uploads.part_url_ttl_seconds", "must be positive")
	}
	if c.Uploads.StuckThresholdHours <= 0 {
		return apperrors.ConfigError("uploads.stuck_threshold_hours", "must be positive")
	}

	switch c.Duration.Probe {
	case "frames", "ffprobe":
	default:
		return apperrors.ConfigError("duration.probe", "must be frames or ffprobe")
	}

	if c.Environment == "production" && c.Auth.DevToken != "" {
		return apperrors.ConfigError("auth.dev_token", "dev token cannot be enabled in production")
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 60*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_body_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "./data/recitations.db")
	viper.SetDefault("database.max_connections", 20)
	viper.SetDefault("database.max_idle_connections", 5)
	viper.SetDefault("database.connection_max_lifetime", 30*time.Minute)
	viper.SetDefault("database.log_queries", false)

	// Object store defaults (Cloudflare R2 shaped)
	viper.SetDefault("storage.driver", "s3")
	viper.SetDefault("storage.region", "auto")
	viper.SetDefault("storage.addressing_style", "path")
	viper.SetDefault("storage.signature_version", "s3v4")

	// Upload coordination defaults
	viper.SetDefault("uploads.part_url_ttl_seconds", 3600)
	viper.SetDefault("uploads.stuck_threshold_hours", 2)
	viper.SetDefault("uploads.sweep_guard_band", 5*time.Minute)
	viper.SetDefault("uploads.sweep_interval", 15*time.Minute)
	viper.SetDefault("uploads.sweep_enabled", true)
	viper.SetDefault("uploads.sweep_lease_ttl", 10*time.Minute)
	viper.SetDefault("uploads.bulk_max_bytes", 2<<30)

	// Duration derivation defaults
	viper.SetDefault("duration.probe", "frames")
	viper.SetDefault("duration.ffprobe_path", "ffprobe")
	viper.SetDefault("duration.timeout", 2*time.Minute)

	// Manifest defaults
	viper.SetDefault("manifest.cache_control", "public, max-age=300")
	viper.SetDefault("manifest.redirect_path", "/admin/assets/%d/")

	// Auth defaults
	viper.SetDefault("auth.staff_role", "staff")

	// Events defaults
	viper.SetDefault("events.exchange", "recitations")

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.uploads_rps", 20)
	viper.SetDefault("rate_limiting.uploads_burst", 40)

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})
	viper.SetDefault("security.cors_methods", []string{"GET", "POST", "PUT", "OPTIONS"})
	viper.SetDefault("security.cors_headers", []string{"Content-Type", "Authorization"})
	viper.SetDefault("security.enable_request_id", true)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")
	viper.SetDefault("logging.file_path", "./logs/recitation-api.log")
	viper.SetDefault("logging.max_size", 100)
	viper.SetDefault("logging.max_backups", 10)
	viper.SetDefault("logging.max_age", 30)
	viper.SetDefault("logging.compress", true)
	viper.SetDefault("logging.enable_caller", false)
}
