package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string          `mapstructure:"environment"`
	Server       ServerConfig    `mapstructure:"server"`
	Database     DatabaseConfig  `mapstructure:"database"`
	Storage      StorageConfig   `mapstructure:"storage"`
	Uploads      UploadsConfig   `mapstructure:"uploads"`
	Duration     DurationConfig  `mapstructure:"duration"`
	Manifest     ManifestConfig  `mapstructure:"manifest"`
	Auth         AuthConfig      `mapstructure:"auth"`
	Redis        RedisConfig     `mapstructure:"redis"`
	Events       EventsConfig    `mapstructure:"events"`
	RateLimiting RateLimitConfig `mapstructure:"rate_limiting"`
	Security     SecurityConfig  `mapstructure:"security"`
	Logging      LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Driver                string        `mapstructure:"driver"` // sqlite or postgres
	Path                  string        `mapstructure:"path"`
	DSN                   string        `mapstructure:"dsn"`
	MaxConnections        int           `mapstructure:"max_connections"`
	MaxIdleConnections    int           `mapstructure:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `mapstructure:"connection_max_lifetime"`
	LogQueries            bool          `mapstructure:"log_queries"`
}

// StorageConfig contains the S3-compatible object store settings
type StorageConfig struct {
	Driver           string `mapstructure:"driver"` // s3, minio or memory
	Bucket           string `mapstructure:"bucket"`
	Endpoint         string `mapstructure:"endpoint"`
	AccessKeyID      string `mapstructure:"access_key_id"`
	SecretAccessKey  string `mapstructure:"secret_access_key"`
	PublicBaseURL    string `mapstructure:"public_base_url"`
	Region           string `mapstructure:"region"`
	AddressingStyle  string `mapstructure:"addressing_style"`
	SignatureVersion string `mapstructure:"signature_version"`
}

// UploadsConfig contains multipart upload coordination settings
type UploadsConfig struct {
	PartURLTTLSeconds   int           `mapstructure:"part_url_ttl_seconds"`
	StuckThresholdHours int           `mapstructure:"stuck_threshold_hours"`
	SweepGuardBand      time.Duration `mapstructure:"sweep_guard_band"`
	SweepInterval       time.Duration `mapstructure:"sweep_interval"`
	SweepEnabled        bool          `mapstructure:"sweep_enabled"`
	SweepLeaseTTL       time.Duration `mapstructure:"sweep_lease_ttl"`
	BulkMaxBytes        int64         `mapstructure:"bulk_max_bytes"`
}

// PartURLTTL returns the presigned part URL lifetime
func (u UploadsConfig) PartURLTTL() time.Duration {
	return time.Duration(u.PartURLTTLSeconds) * time.Second
}

// StuckThreshold returns the age after which an in-progress upload is stuck
func (u UploadsConfig) StuckThreshold() time.Duration {
	return time.Duration(u.StuckThresholdHours) * time.Hour
}

// DurationConfig selects how MP3 durations are derived when no hint is given
type DurationConfig struct {
	Probe       string        `mapstructure:"probe"` // frames or ffprobe
	FFprobePath string        `mapstructure:"ffprobe_path"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ManifestConfig contains manifest publishing settings
type ManifestConfig struct {
	CacheControl string `mapstructure:"cache_control"`
	RedirectPath string `mapstructure:"redirect_path"`
}

// AuthConfig contains staff principal verification settings
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	StaffRole string `mapstructure:"staff_role"`
	DevToken  string `mapstructure:"dev_token"`
}

// RedisConfig is optional; an empty address disables the sweep lease
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// EventsConfig is optional; an empty URL disables event publishing
type EventsConfig struct {
	AMQPURL  string `mapstructure:"amqp_url"`
	Exchange string `mapstructure:"exchange"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	UploadsRPS   int  `mapstructure:"uploads_rps"`
	UploadsBurst int  `mapstructure:"uploads_burst"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS      bool     `mapstructure:"enable_cors"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
	CORSMethods     []string `mapstructure:"cors_methods"`
	CORSHeaders     []string `mapstructure:"cors_headers"`
	EnableRequestID bool     `mapstructure:"enable_request_id"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level        string `mapstructure:"level"`
	Format       string `mapstructure:"format"`
	Output       string `mapstructure:"output"`
	FilePath     string `mapstructure:"file_path"`
	MaxSize      int    `mapstructure:"max_size"`
	MaxBackups   int    `mapstructure:"max_backups"`
	MaxAge       int    `mapstructure:"max_age"`
	Compress     bool   `mapstructure:"compress"`
	EnableCaller bool   `mapstructure:"enable_caller"`
}
