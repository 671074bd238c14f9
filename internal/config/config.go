// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// File layout. Uploads and generated images live under PublicDir.
	PublicDir   string
	MaxUploadMB int64

	// External renderer
	RendererCommand string
	RendererTimeout time.Duration

	// GenerateRateLimit caps /generate requests per minute per client IP.
	// Zero disables the limiter.
	GenerateRateLimit int

	// Valkey (Redis-compatible) generation history. Disabled when host is empty.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// S3-compatible mirror for generated images. Disabled when endpoint is empty.
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode or a numeric value cannot be parsed.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "3000"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "thumbsmith"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "thumbsmith"),

		PublicDir:       envOrDefault("PUBLIC_DIR", "public"),
		RendererCommand: envOrDefault("RENDERER_COMMAND", "python3 python/generate_thumbnail.py"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "thumbsmith-output"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}

	var err error
	if cfg.MaxUploadMB, err = strconv.ParseInt(envOrDefault("MAX_UPLOAD_MB", "25"), 10, 64); err != nil || cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be a positive integer")
	}
	if cfg.GenerateRateLimit, err = strconv.Atoi(envOrDefault("GENERATE_RATE_LIMIT", "0")); err != nil || cfg.GenerateRateLimit < 0 {
		return nil, fmt.Errorf("GENERATE_RATE_LIMIT must be a non-negative integer")
	}
	if v := os.Getenv("RENDERER_TIMEOUT"); v != "" {
		if cfg.RendererTimeout, err = time.ParseDuration(v); err != nil || cfg.RendererTimeout < 0 {
			return nil, fmt.Errorf("RENDERER_TIMEOUT must be a duration like 90s")
		}
	}

	if len(cfg.RendererArgv()) == 0 {
		return nil, fmt.Errorf("RENDERER_COMMAND must not be blank")
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// RendererArgv splits RendererCommand into the program and its arguments.
func (c *Config) RendererArgv() []string {
	return strings.Fields(c.RendererCommand)
}

// MaxUploadBytes returns the multipart upload cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
