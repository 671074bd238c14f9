// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"strings"
	"testing"
	"time"
)

// allEnvVars lists every variable Load reads.
var allEnvVars = []string{
	"APP_HOST", "APP_PORT", "APP_ENV",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"PUBLIC_DIR", "MAX_UPLOAD_MB",
	"RENDERER_COMMAND", "RENDERER_TIMEOUT", "GENERATE_RATE_LIMIT",
	"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
	"S3_ENDPOINT", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET", "S3_PUBLIC_URL",
}

// clearEnv sets every variable to "" which envOrDefault treats the same as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvVars {
		t.Setenv(key, "")
	}
}

// TestLoad_Defaults verifies that Load returns sensible development defaults
// when no environment variables are set.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}

	check("Host", cfg.Host, "0.0.0.0")
	check("Port", cfg.Port, "3000")
	check("Env", cfg.Env, "development")
	check("DBHost", cfg.DBHost, "localhost")
	check("DBPort", cfg.DBPort, "5432")
	check("DBUser", cfg.DBUser, "thumbsmith")
	check("DBPassword", cfg.DBPassword, "changeme")
	check("DBName", cfg.DBName, "thumbsmith")
	check("PublicDir", cfg.PublicDir, "public")
	check("RendererCommand", cfg.RendererCommand, "python3 python/generate_thumbnail.py")
	check("ValkeyHost", cfg.ValkeyHost, "")
	check("ValkeyPort", cfg.ValkeyPort, "6379")
	check("S3Endpoint", cfg.S3Endpoint, "")
	check("S3Bucket", cfg.S3Bucket, "thumbsmith-output")

	if cfg.MaxUploadMB != 25 {
		t.Errorf("MaxUploadMB = %d, want 25", cfg.MaxUploadMB)
	}
	if cfg.GenerateRateLimit != 0 {
		t.Errorf("GenerateRateLimit = %d, want 0", cfg.GenerateRateLimit)
	}
	if cfg.RendererTimeout != 0 {
		t.Errorf("RendererTimeout = %v, want 0", cfg.RendererTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("RENDERER_COMMAND", "  /usr/bin/env   python3 render.py ")
	t.Setenv("RENDERER_TIMEOUT", "90s")
	t.Setenv("GENERATE_RATE_LIMIT", "12")
	t.Setenv("MAX_UPLOAD_MB", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:9090" {
		t.Errorf("Addr() = %q, want 0.0.0.0:9090", cfg.Addr())
	}
	argv := cfg.RendererArgv()
	if strings.Join(argv, "|") != "/usr/bin/env|python3|render.py" {
		t.Errorf("RendererArgv() = %q", argv)
	}
	if cfg.RendererTimeout != 90*time.Second {
		t.Errorf("RendererTimeout = %v, want 90s", cfg.RendererTimeout)
	}
	if cfg.GenerateRateLimit != 12 {
		t.Errorf("GenerateRateLimit = %d, want 12", cfg.GenerateRateLimit)
	}
	if cfg.MaxUploadBytes() != 5<<20 {
		t.Errorf("MaxUploadBytes() = %d, want %d", cfg.MaxUploadBytes(), 5<<20)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"bad upload cap", "MAX_UPLOAD_MB", "lots", "MAX_UPLOAD_MB"},
		{"zero upload cap", "MAX_UPLOAD_MB", "0", "MAX_UPLOAD_MB"},
		{"negative rate limit", "GENERATE_RATE_LIMIT", "-1", "GENERATE_RATE_LIMIT"},
		{"bad timeout", "RENDERER_TIMEOUT", "soon", "RENDERER_TIMEOUT"},
		{"blank renderer", "RENDERER_COMMAND", "   ", "RENDERER_COMMAND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %s", err, tt.want)
			}
		})
	}
}

func TestLoad_ProductionRequiresPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for default password in production")
	}

	t.Setenv("POSTGRES_PASSWORD", "s3cret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IsDev() {
		t.Error("production config should not report IsDev")
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5433", DBName: "n"}
	want := "postgres://u:p@db:5433/n?sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
