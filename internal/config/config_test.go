package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}

	if cfg.JWT.AccessTTL != 168*time.Hour {
		t.Errorf("AccessTTL = %v, expected 168h", cfg.JWT.AccessTTL)
	}
	if cfg.JWT.RefreshTTL != 720*time.Hour {
		t.Errorf("RefreshTTL = %v, expected 720h", cfg.JWT.RefreshTTL)
	}
	if cfg.Cleanup.RetentionTTL != 720*time.Hour {
		t.Errorf("RetentionTTL = %v, expected 720h", cfg.Cleanup.RetentionTTL)
	}
}

func TestValidate_ShortSecret(t *testing.T) {
	tests := []string{
		"",
		"short",
		strings.Repeat("x", minSecretLength-1),
	}
	for _, secret := range tests {
		cfg := DefaultConfig()
		cfg.JWT.Secret = secret
		if err := cfg.Validate(); err == nil {
			t.Errorf("Validate() with %d-char secret should fail", len(secret))
		}
	}
}

func TestValidate_BadDurations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad access ttl", func(c *Config) { c.JWT.AccessTokenTTL = "7 days" }},
		{"bad refresh ttl", func(c *Config) { c.JWT.RefreshTokenTTL = "whenever" }},
		{"negative access ttl", func(c *Config) { c.JWT.AccessTokenTTL = "-1h" }},
		{"zero refresh ttl", func(c *Config) { c.JWT.RefreshTokenTTL = "0s" }},
		{"bad retention", func(c *Config) { c.Cleanup.Retention = "a month" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestValidate_UnsupportedDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.Driver = "oracle"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject unsupported driver")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, expected default 8080", cfg.Server.Port)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: "9090"
  mode: release
jwt:
  secret: "file-provided-secret-at-least-32-chars!"
  access_token_ttl: 1h
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, expected 9090", cfg.Server.Port)
	}
	if cfg.Server.Mode != "release" {
		t.Errorf("Mode = %q, expected release", cfg.Server.Mode)
	}
	if cfg.JWT.AccessTTL != time.Hour {
		t.Errorf("AccessTTL = %v, expected 1h", cfg.JWT.AccessTTL)
	}
	// Unset keys keep their defaults.
	if cfg.JWT.RefreshTTL != 720*time.Hour {
		t.Errorf("RefreshTTL = %v, expected default 720h", cfg.JWT.RefreshTTL)
	}
}

func TestLoad_InvalidFileRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
jwt:
  secret: "too-short"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should reject config with short secret")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("JWT_SECRET", "env-provided-secret-at-least-32-chars!!")
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "30m")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("Port = %q, expected 7070", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "env-provided-secret-at-least-32-chars!!" {
		t.Errorf("Secret not taken from environment")
	}
	if cfg.JWT.AccessTTL != 30*time.Minute {
		t.Errorf("AccessTTL = %v, expected 30m", cfg.JWT.AccessTTL)
	}
}
