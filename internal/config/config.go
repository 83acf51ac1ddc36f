package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const minSecretLength = 32

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Cleanup   CleanupConfig   `yaml:"cleanup"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret          string `yaml:"secret"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`  // Go duration, e.g. "168h"
	RefreshTokenTTL string `yaml:"refresh_token_ttl"` // Go duration, e.g. "720h"

	// Parsed by Validate; zero until then.
	AccessTTL  time.Duration `yaml:"-"`
	RefreshTTL time.Duration `yaml:"-"`
}

type RateLimitConfig struct {
	RPS       float64 `yaml:"rps"`
	Burst     int     `yaml:"burst"`
	AuthRPS   float64 `yaml:"auth_rps"`
	AuthBurst int     `yaml:"auth_burst"`
}

type CleanupConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Schedule  string `yaml:"schedule"`  // cron expression
	Retention string `yaml:"retention"` // Go duration

	RetentionTTL time.Duration `yaml:"-"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads the YAML config at configPath (defaults apply if the file does
// not exist), applies environment overrides and validates the result.
// Validation failures, a too-short JWT secret included, are startup errors.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg := DefaultConfig()

	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.overrideFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "blogstack.db",
		},
		JWT: JWTConfig{
			Secret:          "blogstack-dev-secret-change-me-in-production",
			AccessTokenTTL:  "168h", // 7 days
			RefreshTokenTTL: "720h", // 30 days
		},
		RateLimit: RateLimitConfig{
			RPS:       10,
			Burst:     20,
			AuthRPS:   1,
			AuthBurst: 5,
		},
		Cleanup: CleanupConfig{
			Enabled:   true,
			Schedule:  "0 3 * * *",
			Retention: "720h",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks invariants and parses duration strings. It must be called
// before the config is handed to any constructor.
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < minSecretLength {
		return fmt.Errorf("jwt secret must be at least %d characters, got %d", minSecretLength, len(c.JWT.Secret))
	}

	var err error
	if c.JWT.AccessTTL, err = time.ParseDuration(c.JWT.AccessTokenTTL); err != nil {
		return fmt.Errorf("invalid jwt access_token_ttl %q: %w", c.JWT.AccessTokenTTL, err)
	}
	if c.JWT.RefreshTTL, err = time.ParseDuration(c.JWT.RefreshTokenTTL); err != nil {
		return fmt.Errorf("invalid jwt refresh_token_ttl %q: %w", c.JWT.RefreshTokenTTL, err)
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
	}

	if c.Cleanup.Retention == "" {
		c.Cleanup.Retention = "720h"
	}
	if c.Cleanup.RetentionTTL, err = time.ParseDuration(c.Cleanup.Retention); err != nil {
		return fmt.Errorf("invalid cleanup retention %q: %w", c.Cleanup.Retention, err)
	}

	switch c.Database.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	return nil
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if ttl := os.Getenv("JWT_ACCESS_TOKEN_TTL"); ttl != "" {
		c.JWT.AccessTokenTTL = ttl
	}
	if ttl := os.Getenv("JWT_REFRESH_TOKEN_TTL"); ttl != "" {
		c.JWT.RefreshTokenTTL = ttl
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}
