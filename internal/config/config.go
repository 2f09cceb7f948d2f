// Package config loads the gradebook service configuration from TOML files,
// a .env file, and GRADEBOOK_ environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/gradebook/pkg/database"
	"github.com/JaimeStill/gradebook/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"
	DotEnvFile           = ".env"

	EnvGradebookEnv             = "GRADEBOOK_ENV"
	EnvGradebookLogLevel        = "GRADEBOOK_LOG_LEVEL"
	EnvGradebookShutdownTimeout = "GRADEBOOK_SHUTDOWN_TIMEOUT"
	EnvGradebookVersion         = "GRADEBOOK_VERSION"
)

var databaseEnv = &database.Env{
	Driver:          "GRADEBOOK_DB_DRIVER",
	Path:            "GRADEBOOK_DB_PATH",
	AutoMigrate:     "GRADEBOOK_DB_AUTO_MIGRATE",
	Host:            "GRADEBOOK_DB_HOST",
	Port:            "GRADEBOOK_DB_PORT",
	Name:            "GRADEBOOK_DB_NAME",
	User:            "GRADEBOOK_DB_USER",
	Password:        "GRADEBOOK_DB_PASSWORD",
	SSLMode:         "GRADEBOOK_DB_SSL_MODE",
	MaxOpenConns:    "GRADEBOOK_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "GRADEBOOK_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "GRADEBOOK_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "GRADEBOOK_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Provider:         "GRADEBOOK_STORAGE_PROVIDER",
	Root:             "GRADEBOOK_STORAGE_ROOT",
	ContainerName:    "GRADEBOOK_STORAGE_CONTAINER_NAME",
	ConnectionString: "GRADEBOOK_STORAGE_CONNECTION_STRING",
}

// Config is the root configuration for the gradebook service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	LogLevel        string          `toml:"log_level"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the GRADEBOOK_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvGradebookEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Level returns LogLevel as a slog.Level.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Load reads a .env file (if present), the base config (if present), applies
// any environment overlay, and finalizes all values. Variables already set in
// the process environment take precedence over .env entries.
func Load() (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvGradebookLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvGradebookShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvGradebookVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func overlayPath() string {
	if env := os.Getenv(EnvGradebookEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
