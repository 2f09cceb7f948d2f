// Package pagination provides types and utilities for paginated data queries.
package pagination

import (
	"errors"
	"os"
	"strconv"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Config bounds the page sizes a listing endpoint will serve.
type Config struct {
	DefaultPageSize int `toml:"default_page_size"`
	MaxPageSize     int `toml:"max_page_size"`
}

// ConfigEnv names the environment variables that override Config.
// Empty names are skipped.
type ConfigEnv struct {
	DefaultPageSize string
	MaxPageSize     string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.DefaultPageSize != 0 {
		c.DefaultPageSize = overlay.DefaultPageSize
	}
	if overlay.MaxPageSize != 0 {
		c.MaxPageSize = overlay.MaxPageSize
	}
}

// Clamp resolves a requested page size against the configured bounds.
func (c *Config) Clamp(size int) int {
	switch {
	case size < 1:
		return c.DefaultPageSize
	case size > c.MaxPageSize:
		return c.MaxPageSize
	default:
		return size
	}
}

func (c *Config) loadDefaults() {
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = defaultPageSize
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = maxPageSize
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	c.Merge(&Config{
		DefaultPageSize: envInt(env.DefaultPageSize),
		MaxPageSize:     envInt(env.MaxPageSize),
	})
}

func (c *Config) validate() error {
	var errs []error
	if c.DefaultPageSize < 1 {
		errs = append(errs, errors.New("default_page_size must be positive"))
	}
	if c.MaxPageSize < 1 {
		errs = append(errs, errors.New("max_page_size must be positive"))
	}
	if c.DefaultPageSize > c.MaxPageSize {
		errs = append(errs, errors.New("default_page_size cannot exceed max_page_size"))
	}
	return errors.Join(errs...)
}

// envInt reads name as an integer. Unset names and malformed values read as zero.
func envInt(name string) int {
	if name == "" {
		return 0
	}
	n, err := strconv.Atoi(os.Getenv(name))
	if err != nil {
		return 0
	}
	return n
}
