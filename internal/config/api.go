package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/gradebook/pkg/formatting"
	"github.com/JaimeStill/gradebook/pkg/middleware"
	"github.com/JaimeStill/gradebook/pkg/openapi"
	"github.com/JaimeStill/gradebook/pkg/pagination"
)

const (
	EnvAPIBasePath      = "GRADEBOOK_API_BASE_PATH"
	EnvAPIMaxUploadSize = "GRADEBOOK_API_MAX_UPLOAD_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "GRADEBOOK_CORS_ENABLED",
	Origins:          "GRADEBOOK_CORS_ORIGINS",
	AllowedMethods:   "GRADEBOOK_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "GRADEBOOK_CORS_ALLOWED_HEADERS",
	ExposedHeaders:   "GRADEBOOK_CORS_EXPOSED_HEADERS",
	AllowCredentials: "GRADEBOOK_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "GRADEBOOK_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "GRADEBOOK_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "GRADEBOOK_PAGINATION_MAX_PAGE_SIZE",
}

var rateLimitEnv = &middleware.RateLimitEnv{
	Enabled:  "GRADEBOOK_RATE_LIMIT_ENABLED",
	Requests: "GRADEBOOK_RATE_LIMIT_REQUESTS",
	Window:   "GRADEBOOK_RATE_LIMIT_WINDOW",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "GRADEBOOK_OPENAPI_TITLE",
	Description: "GRADEBOOK_OPENAPI_DESCRIPTION",
}

var staffEnv = &middleware.SecretEnv{
	Header:       "GRADEBOOK_STAFF_HEADER",
	Password:     "GRADEBOOK_STAFF_PASSWORD",
	PasswordHash: "GRADEBOOK_STAFF_PASSWORD_HASH",
}

// APIConfig holds API routing, upload limits, CORS, pagination, rate limiting,
// the staff secret, and OpenAPI metadata.
type APIConfig struct {
	BasePath      string                     `toml:"base_path"`
	MaxUploadSize string                     `toml:"max_upload_size"`
	CORS          middleware.CORSConfig      `toml:"cors"`
	Pagination    pagination.Config          `toml:"pagination"`
	RateLimit     middleware.RateLimitConfig `toml:"rate_limit"`
	Staff         middleware.SecretConfig    `toml:"staff"`
	OpenAPI       openapi.Config             `toml:"openapi"`
}

// MaxUploadSizeBytes returns MaxUploadSize in bytes, falling back to 10MB
// when the value cannot be parsed.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.RateLimit.Finalize(rateLimitEnv); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}
	if err := c.Staff.Finalize(staffEnv); err != nil {
		return fmt.Errorf("staff: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.RateLimit.Merge(&overlay.RateLimit)
	c.Staff.Merge(&overlay.Staff)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
}

func (c *APIConfig) validate() error {
	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	return nil
}
