package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/httprate"

	"github.com/JaimeStill/gradebook/pkg/handlers"
)

// ErrRateLimited is returned to clients that exceed the request limit.
var ErrRateLimited = errors.New("too many requests")

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	Enabled  bool   `toml:"enabled"`
	Requests int    `toml:"requests"`
	Window   string `toml:"window"`
}

// RateLimitEnv maps rate limit config fields to environment variable names for override injection.
type RateLimitEnv struct {
	Enabled  string
	Requests string
	Window   string
}

// WindowDuration parses Window into a time.Duration.
func (c *RateLimitConfig) WindowDuration() time.Duration {
	d, _ := time.ParseDuration(c.Window)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *RateLimitConfig) Finalize(env *RateLimitEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites fields from overlay. Enabled always applies; other fields only when non-zero.
func (c *RateLimitConfig) Merge(overlay *RateLimitConfig) {
	c.Enabled = overlay.Enabled

	if overlay.Requests != 0 {
		c.Requests = overlay.Requests
	}
	if overlay.Window != "" {
		c.Window = overlay.Window
	}
}

func (c *RateLimitConfig) loadDefaults() {
	if c.Requests <= 0 {
		c.Requests = 60
	}
	if c.Window == "" {
		c.Window = "1m"
	}
}

func (c *RateLimitConfig) loadEnv(env *RateLimitEnv) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			if enabled, err := strconv.ParseBool(v); err == nil {
				c.Enabled = enabled
			}
		}
	}
	if env.Requests != "" {
		if v := os.Getenv(env.Requests); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.Requests = n
			}
		}
	}
	if env.Window != "" {
		if v := os.Getenv(env.Window); v != "" {
			c.Window = v
		}
	}
}

func (c *RateLimitConfig) validate() error {
	d, err := time.ParseDuration(c.Window)
	if err != nil {
		return fmt.Errorf("invalid window: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("window must be positive")
	}
	return nil
}

// RateLimit returns middleware that limits each client IP to Requests per Window.
// Passes through when disabled.
func RateLimit(cfg *RateLimitConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(
		cfg.Requests,
		cfg.WindowDuration(),
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			handlers.RespondError(w, logger, http.StatusTooManyRequests, ErrRateLimited)
		}),
	)
}
