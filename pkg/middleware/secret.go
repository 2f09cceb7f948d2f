package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/JaimeStill/gradebook/pkg/handlers"
)

const (
	// DefaultSecretHeader carries the staff password on staff requests.
	DefaultSecretHeader = "X-Staff-Password"
	// DefaultSecretPassword applies when neither a password nor a hash is configured.
	DefaultSecretPassword = "staff123"
)

// ErrUnauthorized is returned to requests without a valid staff secret.
var ErrUnauthorized = errors.New("staff credentials required")

// SecretConfig holds the shared staff secret.
// PasswordHash is a bcrypt hash and takes precedence over Password.
type SecretConfig struct {
	Header       string `toml:"header"`
	Password     string `toml:"password"`
	PasswordHash string `toml:"password_hash"`
}

// SecretEnv maps secret config fields to environment variable names for override injection.
type SecretEnv struct {
	Header       string
	Password     string
	PasswordHash string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *SecretConfig) Finalize(env *SecretEnv) error {
	if env != nil {
		c.loadEnv(env)
	}
	c.loadDefaults()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *SecretConfig) Merge(overlay *SecretConfig) {
	if overlay.Header != "" {
		c.Header = overlay.Header
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.PasswordHash != "" {
		c.PasswordHash = overlay.PasswordHash
	}
}

// UsesDefault reports whether the built-in default password is in effect.
func (c *SecretConfig) UsesDefault() bool {
	return c.PasswordHash == "" && c.Password == DefaultSecretPassword
}

func (c *SecretConfig) loadDefaults() {
	if c.Header == "" {
		c.Header = DefaultSecretHeader
	}
	if c.Password == "" && c.PasswordHash == "" {
		c.Password = DefaultSecretPassword
	}
}

func (c *SecretConfig) loadEnv(env *SecretEnv) {
	if env.Header != "" {
		if v := os.Getenv(env.Header); v != "" {
			c.Header = v
		}
	}
	if env.Password != "" {
		if v := os.Getenv(env.Password); v != "" {
			c.Password = v
		}
	}
	if env.PasswordHash != "" {
		if v := os.Getenv(env.PasswordHash); v != "" {
			c.PasswordHash = v
		}
	}
}

func (c *SecretConfig) validate() error {
	if c.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(c.PasswordHash)); err != nil {
			return fmt.Errorf("invalid password_hash: %w", err)
		}
		return nil
	}
	if len(c.Password) > 72 {
		return fmt.Errorf("password exceeds 72 bytes")
	}
	return nil
}

// Hash returns the configured bcrypt hash, computing one from Password when no hash is set.
func (c *SecretConfig) Hash() ([]byte, error) {
	if c.PasswordHash != "" {
		return []byte(c.PasswordHash), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash staff password: %w", err)
	}
	return hash, nil
}

// Secret returns middleware that admits only requests whose secret header
// matches the configured staff password. Other requests receive 401.
func Secret(cfg *SecretConfig, logger *slog.Logger) (func(http.Handler) http.Handler, error) {
	hash, err := cfg.Hash()
	if err != nil {
		return nil, err
	}

	header := cfg.Header
	if header == "" {
		header = DefaultSecretHeader
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			given := r.Header.Get(header)
			if given == "" || bcrypt.CompareHashAndPassword(hash, []byte(given)) != nil {
				logger.Warn("staff request rejected", "method", r.Method, "uri", r.URL.RequestURI(), "addr", r.RemoteAddr)
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}
