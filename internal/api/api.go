// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/gradebook/internal/config"
	"github.com/JaimeStill/gradebook/internal/infrastructure"
	"github.com/JaimeStill/gradebook/pkg/middleware"
	"github.com/JaimeStill/gradebook/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	staff, err := middleware.Secret(&cfg.API.Staff, runtime.Logger)
	if err != nil {
		return nil, fmt.Errorf("staff gate init failed: %w", err)
	}

	if cfg.API.Staff.UsesDefault() {
		runtime.Logger.Warn(
			"staff routes use the default password",
			"header", cfg.API.Staff.Header,
		)
	}

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, staff); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.RateLimit(&cfg.API.RateLimit, runtime.Logger))

	return m, nil
}
