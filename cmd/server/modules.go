package main

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/gradebook/internal/api"
	"github.com/JaimeStill/gradebook/internal/config"
	"github.com/JaimeStill/gradebook/internal/infrastructure"
	"github.com/JaimeStill/gradebook/pkg/database"
	"github.com/JaimeStill/gradebook/pkg/handlers"
	"github.com/JaimeStill/gradebook/pkg/lifecycle"
	"github.com/JaimeStill/gradebook/pkg/module"
)

type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API: apiModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()
	logger := infra.Logger.With("handler", "health")

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", readyz(infra, logger))

	return router
}

func readyz(infra *infrastructure.Infrastructure, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if lifecycle.AllReady(infra.Lifecycle, infra.Database) {
			handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
			return
		}
		// startup finished but the database ping or migrations failed
		if infra.Lifecycle.Ready() {
			handlers.RespondError(w, logger, http.StatusServiceUnavailable, database.ErrNotReady)
			return
		}
		handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
	}
}
