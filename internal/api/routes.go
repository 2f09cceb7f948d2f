package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/gradebook/internal/config"
	"github.com/JaimeStill/gradebook/internal/marks"
	"github.com/JaimeStill/gradebook/internal/questions"
	"github.com/JaimeStill/gradebook/internal/uploads"
	"github.com/JaimeStill/gradebook/pkg/openapi"
	"github.com/JaimeStill/gradebook/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	staff func(http.Handler) http.Handler,
) error {
	uploadRoutes := domain.Uploads.Handler(cfg.API.MaxUploadSizeBytes()).Routes()
	uploadRoutes.Middleware = append(uploadRoutes.Middleware, staff)

	groups := []routes.Group{
		domain.Marks.Handler().Routes(),
		domain.Questions.Handler().Routes(),
		uploadRoutes,
	}

	specBytes, err := buildSpec(cfg, groups)
	if err != nil {
		return fmt.Errorf("build openapi spec: %w", err)
	}

	routes.Register(mux, groups...)
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return nil
}

func buildSpec(cfg *config.Config, groups []routes.Group) ([]byte, error) {
	spec := openapi.FromConfig(&cfg.API.OpenAPI, cfg.Version)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(marks.Spec.Schemas())
	spec.Components.AddSchemas(questions.Spec.Schemas())
	spec.Components.AddSchemas(uploads.Spec.Schemas())

	if err := routes.Describe(spec, groups...); err != nil {
		return nil, err
	}

	return openapi.MarshalJSON(spec)
}
