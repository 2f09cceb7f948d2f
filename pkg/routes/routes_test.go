package routes_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/gradebook/pkg/openapi"
	"github.com/JaimeStill/gradebook/pkg/routes"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/marks",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/subjects", Handler: ok},
			{Method: "GET", Pattern: "/students/{id}", Handler: ok},
		},
		Children: []routes.Group{
			{Prefix: "/admin", Routes: []routes.Route{{Method: "POST", Pattern: "", Handler: ok}}},
		},
	})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"subjects", "GET", "/marks/subjects", http.StatusOK},
		{"student", "GET", "/marks/students/101", http.StatusOK},
		{"child group", "POST", "/marks/admin", http.StatusOK},
		{"wrong method", "DELETE", "/marks/subjects", http.StatusMethodNotAllowed},
		{"unknown path", "GET", "/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRegisterMiddlewareOrder(t *testing.T) {
	var trail []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				trail = append(trail, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix:     "/uploads",
		Middleware: []func(http.Handler) http.Handler{tag("outer")},
		Routes:     []routes.Route{{Method: "GET", Pattern: "", Handler: ok}},
		Children: []routes.Group{{
			Prefix:     "/{id}",
			Middleware: []func(http.Handler) http.Handler{tag("inner")},
			Routes:     []routes.Route{{Method: "GET", Pattern: "/preview", Handler: ok}},
		}},
	})

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/uploads/abc/preview", nil))
	if got := strings.Join(trail, ","); got != "outer,inner" {
		t.Errorf("middleware order = %q, want outer,inner", got)
	}

	trail = nil
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/uploads", nil))
	if got := strings.Join(trail, ","); got != "outer" {
		t.Errorf("parent route middleware = %q, want outer", got)
	}
}

func TestDescribe(t *testing.T) {
	list := &openapi.Operation{Summary: "List uploads"}
	upload := &openapi.Operation{Summary: "Upload"}
	remove := &openapi.Operation{Summary: "Delete upload"}

	spec := openapi.NewSpec("Test", "1.0.0")
	err := routes.Describe(spec, routes.Group{
		Prefix: "/uploads",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: ok, OpenAPI: list},
			{Method: "POST", Pattern: "", Handler: ok, OpenAPI: upload},
			{Method: "GET", Pattern: "/internal", Handler: ok},
		},
		Children: []routes.Group{{
			Prefix: "/{id}",
			Routes: []routes.Route{{Method: "DELETE", Pattern: "", Handler: ok, OpenAPI: remove}},
		}},
	})
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}

	if len(spec.Paths) != 2 {
		t.Fatalf("paths = %d, want 2", len(spec.Paths))
	}

	root := spec.Paths["/uploads"]
	if root == nil || root.Get != list || root.Post != upload {
		t.Errorf("/uploads = %+v", root)
	}

	item := spec.Paths["/uploads/{id}"]
	if item == nil || item.Delete != remove {
		t.Errorf("/uploads/{id} = %+v", item)
	}
}

func TestDescribeUnsupportedMethod(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	err := routes.Describe(spec, routes.Group{
		Prefix: "/marks",
		Routes: []routes.Route{{Method: "PATCH", Pattern: "", Handler: ok, OpenAPI: &openapi.Operation{}}},
	})
	if err == nil {
		t.Error("Describe(PATCH) error = nil, want error")
	}
}
