package marks

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/gradebook/pkg/handlers"
	"github.com/JaimeStill/gradebook/pkg/routes"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler provides HTTP endpoints for student mark lookups.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "marks"),
	}
}

// Routes returns the route group definition for marks endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/marks",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/subjects", Handler: h.Subjects, OpenAPI: Spec.Subjects},
			{Method: "GET", Pattern: "/students/{id}", Handler: h.Student, OpenAPI: Spec.Student},
			{Method: "GET", Pattern: "/students/{id}/latest", Handler: h.Latest, OpenAPI: Spec.Latest},
			{Method: "GET", Pattern: "/students/{id}/export", Handler: h.Export, OpenAPI: Spec.Export},
		},
	}
}

// Subjects returns every known subject.
func (h *Handler) Subjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.sys.Subjects(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, subjects)
}

// Student returns all marks and the known name for the student id path parameter.
func (h *Handler) Student(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))

	entries, err := h.sys.All(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	name, err := h.sys.Name(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Student{
		StudentID:   id,
		StudentName: name,
		Marks:       entries,
	})
}

// Latest returns the most recent mark for the subject query parameter.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	subject := strings.TrimSpace(r.URL.Query().Get("subject"))
	if id == "" || subject == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidLookup)
		return
	}

	mark, err := h.sys.Latest(r.Context(), id, subject)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if mark == nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Entry{Subject: subject, Mark: *mark})
}

// Export returns the student's marks as an XLSX attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))

	data, err := h.sys.Export(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondAttachment(w, fmt.Sprintf("marks-%s.xlsx", sanitize(id)), xlsxContentType, data)
}

func sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, id)
}
