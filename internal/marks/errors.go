package marks

import (
	"errors"
	"net/http"
)

// Domain errors for marks operations.
var (
	ErrNotFound      = errors.New("mark not found")
	ErrInvalidRecord = errors.New("invalid mark record")
	ErrInvalidLookup = errors.New("student id and subject are required")
)

// MapHTTPStatus maps marks domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidRecord) || errors.Is(err, ErrInvalidLookup) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
