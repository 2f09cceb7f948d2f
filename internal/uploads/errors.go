package uploads

import (
	"errors"
	"net/http"
)

// Domain errors for upload operations.
var (
	ErrNotFound      = errors.New("upload not found")
	ErrDuplicate     = errors.New("upload already exists")
	ErrInvalidFile   = errors.New("invalid file")
	ErrFileTooLarge  = errors.New("file exceeds maximum upload size")
	ErrInvalidStatus = errors.New("upload is not pending")
	ErrNothingToSave = errors.New("upload has no valid rows to save")
)

// MapHTTPStatus maps upload domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrInvalidStatus):
		return http.StatusConflict
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidFile):
		return http.StatusBadRequest
	case errors.Is(err, ErrNothingToSave):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
