package questions

import (
	"errors"
	"net/http"
)

// ErrInvalidQuestion indicates a missing student id or question text.
var ErrInvalidQuestion = errors.New("student id and question are required")

// MapHTTPStatus maps question errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidQuestion) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
