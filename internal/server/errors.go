package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/AntoScher/resume-analyzer/internal/db"
	"github.com/AntoScher/resume-analyzer/internal/extract"
	"github.com/AntoScher/resume-analyzer/internal/fetch"
)

// ErrValidation indicates a request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var unsupported *extract.UnsupportedFormatError
	var extraction *extract.ExtractionError
	var fetchErr *fetch.Error
	var validation *ErrValidation

	switch {
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extraction):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
