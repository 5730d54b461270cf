package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNoText indicates an uploaded document decoded to blank text
type ErrNoText struct {
	Filename string
}

func (e *ErrNoText) Error() string {
	return fmt.Sprintf("no text could be extracted from %s", e.Filename)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		fieldErrs      validator.ValidationErrors
		noTextErr      *ErrNoText
		unsupportedErr *ingestion.UnsupportedFormatError
		decodeErr      *ingestion.DecodeError
		tooLargeErr    *http.MaxBytesError
	)

	switch {
	case errors.As(err, &unsupportedErr):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs),
		errors.As(err, &noTextErr), errors.As(err, &decodeErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
