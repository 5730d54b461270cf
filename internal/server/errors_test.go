package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/types"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "file", Message: "is required"}
	assert.Equal(t, "validation error: file - is required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrNoText(t *testing.T) {
	err := &ErrNoText{Filename: "scan.pdf"}
	assert.Equal(t, "no text could be extracted from scan.pdf", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	req := types.AnalyzeRequest{TargetDepartment: string(make([]byte, 201))}
	validationErr := req.Validate()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "unsupported format", err: &ingestion.UnsupportedFormatError{Filename: "a.exe", Extension: ".exe"}, want: http.StatusUnsupportedMediaType},
		{name: "wrapped unsupported format", err: fmt.Errorf("upload: %w", &ingestion.UnsupportedFormatError{Extension: ".rtf"}), want: http.StatusUnsupportedMediaType},
		{name: "decode error", err: &ingestion.DecodeError{Format: ingestion.FormatPDF, Message: "bad"}, want: http.StatusBadRequest},
		{name: "request validation", err: validationErr, want: http.StatusBadRequest},
		{name: "too large", err: &http.MaxBytesError{Limit: 10}, want: http.StatusRequestEntityTooLarge},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
