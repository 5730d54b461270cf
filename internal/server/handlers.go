package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// multipartMemory is the part of an upload kept in memory before spilling to disk
const multipartMemory = 1 << 20

// handleAnalyze analyzes resume text sent as JSON
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		s.errorResponse(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	s.analyze(w, r, req)
}

// handleAnalyzeResume decodes an uploaded document and analyzes its text
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	logger := logging.Ctx(r.Context())

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		s.errorResponse(w, r, status, "Invalid multipart form: "+err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, r, http.StatusBadRequest, (&ErrValidation{Field: "file", Message: "is required"}).Error())
		return
	}
	defer func() { _ = file.Close() }()

	if _, err := ingestion.DetectFormat(header.Filename); err != nil {
		s.errorResponse(w, r, HTTPStatus(err), err.Error())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error().Err(err).Str("filename", header.Filename).Msg("failed to read upload")
		s.errorResponse(w, r, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}
	if len(data) == 0 {
		s.errorResponse(w, r, http.StatusBadRequest, (&ErrValidation{Field: "file", Message: "is empty"}).Error())
		return
	}

	raw, err := ingestion.ExtractDocument(header.Filename, data)
	if err == nil && strings.TrimSpace(raw) == "" {
		err = &ErrNoText{Filename: header.Filename}
	}
	if err != nil {
		logger.Warn().Err(err).Str("filename", header.Filename).Int("bytes", len(data)).Msg("document decoding failed")
		s.errorResponse(w, r, HTTPStatus(err), err.Error())
		return
	}

	s.analyze(w, r, types.AnalyzeRequest{
		Text:             raw,
		TargetDepartment: r.FormValue("target_department"),
	})
}

// analyze runs the analyzer and writes the profile after checking it
// against the output schema
func (s *Server) analyze(w http.ResponseWriter, r *http.Request, req types.AnalyzeRequest) {
	logger := logging.Ctx(r.Context())

	profile, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		s.errorResponse(w, r, HTTPStatus(err), err.Error())
		return
	}

	if err := schemas.ValidateProfile(profile); err != nil {
		logger.Error().Err(err).Msg("profile failed output validation")
		s.errorResponse(w, r, http.StatusInternalServerError, "profile failed output validation")
		return
	}

	logger.Debug().
		Float64("score", profile.Score).
		Str("quality", profile.ExtractionQuality.Status).
		Strs("failed_stages", profile.ExtractionQuality.FailedStages).
		Msg("resume analyzed")

	s.jsonResponse(w, r, http.StatusOK, profile)
}
