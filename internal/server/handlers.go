package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/AntoScher/resume-analyzer/internal/pipeline"
)

// maxResumeSize caps uploaded resume files at 10 MB.
const maxResumeSize = 10 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// analyzeForm carries the non-file fields of an analyze request. Exactly
// one of the job inputs must be present.
type analyzeForm struct {
	JobText string `validate:"required_without=JobURL,excluded_with=JobURL"`
	JobURL  string `validate:"omitempty,url"`
}

// analyzeResponse wraps the report with the stored analysis ID when
// persistence is enabled.
type analyzeResponse struct {
	AnalysisID string `json:"analysis_id,omitempty"`
	Report     any    `json:"report"`
}

// handleAnalyze accepts a multipart form with a "resume" file and either a
// "job_text" or "job_url" field, and returns the match report.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxResumeSize); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "expected multipart form data"})
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "resume", Message: "resume file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	resumeData, err := io.ReadAll(io.LimitReader(file, maxResumeSize+1))
	if err != nil {
		s.errorResponse(w, fmt.Errorf("failed to read resume upload: %w", err))
		return
	}
	if len(resumeData) > maxResumeSize {
		s.errorResponse(w, &ErrValidation{Field: "resume", Message: "resume file exceeds 10 MB"})
		return
	}

	form := analyzeForm{
		JobText: r.FormValue("job_text"),
		JobURL:  r.FormValue("job_url"),
	}
	if err := validate.Struct(form); err != nil {
		s.errorResponse(w, &ErrValidation{
			Field:   "job_text/job_url",
			Message: "exactly one of job_text or job_url is required, and job_url must be a valid URL",
		})
		return
	}

	result, err := s.runner.Run(r.Context(), pipeline.Request{
		ResumeData:     resumeData,
		ResumeFilename: header.Filename,
		JobText:        form.JobText,
		JobURL:         form.JobURL,
	})
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	resp := analyzeResponse{Report: result.Report}
	if result.AnalysisID != uuid.Nil {
		resp.AnalysisID = result.AnalysisID.String()
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleListAnalyses returns recent stored analyses, newest first. The
// optional "limit" query parameter caps the result count.
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, &ErrValidation{Field: "database", Message: "analysis history is not enabled"})
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 || parsed > 500 {
			s.errorResponse(w, &ErrValidation{Field: "limit", Message: "limit must be in 1..500"})
			return
		}
		limit = parsed
	}

	summaries, err := s.db.ListAnalyses(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"analyses": summaries})
}

// handleGetAnalysis returns a stored analysis with its full report.
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, &ErrValidation{Field: "database", Message: "analysis history is not enabled"})
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "id", Message: "invalid analysis ID"})
		return
	}

	analysis, err := s.db.GetAnalysis(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}
