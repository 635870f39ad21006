package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntoScher/resume-analyzer/internal/lexicon"
	"github.com/AntoScher/resume-analyzer/internal/pipeline"
	"github.com/AntoScher/resume-analyzer/internal/server/ratelimit"
)

const testResume = `Skills
Go, Docker

Experience

Engineer at Acme
Jan 2020 - Dec 2023
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Config{
		Port:      0,
		RateLimit: &ratelimit.Config{Enabled: false},
	}, pipeline.NewRunner(lexicon.Default()))
}

func multipartBody(t *testing.T, filename string, resume []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if filename != "" {
		part, err := writer.CreateFormFile("resume", filename)
		require.NoError(t, err)
		_, err = part.Write(resume)
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleAnalyze_Success(t *testing.T) {
	srv := newTestServer(t)

	body, contentType := multipartBody(t, "resume.txt", []byte(testResume), map[string]string{
		"job_text": "Requirements: Go, Docker. 2+ years.",
	})
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		AnalysisID string `json:"analysis_id"`
		Report     struct {
			OverallScorePercent   int      `json:"overall_score_percent"`
			MissingRequiredSkills []string `json:"missing_required_skills"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 100, resp.Report.OverallScorePercent)
	assert.Empty(t, resp.Report.MissingRequiredSkills)
	assert.Empty(t, resp.AnalysisID) // no database configured
}

func TestHandleAnalyze_MissingResume(t *testing.T) {
	srv := newTestServer(t)

	body, contentType := multipartBody(t, "", nil, map[string]string{"job_text": "Go required"})
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAnalyze_JobInputValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"neither job input", map[string]string{}},
		{"both job inputs", map[string]string{
			"job_text": "Go required",
			"job_url":  "https://example.com/job",
		}},
		{"malformed url", map[string]string{"job_url": "not a url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartBody(t, "resume.txt", []byte(testResume), tt.fields)
			req := httptest.NewRequest(http.MethodPost, "/analyze", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleAnalyze_UnsupportedFormat(t *testing.T) {
	srv := newTestServer(t)

	body, contentType := multipartBody(t, "resume.rtf", []byte("data"), map[string]string{
		"job_text": "Go required",
	})
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestHandleAnalyze_EmptyResumeContent(t *testing.T) {
	srv := newTestServer(t)

	body, contentType := multipartBody(t, "resume.txt", []byte("   \n  "), map[string]string{
		"job_text": "Go required",
	})
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleListAnalyses_WithoutDatabase(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/analyses", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetAnalysis_InvalidID(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/analyses/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	// Database check precedes ID parsing when history is disabled.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimiting(t *testing.T) {
	srv := New(Config{
		Port: 0,
		RateLimit: &ratelimit.Config{
			Enabled: true,
			Limit:   60,
			Window:  time.Minute,
			Burst:   2,
		},
	}, pipeline.NewRunner(lexicon.Default()))

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/analyses", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		return rec
	}

	first := do()
	assert.NotEqual(t, http.StatusTooManyRequests, first.Code)
	assert.NotEmpty(t, first.Header().Get("X-RateLimit-Limit"))

	do()
	third := do()
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.NotEmpty(t, third.Header().Get("Retry-After"))
}

func TestRateLimiting_HealthExempt(t *testing.T) {
	srv := New(Config{
		Port: 0,
		RateLimit: &ratelimit.Config{
			Enabled: true,
			Limit:   60,
			Window:  time.Minute,
			Burst:   1,
		},
	}, pipeline.NewRunner(lexicon.Default()))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestCORSPreflights(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandleAnalyze_NotMultipart(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/analyze", io.NopCloser(bytes.NewBufferString(`{"job_text":"Go"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
