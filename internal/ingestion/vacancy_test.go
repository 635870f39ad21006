package ingestion

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntoScher/resume-analyzer/internal/fetch"
)

const hhVacancyHTML = `<!DOCTYPE html>
<html><head><title>Vacancy</title></head>
<body>
<nav>site navigation</nav>
<h1 data-qa="vacancy-title">Senior Go Developer</h1>
<div data-qa="vacancy-company-name">Acme Corp</div>
<div data-qa="vacancy-description">
<p>We build distributed systems.</p>
<p>Requirements: Go, SQL, Docker. 4+ years of experience.</p>
<p>Kubernetes is a plus.</p>
</div>
<footer>footer junk</footer>
</body></html>`

const genericVacancyHTML = `<!DOCTYPE html>
<html><body>
<h1 class="job-title">Data Engineer</h1>
<span class="company-name">Initech</span>
<div class="job-description">
Python and Spark required. 3 years minimum.
</div>
</body></html>`

func TestExtractVacancy_HHMarkup(t *testing.T) {
	vacancy, err := ExtractVacancy(hhVacancyHTML)
	require.NoError(t, err)

	assert.Equal(t, "Senior Go Developer", vacancy.Title)
	assert.Equal(t, "Acme Corp", vacancy.Company)
	assert.Contains(t, vacancy.Description, "Requirements: Go, SQL, Docker")
	assert.NotContains(t, vacancy.Description, "site navigation")
	assert.NotContains(t, vacancy.Description, "footer junk")
}

func TestExtractVacancy_GenericMarkup(t *testing.T) {
	vacancy, err := ExtractVacancy(genericVacancyHTML)
	require.NoError(t, err)

	assert.Equal(t, "Data Engineer", vacancy.Title)
	assert.Equal(t, "Initech", vacancy.Company)
	assert.Contains(t, vacancy.Description, "Python and Spark required")
}

func TestExtractVacancy_NoContent(t *testing.T) {
	_, err := ExtractVacancy(`<html><body><script>only scripts</script></body></html>`)
	assert.Error(t, err)
}

func TestVacancy_TextComposition(t *testing.T) {
	v := &Vacancy{
		Title:       "Senior Go Developer",
		Company:     "Acme Corp",
		Description: "Requirements: Go, SQL.",
	}
	text := v.Text()
	assert.Contains(t, text, "Senior Go Developer")
	assert.Contains(t, text, "Acme Corp")
	assert.Contains(t, text, "Requirements: Go, SQL.")
}

func TestIngestJobURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, hhVacancyHTML)
	}))
	defer srv.Close()

	vacancy, err := IngestJobURL(context.Background(), srv.URL, &fetch.Options{MaxRetries: 0})
	require.NoError(t, err)
	assert.Equal(t, "Senior Go Developer", vacancy.Title)
	assert.Equal(t, srv.URL, vacancy.SourceURL)
}

func TestIngestJobURL_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := IngestJobURL(context.Background(), srv.URL, &fetch.Options{MaxRetries: 0})
	assert.Error(t, err)
}
