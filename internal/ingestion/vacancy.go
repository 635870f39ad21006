// Package ingestion turns job posting inputs, raw text or a vacancy page
// URL, into clean text ready for requirement parsing.
package ingestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/AntoScher/resume-analyzer/internal/fetch"
)

// Vacancy holds the structured fields extracted from a vacancy page.
type Vacancy struct {
	Title       string
	Company     string
	Description string
	SourceURL   string
}

// Text composes the vacancy fields into a single job description text. The
// title and company lines keep skill and seniority signals from the page
// header available to the requirement parser.
func (v *Vacancy) Text() string {
	var parts []string
	if v.Title != "" {
		parts = append(parts, v.Title)
	}
	if v.Company != "" {
		parts = append(parts, v.Company)
	}
	if v.Description != "" {
		parts = append(parts, v.Description)
	}
	return strings.Join(parts, "\n\n")
}

// IngestJobText cleans raw job description text.
func IngestJobText(content string) (string, error) {
	cleaned := CleanText(content)
	if cleaned == "" {
		return "", fmt.Errorf("job description is empty")
	}
	return cleaned, nil
}

// IngestJobURL fetches a vacancy page and extracts its text content.
func IngestJobURL(ctx context.Context, urlStr string, opts *fetch.Options) (*Vacancy, error) {
	result, err := fetch.URL(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}
	vacancy, err := ExtractVacancy(result.HTML)
	if err != nil {
		return nil, fmt.Errorf("failed to extract vacancy from %s: %w", urlStr, err)
	}
	vacancy.SourceURL = urlStr
	return vacancy, nil
}

// ExtractVacancy pulls the title, company, and description out of a vacancy
// page. hh.ru data-qa attributes are tried first, then common job-board
// markup.
func ExtractVacancy(html string) (*Vacancy, error) {
	description, err := fetch.ExtractMainText(html, fetch.VacancySelectors())
	if err != nil {
		return nil, err
	}
	description = CleanText(description)
	if description == "" {
		return nil, fmt.Errorf("vacancy page has no extractable description")
	}

	return &Vacancy{
		Title: fetch.FirstText(html,
			"[data-qa='vacancy-title']",
			"h1[data-qa='title']",
			".job-title",
			"h1",
		),
		Company: fetch.FirstText(html,
			"[data-qa='vacancy-company-name']",
			".company-name",
			"[itemprop='hiringOrganization']",
		),
		Description: description,
	}, nil
}
