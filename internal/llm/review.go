package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/AntoScher/resume-analyzer/internal/types"
)

const reviewPromptTemplate = `You are an experienced technical recruiter. A candidate's resume was scored against a job description by a deterministic matching engine. Write a short review (3-5 sentences, plain prose, no headings or bullet lists) for the candidate covering:
- the strongest points of the match,
- the most important gaps,
- one concrete suggestion to improve the resume for this job.

Do not repeat the numeric scores verbatim; interpret them.

Overall match: %d%%

Dimension breakdown:
%s
Missing required skills: %s

Candidate skills: %s
Total relevant experience: %d months

Job requirements:
- required skills: %s
- preferred skills: %s
- minimum experience: %d months`

// Reviewer produces a narrative assessment of a finished match report.
type Reviewer struct {
	client Client
}

// NewReviewer wraps a client for report reviews.
func NewReviewer(client Client) *Reviewer {
	return &Reviewer{client: client}
}

// Review generates a short narrative review of the report. Errors are
// returned to the caller, which treats the review as best-effort.
func (r *Reviewer) Review(ctx context.Context, report *types.Report, resume *types.ResumeProfile, reqs *types.RequirementProfile) (string, error) {
	prompt := buildReviewPrompt(report, resume, reqs)
	text, err := r.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("review generation failed: %w", err)
	}
	return text, nil
}

func buildReviewPrompt(report *types.Report, resume *types.ResumeProfile, reqs *types.RequirementProfile) string {
	var breakdown strings.Builder
	for _, row := range report.Breakdown {
		fmt.Fprintf(&breakdown, "- %s: %d%% (%s)\n", row.DimensionName, row.ScorePercent, strings.Join(row.Details, "; "))
	}

	return fmt.Sprintf(reviewPromptTemplate,
		report.OverallScorePercent,
		breakdown.String(),
		joinOrNone(report.MissingRequiredSkills),
		joinOrNone(resume.Skills),
		resume.TotalExperienceMonths,
		joinOrNone(reqs.RequiredSkills),
		joinOrNone(reqs.PreferredSkills),
		reqs.MinimumExperienceMonths,
	)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
