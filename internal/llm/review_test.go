package llm

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntoScher/resume-analyzer/internal/types"
)

type stubClient struct {
	response string
	err      error
	prompt   string
}

func (c *stubClient) GenerateContent(_ context.Context, prompt string) (string, error) {
	c.prompt = prompt
	return c.response, c.err
}

func (c *stubClient) Close() error { return nil }

func sampleInputs() (*types.Report, *types.ResumeProfile, *types.RequirementProfile) {
	report := &types.Report{
		OverallScorePercent: 72,
		Breakdown: []types.BreakdownRow{
			{DimensionName: "Required skills", ScorePercent: 50, WeightPercent: 47, Details: []string{"Missing required skills: SQL"}},
			{DimensionName: "Experience", ScorePercent: 100, WeightPercent: 53},
		},
		MissingRequiredSkills: []string{"SQL"},
	}
	resume := &types.ResumeProfile{
		Skills:                []string{"Go", "Docker"},
		TotalExperienceMonths: 48,
	}
	reqs := &types.RequirementProfile{
		RequiredSkills:          []string{"Go", "SQL"},
		MinimumExperienceMonths: 24,
	}
	return report, resume, reqs
}

func TestReview_ReturnsGeneratedText(t *testing.T) {
	client := &stubClient{response: "Strong match on experience; close the SQL gap."}
	reviewer := NewReviewer(client)

	report, resume, reqs := sampleInputs()
	text, err := reviewer.Review(context.Background(), report, resume, reqs)
	require.NoError(t, err)
	assert.Equal(t, "Strong match on experience; close the SQL gap.", text)
}

func TestReview_PropagatesClientError(t *testing.T) {
	client := &stubClient{err: fmt.Errorf("quota exceeded")}
	reviewer := NewReviewer(client)

	report, resume, reqs := sampleInputs()
	_, err := reviewer.Review(context.Background(), report, resume, reqs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestBuildReviewPrompt_IncludesAllSections(t *testing.T) {
	report, resume, reqs := sampleInputs()
	prompt := buildReviewPrompt(report, resume, reqs)

	assert.Contains(t, prompt, "Overall match: 72%")
	assert.Contains(t, prompt, "Required skills: 50%")
	assert.Contains(t, prompt, "Missing required skills: SQL")
	assert.Contains(t, prompt, "Go, Docker")
	assert.Contains(t, prompt, "48 months")
	assert.Contains(t, prompt, "minimum experience: 24 months")
}

func TestBuildReviewPrompt_EmptyListsRenderAsNone(t *testing.T) {
	report := &types.Report{OverallScorePercent: 100, MissingRequiredSkills: []string{}}
	resume := &types.ResumeProfile{}
	reqs := &types.RequirementProfile{}

	prompt := buildReviewPrompt(report, resume, reqs)
	assert.Contains(t, prompt, "Missing required skills: none")
	assert.Contains(t, prompt, "required skills: none")
}

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "")
	assert.Error(t, err)
}
