package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntoScher/resume-analyzer/internal/types"
)

func sampleMatch() *types.MatchReport {
	return &types.MatchReport{
		AggregateScore: 0.726,
		DimensionScores: []types.DimensionScore{
			{
				Dimension:   types.DimensionSkillsRequired,
				RawScore:    0.5,
				Weight:      0.47,
				Explanation: []string{"Matched required skills: Go", "Missing required skills: SQL"},
			},
			{
				Dimension:   types.DimensionExperience,
				RawScore:    1.0,
				Weight:      0.53,
				Explanation: []string{"Candidate has 48 months of relevant experience; the job requires 24"},
			},
		},
		MissingRequiredSkills: []string{"SQL"},
	}
}

func TestAssemble_RoundsPercentages(t *testing.T) {
	r := Assemble(sampleMatch(), nil)

	assert.Equal(t, 73, r.OverallScorePercent) // 0.726 rounds up
	require.Len(t, r.Breakdown, 2)

	first := r.Breakdown[0]
	assert.Equal(t, "Required skills", first.DimensionName)
	assert.Equal(t, 50, first.ScorePercent)
	assert.Equal(t, 47, first.WeightPercent)
	assert.Len(t, first.Details, 2)

	second := r.Breakdown[1]
	assert.Equal(t, "Experience", second.DimensionName)
	assert.Equal(t, 100, second.ScorePercent)
}

func TestAssemble_CarriesWarningsAndMissingSkills(t *testing.T) {
	warnings := []string{"experience entry \"Consultant\" has no parseable date range and is excluded from total experience"}
	r := Assemble(sampleMatch(), warnings)

	assert.Equal(t, []string{"SQL"}, r.MissingRequiredSkills)
	assert.Equal(t, warnings, r.ParseQualityWarnings)
}

func TestAssemble_EmptyCollectionsAreNonNil(t *testing.T) {
	m := &types.MatchReport{
		AggregateScore: 1.0,
		DimensionScores: []types.DimensionScore{
			{Dimension: types.DimensionSkillsRequired, RawScore: 1.0, Weight: 1.0},
		},
	}
	r := Assemble(m, nil)

	assert.NotNil(t, r.MissingRequiredSkills)
	assert.NotNil(t, r.ParseQualityWarnings)
	assert.NotNil(t, r.Breakdown[0].Details)
}

func TestValidate_AssembledReportMatchesSchema(t *testing.T) {
	r := Assemble(sampleMatch(), []string{"some warning"})
	assert.NoError(t, Validate(r))
}

func TestValidate_RejectsOutOfRangeScore(t *testing.T) {
	r := Assemble(sampleMatch(), nil)
	r.OverallScorePercent = 150
	assert.Error(t, Validate(r))
}
