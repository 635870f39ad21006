package types

// Dimension is one scored axis of comparison between a resume and a
// requirement profile.
type Dimension string

// Scoring dimensions.
const (
	DimensionSkillsRequired  Dimension = "skills_required"
	DimensionSkillsPreferred Dimension = "skills_preferred"
	DimensionExperience      Dimension = "experience"
	DimensionEducation       Dimension = "education"
)

// DisplayName returns the human-readable dimension name used in reports.
func (d Dimension) DisplayName() string {
	switch d {
	case DimensionSkillsRequired:
		return "Required skills"
	case DimensionSkillsPreferred:
		return "Preferred skills"
	case DimensionExperience:
		return "Experience"
	case DimensionEducation:
		return "Education"
	default:
		return string(d)
	}
}

// DimensionScore is the scored result of a single active dimension.
type DimensionScore struct {
	Dimension   Dimension `json:"dimension"`
	RawScore    float64   `json:"raw_score"` // 0..1
	Weight      float64   `json:"weight"`    // 0..1, sums to 1 across active dimensions
	Explanation []string  `json:"explanation"`
}

// MatchReport is the scored comparison of one resume against one
// requirement profile. AggregateScore is the weighted sum of the active
// dimension scores, clamped to [0,1].
type MatchReport struct {
	AggregateScore        float64          `json:"aggregate_score"`
	DimensionScores       []DimensionScore `json:"dimension_scores"`
	MissingRequiredSkills []string         `json:"missing_required_skills"`
}

// BreakdownRow is one presentation-ready row of the report breakdown.
type BreakdownRow struct {
	DimensionName string   `json:"dimension_name"`
	ScorePercent  int      `json:"score_percent"`
	WeightPercent int      `json:"weight_percent"`
	Details       []string `json:"details"`
}

// Report is the serializable result handed to the presentation layer.
type Report struct {
	OverallScorePercent   int            `json:"overall_score_percent"`
	Breakdown             []BreakdownRow `json:"breakdown"`
	MissingRequiredSkills []string       `json:"missing_required_skills"`
	ParseQualityWarnings  []string       `json:"parse_quality_warnings"`
	AIReview              string         `json:"ai_review,omitempty"`
}
