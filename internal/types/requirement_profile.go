package types

// RequirementProfile is the typed result of job-description parsing.
// RequiredEducationLevel is nil when the posting states no degree
// requirement; the education dimension is then excluded from scoring.
type RequirementProfile struct {
	RequiredSkills          []string     `json:"required_skills"`
	PreferredSkills         []string     `json:"preferred_skills"`
	MinimumExperienceMonths int          `json:"minimum_experience_months"`
	RequiredEducationLevel  *DegreeLevel `json:"required_education_level,omitempty"`
}
