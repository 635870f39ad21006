package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntoScher/resume-analyzer/internal/extract"
	"github.com/AntoScher/resume-analyzer/internal/lexicon"
	"github.com/AntoScher/resume-analyzer/internal/types"
)

var testNow = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func buildFromText(t *testing.T, text string) *types.ResumeProfile {
	t.Helper()
	doc := &types.CanonicalDocument{
		Text:         extract.Canonicalize(text),
		SourceFormat: types.FormatPlain,
	}
	return BuildAt(doc, lexicon.Default(), testNow)
}

const sampleResume = `Jane Doe
jane@example.com

Skills
Python, Go, Docker, postgres

Experience

Senior Engineer at Acme Corp
Jan 2020 - Dec 2021
- Built Go microservices
- Led k8s migration

Backend Developer, Initech
Jun 2021 - Jun 2022
- Maintained Python ETL jobs

Education
Bachelor of Science in Computer Science, State University

Certifications
- AWS Certified Solutions Architect
- CKA
`

func TestBuildAt_ExtractsSkillsFromWholeDocument(t *testing.T) {
	profile := buildFromText(t, sampleResume)

	// Skills section terms plus aliases found anywhere in the document.
	assert.Contains(t, profile.Skills, "Python")
	assert.Contains(t, profile.Skills, "Go")
	assert.Contains(t, profile.Skills, "Docker")
	assert.Contains(t, profile.Skills, "SQL")        // postgres alias
	assert.Contains(t, profile.Skills, "Kubernetes") // k8s in a bullet
	assert.Contains(t, profile.Skills, "ETL")
	assert.Contains(t, profile.Skills, "AWS")
}

func TestBuildAt_ParsesExperienceEntries(t *testing.T) {
	profile := buildFromText(t, sampleResume)
	require.Len(t, profile.ExperienceEntries, 2)

	first := profile.ExperienceEntries[0]
	assert.Equal(t, "Senior Engineer", first.Title)
	assert.Equal(t, "Acme Corp", first.Organization)
	require.True(t, first.DatesParsed())
	assert.Equal(t, types.YearMonth{Year: 2020, Month: time.January}, *first.Start)
	assert.Equal(t, types.YearMonth{Year: 2021, Month: time.December}, *first.End)
	assert.Equal(t, 24, first.DurationMonths)

	second := profile.ExperienceEntries[1]
	assert.Equal(t, "Backend Developer", second.Title)
	assert.Equal(t, "Initech", second.Organization)
	assert.Equal(t, 13, second.DurationMonths)
}

func TestBuildAt_MergesOverlappingTenure(t *testing.T) {
	profile := buildFromText(t, sampleResume)

	// Jan 2020 - Dec 2021 and Jun 2021 - Jun 2022 overlap; the merged span
	// Jan 2020 through Jun 2022 is 30 months.
	assert.Equal(t, 30, profile.TotalExperienceMonths)
}

func TestBuildAt_OpenEndedEntryClosesAtNow(t *testing.T) {
	profile := buildFromText(t, `Experience

Platform Engineer at Initech
Jan 2024 - Present
- Runs the build system
`)
	require.Len(t, profile.ExperienceEntries, 1)
	entry := profile.ExperienceEntries[0]
	require.True(t, entry.DatesParsed())
	assert.Nil(t, entry.End)
	assert.Equal(t, 6, entry.DurationMonths) // Jan through Jun 2024
	assert.Equal(t, 6, profile.TotalExperienceMonths)
}

func TestBuildAt_UnparseableDatesKeptWithWarning(t *testing.T) {
	profile := buildFromText(t, `Experience

Consultant at Freelance
Spring through Autumn
- Advised clients on Python
`)
	require.Len(t, profile.ExperienceEntries, 1)
	assert.Equal(t, "Consultant", profile.ExperienceEntries[0].Title)
	assert.False(t, profile.ExperienceEntries[0].DatesParsed())
	assert.Equal(t, 0, profile.TotalExperienceMonths)

	require.NotEmpty(t, profile.Warnings)
	assert.Contains(t, profile.Warnings[0], "no parseable date range")
}

func TestBuildAt_EducationClassification(t *testing.T) {
	profile := buildFromText(t, sampleResume)
	require.Len(t, profile.EducationEntries, 1)

	entry := profile.EducationEntries[0]
	assert.Equal(t, types.DegreeBachelor, entry.DegreeLevel)
	assert.Contains(t, entry.Field, "Computer Science")
	assert.Contains(t, entry.Institution, "State University")
}

func TestBuildAt_UnrecognizedDegreeFlagged(t *testing.T) {
	profile := buildFromText(t, `Education
Completed an intensive coding bootcamp
`)
	require.Len(t, profile.EducationEntries, 1)
	assert.Equal(t, types.DegreeUnknown, profile.EducationEntries[0].DegreeLevel)

	require.NotEmpty(t, profile.Warnings)
	assert.Contains(t, profile.Warnings[0], "unrecognized degree level")
}

func TestBuildAt_Certifications(t *testing.T) {
	profile := buildFromText(t, sampleResume)
	assert.Equal(t, []string{"AWS Certified Solutions Architect", "CKA"}, profile.Certifications)
}

func TestBuildAt_EmptyDocument(t *testing.T) {
	profile := BuildAt(&types.CanonicalDocument{Text: ""}, lexicon.Default(), testNow)

	assert.Empty(t, profile.Skills)
	assert.Empty(t, profile.ExperienceEntries)
	assert.Equal(t, 0, profile.TotalExperienceMonths)
	require.Len(t, profile.Warnings, 1)
	assert.Contains(t, profile.Warnings[0], "no text")
}

func TestBuildAt_NilDocument(t *testing.T) {
	profile := BuildAt(nil, lexicon.Default(), testNow)
	assert.NotNil(t, profile)
	assert.NotEmpty(t, profile.Warnings)
}

func TestBuildAt_Deterministic(t *testing.T) {
	first := buildFromText(t, sampleResume)
	second := buildFromText(t, sampleResume)
	assert.Equal(t, first, second)
}

func TestBuildAt_OnePositionPerBullet(t *testing.T) {
	profile := buildFromText(t, `Experience
- Engineer at Acme, Jan 2020 - Dec 2020
- Developer at Initech, Jan 2021 - Dec 2021
`)
	require.Len(t, profile.ExperienceEntries, 2)
	assert.Equal(t, "Engineer", profile.ExperienceEntries[0].Title)
	assert.Equal(t, "Developer", profile.ExperienceEntries[1].Title)
	assert.Equal(t, 24, profile.TotalExperienceMonths)
}

func TestSplitTitleOrganization(t *testing.T) {
	tests := []struct {
		header  string
		title   string
		company string
	}{
		{"Senior Engineer at Acme Corp", "Senior Engineer", "Acme Corp"},
		{"Backend Developer, Initech", "Backend Developer", "Initech"},
		{"SRE | Globex", "SRE", "Globex"},
		{"Data Analyst - Hooli", "Data Analyst", "Hooli"},
		{"Engineer @ Initech", "Engineer", "Initech"},
		{"Freelance Consultant", "Freelance Consultant", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			title, org := splitTitleOrganization(tt.header)
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.company, org)
		})
	}
}
