package types

import (
	"fmt"
	"strings"
	"time"
)

// DegreeLevel is the ordinal ranking of a classified education entry.
// Higher values satisfy requirements stated at lower values; DegreeUnknown
// never satisfies any requirement.
type DegreeLevel int

// Degree levels in ascending ordinal order.
const (
	DegreeUnknown DegreeLevel = iota
	DegreeAssociate
	DegreeBachelor
	DegreeMaster
	DegreeDoctorate
)

// String returns the canonical lowercase name of the degree level.
func (d DegreeLevel) String() string {
	switch d {
	case DegreeAssociate:
		return "associate"
	case DegreeBachelor:
		return "bachelor"
	case DegreeMaster:
		return "master"
	case DegreeDoctorate:
		return "doctorate"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the degree level as its canonical name.
func (d DegreeLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON parses a canonical degree level name.
func (d *DegreeLevel) UnmarshalJSON(data []byte) error {
	name := strings.Trim(string(data), `"`)
	*d = ParseDegreeLevel(name)
	return nil
}

// ParseDegreeLevel maps a degree level name to its ordinal value.
// Unrecognized names map to DegreeUnknown.
func ParseDegreeLevel(name string) DegreeLevel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "associate":
		return DegreeAssociate
	case "bachelor":
		return DegreeBachelor
	case "master":
		return DegreeMaster
	case "doctorate", "phd":
		return DegreeDoctorate
	default:
		return DegreeUnknown
	}
}

// YearMonth is a calendar month with no day component, the resolution at
// which resume date ranges are parsed.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// Index returns the absolute month index (year*12 + month), used for
// duration arithmetic and overlap comparison.
func (ym YearMonth) Index() int {
	return ym.Year*12 + int(ym.Month) - 1
}

// Before reports whether ym precedes other.
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.Index() < other.Index()
}

// String formats the month as "Jan 2006".
func (ym YearMonth) String() string {
	return fmt.Sprintf("%s %d", ym.Month.String()[:3], ym.Year)
}

// ExperienceEntry is a single position parsed from the experience section.
// Start is nil when the entry's date range could not be parsed; such entries
// are kept for skill evidence but excluded from tenure computation.
type ExperienceEntry struct {
	Title          string     `json:"title"`
	Organization   string     `json:"organization,omitempty"`
	Start          *YearMonth `json:"start,omitempty"`
	End            *YearMonth `json:"end,omitempty"` // nil with Start set means ongoing
	DurationMonths int        `json:"duration_months"`
}

// DatesParsed reports whether the entry carries a usable date range.
func (e ExperienceEntry) DatesParsed() bool {
	return e.Start != nil
}

// EducationEntry is a single classified education record.
type EducationEntry struct {
	DegreeLevel DegreeLevel `json:"degree_level"`
	Field       string      `json:"field,omitempty"`
	Institution string      `json:"institution,omitempty"`
}

// ResumeProfile is the typed result of structured resume parsing. All
// collections are sorted or in document order so that building a profile
// from the same canonical document is deterministic.
type ResumeProfile struct {
	Skills                []string          `json:"skills"`
	ExperienceEntries     []ExperienceEntry `json:"experience_entries"`
	EducationEntries      []EducationEntry  `json:"education_entries"`
	Certifications        []string          `json:"certifications"`
	TotalExperienceMonths int               `json:"total_experience_months"`
	Warnings              []string          `json:"warnings,omitempty"`
}

// HasSkill reports whether the profile contains the canonical skill name.
func (p *ResumeProfile) HasSkill(canonical string) bool {
	for _, s := range p.Skills {
		if s == canonical {
			return true
		}
	}
	return false
}
