// Package requirement parses free-text job descriptions into a typed
// RequirementProfile: required vs preferred skills, minimum experience and
// an education requirement.
package requirement

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/AntoScher/resume-analyzer/internal/extract"
	"github.com/AntoScher/resume-analyzer/internal/lexicon"
	"github.com/AntoScher/resume-analyzer/internal/types"
)

var (
	yearsRe  = regexp.MustCompile(`(?i)\b(\d{1,2})\s*\+?\s*(?:years?|yrs?)\b`)
	clauseRe = regexp.MustCompile(`[.;]\s+`)
)

// Parse extracts a requirement profile from job-description text. Parsing
// never fails: an empty or unrecognizable description yields an empty
// profile, which downstream scoring treats as "no requirement stated".
func Parse(text string, lex *lexicon.Lexicon) *types.RequirementProfile {
	profile := &types.RequirementProfile{
		RequiredSkills:  []string{},
		PreferredSkills: []string{},
	}

	canonical := extract.Canonicalize(text)
	if canonical == "" {
		return profile
	}

	required := make(map[string]bool)
	preferred := make(map[string]bool)

	// Qualifier phrases classify the skills mentioned in the same statement.
	// A statement carrying both kinds of qualifier counts as required:
	// missing a required skill is worse than over-weighting one, and skills
	// with no qualifier at all default to required for the same reason.
	for _, statement := range splitStatements(canonical) {
		skills := lex.FindSkills(statement)
		if len(skills) == 0 {
			continue
		}
		target := required
		if lex.HasPreferredQualifier(statement) && !lex.HasRequiredQualifier(statement) {
			target = preferred
		}
		for _, skill := range skills {
			target[skill] = true
		}
	}
	// A skill qualified as required anywhere is never merely preferred.
	for skill := range required {
		delete(preferred, skill)
	}

	profile.RequiredSkills = sortedKeys(required)
	profile.PreferredSkills = sortedKeys(preferred)
	profile.MinimumExperienceMonths = parseMinimumExperience(canonical)
	profile.RequiredEducationLevel = lex.MinimumDegree(canonical)

	return profile
}

// splitStatements breaks the description into qualifier-proximity units:
// lines, then sentence/clause fragments within each line.
func splitStatements(text string) []string {
	var statements []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, fragment := range clauseRe.Split(line, -1) {
			fragment = strings.TrimSpace(fragment)
			if fragment != "" {
				statements = append(statements, fragment)
			}
		}
	}
	return statements
}

// parseMinimumExperience extracts the stated minimum tenure in months.
// When several year figures appear (e.g. an overall minimum plus per-skill
// minimums) the largest is taken; absence yields 0 and excludes the
// experience dimension from scoring.
func parseMinimumExperience(text string) int {
	maxYears := 0
	for _, m := range yearsRe.FindAllStringSubmatch(text, -1) {
		years, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if years > maxYears {
			maxYears = years
		}
	}
	return maxYears * 12
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
