// Package profile parses canonical resume text into a typed ResumeProfile
// using section-heading heuristics and lexicon matching. The builder never
// fails on malformed input: it degrades to a partial profile and records
// parse-quality warnings instead.
package profile

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/AntoScher/resume-analyzer/internal/lexicon"
	"github.com/AntoScher/resume-analyzer/internal/types"
)

var (
	fieldOfStudyRe = regexp.MustCompile(`(?i)\b(?:in|of)\s+([A-Za-z][A-Za-z&/ ]{2,60})`)
	institutionRe  = regexp.MustCompile(`(?i)\b(university|college|institute|school|academy|polytechnic)\b`)
	rangeToRe      = regexp.MustCompile(`(?i)\bto\b`)
)

// Build parses the canonical document into a resume profile, closing
// open-ended experience at the current month.
func Build(doc *types.CanonicalDocument, lex *lexicon.Lexicon) *types.ResumeProfile {
	return BuildAt(doc, lex, time.Now())
}

// BuildAt is Build with an explicit reference time for open-ended date
// ranges, so tenure computation is reproducible in tests.
func BuildAt(doc *types.CanonicalDocument, lex *lexicon.Lexicon, now time.Time) *types.ResumeProfile {
	profile := &types.ResumeProfile{
		Skills:            []string{},
		ExperienceEntries: []types.ExperienceEntry{},
		EducationEntries:  []types.EducationEntry{},
		Certifications:    []string{},
	}
	if doc == nil || strings.TrimSpace(doc.Text) == "" {
		profile.Warnings = append(profile.Warnings, "document contains no text")
		return profile
	}

	nowYM := types.YearMonth{Year: now.Year(), Month: now.Month()}
	seg := splitSections(doc.Text, lex)

	// The skill scan covers the entire document, which subsumes the skills
	// section; inline "Skills: ..." prefixes are picked up the same way.
	profile.Skills = lex.FindSkills(doc.Text)

	profile.ExperienceEntries = buildExperience(seg.sections[lexicon.SectionExperience], nowYM, profile)
	profile.EducationEntries = buildEducation(seg.sections[lexicon.SectionEducation], lex, profile)
	profile.Certifications = buildCertifications(seg.sections[lexicon.SectionCertifications])
	profile.TotalExperienceMonths = mergeAndSumMonths(profile.ExperienceEntries, nowYM)

	return profile
}

// buildExperience segments the experience section into entries and extracts
// title, organization and date range per entry. Entries without a parseable
// range are kept but flagged and excluded from tenure totals.
func buildExperience(lines []string, now types.YearMonth, profile *types.ResumeProfile) []types.ExperienceEntry {
	entries := []types.ExperienceEntry{}
	for _, chunk := range splitChunks(lines) {
		chunkText := strings.Join(chunk, "\n")
		start, end, ok := parseDateRange(chunkText)

		header := firstHeaderLine(chunk)
		if header == "" && !ok {
			// Stray description bullets with no header and no dates are
			// continuation text, not an entry.
			continue
		}
		if header == "" {
			header = stripBullet(chunk[0])
		}

		title, organization := splitTitleOrganization(stripDates(header))
		if title == "" && organization == "" && !ok {
			continue
		}
		if title == "" {
			title = organization
			organization = ""
		}

		entry := types.ExperienceEntry{Title: title, Organization: organization}
		if ok {
			entry.Start = start
			entry.End = end
			entry.DurationMonths = durationMonths(*start, end, now)
		} else {
			profile.Warnings = append(profile.Warnings,
				fmt.Sprintf("experience entry %q has no parseable date range and is excluded from total experience", title))
		}
		entries = append(entries, entry)
	}
	return entries
}

// firstHeaderLine returns the first non-bullet line of a chunk.
func firstHeaderLine(chunk []string) string {
	for _, line := range chunk {
		if !isBulletLine(line) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// stripDates removes date tokens and leftover range separators from a
// header line, leaving the title/organization material.
func stripDates(line string) string {
	line = numericDateRe.ReplaceAllString(line, "")
	line = namedDateRe.ReplaceAllString(line, "")
	line = openEndRe.ReplaceAllString(line, "")
	line = strings.NewReplacer("–", " ", "—", " ", "(", " ", ")", " ").Replace(line)
	line = rangeToRe.ReplaceAllString(line, " ")
	line = strings.Trim(line, " \t,|-")
	return strings.Join(strings.Fields(line), " ")
}

// splitTitleOrganization applies common "Title at Organization",
// "Title, Organization" and "Title - Organization" layouts.
func splitTitleOrganization(header string) (title, organization string) {
	for _, sep := range []string{" at ", " @ ", ", ", " | ", " - "} {
		if idx := strings.Index(header, sep); idx > 0 {
			return strings.TrimSpace(header[:idx]), strings.Trim(header[idx+len(sep):], " ,|-")
		}
	}
	return strings.TrimSpace(header), ""
}

// buildEducation classifies each education chunk against the degree
// vocabulary. Unrecognized phrasing maps to the unknown level and is
// flagged, never dropped.
func buildEducation(lines []string, lex *lexicon.Lexicon, profile *types.ResumeProfile) []types.EducationEntry {
	entries := []types.EducationEntry{}
	for _, chunk := range splitChunks(lines) {
		chunkText := strings.Join(chunk, " ")
		if strings.TrimSpace(chunkText) == "" {
			continue
		}

		entry := types.EducationEntry{
			DegreeLevel: lex.ClassifyDegree(chunkText),
			Field:       extractField(chunkText),
			Institution: extractInstitution(chunk),
		}
		if entry.DegreeLevel == types.DegreeUnknown {
			profile.Warnings = append(profile.Warnings,
				fmt.Sprintf("education entry %q has an unrecognized degree level", firstLine(chunk)))
		}
		entries = append(entries, entry)
	}
	return entries
}

func firstLine(chunk []string) string {
	if len(chunk) == 0 {
		return ""
	}
	return stripBullet(chunk[0])
}

func extractField(text string) string {
	m := fieldOfStudyRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	field := strings.TrimSpace(m[1])
	// Cut at institution keywords picked up by the greedy capture.
	if loc := institutionRe.FindStringIndex(field); loc != nil {
		field = strings.Trim(field[:loc[0]], " ,")
	}
	return field
}

func extractInstitution(chunk []string) string {
	for _, line := range chunk {
		if institutionRe.MatchString(line) {
			return stripBullet(line)
		}
	}
	return ""
}

// buildCertifications collects certification names, one per bullet/line or
// comma-separated on a single line, deduplicated and sorted.
func buildCertifications(lines []string) []string {
	seen := make(map[string]bool)
	certs := []string{}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := []string{stripBullet(line)}
		if strings.Contains(parts[0], ",") {
			parts = strings.Split(parts[0], ",")
		}
		for _, part := range parts {
			cert := strings.TrimSpace(part)
			if cert != "" && !seen[cert] {
				seen[cert] = true
				certs = append(certs, cert)
			}
		}
	}
	sort.Strings(certs)
	return certs
}
