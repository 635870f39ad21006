package profile

import (
	"strings"

	"github.com/AntoScher/resume-analyzer/internal/lexicon"
)

// segments holds the canonical document split by recognized section
// headings. Leading text before the first heading is the header/contact
// block: it contributes to the whole-document skill scan but not to
// structured fields.
type segments struct {
	lead     []string
	sections map[lexicon.Section][]string
}

// splitSections walks the canonical lines and assigns each to the section
// opened by the most recent heading line. Heading matching is
// case-insensitive on standalone lines; lines under unrecognized headings
// stay in the current section.
func splitSections(text string, lex *lexicon.Lexicon) *segments {
	seg := &segments{sections: make(map[lexicon.Section][]string)}

	var current lexicon.Section
	inSection := false
	for _, line := range strings.Split(text, "\n") {
		if section, ok := lex.MatchHeading(line); ok {
			current = section
			inSection = true
			continue
		}
		if inSection {
			seg.sections[current] = append(seg.sections[current], line)
		} else {
			seg.lead = append(seg.lead, line)
		}
	}
	return seg
}

// isBulletLine reports whether the line starts with a bullet marker.
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, marker := range []string{"- ", "* ", "• ", "· ", "— "} {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

// stripBullet removes a leading bullet marker from the line.
func stripBullet(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	for _, marker := range []string{"- ", "* ", "• ", "· ", "— "} {
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, marker))
		}
	}
	return strings.TrimSpace(trimmed)
}

// splitChunks groups section lines into entry chunks. A blank line always
// starts a new chunk; a bullet line carrying its own complete date range
// starts a new chunk too, since many resumes list one position per bullet.
func splitChunks(lines []string) [][]string {
	var chunks [][]string
	var current []string

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, current)
			current = nil
		}
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if isBulletLine(line) && containsDateRange(line) {
			flush()
		}
		current = append(current, line)
	}
	flush()
	return chunks
}
