package ingestion

import (
	"regexp"
	"strings"
)

var multiSpaceRe = regexp.MustCompile(`\s+`)

// CleanText normalizes job text while preserving line structure. Line
// endings become LF, trailing whitespace is dropped, runs of spaces inside
// a line collapse to one, and blank-line runs collapse to a single blank
// line. Bullet markers and leading indentation survive so the section
// splitter can still see list structure.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := collapseBlankLines(strings.Join(cleaned, "\n"))
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	content := multiSpaceRe.ReplaceAllString(trimmed, " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

func collapseBlankLines(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
