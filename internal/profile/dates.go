package profile

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/AntoScher/resume-analyzer/internal/types"
)

// Date token patterns recognized inside experience entries: numeric MM/YYYY,
// named "Month YYYY" (full or abbreviated), and an open-ended Present/Current
// marker.
var (
	numericDateRe = regexp.MustCompile(`\b(0?[1-9]|1[0-2])/((?:19|20)\d{2})\b`)
	namedDateRe   = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+((?:19|20)\d{2})\b`)
	openEndRe     = regexp.MustCompile(`(?i)\b(present|current|now|ongoing)\b`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// dateToken is a date mention found in text, ordered by position.
type dateToken struct {
	ym   types.YearMonth
	open bool // Present/Current marker, ym unset
	pos  int
}

func findDateTokens(text string) []dateToken {
	var tokens []dateToken

	for _, m := range numericDateRe.FindAllStringSubmatchIndex(text, -1) {
		month, _ := strconv.Atoi(text[m[2]:m[3]])
		year, _ := strconv.Atoi(text[m[4]:m[5]])
		tokens = append(tokens, dateToken{
			ym:  types.YearMonth{Year: year, Month: time.Month(month)},
			pos: m[0],
		})
	}

	for _, m := range namedDateRe.FindAllStringSubmatchIndex(text, -1) {
		name := strings.ToLower(text[m[2]:m[3]])
		month, ok := monthsByPrefix[name[:3]]
		if !ok {
			continue
		}
		year, _ := strconv.Atoi(text[m[4]:m[5]])
		tokens = append(tokens, dateToken{
			ym:  types.YearMonth{Year: year, Month: month},
			pos: m[0],
		})
	}

	for _, m := range openEndRe.FindAllStringIndex(text, -1) {
		tokens = append(tokens, dateToken{open: true, pos: m[0]})
	}

	sort.Slice(tokens, func(i, j int) bool { return tokens[i].pos < tokens[j].pos })
	return tokens
}

// parseDateRange extracts the first date range from text. The range needs a
// parseable start date followed by either an end date or an open-end marker.
// ok is false when no usable range is present or the range is inverted.
func parseDateRange(text string) (start, end *types.YearMonth, ok bool) {
	tokens := findDateTokens(text)
	if len(tokens) < 2 {
		return nil, nil, false
	}
	if tokens[0].open {
		return nil, nil, false
	}

	first := tokens[0].ym
	second := tokens[1]
	if second.open {
		return &first, nil, true
	}
	if second.ym.Before(first) {
		return nil, nil, false
	}
	last := second.ym
	return &first, &last, true
}

// containsDateRange reports whether a line holds a complete date range,
// used to split run-together experience entries.
func containsDateRange(line string) bool {
	_, _, ok := parseDateRange(line)
	return ok
}

// monthRange is an inclusive span of absolute month indices.
type monthRange struct {
	start, end int
}

// durationMonths returns the inclusive length of a date range in whole
// months; an open end is closed at now.
func durationMonths(start types.YearMonth, end *types.YearMonth, now types.YearMonth) int {
	last := now
	if end != nil {
		last = *end
	}
	if last.Index() < start.Index() {
		return 0
	}
	return last.Index() - start.Index() + 1
}

// mergeAndSumMonths merges overlapping or adjacent ranges and sums the
// merged durations so overlapping tenure is never double-counted. Two
// ranges overlap if one starts before (or in the same month) the other
// ends; adjacency (next month) also merges.
func mergeAndSumMonths(entries []types.ExperienceEntry, now types.YearMonth) int {
	ranges := make([]monthRange, 0, len(entries))
	for _, e := range entries {
		if !e.DatesParsed() {
			continue
		}
		last := now
		if e.End != nil {
			last = *e.End
		}
		if last.Index() < e.Start.Index() {
			continue
		}
		ranges = append(ranges, monthRange{start: e.Start.Index(), end: last.Index()})
	}
	if len(ranges) == 0 {
		return 0
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].start < ranges[j].start })

	total := 0
	current := ranges[0]
	for _, r := range ranges[1:] {
		if r.start <= current.end+1 {
			if r.end > current.end {
				current.end = r.end
			}
			continue
		}
		total += current.end - current.start + 1
		current = r
	}
	total += current.end - current.start + 1
	return total
}
