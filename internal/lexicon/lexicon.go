// Package lexicon loads the analysis policy tables: the skill lexicon with
// synonym aliases, the section-heading vocabulary, the degree vocabulary,
// requirement qualifier phrases and dimension weights. A Lexicon is compiled
// once at process start and is safe for unsynchronized concurrent reads.
package lexicon

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AntoScher/resume-analyzer/internal/types"
)

//go:embed lexicon.yaml
var defaultYAML []byte

// Section identifies a recognized resume section.
type Section string

// Recognized resume sections.
const (
	SectionSkills         Section = "skills"
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionCertifications Section = "certifications"
)

// Lexicon holds the compiled pattern tables. It is immutable after Load.
type Lexicon struct {
	skills              []skillPattern
	headings            map[string]Section
	degrees             []degreePattern
	requiredQualifiers  []string
	preferredQualifiers []string
	weights             map[types.Dimension]float64
}

type skillPattern struct {
	canonical string
	re        *regexp.Regexp
}

type degreePattern struct {
	level types.DegreeLevel
	re    *regexp.Regexp
}

// fileLexicon mirrors the YAML document shape.
type fileLexicon struct {
	Skills []struct {
		Canonical string   `yaml:"canonical"`
		Aliases   []string `yaml:"aliases"`
	} `yaml:"skills"`
	Sections   map[string][]string `yaml:"sections"`
	Degrees    map[string][]string `yaml:"degrees"`
	Qualifiers struct {
		Required  []string `yaml:"required"`
		Preferred []string `yaml:"preferred"`
	} `yaml:"qualifiers"`
	Weights map[string]float64 `yaml:"weights"`
}

// Default compiles the embedded default lexicon. It panics on error since
// the embedded document is part of the build.
func Default() *Lexicon {
	lex, err := compile(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded lexicon is invalid: %v", err))
	}
	return lex
}

// Load reads and compiles a lexicon from a YAML file. An empty path loads
// the embedded defaults.
func Load(path string) (*Lexicon, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file %s: %w", path, err)
	}
	lex, err := compile(data)
	if err != nil {
		return nil, fmt.Errorf("failed to compile lexicon %s: %w", path, err)
	}
	return lex, nil
}

func compile(data []byte) (*Lexicon, error) {
	var file fileLexicon
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon YAML: %w", err)
	}

	lex := &Lexicon{
		headings: make(map[string]Section),
		weights:  make(map[types.Dimension]float64),
	}

	for _, skill := range file.Skills {
		if strings.TrimSpace(skill.Canonical) == "" {
			continue
		}
		terms := append([]string{skill.Canonical}, skill.Aliases...)
		re, err := compileTermPattern(terms)
		if err != nil {
			return nil, fmt.Errorf("failed to compile skill pattern for %q: %w", skill.Canonical, err)
		}
		lex.skills = append(lex.skills, skillPattern{canonical: skill.Canonical, re: re})
	}

	for name, headings := range file.Sections {
		section := Section(name)
		switch section {
		case SectionSkills, SectionExperience, SectionEducation, SectionCertifications:
		default:
			return nil, fmt.Errorf("unknown section name in lexicon: %q", name)
		}
		for _, h := range headings {
			lex.headings[normalizeHeading(h)] = section
		}
	}

	for name, phrases := range file.Degrees {
		level := types.ParseDegreeLevel(name)
		if level == types.DegreeUnknown {
			return nil, fmt.Errorf("unknown degree level in lexicon: %q", name)
		}
		re, err := compileTermPattern(phrases)
		if err != nil {
			return nil, fmt.Errorf("failed to compile degree pattern for %q: %w", name, err)
		}
		lex.degrees = append(lex.degrees, degreePattern{level: level, re: re})
	}
	// Highest level first so ClassifyDegree prefers the strongest match.
	sort.Slice(lex.degrees, func(i, j int) bool { return lex.degrees[i].level > lex.degrees[j].level })

	for _, q := range file.Qualifiers.Required {
		lex.requiredQualifiers = append(lex.requiredQualifiers, strings.ToLower(q))
	}
	for _, q := range file.Qualifiers.Preferred {
		lex.preferredQualifiers = append(lex.preferredQualifiers, strings.ToLower(q))
	}

	total := 0.0
	for name, weight := range file.Weights {
		if weight < 0 || weight > 1 {
			return nil, fmt.Errorf("weight for %q out of range [0,1]: %v", name, weight)
		}
		lex.weights[types.Dimension(name)] = weight
		total += weight
	}
	if len(lex.weights) > 0 && math.Abs(total-1.0) > 1e-9 {
		return nil, fmt.Errorf("dimension weights must sum to 1, got %v", total)
	}

	return lex, nil
}

// compileTermPattern builds a single case-insensitive pattern matching any
// of the terms as standalone tokens. The boundary class keeps "+", "#" and
// "/" attached to the token so "C" does not match inside "C++" or "C#".
func compileTermPattern(terms []string) (*regexp.Regexp, error) {
	alternatives := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		alternatives = append(alternatives, regexp.QuoteMeta(term))
	}
	if len(alternatives) == 0 {
		return nil, fmt.Errorf("no terms to compile")
	}
	pattern := `(?i)(?:^|[^a-zA-Z0-9+#/])(?:` + strings.Join(alternatives, "|") + `)(?:[^a-zA-Z0-9+#/]|$)`
	return regexp.Compile(pattern)
}

func normalizeHeading(line string) string {
	line = strings.ToLower(strings.TrimSpace(line))
	line = strings.TrimSuffix(line, ":")
	return strings.Join(strings.Fields(line), " ")
}

// FindSkills scans free text for lexicon skills and returns the matched
// canonical names, deduplicated and sorted.
func (l *Lexicon) FindSkills(text string) []string {
	var found []string
	for _, sp := range l.skills {
		if sp.re.MatchString(text) {
			found = append(found, sp.canonical)
		}
	}
	sort.Strings(found)
	return found
}

// MatchHeading reports whether a standalone line is a known section heading.
func (l *Lexicon) MatchHeading(line string) (Section, bool) {
	section, ok := l.headings[normalizeHeading(line)]
	return section, ok
}

// ClassifyDegree returns the highest degree level mentioned in the text,
// or DegreeUnknown when no degree vocabulary matches.
func (l *Lexicon) ClassifyDegree(text string) types.DegreeLevel {
	for _, dp := range l.degrees {
		if dp.re.MatchString(text) {
			return dp.level
		}
	}
	return types.DegreeUnknown
}

// MinimumDegree returns the lowest degree level mentioned in the text, or
// nil when none is mentioned. Job postings listing several acceptable
// degrees are interpreted as requiring the lowest one.
func (l *Lexicon) MinimumDegree(text string) *types.DegreeLevel {
	var minLevel *types.DegreeLevel
	for _, dp := range l.degrees {
		if dp.re.MatchString(text) {
			level := dp.level
			if minLevel == nil || level < *minLevel {
				minLevel = &level
			}
		}
	}
	return minLevel
}

// HasRequiredQualifier reports whether the text contains a phrase marking
// skills as mandatory.
func (l *Lexicon) HasRequiredQualifier(text string) bool {
	return containsAny(strings.ToLower(text), l.requiredQualifiers)
}

// HasPreferredQualifier reports whether the text contains a phrase marking
// skills as nice-to-have.
func (l *Lexicon) HasPreferredQualifier(text string) bool {
	return containsAny(strings.ToLower(text), l.preferredQualifiers)
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// Weights returns a copy of the configured dimension weights.
func (l *Lexicon) Weights() map[types.Dimension]float64 {
	weights := make(map[types.Dimension]float64, len(l.weights))
	for dim, w := range l.weights {
		weights[dim] = w
	}
	return weights
}
