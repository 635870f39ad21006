// Package scoring compares a resume profile against a requirement profile,
// computing explainable per-dimension sub-scores and a weighted aggregate.
package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AntoScher/resume-analyzer/internal/types"
)

// Engine scores resumes against requirement profiles using a configured
// weighting policy. An Engine is immutable and safe for concurrent use.
type Engine struct {
	weights map[types.Dimension]float64
}

// NewEngine creates a scoring engine. A nil weights map applies the
// default policy.
func NewEngine(weights map[types.Dimension]float64) *Engine {
	if len(weights) == 0 {
		weights = DefaultWeights()
	}
	return &Engine{weights: weights}
}

// Score computes the match report for one resume against one requirement
// profile. Inapplicable dimensions (no preferred skills, no stated minimum
// experience, no education requirement) are excluded rather than scored 0,
// and their weight is redistributed proportionally.
func (e *Engine) Score(resume *types.ResumeProfile, req *types.RequirementProfile) *types.MatchReport {
	results := map[types.Dimension]dimensionResult{
		types.DimensionSkillsRequired: scoreRequiredSkills(resume, req),
	}
	if len(req.PreferredSkills) > 0 {
		results[types.DimensionSkillsPreferred] = scorePreferredSkills(resume, req)
	}
	if req.MinimumExperienceMonths > 0 {
		results[types.DimensionExperience] = scoreExperience(resume, req)
	}
	if req.RequiredEducationLevel != nil {
		results[types.DimensionEducation] = scoreEducation(resume, req)
	}

	active := make([]types.Dimension, 0, len(results))
	for _, dim := range dimensionOrder {
		if _, ok := results[dim]; ok {
			active = append(active, dim)
		}
	}
	weights := activeWeights(e.weights, active)

	report := &types.MatchReport{
		DimensionScores:       make([]types.DimensionScore, 0, len(active)),
		MissingRequiredSkills: results[types.DimensionSkillsRequired].missing,
	}
	aggregate := 0.0
	for _, dim := range active {
		result := results[dim]
		report.DimensionScores = append(report.DimensionScores, types.DimensionScore{
			Dimension:   dim,
			RawScore:    clamp01(result.score),
			Weight:      weights[dim],
			Explanation: result.explanation,
		})
		aggregate += clamp01(result.score) * weights[dim]
	}
	report.AggregateScore = clamp01(aggregate)

	return report
}

type dimensionResult struct {
	score       float64
	explanation []string
	missing     []string
}

func scoreRequiredSkills(resume *types.ResumeProfile, req *types.RequirementProfile) dimensionResult {
	if len(req.RequiredSkills) == 0 {
		// Vacuously satisfied: no requirement stated, nothing can be missing.
		return dimensionResult{
			score:       1.0,
			explanation: []string{"No required skills stated in the job description"},
			missing:     []string{},
		}
	}

	matched, missing := partitionSkills(resume, req.RequiredSkills)
	result := dimensionResult{
		score:   float64(len(matched)) / float64(len(req.RequiredSkills)),
		missing: missing,
	}
	if len(matched) > 0 {
		result.explanation = append(result.explanation,
			fmt.Sprintf("Matched required skills: %s", strings.Join(matched, ", ")))
	}
	if len(missing) > 0 {
		result.explanation = append(result.explanation,
			fmt.Sprintf("Missing required skills: %s", strings.Join(missing, ", ")))
	}
	return result
}

func scorePreferredSkills(resume *types.ResumeProfile, req *types.RequirementProfile) dimensionResult {
	matched, missing := partitionSkills(resume, req.PreferredSkills)
	result := dimensionResult{
		score: float64(len(matched)) / float64(len(req.PreferredSkills)),
	}
	if len(matched) > 0 {
		result.explanation = append(result.explanation,
			fmt.Sprintf("Matched preferred skills: %s", strings.Join(matched, ", ")))
	}
	if len(missing) > 0 {
		result.explanation = append(result.explanation,
			fmt.Sprintf("Preferred skills not found: %s", strings.Join(missing, ", ")))
	}
	return result
}

func scoreExperience(resume *types.ResumeProfile, req *types.RequirementProfile) dimensionResult {
	ratio := float64(resume.TotalExperienceMonths) / float64(req.MinimumExperienceMonths)
	if ratio > 1 {
		ratio = 1
	}
	return dimensionResult{
		score: ratio,
		explanation: []string{fmt.Sprintf("Candidate has %d months of relevant experience; the job requires %d",
			resume.TotalExperienceMonths, req.MinimumExperienceMonths)},
	}
}

func scoreEducation(resume *types.ResumeProfile, req *types.RequirementProfile) dimensionResult {
	required := *req.RequiredEducationLevel

	highest := types.DegreeUnknown
	for _, entry := range resume.EducationEntries {
		if entry.DegreeLevel > highest {
			highest = entry.DegreeLevel
		}
	}

	// Unknown-level entries never satisfy a requirement.
	if highest != types.DegreeUnknown && highest >= required {
		return dimensionResult{
			score: 1.0,
			explanation: []string{fmt.Sprintf("Highest degree (%s) meets the %s requirement",
				highest, required)},
		}
	}

	explanation := fmt.Sprintf("No degree at or above the required %s level", required)
	if highest != types.DegreeUnknown {
		explanation = fmt.Sprintf("Highest degree (%s) is below the %s requirement", highest, required)
	}
	return dimensionResult{score: 0.0, explanation: []string{explanation}}
}

// partitionSkills splits the wanted skills into those present in the
// resume and those missing, both sorted.
func partitionSkills(resume *types.ResumeProfile, wanted []string) (matched, missing []string) {
	matched = []string{}
	missing = []string{}
	for _, skill := range wanted {
		if resume.HasSkill(skill) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)
	return matched, missing
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
