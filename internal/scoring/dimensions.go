package scoring

import "github.com/AntoScher/resume-analyzer/internal/types"

// dimensionOrder fixes the presentation order of dimensions in reports.
var dimensionOrder = []types.Dimension{
	types.DimensionSkillsRequired,
	types.DimensionSkillsPreferred,
	types.DimensionExperience,
	types.DimensionEducation,
}

// DefaultWeights returns the weighting policy applied when all four
// dimensions are active. These are policy defaults, normally supplied by
// the lexicon configuration.
func DefaultWeights() map[types.Dimension]float64 {
	return map[types.Dimension]float64{
		types.DimensionSkillsRequired:  0.4,
		types.DimensionSkillsPreferred: 0.15,
		types.DimensionExperience:      0.25,
		types.DimensionEducation:       0.2,
	}
}

// activeWeights redistributes the configured weights proportionally across
// the active dimension set so they always sum to 1. It is a pure function
// of (configured weights, active set): exclusion of a dimension never
// manufactures a penalty elsewhere.
func activeWeights(configured map[types.Dimension]float64, active []types.Dimension) map[types.Dimension]float64 {
	weights := make(map[types.Dimension]float64, len(active))
	if len(active) == 0 {
		return weights
	}

	total := 0.0
	for _, dim := range active {
		total += configured[dim]
	}
	if total <= 0 {
		// Degenerate policy: fall back to an equal split.
		share := 1.0 / float64(len(active))
		for _, dim := range active {
			weights[dim] = share
		}
		return weights
	}

	for _, dim := range active {
		weights[dim] = configured[dim] / total
	}
	return weights
}
