// Package report renders a scored match result into the serializable
// report consumed by the presentation layer.
package report

import (
	"math"

	"github.com/AntoScher/resume-analyzer/internal/types"
)

// Assemble converts a match report plus accumulated parse-quality warnings
// into the presentation-ready report. Pure transformation: scores become
// rounded percentages and the breakdown preserves dimension order.
func Assemble(m *types.MatchReport, warnings []string) *types.Report {
	r := &types.Report{
		OverallScorePercent:   toPercent(m.AggregateScore),
		Breakdown:             make([]types.BreakdownRow, 0, len(m.DimensionScores)),
		MissingRequiredSkills: []string{},
		ParseQualityWarnings:  []string{},
	}

	for _, ds := range m.DimensionScores {
		details := ds.Explanation
		if details == nil {
			details = []string{}
		}
		r.Breakdown = append(r.Breakdown, types.BreakdownRow{
			DimensionName: ds.Dimension.DisplayName(),
			ScorePercent:  toPercent(ds.RawScore),
			WeightPercent: toPercent(ds.Weight),
			Details:       details,
		})
	}

	r.MissingRequiredSkills = append(r.MissingRequiredSkills, m.MissingRequiredSkills...)
	r.ParseQualityWarnings = append(r.ParseQualityWarnings, warnings...)

	return r
}

func toPercent(v float64) int {
	return int(math.Round(v * 100))
}
