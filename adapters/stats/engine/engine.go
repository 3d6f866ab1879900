// Package engine implements the group-comparison tests of the outcome
// analysis: one-way ANOVA across onset-age brackets and Tukey's HSD post-hoc
// pairwise comparisons.
package engine

import (
	"epistat/domain/dataset"
	"epistat/domain/outcome"
	"epistat/domain/stats"
)

// StatsEngine provides the statistical computations of the pipeline.
// It is stateless; every method reads the frame and returns values.
type StatsEngine struct{}

// NewStatsEngine creates a new statistical engine
func NewStatsEngine() *StatsEngine {
	return &StatsEngine{}
}

// PerformANOVA runs a one-way ANOVA of valueCol across the distinct levels of
// groupCol, dropping rows with a missing value first. Statistical
// precondition failures and degenerate inputs yield the NoResult sentinel.
func (e *StatsEngine) PerformANOVA(f *dataset.Frame, groupCol, valueCol string) stats.AnovaResult {
	groups, keys, err := f.GroupValues(groupCol, valueCol)
	if err != nil {
		return stats.NoResult()
	}
	ordered := make([][]float64, 0, len(keys))
	for _, k := range keys {
		ordered = append(ordered, groups[k])
	}
	return e.oneWay(ordered)
}

// CohortANOVA runs the same test restricted to the fixed two-cohort
// (Children vs Adults) partition of the onset-age brackets
func (e *StatsEngine) CohortANOVA(f *dataset.Frame, valueCol string, cohorts outcome.CohortMap) stats.AnovaResult {
	children, adults, err := cohorts.SplitValues(f, valueCol)
	if err != nil {
		return stats.NoResult()
	}
	return e.oneWay([][]float64{children, adults})
}
