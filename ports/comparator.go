package ports

import (
	"epistat/domain/dataset"
	"epistat/domain/outcome"
	"epistat/domain/stats"
)

// GroupComparator runs the hypothesis tests of the pipeline. Statistical
// precondition failures are reported through the NoResult sentinel on
// AnovaResult and an empty comparison table on TukeyResult, never as errors.
type GroupComparator interface {
	// PerformANOVA runs a one-way ANOVA of valueCol across the distinct
	// levels of groupCol.
	PerformANOVA(f *dataset.Frame, groupCol, valueCol string) stats.AnovaResult

	// CohortANOVA runs the two-group variant restricted to the fixed
	// Children/Adults partition.
	CohortANOVA(f *dataset.Frame, valueCol string, cohorts outcome.CohortMap) stats.AnovaResult

	// TukeyHSD runs the pairwise post-hoc comparison across all levels of
	// groupCol at the given family-wise error rate.
	TukeyHSD(f *dataset.Frame, groupCol, valueCol string, alpha float64) stats.TukeyResult
}
