package ports

import (
	"epistat/domain/dataset"
	"epistat/domain/outcome"
	"epistat/domain/stats"
)

// ChartRenderer renders the analysis charts as image files in an output
// directory. Renderers are stateless; each call performs one blocking file
// write. An empty output directory turns rendering into a recorded no-op.
type ChartRenderer interface {
	// SuccessRatesByGroup plots one line per age bracket across the
	// follow-up years.
	SuccessRatesByGroup(f *dataset.Frame, groupCol string, successCols []string, outputDir string) error

	// CohortComparison plots exactly two lines, one per coarse cohort.
	// A mismatch between year labels and computed averages is a hard
	// error: it indicates a shape defect, not sparse data.
	CohortComparison(f *dataset.Frame, cohorts outcome.CohortMap, successCols []string, outputDir string) error

	// AvgTimeToSuccess plots the mean time to success per age bracket,
	// sorted by bracket label, omitting empty brackets.
	AvgTimeToSuccess(f *dataset.Frame, groupCol, timeCol string, outputDir string) error

	// TukeyIntervals plots the simultaneous confidence intervals of a
	// post-hoc result. Results with no valid comparisons produce no file.
	TukeyIntervals(result stats.TukeyResult, outputDir string) error
}
