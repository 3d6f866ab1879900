package outcome

import (
	"math"

	"epistat/domain/dataset"

	mstats "github.com/montanaflynn/stats"
)

// Cohort names for the coarse two-group partition of onset-age brackets.
const (
	CohortChildren = "Children"
	CohortAdults   = "Adults"
)

// CohortMap assigns each Binned_Onset_Age bracket to a coarse cohort. It is
// the single source of the bracket membership lists; both the comparator and
// the visualizer consume it.
type CohortMap map[string]string

// DefaultCohorts returns the fixed bracket partition used by the study:
// onset before age 15 is "Children", 15 and over is "Adults".
func DefaultCohorts() CohortMap {
	m := CohortMap{}
	for _, bracket := range []string{"< 1", "1 to 2", "3-4", "5 to 7", "8-10", "11 to 14"} {
		m[bracket] = CohortChildren
	}
	for _, bracket := range []string{"15 to 19", "20 to 24", "25 to 29", "30 to 34", "35 to 39", "40 to 44", "45 to 49", "> 50"} {
		m[bracket] = CohortAdults
	}
	return m
}

// Cohort returns the coarse cohort for a bracket, or "" when the bracket is
// blank or outside the fixed membership lists
func (m CohortMap) Cohort(bracket string) string {
	return m[bracket]
}

// SplitValues collects the non-missing values of a numeric column into the
// two cohorts, dropping rows whose bracket is unmapped
func (m CohortMap) SplitValues(f *dataset.Frame, valueCol string) (children, adults []float64, err error) {
	labels, values, err := f.DropMissing(GroupColumn, valueCol)
	if err != nil {
		return nil, nil, err
	}
	for i, label := range labels {
		switch m.Cohort(label) {
		case CohortChildren:
			children = append(children, values[i])
		case CohortAdults:
			adults = append(adults, values[i])
		}
	}
	return children, adults, nil
}

// CohortMeans computes the per-cohort mean for each of the given numeric
// columns, in column order. A cohort with no non-missing values for a column
// gets NaN for that column.
func (m CohortMap) CohortMeans(f *dataset.Frame, cols []string) (children, adults []float64, err error) {
	for _, col := range cols {
		c, a, splitErr := m.SplitValues(f, col)
		if splitErr != nil {
			return nil, nil, splitErr
		}
		children = append(children, mean(c))
		adults = append(adults, mean(a))
	}
	return children, adults, nil
}

// mean wraps mstats.Mean with NaN as the empty-cohort value
func mean(values []float64) float64 {
	m, err := mstats.Mean(values)
	if err != nil {
		return math.NaN()
	}
	return m
}
