package stats

import "math"

// AnovaResult is the outcome of a one-way ANOVA across group means.
//
// INVARIANTS:
// - OK is false whenever the statistical preconditions were not met
//   (fewer than two groups, any group with at most one observation) or the
//   computation was numerically degenerate. That sentinel is a value, not an
//   error: sparse subsets of the data are an expected condition.
// - When OK is true, P is in [0.0, 1.0] and N > Groups >= 2.
type AnovaResult struct {
	P      float64 `json:"p_value"`
	F      float64 `json:"f_statistic"`
	Groups int     `json:"groups"`
	N      int     `json:"sample_size"`
	OK     bool    `json:"ok"`
}

// NoResult is the sentinel for tests that could not be run validly
func NoResult() AnovaResult {
	return AnovaResult{P: math.NaN(), F: math.NaN()}
}

// Significant reports whether the result exists and falls below the threshold
func (r AnovaResult) Significant(threshold float64) bool {
	return r.OK && r.P < threshold
}

// TukeyComparison is one pairwise mean comparison from a Tukey HSD test
type TukeyComparison struct {
	GroupA   string  `json:"group_a"`
	GroupB   string  `json:"group_b"`
	MeanDiff float64 `json:"mean_diff"`
	Lower    float64 `json:"ci_lower"`
	Upper    float64 `json:"ci_upper"`
	AdjP     float64 `json:"p_adj"`
	Reject   bool    `json:"reject"`
}

// complete reports whether every summary value is present. The underlying
// computation can emit NaN intervals for near-degenerate pairs; those rows
// are filtered before rendering rather than propagated.
func (c TukeyComparison) complete() bool {
	return !math.IsNaN(c.MeanDiff) && !math.IsNaN(c.Lower) &&
		!math.IsNaN(c.Upper) && !math.IsNaN(c.AdjP)
}

// TukeyResult is the full pairwise comparison table for one outcome column
type TukeyResult struct {
	ValueColumn string            `json:"value_column"`
	Alpha       float64           `json:"alpha"`
	Comparisons []TukeyComparison `json:"comparisons"`
	GroupMeans  map[string]float64 `json:"group_means"`
	GroupSizes  map[string]int     `json:"group_sizes"`
}

// Valid returns the comparisons whose summary values contain no missing
// entries, preserving order
func (r TukeyResult) Valid() []TukeyComparison {
	out := make([]TukeyComparison, 0, len(r.Comparisons))
	for _, c := range r.Comparisons {
		if c.complete() {
			out = append(out, c)
		}
	}
	return out
}
