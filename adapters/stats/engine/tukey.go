package engine

import (
	"math"

	"epistat/domain/dataset"
	"epistat/domain/stats"

	mstats "github.com/montanaflynn/stats"
)

// TukeyHSD runs Tukey's honestly-significant-difference test of valueCol
// across the levels of groupCol at the given family-wise error rate. Rows
// missing either column are dropped first. Group levels are compared in
// sorted label order, each pair reported as (GroupA, GroupB) with
// MeanDiff = mean(B) - mean(A).
//
// Degenerate inputs (fewer than two usable levels, no residual degrees of
// freedom, zero pooled variance) produce a result with no comparisons, not
// an error; the caller skips rendering on an empty table.
func (e *StatsEngine) TukeyHSD(f *dataset.Frame, groupCol, valueCol string, alpha float64) stats.TukeyResult {
	result := stats.TukeyResult{
		ValueColumn: valueCol,
		Alpha:       alpha,
		GroupMeans:  make(map[string]float64),
		GroupSizes:  make(map[string]int),
	}

	groups, keys, err := f.GroupValues(groupCol, valueCol)
	if err != nil {
		return result
	}

	// Levels with a single observation carry no within-group variance and
	// are kept: the pooled MSE comes from all levels with data, matching
	// the usual Tukey-Kramer treatment of unbalanced designs.
	usable := make([]string, 0, len(keys))
	for _, k := range keys {
		if len(groups[k]) > 0 {
			usable = append(usable, k)
		}
	}
	if len(usable) < 2 {
		return result
	}

	n := 0
	ssWithin := 0.0
	for _, k := range usable {
		g := groups[k]
		m, _ := mstats.Mean(g)
		result.GroupMeans[k] = m
		result.GroupSizes[k] = len(g)
		n += len(g)
		for _, v := range g {
			ssWithin += (v - m) * (v - m)
		}
	}

	k := len(usable)
	dfWithin := n - k
	if dfWithin < 1 {
		return result
	}
	mse := ssWithin / float64(dfWithin)
	if mse <= 0 {
		return result
	}

	qCrit := studentizedRangeQuantile(1-alpha, k, dfWithin)

	for i := 0; i < len(usable); i++ {
		for j := i + 1; j < len(usable); j++ {
			a, b := usable[i], usable[j]
			na := float64(result.GroupSizes[a])
			nb := float64(result.GroupSizes[b])
			diff := result.GroupMeans[b] - result.GroupMeans[a]

			// Tukey-Kramer standard error for unequal group sizes.
			se := math.Sqrt(mse / 2 * (1/na + 1/nb))

			q := math.Abs(diff) / se
			adjP := 1 - studentizedRangeCDF(q, k, dfWithin)
			if adjP < 0 {
				adjP = 0
			}
			if adjP > 1 {
				adjP = 1
			}

			half := qCrit * se
			result.Comparisons = append(result.Comparisons, stats.TukeyComparison{
				GroupA:   a,
				GroupB:   b,
				MeanDiff: diff,
				Lower:    diff - half,
				Upper:    diff + half,
				AdjP:     adjP,
				Reject:   adjP < alpha,
			})
		}
	}

	return result
}
