package engine

import (
	"math"

	"epistat/domain/stats"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// oneWay computes the one-way ANOVA F test across the given groups.
//
// Preconditions, checked before any computation: at least two groups, and
// every group with more than one observation. Unmet preconditions and
// numerically degenerate inputs (zero within-group variance) return the
// NoResult sentinel rather than an error, so callers can skip downstream
// post-hoc work on sparse data.
func (e *StatsEngine) oneWay(groups [][]float64) stats.AnovaResult {
	if len(groups) < 2 {
		return stats.NoResult()
	}

	n := 0
	for _, g := range groups {
		if len(g) <= 1 {
			return stats.NoResult()
		}
		n += len(g)
	}

	grandSum := 0.0
	for _, g := range groups {
		s, _ := mstats.Sum(g)
		grandSum += s
	}
	grandMean := grandSum / float64(n)

	ssBetween := 0.0
	ssWithin := 0.0
	for _, g := range groups {
		m, _ := mstats.Mean(g)
		d := m - grandMean
		ssBetween += float64(len(g)) * d * d
		for _, v := range g {
			ssWithin += (v - m) * (v - m)
		}
	}

	dfBetween := len(groups) - 1
	dfWithin := n - len(groups)
	if dfWithin < 1 {
		return stats.NoResult()
	}

	msWithin := ssWithin / float64(dfWithin)
	if msWithin <= 0 {
		// Constant input within every group; the F statistic is undefined.
		return stats.NoResult()
	}

	f := (ssBetween / float64(dfBetween)) / msWithin
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return stats.NoResult()
	}

	dist := distuv.F{D1: float64(dfBetween), D2: float64(dfWithin)}
	p := dist.Survival(f)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	return stats.AnovaResult{P: p, F: f, Groups: len(groups), N: n, OK: true}
}
