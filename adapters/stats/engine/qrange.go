package engine

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Studentized range distribution, needed for Tukey HSD adjusted p-values and
// simultaneous confidence intervals. Computed by direct quadrature over the
// classical double integral: the range CDF of k standard normals, mixed over
// the distribution of the pooled standard deviation estimate.

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

const quadNodes = 96

// studentizedRangeCDF returns P(Q <= q) for the studentized range of k groups
// with df within-group degrees of freedom
func studentizedRangeCDF(q float64, k, df int) float64 {
	if q <= 0 || k < 2 {
		return 0
	}

	// The s/sigma factor degenerates to 1 for large df.
	if df > 2000 {
		return normalRangeCDF(q, k)
	}

	nu := float64(df)
	// log of the density normalizing constant for u = s/sigma:
	// f(u) = c * u^(df-1) * exp(-df*u^2/2)
	lgamma, _ := math.Lgamma(nu / 2)
	logC := nu/2*math.Log(nu) - (nu/2-1)*math.Ln2 - lgamma

	// The density of u concentrates around 1 with spread ~1/sqrt(2 df);
	// outside [uMin, uMax] the integrand is negligible at double precision.
	uMax := 1 + 12/math.Sqrt(nu)
	uMin := 1 - 12/math.Sqrt(nu)
	if uMin < 0 {
		uMin = 0
	}

	nodes, weights := gaussLegendre(quadNodes)
	total := 0.0
	halfWidth := (uMax - uMin) / 2
	center := (uMax + uMin) / 2
	for i := 0; i < quadNodes; i++ {
		u := center + halfWidth*nodes[i]
		logDensity := logC + (nu-1)*math.Log(u) - nu*u*u/2
		total += weights[i] * halfWidth * math.Exp(logDensity) * normalRangeCDF(q*u, k)
	}

	if total < 0 {
		return 0
	}
	if total > 1 {
		return 1
	}
	return total
}

// studentizedRangeQuantile inverts the CDF by bisection. A CDF that cannot
// bracket p (NaN, or degenerate parameters) yields NaN rather than a
// collapsed near-zero quantile.
func studentizedRangeQuantile(p float64, k, df int) float64 {
	if k < 2 || df < 1 {
		return math.NaN()
	}
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return math.Inf(1)
	}

	lo, hi := 0.0, 1.0
	for {
		c := studentizedRangeCDF(hi, k, df)
		if math.IsNaN(c) {
			return math.NaN()
		}
		if c >= p {
			break
		}
		if hi >= 1e6 {
			return math.NaN()
		}
		hi *= 2
	}
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		if studentizedRangeCDF(mid, k, df) < p {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < 1e-10 {
			break
		}
	}
	return (lo + hi) / 2
}

// normalRangeCDF is P(range of k iid standard normals <= w):
// k * Integral phi(z) * (Phi(z) - Phi(z-w))^(k-1) dz
func normalRangeCDF(w float64, k int) float64 {
	if w <= 0 {
		return 0
	}

	nodes, weights := gaussLegendre(quadNodes)
	const zLimit = 8.0
	total := 0.0
	for i := 0; i < quadNodes; i++ {
		z := zLimit * nodes[i]
		inner := stdNormal.CDF(z) - stdNormal.CDF(z-w)
		if inner <= 0 {
			continue
		}
		total += weights[i] * zLimit * stdNormal.Prob(z) * math.Pow(inner, float64(k-1))
	}

	total *= float64(k)
	if total > 1 {
		return 1
	}
	return total
}

var legendreCache = map[int][2][]float64{}

// gaussLegendre returns nodes and weights on [-1, 1], computed by Newton
// iteration on the Legendre polynomial roots and memoized per order
func gaussLegendre(n int) ([]float64, []float64) {
	if cached, ok := legendreCache[n]; ok {
		return cached[0], cached[1]
	}

	x := make([]float64, n)
	w := make([]float64, n)
	for i := 0; i < (n+1)/2; i++ {
		z := math.Cos(math.Pi * (float64(i) + 0.75) / (float64(n) + 0.5))
		var pp float64
		for iter := 0; iter < 100; iter++ {
			p1, p2 := 1.0, 0.0
			for j := 0; j < n; j++ {
				p3 := p2
				p2 = p1
				p1 = ((2*float64(j)+1)*z*p2 - float64(j)*p3) / (float64(j) + 1)
			}
			// P'_n(z) = n * (z*P_n(z) - P_{n-1}(z)) / (z^2 - 1)
			pp = float64(n) * (z*p1 - p2) / (z*z - 1)
			zPrev := z
			z -= p1 / pp
			if math.Abs(z-zPrev) < 1e-15 {
				break
			}
		}
		x[i] = -z
		x[n-1-i] = z
		w[i] = 2 / ((1 - z*z) * pp * pp)
		w[n-1-i] = w[i]
	}

	legendreCache[n] = [2][]float64{x, w}
	return x, w
}
