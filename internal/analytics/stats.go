package analytics

import (
	"math"
	"sort"
)

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdev is the sample standard deviation (n-1); zero for fewer than 2 samples.
func stdev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}

// coefficientOfVariation is stdev/mean, +Inf when the mean is zero. The +Inf
// sentinel flows into decayScore, which maps it to 0.
func coefficientOfVariation(xs []float64) float64 {
	m := mean(xs)
	if m == 0 {
		return math.Inf(1)
	}
	return stdev(xs) / m
}

// decayScore maps a non-negative dispersion x into (0,1] via 1/(1+x),
// clamped to [0,1]. +Inf maps to 0.
func decayScore(x float64) float64 {
	if math.IsInf(x, 1) {
		return 0
	}
	return clamp01(1 / (1 + x))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// topQuartileCutoff returns the value at the 75th-percentile rank of the
// descending-sorted samples: the boundary of the top quartile.
func topQuartileCutoff(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	idx := len(sorted) / 4
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
