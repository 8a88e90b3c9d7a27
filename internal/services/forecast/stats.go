package forecast

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

func stdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return math.Sqrt(stat.Variance(xs, nil))
}

// normalCDF is the standard normal distribution function.
func normalCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

// zForLevel returns the two-sided critical value for a confidence level,
// e.g. 0.95 -> ~1.96.
func zForLevel(level float64) float64 {
	if level <= 0 || level >= 1 {
		level = 0.95
	}
	return distuv.UnitNormal.Quantile(0.5 + level/2)
}

// autocorrelation at the given lag: sum((x_i-mu)(x_{i+lag}-mu)) / sum((x_i-mu)^2).
func autocorrelation(xs []float64, lag int) float64 {
	n := len(xs)
	if lag <= 0 || n <= lag {
		return 0
	}
	mu := mean(xs)
	var num, den float64
	for i := 0; i < n; i++ {
		d := xs[i] - mu
		den += d * d
	}
	if den == 0 {
		return 0
	}
	for i := 0; i+lag < n; i++ {
		num += (xs[i] - mu) * (xs[i+lag] - mu)
	}
	return num / den
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
