package forecast

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"DemandCast/internal/domain/models"
)

// TrendAnalyzer fits ordinary least squares over time index vs value and
// backs the direction call with a Mann-Kendall monotonic-trend test.
type TrendAnalyzer struct{}

// Analyze returns direction, slope and confidence for the series. Fewer
// than 3 points yields a stable, zero-confidence result.
func (TrendAnalyzer) Analyze(vs []float64) models.TrendResult {
	n := len(vs)
	if n < 3 {
		return models.TrendResult{Direction: models.TrendStable}
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(xs, vs, nil, false)
	r2 := stat.RSquared(xs, vs, nil, alpha, beta)
	if math.IsNaN(r2) {
		r2 = 0
	}

	p := mannKendallP(vs)

	dir := models.TrendStable
	if p < 0.05 {
		if beta > 0 {
			dir = models.TrendIncreasing
		} else if beta < 0 {
			dir = models.TrendDecreasing
		}
	}

	return models.TrendResult{
		Direction:  dir,
		Slope:      beta,
		RSquared:   r2,
		Confidence: r2 * (1 - p),
	}
}

// mannKendallP computes the two-sided p-value of the Mann-Kendall statistic.
// The variance formula n(n-1)(2n+5)/18 ignores tied values; ties are rare
// in real-valued demand and the correction term is not worth carrying.
func mannKendallP(vs []float64) float64 {
	n := len(vs)
	var s float64
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			switch {
			case vs[j] > vs[i]:
				s++
			case vs[j] < vs[i]:
				s--
			}
		}
	}

	variance := float64(n) * float64(n-1) * float64(2*n+5) / 18
	if variance <= 0 {
		return 1
	}
	z := s / math.Sqrt(variance)
	p := 2 * (1 - normalCDF(math.Abs(z)))
	return clamp(p, 0, 1)
}
