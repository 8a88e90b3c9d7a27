package forecast

import (
	"sort"

	"DemandCast/internal/domain/models"
)

// OutlierFilter removes observations outside [Q1-1.5*IQR, Q3+1.5*IQR].
// Quartiles use index-floor positions over the sorted values, not rank
// interpolation; downstream accuracy baselines depend on these exact
// filtering boundaries.
type OutlierFilter struct {
	MinSamples int
}

// Filter returns the surviving observations in date order. Series shorter
// than MinSamples pass through untouched.
func (f OutlierFilter) Filter(obs []models.DailyObservation) []models.DailyObservation {
	minSamples := f.MinSamples
	if minSamples < 4 {
		minSamples = 4
	}
	if len(obs) < minSamples {
		return obs
	}

	sorted := make([]float64, len(obs))
	for i, o := range obs {
		sorted[i] = o.Value
	}
	sort.Float64s(sorted)

	q1 := sorted[int(float64(len(sorted))*0.25)]
	q3 := sorted[int(float64(len(sorted))*0.75)]
	iqr := q3 - q1
	lo, hi := q1-1.5*iqr, q3+1.5*iqr

	out := make([]models.DailyObservation, 0, len(obs))
	for _, o := range obs {
		if o.Value >= lo && o.Value <= hi {
			out = append(out, o)
		}
	}
	return out
}
