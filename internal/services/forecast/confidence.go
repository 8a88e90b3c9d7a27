package forecast

import (
	"math"

	"DemandCast/internal/domain/models"
)

// IntervalEstimator derives confidence bands from historical variance,
// widening with forecast distance by up to 50% at the end of the horizon.
type IntervalEstimator struct {
	Level float64 // e.g. 0.95
}

// Bands returns one interval per forecast point, lower floored at 0.
func (e IntervalEstimator) Bands(history, forecast []float64) []models.ConfidenceInterval {
	if len(forecast) == 0 {
		return nil
	}
	z := zForLevel(e.Level)
	sd := stdDev(history)
	total := float64(len(forecast))

	out := make([]models.ConfidenceInterval, len(forecast))
	for i, f := range forecast {
		horizonFactor := 1 + (float64(i)/total)*0.5
		margin := z * sd * horizonFactor
		out[i] = models.ConfidenceInterval{
			Lower: math.Max(0, f-margin),
			Upper: f + margin,
		}
	}
	return out
}
