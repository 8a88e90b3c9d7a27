package forecast

import (
	"math"

	"DemandCast/internal/domain/models"
)

// AnomalyDetector slides a window over the daily series and flags points
// whose z-score against the window exceeds the sensitivity threshold.
type AnomalyDetector struct {
	Window              int
	ZThreshold          float64 // from Params.SensitivityZ()
	MinDeviationPercent float64
}

// Detect returns flagged days in date order. Points inside the first
// window are never flagged (no stable expectation yet).
func (d AnomalyDetector) Detect(obs []models.DailyObservation) []models.Anomaly {
	window := d.Window
	if window < 2 {
		window = 7
	}
	out := []models.Anomaly{}
	for i := window; i < len(obs); i++ {
		win := values(obs[i-window : i])
		mu := mean(win)
		if mu == 0 {
			continue
		}
		sd := stdDev(win)
		actual := obs[i].Value

		// A flat window makes any departure unambiguous; score it as an
		// unbounded z instead of skipping the point.
		z := math.Inf(1)
		if sd > 0 {
			z = math.Abs(actual-mu) / sd
		} else if actual == mu {
			continue
		}
		devPct := (actual - mu) / mu * 100
		if z <= d.ZThreshold || math.Abs(devPct) < d.MinDeviationPercent {
			continue
		}

		typ := classify(devPct, obs[i].IsWeekend)
		severity := math.Min(1, z/3)
		out = append(out, models.Anomaly{
			Date:               obs[i].Date,
			Type:               typ,
			Expected:           mu,
			Actual:             actual,
			DeviationPercent:   devPct,
			SeverityScore:      severity,
			Confidence:         clamp(severity, 0.5, 1.0),
			PossibleCauses:     causesFor(typ),
			RecommendedActions: actionsFor(typ),
		})
	}
	return out
}

// Summarize aggregates a detected anomaly list into report totals.
func Summarize(anomalies []models.Anomaly) models.AnomalySummary {
	s := models.AnomalySummary{
		Total:  len(anomalies),
		ByType: map[string]int{},
	}
	var sevSum float64
	for _, a := range anomalies {
		s.ByType[a.Type]++
		sevSum += a.SeverityScore
		if a.SeverityScore > s.MaxSeverity {
			s.MaxSeverity = a.SeverityScore
		}
	}
	if s.Total > 0 {
		s.AvgSeverity = sevSum / float64(s.Total)
	}
	return s
}

func classify(devPct float64, weekend bool) string {
	switch {
	case devPct > 50:
		return models.AnomalySpike
	case devPct < -50:
		return models.AnomalyDrop
	case weekend:
		return models.AnomalySeasonalDeviation
	default:
		return models.AnomalyTrendBreak
	}
}

func causesFor(typ string) []string {
	switch typ {
	case models.AnomalySpike:
		return []string{"promotion or flash sale", "bulk purchase", "upcoming holiday stock-up", "competitor stockout"}
	case models.AnomalyDrop:
		return []string{"stockout on shelf", "price increase", "competitor promotion", "supply disruption"}
	case models.AnomalySeasonalDeviation:
		return []string{"unusual weekend traffic", "local event", "weather impact"}
	default:
		return []string{"demand regime shift", "assortment change", "data quality issue"}
	}
}

func actionsFor(typ string) []string {
	switch typ {
	case models.AnomalySpike:
		return []string{"verify stock cover for the coming week", "check for an active promotion", "consider raising the reorder point"}
	case models.AnomalyDrop:
		return []string{"check shelf availability", "review recent price changes", "confirm the product is still listed"}
	case models.AnomalySeasonalDeviation:
		return []string{"compare against the same weekday in prior weeks", "review local calendar events"}
	default:
		return []string{"re-run the forecast with recent data", "review the movement log for gaps"}
	}
}
