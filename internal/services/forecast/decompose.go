package forecast

import "DemandCast/internal/domain/models"

// SeasonalDecomposer splits a series into additive trend, day-of-week
// seasonal and residual components.
type SeasonalDecomposer struct {
	Window          int     // moving-average window, 7 by default
	Alpha           float64 // exponential smoothing constant past the first window
	MinSamples      int     // below this, a flat mean trend is returned
	DefaultBaseline float64 // substitutes for the mean on empty input
}

// Decompose returns one component entry per input day with
// value[i] ~= trend[i] + seasonal[i] + residual[i].
func (d SeasonalDecomposer) Decompose(obs []models.DailyObservation) models.Decomposition {
	n := len(obs)
	if n == 0 {
		return models.Decomposition{Baseline: d.DefaultBaseline}
	}

	vs := values(obs)
	baseline := mean(vs)

	dec := models.Decomposition{
		Trend:    make([]float64, n),
		Seasonal: make([]float64, n),
		Residual: make([]float64, n),
		Baseline: baseline,
	}

	if n < d.MinSamples {
		for i := range dec.Trend {
			dec.Trend[i] = baseline
			dec.Residual[i] = vs[i] - baseline
		}
		return dec
	}

	// Trend: moving average over the first window, then single-exponential
	// smoothing of the windowed average applied recursively.
	window := d.Window
	if window < 2 {
		window = 7
	}
	for i := 0; i < n; i++ {
		if i < window {
			dec.Trend[i] = mean(vs[:i+1])
			continue
		}
		ma := mean(vs[i-window+1 : i+1])
		dec.Trend[i] = d.Alpha*ma + (1-d.Alpha)*dec.Trend[i-1]
	}

	// Seasonal: average deviation from the running trend per day of week,
	// reused across the whole series by date.
	var idxSum, idxCnt [7]float64
	for i, o := range obs {
		idxSum[o.DayOfWeek] += vs[i] - dec.Trend[i]
		idxCnt[o.DayOfWeek]++
	}
	var index [7]float64
	for d := 0; d < 7; d++ {
		if idxCnt[d] > 0 {
			index[d] = idxSum[d] / idxCnt[d]
		}
	}

	for i, o := range obs {
		dec.Seasonal[i] = index[o.DayOfWeek]
		dec.Residual[i] = vs[i] - dec.Trend[i] - dec.Seasonal[i]
	}
	return dec
}
