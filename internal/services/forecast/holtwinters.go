package forecast

import "math"

// HoltWinters is additive triple exponential smoothing over level, trend
// and a fixed-size seasonal cycle. Each Forecast call owns its own state;
// nothing is shared between calls.
type HoltWinters struct {
	Alpha     float64 // level smoothing
	Beta      float64 // trend smoothing
	Gamma     float64 // seasonal smoothing
	SeasonLen int
}

// Forecast fits the history and returns horizon future values, floored at 0.
// With fewer points than one season, it degrades to repeating the flat mean.
func (hw HoltWinters) Forecast(vs []float64, horizon int) []float64 {
	if horizon <= 0 {
		return nil
	}
	season := hw.SeasonLen
	if season < 2 {
		season = 7
	}
	n := len(vs)

	out := make([]float64, horizon)
	if n < season {
		mu := mean(vs)
		for i := range out {
			out[i] = math.Max(0, mu)
		}
		return out
	}

	seasonal := initialSeasonal(vs, season)

	level := vs[0]
	trend := 0.0
	if n > 1 {
		trend = vs[1] - vs[0]
	}

	for t := 1; t < n; t++ {
		idx := t % season
		prevLevel := level
		level = hw.Alpha*(vs[t]-seasonal[idx]) + (1-hw.Alpha)*(prevLevel+trend)
		trend = hw.Beta*(level-prevLevel) + (1-hw.Beta)*trend
		seasonal[idx] = hw.Gamma*(vs[t]-level) + (1-hw.Gamma)*seasonal[idx]
	}

	for h := 1; h <= horizon; h++ {
		f := level + float64(h)*trend + seasonal[(n+h)%season]
		out[h-1] = math.Max(0, f)
	}
	return out
}

// initialSeasonal builds starting seasonal indices by averaging each cycle
// position's deviation from its cycle mean across all full cycles.
func initialSeasonal(vs []float64, season int) []float64 {
	seasonal := make([]float64, season)
	cycles := len(vs) / season
	if cycles == 0 {
		return seasonal
	}
	for j := 0; j < season; j++ {
		var sum float64
		for c := 0; c < cycles; c++ {
			cycle := vs[c*season : (c+1)*season]
			sum += cycle[j] - mean(cycle)
		}
		seasonal[j] = sum / float64(cycles)
	}
	return seasonal
}
