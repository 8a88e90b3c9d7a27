package forecast

import (
	"math"
	"time"

	"DemandCast/internal/domain/models"
	"DemandCast/internal/services/calendar"
)

// SeasonalityDetector tests candidate periods via autocorrelation and
// combines the result with weekly-pattern and lunar-calendar-pattern
// strength. The strongest signal wins.
type SeasonalityDetector struct {
	Periods    []int   // candidate lags in days
	Threshold  float64 // detection cut-off on combined strength
	MinSamples int
	Cal        *calendar.Calculator
}

// Detect reports whether the series carries a repeating pattern, its
// strength, the dominant period and human-readable peak-period labels.
func (s SeasonalityDetector) Detect(obs []models.DailyObservation) models.SeasonalityResult {
	res := models.SeasonalityResult{Period: 7, PeakPeriods: []string{}}
	if len(obs) < s.MinSamples {
		return res
	}
	vs := values(obs)

	// Candidate periods by autocorrelation; require two full cycles.
	bestStrength, bestPeriod := 0.0, 7
	for _, period := range s.Periods {
		if len(vs) < 2*period {
			continue
		}
		strength := math.Abs(autocorrelation(vs, period))
		if strength > bestStrength {
			bestStrength, bestPeriod = strength, period
		}
	}

	weekly := s.weeklyStrength(obs, vs)
	lunar, ramadanEffect, lebaranEffect := s.calendarStrength(obs)

	combined := math.Max(bestStrength, math.Max(weekly, lunar))
	res.Strength = clamp(combined, 0, 1)
	res.Period = bestPeriod
	res.Detected = combined > s.Threshold
	res.PeakPeriods = s.peakPeriods(obs, vs, ramadanEffect, lebaranEffect)
	return res
}

// weeklyStrength is the spread of day-of-week averages relative to the
// overall mean.
func (s SeasonalityDetector) weeklyStrength(obs []models.DailyObservation, vs []float64) float64 {
	overall := mean(vs)
	if overall == 0 {
		return 0
	}
	var sum, cnt [7]float64
	for i, o := range obs {
		sum[o.DayOfWeek] += vs[i]
		cnt[o.DayOfWeek]++
	}
	avgs := make([]float64, 0, 7)
	for d := 0; d < 7; d++ {
		if cnt[d] > 0 {
			avgs = append(avgs, sum[d]/cnt[d])
		}
	}
	return stdDev(avgs) / overall
}

// calendarStrength measures how far Ramadan and Lebaran period averages sit
// from the average of ordinary days.
func (s SeasonalityDetector) calendarStrength(obs []models.DailyObservation) (strength, ramadanEffect, lebaranEffect float64) {
	if s.Cal == nil {
		return 0, 0, 0
	}
	var ramSum, ramCnt, lebSum, lebCnt, normSum, normCnt float64
	for _, o := range obs {
		switch {
		case s.Cal.IsRamadan(o.Date):
			ramSum += o.Value
			ramCnt++
		case s.Cal.IsLebaran(o.Date):
			lebSum += o.Value
			lebCnt++
		default:
			normSum += o.Value
			normCnt++
		}
	}
	if normCnt == 0 || normSum == 0 {
		return 0, 0, 0
	}
	normAvg := normSum / normCnt
	if ramCnt > 0 {
		ramadanEffect = (ramSum/ramCnt - normAvg) / normAvg
	}
	if lebCnt > 0 {
		lebaranEffect = (lebSum/lebCnt - normAvg) / normAvg
	}
	return math.Max(math.Abs(ramadanEffect), math.Abs(lebaranEffect)), ramadanEffect, lebaranEffect
}

func (s SeasonalityDetector) peakPeriods(obs []models.DailyObservation, vs []float64, ramadanEffect, lebaranEffect float64) []string {
	overall := mean(vs)
	var sum, cnt [7]float64
	for i, o := range obs {
		sum[o.DayOfWeek] += vs[i]
		cnt[o.DayOfWeek]++
	}
	peaks := []string{}
	for d := 0; d < 7; d++ {
		if cnt[d] > 0 && sum[d]/cnt[d] > overall {
			peaks = append(peaks, time.Weekday(d).String())
		}
	}
	if ramadanEffect > 0.2 {
		peaks = append(peaks, "Ramadan Period")
	}
	if lebaranEffect > 0.3 {
		peaks = append(peaks, "Lebaran Period")
	}
	return peaks
}
