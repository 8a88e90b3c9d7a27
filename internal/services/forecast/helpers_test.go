package forecast

import (
	"time"

	"DemandCast/internal/domain/models"
	"DemandCast/internal/services/calendar"
)

// seriesStart is a Sunday so DayOfWeek == i%7.
var seriesStart = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func makeSeries(start time.Time, values []float64) []models.DailyObservation {
	out := make([]models.DailyObservation, len(values))
	for i, v := range values {
		d := start.AddDate(0, 0, i)
		wd := d.Weekday()
		out[i] = models.DailyObservation{
			Date:      d,
			Value:     v,
			DayOfWeek: int(wd),
			IsWeekend: wd == time.Saturday || wd == time.Sunday,
		}
	}
	return out
}

func repeat(pattern []float64, cycles int) []float64 {
	out := make([]float64, 0, len(pattern)*cycles)
	for i := 0; i < cycles; i++ {
		out = append(out, pattern...)
	}
	return out
}

func flat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func testEngine() (*Engine, error) {
	p, err := NewParams()
	if err != nil {
		return nil, err
	}
	return NewEngine(p, calendar.New(calendar.Params{}), nil)
}
