package forecast

import (
	"time"

	"DemandCast/internal/domain/models"
	"DemandCast/internal/services/calendar"
)

// SeriesBuilder turns raw movement events into a gap-free daily demand
// series with per-day calendar context attached.
type SeriesBuilder struct {
	cal *calendar.Calculator
}

func NewSeriesBuilder(cal *calendar.Calculator) *SeriesBuilder {
	return &SeriesBuilder{cal: cal}
}

// Build aggregates events into exactly one observation per calendar date in
// [start, end]. Demand is the summed absolute magnitude of outgoing (negative)
// movements; days without events materialize with value 0.
func (b *SeriesBuilder) Build(events []models.Movement, start, end time.Time) ([]models.DailyObservation, error) {
	start = midnight(start)
	end = midnight(end)
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	perDay := make(map[time.Time]float64)
	for _, ev := range events {
		if ev.Quantity >= 0 {
			continue // incoming stock, not demand
		}
		d := midnight(ev.Date)
		perDay[d] += -ev.Quantity
	}

	days := int(end.Sub(start).Hours()/24) + 1
	out := make([]models.DailyObservation, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		out = append(out, models.DailyObservation{
			Date:      d,
			Value:     perDay[d],
			DayOfWeek: int(wd),
			IsWeekend: wd == time.Saturday || wd == time.Sunday,
			IsHoliday: b.cal.IsHoliday(d),
		})
	}
	return out, nil
}

// ValidateSeries rejects caller-supplied series whose dates are duplicated
// or out of order.
func ValidateSeries(obs []models.DailyObservation) error {
	for i := 1; i < len(obs); i++ {
		if !obs[i-1].Date.Before(obs[i].Date) {
			return ErrMalformedSeries
		}
	}
	return nil
}

func values(obs []models.DailyObservation) []float64 {
	vs := make([]float64, len(obs))
	for i, o := range obs {
		vs[i] = o.Value
	}
	return vs
}

// midnight buckets by UTC calendar date. Events can arrive in any zone
// (driver-local timestamps included) and time.Time map keys compare
// locations, so both sides must normalize before keying.
func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
