package forecast

import (
	"errors"
	"testing"
	"time"

	"DemandCast/internal/domain/models"
	"DemandCast/internal/services/calendar"
)

func TestBuildAggregatesOutgoingMovements(t *testing.T) {
	b := NewSeriesBuilder(calendar.New(calendar.Params{}))
	start := seriesStart
	end := start.AddDate(0, 0, 2)
	events := []models.Movement{
		{ProductID: "p1", Date: start, Quantity: -3},
		{ProductID: "p1", Date: start.Add(14 * time.Hour), Quantity: -2},
		{ProductID: "p1", Date: start, Quantity: 50}, // restock, not demand
		{ProductID: "p1", Date: start.AddDate(0, 0, 2), Quantity: -7},
	}

	obs, err := b.Build(events, start, end)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(obs) != 3 {
		t.Fatalf("expected 3 days, got %d", len(obs))
	}
	if obs[0].Value != 5 {
		t.Fatalf("day 0 demand %f, want 5", obs[0].Value)
	}
	if obs[1].Value != 0 {
		t.Fatalf("gap day must be zero-filled, got %f", obs[1].Value)
	}
	if obs[2].Value != 7 {
		t.Fatalf("day 2 demand %f, want 7", obs[2].Value)
	}
	if !obs[0].IsWeekend { // Sunday
		t.Fatalf("Sunday not flagged as weekend")
	}
	if obs[1].IsWeekend { // Monday
		t.Fatalf("Monday flagged as weekend")
	}
}

func TestBuildNormalizesEventZones(t *testing.T) {
	b := NewSeriesBuilder(calendar.New(calendar.Params{}))
	start := seriesStart
	end := start.AddDate(0, 0, 1)
	jakarta := time.FixedZone("WIB", 7*3600)
	events := []models.Movement{
		// 14:00 +07:00 is 07:00 UTC the same day.
		{ProductID: "p1", Date: time.Date(2025, 6, 1, 14, 0, 0, 0, jakarta), Quantity: -4},
		// 05:00 +07:00 on June 2 is 22:00 UTC on June 1.
		{ProductID: "p1", Date: time.Date(2025, 6, 2, 5, 0, 0, 0, jakarta), Quantity: -6},
	}

	obs, err := b.Build(events, start, end)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if obs[0].Value != 10 {
		t.Fatalf("day 0 demand %f, want both zoned events bucketed to 10", obs[0].Value)
	}
	if obs[1].Value != 0 {
		t.Fatalf("day 1 demand %f, want 0", obs[1].Value)
	}
}

func TestBuildInvalidRange(t *testing.T) {
	b := NewSeriesBuilder(calendar.New(calendar.Params{}))
	if _, err := b.Build(nil, seriesStart, seriesStart.AddDate(0, 0, -1)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestValidateSeries(t *testing.T) {
	good := makeSeries(seriesStart, []float64{1, 2, 3})
	if err := ValidateSeries(good); err != nil {
		t.Fatalf("ordered series rejected: %v", err)
	}

	dup := makeSeries(seriesStart, []float64{1, 2, 3})
	dup[2].Date = dup[1].Date
	if err := ValidateSeries(dup); !errors.Is(err, ErrMalformedSeries) {
		t.Fatalf("expected ErrMalformedSeries for duplicate date, got %v", err)
	}

	if err := ValidateSeries(nil); err != nil {
		t.Fatalf("empty series should validate: %v", err)
	}
}
