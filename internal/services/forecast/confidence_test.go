package forecast

import "testing"

func TestBandsWidenWithHorizon(t *testing.T) {
	history := []float64{10, 14, 8, 12, 9, 15, 11, 13, 10, 12}
	forecast := flat(11, 14)
	bands := IntervalEstimator{Level: 0.95}.Bands(history, forecast)
	if len(bands) != len(forecast) {
		t.Fatalf("expected %d bands, got %d", len(forecast), len(bands))
	}
	prevWidth := -1.0
	for i, b := range bands {
		if b.Lower < 0 {
			t.Fatalf("band %d lower %f below zero", i, b.Lower)
		}
		if b.Upper < b.Lower {
			t.Fatalf("band %d inverted: [%f, %f]", i, b.Lower, b.Upper)
		}
		width := b.Upper - b.Lower
		if width < prevWidth {
			t.Fatalf("band %d narrower than band %d", i, i-1)
		}
		prevWidth = width
	}
}

func TestBandsZeroVarianceHistory(t *testing.T) {
	bands := IntervalEstimator{Level: 0.95}.Bands(flat(10, 14), flat(10, 7))
	for i, b := range bands {
		if b.Lower != 10 || b.Upper != 10 {
			t.Fatalf("band %d: zero-variance history should collapse to the forecast, got [%f, %f]", i, b.Lower, b.Upper)
		}
	}
}

func TestBandsEmptyForecast(t *testing.T) {
	if bands := (IntervalEstimator{Level: 0.95}).Bands(flat(10, 14), nil); bands != nil {
		t.Fatalf("expected nil bands for empty forecast")
	}
}
