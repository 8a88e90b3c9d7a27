package forecast

import (
	"math"
	"testing"
)

func TestZForLevel(t *testing.T) {
	if z := zForLevel(0.95); math.Abs(z-1.96) > 0.01 {
		t.Fatalf("z for 0.95 = %f, want ~1.96", z)
	}
	if z := zForLevel(0.99); math.Abs(z-2.576) > 0.01 {
		t.Fatalf("z for 0.99 = %f, want ~2.576", z)
	}
	// Out-of-range levels fall back to 0.95.
	if z := zForLevel(1.5); math.Abs(z-1.96) > 0.01 {
		t.Fatalf("invalid level fallback z = %f, want ~1.96", z)
	}
}

func TestAutocorrelationPeriodicSeries(t *testing.T) {
	vs := repeat([]float64{5, 10, 20, 30, 20, 10, 5}, 6)
	at7 := autocorrelation(vs, 7)
	at3 := autocorrelation(vs, 3)
	if at7 <= 0.5 {
		t.Fatalf("autocorrelation at the true period is %f, want strong positive", at7)
	}
	if at7 <= at3 {
		t.Fatalf("true period %f should dominate off-period lag %f", at7, at3)
	}
}

func TestAutocorrelationDegenerateInputs(t *testing.T) {
	if got := autocorrelation(flat(10, 20), 7); got != 0 {
		t.Fatalf("constant series autocorrelation %f, want 0", got)
	}
	if got := autocorrelation([]float64{1, 2, 3}, 7); got != 0 {
		t.Fatalf("lag beyond series length must return 0, got %f", got)
	}
	if got := autocorrelation([]float64{1, 2, 3}, 0); got != 0 {
		t.Fatalf("non-positive lag must return 0, got %f", got)
	}
}
