package forecast

import (
	"math"
	"testing"
)

func testDecomposer() SeasonalDecomposer {
	return SeasonalDecomposer{Window: 7, Alpha: 0.3, MinSamples: 14, DefaultBaseline: 10}
}

func TestDecomposeEmptySeries(t *testing.T) {
	dec := testDecomposer().Decompose(nil)
	if dec.Baseline != 10 {
		t.Fatalf("empty series baseline %f, want the default 10", dec.Baseline)
	}
	if len(dec.Trend) != 0 {
		t.Fatalf("empty series must yield no components")
	}
}

func TestDecomposeShortSeriesFlatTrend(t *testing.T) {
	obs := makeSeries(seriesStart, []float64{4, 8, 12})
	dec := testDecomposer().Decompose(obs)
	if dec.Baseline != 8 {
		t.Fatalf("baseline %f, want mean 8", dec.Baseline)
	}
	for i, tr := range dec.Trend {
		if tr != 8 {
			t.Fatalf("short series trend[%d] = %f, want flat mean", i, tr)
		}
	}
	if dec.Residual[0] != -4 || dec.Residual[2] != 4 {
		t.Fatalf("residuals %v do not reconstruct the input", dec.Residual)
	}
}

func TestDecomposeAdditiveIdentity(t *testing.T) {
	pattern := []float64{5, 10, 20, 30, 20, 10, 5}
	obs := makeSeries(seriesStart, repeat(pattern, 4))
	dec := testDecomposer().Decompose(obs)
	if len(dec.Trend) != len(obs) || len(dec.Seasonal) != len(obs) || len(dec.Residual) != len(obs) {
		t.Fatalf("component lengths do not match the series")
	}
	for i, o := range obs {
		sum := dec.Trend[i] + dec.Seasonal[i] + dec.Residual[i]
		if math.Abs(sum-o.Value) > 1e-9 {
			t.Fatalf("day %d: components sum to %f, value is %f", i, sum, o.Value)
		}
	}
}
