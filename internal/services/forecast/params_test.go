package forecast

import (
	"math"
	"testing"
)

func TestParamsDefaults(t *testing.T) {
	p, err := NewParams()
	if err != nil {
		t.Fatalf("defaults failed validation: %v", err)
	}
	if p.Alpha != 0.3 || p.Beta != 0.1 || p.Gamma != 0.2 {
		t.Fatalf("smoothing defaults: %f %f %f", p.Alpha, p.Beta, p.Gamma)
	}
	if p.SeasonLength != 7 || p.Horizon != 30 {
		t.Fatalf("season %d horizon %d", p.SeasonLength, p.Horizon)
	}
	want := [7]float64{1.15, 0.95, 0.9, 0.9, 0.95, 1.05, 1.2}
	if p.DayOfWeekWeights != want {
		t.Fatalf("weights %v, want %v", p.DayOfWeekWeights, want)
	}
}

func TestParamsCustomWeightsKept(t *testing.T) {
	var p Params
	want := [7]float64{1.3, 1.0, 0.8, 0.8, 1.0, 1.1, 1.4}
	p.DayOfWeekWeights = want
	if err := p.Normalize(); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if p.DayOfWeekWeights != want {
		t.Fatalf("custom weights replaced: %v", p.DayOfWeekWeights)
	}
}

func TestParamsPartialWeightsRejected(t *testing.T) {
	var p Params
	p.DayOfWeekWeights = [7]float64{1.15, 0.95, 0.9, 0.9, 0.95, 1.05, 0}
	if err := p.Normalize(); err == nil {
		t.Fatalf("partially-zero weight table must be rejected")
	}
}

func TestSensitivityZMapping(t *testing.T) {
	cases := []struct {
		level int
		want  float64
	}{
		{1, 3.0},
		{5, 2.2},
		{10, 1.2},
	}
	for _, tc := range cases {
		p := Params{SensitivityLevel: tc.level}
		if got := p.SensitivityZ(); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("level %d: z %f, want %f", tc.level, got, tc.want)
		}
	}
}
