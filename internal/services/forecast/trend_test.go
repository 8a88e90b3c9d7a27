package forecast

import (
	"testing"

	"DemandCast/internal/domain/models"
)

func TestAnalyzeIncreasing(t *testing.T) {
	vs := make([]float64, 20)
	for i := range vs {
		vs[i] = float64(i + 1)
	}
	res := TrendAnalyzer{}.Analyze(vs)
	if res.Direction != models.TrendIncreasing {
		t.Fatalf("expected increasing, got %s", res.Direction)
	}
	if res.Slope <= 0 {
		t.Fatalf("expected positive slope, got %f", res.Slope)
	}
	if res.Confidence <= 0.9 {
		t.Fatalf("expected high confidence, got %f", res.Confidence)
	}
}

func TestAnalyzeDecreasing(t *testing.T) {
	vs := make([]float64, 20)
	for i := range vs {
		vs[i] = float64(20 - i)
	}
	res := TrendAnalyzer{}.Analyze(vs)
	if res.Direction != models.TrendDecreasing {
		t.Fatalf("expected decreasing, got %s", res.Direction)
	}
	if res.Slope >= 0 {
		t.Fatalf("expected negative slope, got %f", res.Slope)
	}
}

func TestAnalyzeEqualValuesStable(t *testing.T) {
	res := TrendAnalyzer{}.Analyze(flat(10, 14))
	if res.Direction != models.TrendStable {
		t.Fatalf("expected stable, got %s", res.Direction)
	}
	if res.Slope != 0 {
		t.Fatalf("expected zero slope, got %f", res.Slope)
	}
	if res.Confidence != 0 {
		t.Fatalf("expected zero confidence, got %f", res.Confidence)
	}
}

func TestAnalyzeTooFewPoints(t *testing.T) {
	res := TrendAnalyzer{}.Analyze([]float64{1, 2})
	if res.Direction != models.TrendStable {
		t.Fatalf("expected stable for short series, got %s", res.Direction)
	}
}
