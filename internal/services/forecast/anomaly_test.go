package forecast

import (
	"testing"

	"DemandCast/internal/domain/models"
)

func spikeDetector() AnomalyDetector {
	p, _ := NewParams()
	return AnomalyDetector{Window: 7, ZThreshold: p.SensitivityZ(), MinDeviationPercent: 25}
}

func TestDetectSpike(t *testing.T) {
	obs := makeSeries(seriesStart, []float64{10, 12, 9, 11, 10, 12, 9, 100})
	found := spikeDetector().Detect(obs)
	if len(found) != 1 {
		t.Fatalf("expected 1 anomaly, got %d", len(found))
	}
	a := found[0]
	if a.Type != models.AnomalySpike {
		t.Fatalf("expected spike, got %s", a.Type)
	}
	if a.SeverityScore <= 0.5 {
		t.Fatalf("tenfold spike should score high severity, got %f", a.SeverityScore)
	}
	if a.Confidence < 0.5 || a.Confidence > 1 {
		t.Fatalf("confidence %f outside [0.5, 1]", a.Confidence)
	}
	if a.DeviationPercent <= 50 {
		t.Fatalf("expected deviation above 50%%, got %f", a.DeviationPercent)
	}
	if len(a.PossibleCauses) == 0 || len(a.RecommendedActions) == 0 {
		t.Fatalf("anomaly must carry causes and actions")
	}
}

func TestDetectDrop(t *testing.T) {
	obs := makeSeries(seriesStart, []float64{100, 110, 95, 105, 100, 110, 95, 5})
	found := spikeDetector().Detect(obs)
	if len(found) != 1 {
		t.Fatalf("expected 1 anomaly, got %d", len(found))
	}
	if found[0].Type != models.AnomalyDrop {
		t.Fatalf("expected drop, got %s", found[0].Type)
	}
	if found[0].DeviationPercent >= -50 {
		t.Fatalf("expected deviation below -50%%, got %f", found[0].DeviationPercent)
	}
}

func TestDetectSpikeInFlatSeries(t *testing.T) {
	vals := flat(10, 30)
	vals[20] = 100
	obs := makeSeries(seriesStart, vals)

	found := spikeDetector().Detect(obs)
	if len(found) != 1 {
		t.Fatalf("expected 1 anomaly, got %d", len(found))
	}
	a := found[0]
	if !a.Date.Equal(obs[20].Date) {
		t.Fatalf("anomaly dated %v, want %v", a.Date, obs[20].Date)
	}
	if a.Type != models.AnomalySpike {
		t.Fatalf("expected spike, got %s", a.Type)
	}
	if a.SeverityScore != 1.0 {
		t.Fatalf("departure from a flat window should score full severity, got %f", a.SeverityScore)
	}
	if a.Confidence != 1.0 {
		t.Fatalf("confidence %f, want 1.0", a.Confidence)
	}
}

func TestDetectFlatSeriesClean(t *testing.T) {
	obs := makeSeries(seriesStart, flat(10, 30))
	if found := spikeDetector().Detect(obs); len(found) != 0 {
		t.Fatalf("flat series flagged as anomalous: %d findings", len(found))
	}
}

func TestDetectFlatWindowSmallDeviationGated(t *testing.T) {
	// 20% above a flat window is below the 25% deviation gate.
	obs := makeSeries(seriesStart, []float64{10, 10, 10, 10, 10, 10, 10, 12})
	if found := spikeDetector().Detect(obs); len(found) != 0 {
		t.Fatalf("deviation below the percent gate flagged: %d findings", len(found))
	}
}

func TestDetectQuietSeries(t *testing.T) {
	obs := makeSeries(seriesStart, []float64{10, 12, 9, 11, 10, 12, 9, 11, 10, 12})
	if found := spikeDetector().Detect(obs); len(found) != 0 {
		t.Fatalf("normal fluctuation flagged as anomalous: %d findings", len(found))
	}
}

func TestSummarize(t *testing.T) {
	anomalies := []models.Anomaly{
		{Type: models.AnomalySpike, SeverityScore: 1.0},
		{Type: models.AnomalySpike, SeverityScore: 0.6},
		{Type: models.AnomalyDrop, SeverityScore: 0.8},
	}
	s := Summarize(anomalies)
	if s.Total != 3 {
		t.Fatalf("total %d, want 3", s.Total)
	}
	if s.ByType[models.AnomalySpike] != 2 || s.ByType[models.AnomalyDrop] != 1 {
		t.Fatalf("unexpected type counts: %v", s.ByType)
	}
	if s.MaxSeverity != 1.0 {
		t.Fatalf("max severity %f, want 1.0", s.MaxSeverity)
	}
	if s.AvgSeverity < 0.79 || s.AvgSeverity > 0.81 {
		t.Fatalf("avg severity %f, want 0.8", s.AvgSeverity)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Total != 0 || s.MaxSeverity != 0 || s.AvgSeverity != 0 {
		t.Fatalf("empty summary not zeroed: %+v", s)
	}
}
