package forecast

import (
	"context"
	"errors"
	"testing"

	"DemandCast/internal/domain/models"
)

func TestForecastFlatSeries(t *testing.T) {
	e, err := testEngine()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	obs := makeSeries(seriesStart, flat(10, 14))
	product := models.Product{ID: "sku-1", Name: "Rice 5kg"}

	res, err := e.Forecast(context.Background(), product, obs, 7)
	if err != nil {
		t.Fatalf("forecast failed: %v", err)
	}
	if len(res.ForecastData) != 7 {
		t.Fatalf("expected 7 points, got %d", len(res.ForecastData))
	}
	if res.Trend.Direction != models.TrendStable {
		t.Fatalf("flat series trend %s, want stable", res.Trend.Direction)
	}
	last := obs[len(obs)-1].Date
	for i, p := range res.ForecastData {
		want := last.AddDate(0, 0, i+1)
		if !p.Date.Equal(want) {
			t.Fatalf("point %d dated %v, want %v", i, p.Date, want)
		}
		if p.SeasonalComponent != 0 {
			t.Fatalf("flat series point %d carries seasonal component %f", i, p.SeasonalComponent)
		}
		if p.TrendComponent != 0 {
			t.Fatalf("flat series point %d carries trend component %f", i, p.TrendComponent)
		}
		pd := float64(p.PredictedDemand)
		if pd < p.ConfidenceInterval.Lower || pd > p.ConfidenceInterval.Upper {
			t.Fatalf("point %d prediction %f outside band [%f, %f]",
				i, pd, p.ConfidenceInterval.Lower, p.ConfidenceInterval.Upper)
		}
	}
	if res.Product.ID != "sku-1" {
		t.Fatalf("product not carried through: %+v", res.Product)
	}
}

func TestForecastEmptySeriesUsesBaseline(t *testing.T) {
	e, err := testEngine()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	res, err := e.Forecast(context.Background(), models.Product{ID: "sku-2"}, nil, 0)
	if err != nil {
		t.Fatalf("empty series must still forecast: %v", err)
	}
	if len(res.ForecastData) != e.Params().Horizon {
		t.Fatalf("expected default horizon %d, got %d points", e.Params().Horizon, len(res.ForecastData))
	}
	for i, p := range res.ForecastData {
		if p.PredictedDemand == 0 {
			t.Fatalf("point %d is zero; baseline demand should apply", i)
		}
	}
	if res.Accuracy != 0.75 {
		t.Fatalf("no history should yield the conservative accuracy, got %f", res.Accuracy)
	}
}

func TestForecastRejectsMalformedSeries(t *testing.T) {
	e, err := testEngine()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	obs := makeSeries(seriesStart, flat(10, 5))
	obs[3].Date = obs[2].Date
	if _, err := e.Forecast(context.Background(), models.Product{ID: "x"}, obs, 7); !errors.Is(err, ErrMalformedSeries) {
		t.Fatalf("expected ErrMalformedSeries, got %v", err)
	}
}

func TestForecastCanceledContext(t *testing.T) {
	e, err := testEngine()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Forecast(ctx, models.Product{ID: "x"}, makeSeries(seriesStart, flat(10, 14)), 7); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestScanFindsSpike(t *testing.T) {
	e, err := testEngine()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	obs := makeSeries(seriesStart, []float64{10, 12, 9, 11, 10, 12, 9, 100})
	rep, err := e.Scan(context.Background(), models.Product{ID: "sku-3"}, obs)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(rep.Anomalies) != 1 {
		t.Fatalf("expected 1 anomaly, got %d", len(rep.Anomalies))
	}
	if rep.Anomalies[0].Type != models.AnomalySpike {
		t.Fatalf("expected spike, got %s", rep.Anomalies[0].Type)
	}
	if rep.Summary.Total != 1 || rep.Summary.ByType[models.AnomalySpike] != 1 {
		t.Fatalf("summary does not match findings: %+v", rep.Summary)
	}
}

func TestScanWithInvalidSensitivityFallsBack(t *testing.T) {
	e, err := testEngine()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	obs := makeSeries(seriesStart, []float64{10, 12, 9, 11, 10, 12, 9, 100})

	rep, err := e.ScanWith(context.Background(), models.Product{ID: "sku-3"}, obs, 99, -1)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	base, err := e.Scan(context.Background(), models.Product{ID: "sku-3"}, obs)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(rep.Anomalies) != len(base.Anomalies) {
		t.Fatalf("invalid overrides must match defaults: %d vs %d", len(rep.Anomalies), len(base.Anomalies))
	}
}

func TestEngineBacktestShortHistory(t *testing.T) {
	e, err := testEngine()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	got := e.Backtest(makeSeries(seriesStart, flat(10, 10)), 30)
	if got.Accuracy != 0.75 || got.MAPE != 0.25 || got.SamplesTested != 0 {
		t.Fatalf("expected conservative default, got %+v", got)
	}
}
