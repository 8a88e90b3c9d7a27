package usecase

import (
	"context"
	"time"

	"DemandCast/internal/domain/models"
	drepo "DemandCast/internal/domain/repository"
	"DemandCast/internal/services/forecast"
	applogger "DemandCast/pkg/logger"
)

// ForecastService loads movement history from storage, feeds it through the
// forecasting engine and optionally publishes finished reports downstream.
type ForecastService struct {
	store   drepo.MovementStore
	engine  *forecast.Engine
	metrics drepo.Metrics
	pub     drepo.ReportPublisher // optional
	l       *applogger.Logger
}

// NewForecastService creates a new ForecastService.
func NewForecastService(store drepo.MovementStore, engine *forecast.Engine, metrics drepo.Metrics, l *applogger.Logger) *ForecastService {
	return &ForecastService{store: store, engine: engine, metrics: metrics, l: l}
}

// SetPublisher wires an optional report publisher.
func (s *ForecastService) SetPublisher(pub drepo.ReportPublisher) { s.pub = pub }

// Engine exposes the underlying engine (batch runner, tests).
func (s *ForecastService) Engine() *forecast.Engine { return s.engine }

// Forecast builds the daily series for a product and produces a forecast.
func (s *ForecastService) Forecast(ctx context.Context, req models.ForecastRequest) (*models.ForecastResult, error) {
	start := time.Now()

	series, product, err := s.loadSeries(ctx, req.ProductID, req.LocationID, req.Days)
	if err != nil {
		s.metrics.RecordError("forecast_load")
		return nil, err
	}

	res, err := s.engine.Forecast(ctx, product, series, req.Horizon)
	if err != nil {
		s.metrics.RecordError("forecast")
		return nil, err
	}

	s.metrics.RecordForecast(req.ProductID)
	s.metrics.RecordLatency("forecast", time.Since(start).Seconds())

	if s.pub != nil {
		if err := s.pub.PublishForecast(ctx, res); err != nil && s.l != nil {
			s.l.Warn("forecast publish failed",
				applogger.String("product", req.ProductID),
				applogger.Error(err),
			)
		}
	}
	return res, nil
}

// Anomalies scans a product's history for anomalous demand days.
func (s *ForecastService) Anomalies(ctx context.Context, req models.AnomalyScanRequest) (*models.AnomalyReport, error) {
	start := time.Now()

	series, product, err := s.loadSeries(ctx, req.ProductID, req.LocationID, req.Days)
	if err != nil {
		s.metrics.RecordError("anomaly_load")
		return nil, err
	}

	rep, err := s.engine.ScanWith(ctx, product, series, req.Sensitivity, req.MinDevPct)
	if err != nil {
		s.metrics.RecordError("anomaly_scan")
		return nil, err
	}

	s.metrics.RecordAnomalies(req.ProductID, len(rep.Anomalies))
	s.metrics.RecordLatency("anomaly_scan", time.Since(start).Seconds())

	if s.pub != nil && len(rep.Anomalies) > 0 {
		if err := s.pub.PublishAnomalies(ctx, rep); err != nil && s.l != nil {
			s.l.Warn("anomaly publish failed",
				applogger.String("product", req.ProductID),
				applogger.Error(err),
			)
		}
	}
	return rep, nil
}

// Backtest evaluates forecast accuracy over a product's history.
func (s *ForecastService) Backtest(ctx context.Context, req models.BacktestRequest) (models.BacktestResult, error) {
	start := time.Now()

	series, _, err := s.loadSeries(ctx, req.ProductID, req.LocationID, req.Days)
	if err != nil {
		s.metrics.RecordError("backtest_load")
		return models.BacktestResult{}, err
	}

	res := s.engine.Backtest(series, req.Horizon)
	s.metrics.RecordLatency("backtest", time.Since(start).Seconds())
	return res, nil
}

func (s *ForecastService) loadSeries(ctx context.Context, productID, locationID string, days int) ([]models.DailyObservation, models.Product, error) {
	if days <= 0 {
		days = 180
	}
	to := time.Now().UTC().Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -days)

	movements, err := s.store.Movements(ctx, productID, locationID, from, to)
	if err != nil {
		return nil, models.Product{}, err
	}
	product, err := s.store.Product(ctx, productID)
	if err != nil {
		return nil, models.Product{}, err
	}

	series, err := s.engine.BuildSeries(movements, from, to)
	if err != nil {
		return nil, models.Product{}, err
	}
	return series, product, nil
}
