package service

import (
	"context"

	"DemandCast/internal/domain/models"
)

// Forecaster produces a demand forecast from a product's movement history.
// The statistical (Holt-Winters based) engine is the only in-tree
// implementation; externally trained models plug in behind the same
// interface at the integration layer.
type Forecaster interface {
	Forecast(ctx context.Context, product models.Product, history []models.DailyObservation, horizon int) (*models.ForecastResult, error)
}

// AnomalyScanner flags anomalous demand days over a series.
type AnomalyScanner interface {
	Scan(ctx context.Context, product models.Product, history []models.DailyObservation) (*models.AnomalyReport, error)
}
