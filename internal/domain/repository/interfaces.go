package repository

import (
	"context"
	"time"

	"DemandCast/internal/domain/models"
)

// MovementStore provides access to the stock movement log. The forecasting
// engine itself never touches storage; only the usecase layer reads history
// through this interface.
type MovementStore interface {
	Movements(ctx context.Context, productID, locationID string, from, to time.Time) ([]models.Movement, error)
	Product(ctx context.Context, productID string) (models.Product, error)
	StoreBatch(ctx context.Context, movements []*models.Movement) error
	Health(ctx context.Context) error
	Close() error
}

// ReportPublisher pushes finished forecast/anomaly results to downstream
// consumers (alerting, dashboards).
type ReportPublisher interface {
	PublishForecast(ctx context.Context, res *models.ForecastResult) error
	PublishAnomalies(ctx context.Context, rep *models.AnomalyReport) error
	Close() error
}

// MovementStream is a live feed of stock movement events.
type MovementStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Movement, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// Metrics records operational measurements.
type Metrics interface {
	RecordForecast(productID string)
	RecordError(kind string)
	RecordAnomalies(productID string, count int)
	RecordLatency(op string, seconds float64)
}
