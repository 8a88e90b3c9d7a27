//go:build wireinject
// +build wireinject

package di

import (
	"DemandCast/pkg/config"
	"DemandCast/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideCache,

		// Repositories
		ProvideMovementStore,
		ProvideReportPublisher,
		ProvideMovementStream,

		// Engine
		ProvideCalendar,
		ProvideEngine,

		// Use cases
		ProvideForecastService,
		ProvideMovementProcessor,
		ProvideMovementCollector,

		// Serving layer
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
