package di

import (
	"context"
	"fmt"
	"time"

	"DemandCast/internal/domain/repository"
	"DemandCast/internal/handler/api"
	mid "DemandCast/internal/middleware"
	internalrepo "DemandCast/internal/repository"
	"DemandCast/internal/service/stream"
	"DemandCast/internal/services/calendar"
	"DemandCast/internal/services/forecast"
	"DemandCast/internal/usecase"
	pkgcache "DemandCast/pkg/cache"
	pkgch "DemandCast/pkg/clickhouse"
	"DemandCast/pkg/config"
	xhttp "DemandCast/pkg/http"
	pkgkafka "DemandCast/pkg/kafka"
	applogger "DemandCast/pkg/logger"
	"DemandCast/pkg/metrics"
	"DemandCast/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := cfg.Logging.Format
	if format == "" {
		format = "console"
	}
	level := cfg.Logging.Level
	if level == "" {
		level = "info"
	}
	return applogger.New(&applogger.Config{
		Level:  level,
		Format: format,
		Output: cfg.Logging.Output,
	})
}

// ProvideClickHouseClient creates a ClickHouse client and ensures schema.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.SchemaStatements()); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideMovementStore creates the ClickHouse movement log repository.
func ProvideMovementStore(chClient *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.MovementStore {
	store := internalrepo.NewCHMovementStore(chClient, cfg.ClickHouse.MovementTable, cfg.ClickHouse.ProductTable)
	store.SetLogger(l)
	return store
}

// ProvideReportPublisher creates the Kafka report publisher, or nil.
func ProvideReportPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.ReportPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaReportPublisher(producer, cfg.Kafka.ForecastTopic, cfg.Kafka.AnomalyTopic)
}

// ProvideMovementStream creates the WebSocket movement feed, or nil.
func ProvideMovementStream(cfg *config.Config) repository.MovementStream {
	if !cfg.Stream.Enabled {
		return nil
	}
	return stream.New(
		cfg.Stream.APIKey,
		cfg.Stream.URL,
		cfg.Stream.Locations,
		cfg.Stream.ReconnectDelay,
		cfg.Stream.PingInterval,
	)
}

// ProvideCalendar creates the calendar effect calculator.
func ProvideCalendar(cfg *config.Config) *calendar.Calculator {
	fallbacks := make([]calendar.FallbackWindow, 0, len(cfg.Calendar.FallbackWindows))
	for _, w := range cfg.Calendar.FallbackWindows {
		fallbacks = append(fallbacks, calendar.FallbackWindow{
			Year:         w.Year,
			RamadanStart: w.RamadanStart,
			RamadanEnd:   w.RamadanEnd,
			LebaranStart: w.LebaranStart,
			LebaranEnd:   w.LebaranEnd,
		})
	}
	return calendar.New(calendar.Params{
		WeekendMultiplier: cfg.Calendar.WeekendMultiplier,
		HolidayMultiplier: cfg.Calendar.HolidayMultiplier,
		PaydayMultiplier:  cfg.Calendar.PaydayMultiplier,
		SchoolMultiplier:  cfg.Calendar.SchoolMultiplier,
		HarvestMultiplier: cfg.Calendar.HarvestMultiplier,
		FixedHolidays:     cfg.Calendar.FixedHolidays,
		PaydayDays:        cfg.Calendar.PaydayDays,
		SchoolMonths:      cfg.Calendar.SchoolMonths,
		HarvestMonths:     cfg.Calendar.HarvestMonths,
		Fallback:          fallbacks,
	})
}

// ProvideEngine creates the forecasting engine from config.
func ProvideEngine(cfg *config.Config, cal *calendar.Calculator, l *applogger.Logger) (*forecast.Engine, error) {
	p := forecast.Params{
		Alpha:                cfg.Forecast.Alpha,
		Beta:                 cfg.Forecast.Beta,
		Gamma:                cfg.Forecast.Gamma,
		SeasonLength:         cfg.Forecast.SeasonLength,
		Horizon:              cfg.Forecast.Horizon,
		ConfidenceLevel:      cfg.Forecast.ConfidenceLevel,
		SensitivityLevel:     cfg.Forecast.SensitivityLevel,
		MinDeviationPercent:  cfg.Forecast.MinDeviationPercent,
		MinTrendSamples:      cfg.Forecast.MinTrendSamples,
		MinSeasonSamples:     cfg.Forecast.MinSeasonSamples,
		MinOutlierSamples:    cfg.Forecast.MinOutlierSamples,
		TrendWindow:          cfg.Forecast.TrendWindow,
		SmoothingAlpha:       cfg.Forecast.SmoothingAlpha,
		DefaultBaseline:      cfg.Forecast.DefaultBaseline,
		BacktestWindows:      cfg.Forecast.BacktestWindows,
		AnomalyWindow:        cfg.Forecast.AnomalyWindow,
		SeasonalityPeriods:   cfg.Forecast.SeasonalityPeriods,
		SeasonalityThreshold: cfg.Forecast.SeasonalityThreshold,
	}
	if len(cfg.Forecast.DayOfWeekWeights) == 7 {
		copy(p.DayOfWeekWeights[:], cfg.Forecast.DayOfWeekWeights)
	}
	return forecast.NewEngine(p, cal, l)
}

// ProvideForecastService creates the forecast use case.
func ProvideForecastService(
	store repository.MovementStore,
	engine *forecast.Engine,
	m repository.Metrics,
	pub repository.ReportPublisher,
	l *applogger.Logger,
) *usecase.ForecastService {
	svc := usecase.NewForecastService(store, engine, m, l)
	if pub != nil {
		svc.SetPublisher(pub)
	}
	return svc
}

// ProvideMovementProcessor creates the movement persistence use case.
func ProvideMovementProcessor(store repository.MovementStore, m repository.Metrics) *usecase.MovementProcessor {
	return usecase.NewMovementProcessor(store, m)
}

// ProvideMovementCollector creates the live feed collector, or nil when the
// stream is disabled.
func ProvideMovementCollector(
	s repository.MovementStream,
	processor *usecase.MovementProcessor,
	m repository.Metrics,
) *usecase.MovementCollector {
	if s == nil {
		return nil
	}
	pipe := mid.NewMovementPipeline(processor, m,
		mid.WithMaxRPS(50),
		mid.WithBufferSize(2000),
	)
	return usecase.NewMovementCollector(s, processor, m, pipe)
}

// ProvideCache creates the configured cache backend, or nil when disabled.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	switch cfg.Cache.Backend {
	case "", "memory":
		return pkgcache.NewMemoryCache(pkgcache.WithMemoryMaxSize(cfg.Cache.MaxSize)), nil
	case "redis":
		return pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
			pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
			pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
	case "layered":
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
			pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
			pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			return nil, err
		}
		return pkgcache.NewLayeredCache(rc, pkgcache.WithLayeredMemorySize(cfg.Cache.MaxSize)), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}

// ProvideHTTPHandler creates the Echo API handler.
func ProvideHTTPHandler(
	l *applogger.Logger,
	svc *usecase.ForecastService,
	c pkgcache.Service,
	cfg *config.Config,
) xhttp.Handler {
	h := api.NewForecastEchoHandler(l, svc)
	if c != nil {
		h.SetCache(c, cfg.Cache.TTL)
	}
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	collector *usecase.MovementCollector,
	processor *usecase.MovementProcessor,
	chClient *pkgch.Client,
	handler xhttp.Handler,
	pub repository.ReportPublisher,
) *server.App {
	app := server.New(cfg, l, collector, chClient)
	app.SetHTTPHandler(handler)
	app.MovementProc = processor
	if pub != nil {
		app.SetPublisher(pub)
	}
	return app
}
