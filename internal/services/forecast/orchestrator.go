package forecast

import (
	"context"
	"math"
	"time"

	"DemandCast/internal/domain/models"
	domsvc "DemandCast/internal/domain/service"
	"DemandCast/internal/services/calendar"
	applogger "DemandCast/pkg/logger"
)

// Engine composes the series builder, analyzers and forecaster into the
// full demand forecasting pipeline. It is stateless between calls and safe
// for concurrent use; batch work is parallelized by the caller.
type Engine struct {
	p   Params
	cal *calendar.Calculator
	l   *applogger.Logger

	builder     *SeriesBuilder
	outliers    OutlierFilter
	trend       TrendAnalyzer
	decomposer  SeasonalDecomposer
	seasonality SeasonalityDetector
	hw          HoltWinters
	intervals   IntervalEstimator
	backtester  Backtester
	anomalies   AnomalyDetector
}

var (
	_ domsvc.Forecaster     = (*Engine)(nil)
	_ domsvc.AnomalyScanner = (*Engine)(nil)
)

// NewEngine validates params (zero fields get the production defaults)
// and wires the component set.
func NewEngine(p Params, cal *calendar.Calculator, l *applogger.Logger) (*Engine, error) {
	if err := p.Normalize(); err != nil {
		return nil, err
	}
	hw := HoltWinters{Alpha: p.Alpha, Beta: p.Beta, Gamma: p.Gamma, SeasonLen: p.SeasonLength}
	return &Engine{
		p:        p,
		cal:      cal,
		l:        l,
		builder:  NewSeriesBuilder(cal),
		outliers: OutlierFilter{MinSamples: p.MinOutlierSamples},
		trend:    TrendAnalyzer{},
		decomposer: SeasonalDecomposer{
			Window:          p.TrendWindow,
			Alpha:           p.SmoothingAlpha,
			MinSamples:      p.MinSeasonSamples,
			DefaultBaseline: p.DefaultBaseline,
		},
		seasonality: SeasonalityDetector{
			Periods:    p.SeasonalityPeriods,
			Threshold:  p.SeasonalityThreshold,
			MinSamples: p.MinSeasonSamples,
			Cal:        cal,
		},
		hw:         hw,
		intervals:  IntervalEstimator{Level: p.ConfidenceLevel},
		backtester: Backtester{MaxWindows: p.BacktestWindows, HW: hw},
		anomalies: AnomalyDetector{
			Window:              p.AnomalyWindow,
			ZThreshold:          p.SensitivityZ(),
			MinDeviationPercent: p.MinDeviationPercent,
		},
	}, nil
}

// Params returns the effective (normalized) engine parameters.
func (e *Engine) Params() Params { return e.p }

// BuildSeries aggregates movement events into the daily demand series.
func (e *Engine) BuildSeries(events []models.Movement, start, end time.Time) ([]models.DailyObservation, error) {
	return e.builder.Build(events, start, end)
}

// Forecast runs the full pipeline over a prebuilt daily series and returns
// horizon days of predicted demand with components and confidence bands.
func (e *Engine) Forecast(ctx context.Context, product models.Product, history []models.DailyObservation, horizon int) (*models.ForecastResult, error) {
	if err := ValidateSeries(history); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if horizon <= 0 {
		horizon = e.p.Horizon
	}

	cleaned := e.outliers.Filter(history)
	vs := values(cleaned)

	tr := e.trend.Analyze(vs)
	dec := e.decomposer.Decompose(cleaned)
	seas := e.seasonality.Detect(cleaned)
	bt := e.backtester.Run(vs, horizon)

	base := e.hw.Forecast(vs, horizon)
	if len(vs) == 0 {
		for i := range base {
			base[i] = dec.Baseline
		}
	}

	residual := stdDev(dec.Residual)
	start := e.forecastStart(history)
	trendActive := len(vs) >= e.p.MinTrendSamples

	predicted := make([]float64, horizon)
	points := make([]models.ForecastPoint, horizon)
	for i := 0; i < horizon; i++ {
		date := start.AddDate(0, 0, i)

		trendComp := 0.0
		if trendActive {
			// Trend influence decays over the horizon.
			trendComp = tr.Slope * float64(i) * math.Exp(-0.02*float64(i)) * tr.Confidence
		}
		dow := int(date.Weekday())
		seasComp := (e.p.DayOfWeekWeights[dow] - 1) * seas.Strength

		eff := e.cal.LunarEffect(date) * e.cal.BusinessCycleEffect(date) * e.cal.WeekendHolidayEffect(date)

		raw := base[i] * (1 + trendComp) * (1 + seasComp) * eff
		raw = math.Max(0, raw)
		predicted[i] = raw

		points[i] = models.ForecastPoint{
			Date:              date,
			PredictedDemand:   uint64(math.Round(raw)),
			TrendComponent:    trendComp,
			SeasonalComponent: seasComp,
			ResidualComponent: residual,
		}
	}

	bands := e.intervals.Bands(vs, predicted)
	for i := range points {
		ci := bands[i]
		p := float64(points[i].PredictedDemand)
		// Rounding must not push the point outside its band.
		ci.Lower = math.Min(ci.Lower, p)
		ci.Upper = math.Max(ci.Upper, p)
		points[i].ConfidenceInterval = ci
	}

	if e.l != nil {
		e.l.Debug("forecast generated",
			applogger.String("product", product.ID),
			applogger.Int("history_days", len(history)),
			applogger.Int("horizon", horizon),
			applogger.Float64("accuracy", bt.Accuracy),
		)
	}

	return &models.ForecastResult{
		Product:      product,
		ForecastData: points,
		Accuracy:     bt.Accuracy,
		Trend:        tr,
		Seasonality:  seas,
		Backtesting:  bt,
		GeneratedAt:  time.Now().UTC(),
	}, nil
}

// Scan runs anomaly detection over the series and returns a report. The
// outlier filter is deliberately not applied here; spikes are the signal.
func (e *Engine) Scan(ctx context.Context, product models.Product, history []models.DailyObservation) (*models.AnomalyReport, error) {
	if err := ValidateSeries(history); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	found := e.anomalies.Detect(history)

	if e.l != nil && len(found) > 0 {
		e.l.Debug("anomalies detected",
			applogger.String("product", product.ID),
			applogger.Int("count", len(found)),
		)
	}

	return &models.AnomalyReport{
		Product:     product,
		Anomalies:   found,
		Summary:     Summarize(found),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// ScanWith runs anomaly detection with per-request sensitivity overrides.
func (e *Engine) ScanWith(ctx context.Context, product models.Product, history []models.DailyObservation, sensitivity int, minDevPct float64) (*models.AnomalyReport, error) {
	if sensitivity < 1 || sensitivity > 10 {
		sensitivity = e.p.SensitivityLevel
	}
	if minDevPct <= 0 {
		minDevPct = e.p.MinDeviationPercent
	}
	override := *e
	p := e.p
	p.SensitivityLevel = sensitivity
	p.MinDeviationPercent = minDevPct
	override.anomalies = AnomalyDetector{
		Window:              p.AnomalyWindow,
		ZThreshold:          p.SensitivityZ(),
		MinDeviationPercent: p.MinDeviationPercent,
	}
	return override.Scan(ctx, product, history)
}

// Backtest evaluates forecast accuracy over a prebuilt series.
func (e *Engine) Backtest(history []models.DailyObservation, horizon int) models.BacktestResult {
	if horizon <= 0 {
		horizon = e.p.Horizon
	}
	cleaned := e.outliers.Filter(history)
	return e.backtester.Run(values(cleaned), horizon)
}

func (e *Engine) forecastStart(history []models.DailyObservation) time.Time {
	if len(history) == 0 {
		return midnight(time.Now().UTC()).AddDate(0, 0, 1)
	}
	return history[len(history)-1].Date.AddDate(0, 0, 1)
}
