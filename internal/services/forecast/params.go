package forecast

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Params is the full tuning surface of the engine. The zero value plus
// defaults yields the production constants.
type Params struct {
	// Holt-Winters smoothing constants.
	Alpha float64 `yaml:"alpha" default:"0.3" validate:"gt=0,lt=1"`
	Beta  float64 `yaml:"beta" default:"0.1" validate:"gt=0,lt=1"`
	Gamma float64 `yaml:"gamma" default:"0.2" validate:"gt=0,lt=1"`

	// SeasonLength is the seasonal cycle in days.
	SeasonLength int `yaml:"season_length" default:"7" validate:"gte=2"`

	// Horizon is the default number of future days to forecast.
	Horizon int `yaml:"horizon" default:"30" validate:"gte=1,lte=365"`

	// ConfidenceLevel for forecast bands (e.g. 0.95 -> z ~ 1.96).
	ConfidenceLevel float64 `yaml:"confidence_level" default:"0.95" validate:"gt=0,lt=1"`

	// SensitivityLevel 1-10 maps to a z threshold between 3.0 and 1.2.
	SensitivityLevel int `yaml:"sensitivity_level" default:"5" validate:"gte=1,lte=10"`

	// MinDeviationPercent gates anomaly flagging.
	MinDeviationPercent float64 `yaml:"min_deviation_percent" default:"25" validate:"gte=0,lte=100"`

	// Minimum sample thresholds per detector.
	MinTrendSamples   int `yaml:"min_trend_samples" default:"7" validate:"gte=3"`
	MinSeasonSamples  int `yaml:"min_season_samples" default:"14" validate:"gte=2"`
	MinOutlierSamples int `yaml:"min_outlier_samples" default:"4" validate:"gte=4"`

	// TrendWindow is the moving-average window of the decomposer.
	TrendWindow int `yaml:"trend_window" default:"7" validate:"gte=2"`

	// SmoothingAlpha is the decomposer's single-exponential constant.
	SmoothingAlpha float64 `yaml:"smoothing_alpha" default:"0.3" validate:"gt=0,lt=1"`

	// DefaultBaseline substitutes for the series mean on empty input.
	DefaultBaseline float64 `yaml:"default_baseline" default:"10" validate:"gte=0"`

	// BacktestWindows caps the number of walk-forward hold-out windows.
	BacktestWindows int `yaml:"backtest_windows" default:"5" validate:"gte=1,lte=20"`

	// AnomalyWindow is the sliding window of the z-score detector.
	AnomalyWindow int `yaml:"anomaly_window" default:"7" validate:"gte=2"`

	// DayOfWeekWeights is the fixed seasonal table blended with detected
	// seasonality strength, indexed Sunday..Saturday. Zero means unset.
	DayOfWeekWeights [7]float64 `yaml:"day_of_week_weights"`

	// SeasonalityPeriods are the candidate autocorrelation lags in days.
	SeasonalityPeriods []int `yaml:"seasonality_periods"`

	// SeasonalityThreshold is the detection cut-off on combined strength.
	SeasonalityThreshold float64 `yaml:"seasonality_threshold" default:"0.3" validate:"gt=0,lt=1"`
}

var paramsValidate = validator.New()

// NewParams fills defaults and validates the result.
func NewParams() (Params, error) {
	var p Params
	return p, p.Normalize()
}

// Normalize fills zero fields with defaults and validates ranges.
func (p *Params) Normalize() error {
	if err := defaults.Set(p); err != nil {
		return fmt.Errorf("params defaults: %w", err)
	}
	if len(p.SeasonalityPeriods) == 0 {
		p.SeasonalityPeriods = []int{7, 14, 30}
	}
	var zeros int
	for _, w := range p.DayOfWeekWeights {
		if w == 0 {
			zeros++
		}
	}
	switch zeros {
	case 7:
		// Sunday..Saturday; weekends lifted, midweek slightly depressed.
		p.DayOfWeekWeights = [7]float64{1.15, 0.95, 0.9, 0.9, 0.95, 1.05, 1.2}
	case 0:
	default:
		// A partially-zero table is a configuration mistake, not a request
		// for defaults.
		return fmt.Errorf("params: day_of_week_weights must set all 7 entries")
	}
	if err := paramsValidate.Struct(p); err != nil {
		return fmt.Errorf("params validate: %w", err)
	}
	return nil
}

// SensitivityZ maps sensitivity level 1-10 onto a z threshold in [1.2, 3.0];
// higher sensitivity means a lower threshold.
func (p Params) SensitivityZ() float64 {
	return 3.0 - 0.2*float64(p.SensitivityLevel-1)
}
