package models

import "time"

// Trend directions.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// TrendResult summarizes the linear trend over a demand series.
// Confidence combines regression fit with Mann-Kendall significance:
// rSquared * (1 - pValue). Direction is stable unless p < 0.05.
type TrendResult struct {
	Direction  string  `json:"direction"`
	Slope      float64 `json:"slope"`
	RSquared   float64 `json:"rSquared"`
	Confidence float64 `json:"confidence"`
}

// SeasonalityResult reports whether a repeating pattern was found.
type SeasonalityResult struct {
	Detected    bool     `json:"detected"`
	Strength    float64  `json:"strength"` // 0..1
	Period      int      `json:"period"`   // days
	PeakPeriods []string `json:"peakPeriods"`
}

// ConfidenceInterval bounds a predicted value; lower >= 0 and
// lower <= predicted <= upper.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ForecastPoint is one future day of predicted demand with its components.
type ForecastPoint struct {
	Date               time.Time          `json:"date"`
	PredictedDemand    uint64             `json:"predictedDemand"`
	ConfidenceInterval ConfidenceInterval `json:"confidenceInterval"`
	TrendComponent     float64            `json:"trendComponent"`
	SeasonalComponent  float64            `json:"seasonalComponent"`
	ResidualComponent  float64            `json:"residualComponent"`
}

// BacktestResult aggregates walk-forward evaluation metrics.
// Accuracy is max(0.1, 1 - MAPE); SamplesTested == 0 marks the
// conservative default used when history is too short.
type BacktestResult struct {
	Accuracy      float64 `json:"accuracy"`
	MAPE          float64 `json:"mape"`
	RMSE          float64 `json:"rmse"`
	MAE           float64 `json:"mae"`
	SamplesTested int     `json:"samplesTested"`
}

// ForecastResult is the full forecast for one product.
type ForecastResult struct {
	Product      Product           `json:"product"`
	ForecastData []ForecastPoint   `json:"forecastData"`
	Accuracy     float64           `json:"accuracy"`
	Trend        TrendResult       `json:"trend"`
	Seasonality  SeasonalityResult `json:"seasonality"`
	Backtesting  BacktestResult    `json:"backtesting"`
	GeneratedAt  time.Time         `json:"generatedAt"`
}
