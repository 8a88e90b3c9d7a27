package forecast

import (
	"math"

	"DemandCast/internal/domain/models"
)

// Backtester runs walk-forward evaluation: hold out up to MaxWindows
// trailing windows of horizon size, refit on everything before each one and
// score the forecasts against the held-out actuals.
type Backtester struct {
	MaxWindows int
	HW         HoltWinters
}

// Run aggregates MAPE (zero-actual days skipped), RMSE and MAE into an
// accuracy score of max(0.1, 1-MAPE). History shorter than twice the
// horizon returns the documented conservative default instead of failing.
func (b Backtester) Run(vs []float64, horizon int) models.BacktestResult {
	if horizon <= 0 || len(vs) < 2*horizon {
		return models.BacktestResult{Accuracy: 0.75, MAPE: 0.25}
	}

	maxWindows := b.MaxWindows
	if maxWindows < 1 {
		maxWindows = 5
	}

	var (
		apeSum, sqSum, absSum float64
		apeCnt, samples       int
	)
	for w := 1; w <= maxWindows; w++ {
		cut := len(vs) - w*horizon
		if cut < horizon {
			break
		}
		train := vs[:cut]
		actual := vs[cut : cut+horizon]
		pred := b.HW.Forecast(train, horizon)

		for i := range actual {
			diff := pred[i] - actual[i]
			sqSum += diff * diff
			absSum += math.Abs(diff)
			samples++
			if actual[i] != 0 {
				apeSum += math.Abs(diff) / actual[i]
				apeCnt++
			}
		}
	}

	if samples == 0 {
		return models.BacktestResult{Accuracy: 0.75, MAPE: 0.25}
	}

	mape := 0.0
	if apeCnt > 0 {
		mape = apeSum / float64(apeCnt)
	}
	return models.BacktestResult{
		Accuracy:      math.Max(0.1, 1-mape),
		MAPE:          mape,
		RMSE:          math.Sqrt(sqSum / float64(samples)),
		MAE:           absSum / float64(samples),
		SamplesTested: samples,
	}
}
