package usecase

import (
	"context"
	"sync"

	"DemandCast/internal/domain/models"
	applogger "DemandCast/pkg/logger"
)

// BatchItem is the outcome of one product in a batch run.
type BatchItem struct {
	ProductID string
	Result    *models.ForecastResult
	Err       error
}

// BatchRunner fans forecast requests for many products over a worker pool.
type BatchRunner struct {
	svc     *ForecastService
	workers int
	l       *applogger.Logger
}

// NewBatchRunner creates a batch runner. Workers below 1 default to 4.
func NewBatchRunner(svc *ForecastService, workers int, l *applogger.Logger) *BatchRunner {
	if workers < 1 {
		workers = 4
	}
	return &BatchRunner{svc: svc, workers: workers, l: l}
}

// Run forecasts every product and returns results in input order.
// Individual failures do not abort the batch.
func (r *BatchRunner) Run(ctx context.Context, productIDs []string, locationID string, horizon, days int) []BatchItem {
	out := make([]BatchItem, len(productIDs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				pid := productIDs[i]
				res, err := r.svc.Forecast(ctx, models.ForecastRequest{
					ProductID:  pid,
					LocationID: locationID,
					Horizon:    horizon,
					Days:       days,
				})
				out[i] = BatchItem{ProductID: pid, Result: res, Err: err}
				if err != nil && r.l != nil {
					r.l.Warn("batch forecast failed",
						applogger.String("product", pid),
						applogger.Error(err),
					)
				}
			}
		}()
	}

	for i := range productIDs {
		select {
		case <-ctx.Done():
			// mark the rest as cancelled
			for j := i; j < len(productIDs); j++ {
				out[j] = BatchItem{ProductID: productIDs[j], Err: ctx.Err()}
			}
			close(jobs)
			wg.Wait()
			return out
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return out
}
