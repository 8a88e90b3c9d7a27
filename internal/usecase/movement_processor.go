package usecase

import (
	"context"
	"fmt"
	"time"

	"DemandCast/internal/domain/models"
	drepo "DemandCast/internal/domain/repository"
)

// MovementProcessor persists movement events into the movement log.
type MovementProcessor struct {
	store   drepo.MovementStore
	metrics drepo.Metrics
}

// NewMovementProcessor creates a new MovementProcessor instance.
func NewMovementProcessor(store drepo.MovementStore, metrics drepo.Metrics) *MovementProcessor {
	return &MovementProcessor{store: store, metrics: metrics}
}

// Process persists a single movement event.
func (p *MovementProcessor) Process(ctx context.Context, m *models.Movement) error {
	if m == nil {
		return fmt.Errorf("movement is nil")
	}

	start := time.Now()
	if err := p.store.StoreBatch(ctx, []*models.Movement{m}); err != nil {
		p.metrics.RecordError("store")
		return fmt.Errorf("store movement: %w", err)
	}
	p.metrics.RecordLatency("store", time.Since(start).Seconds())
	return nil
}

// ProcessBatch persists multiple movement events in one insert.
func (p *MovementProcessor) ProcessBatch(ctx context.Context, movements []*models.Movement) error {
	if len(movements) == 0 {
		return nil
	}

	start := time.Now()
	if err := p.store.StoreBatch(ctx, movements); err != nil {
		p.metrics.RecordError("store_batch")
		return fmt.Errorf("store batch: %w", err)
	}
	p.metrics.RecordLatency("store_batch", time.Since(start).Seconds())
	return nil
}

// Close closes underlying resources if available.
func (p *MovementProcessor) Close() {
	if p.store != nil {
		_ = p.store.Close()
	}
}
