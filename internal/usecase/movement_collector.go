package usecase

import (
	"context"

	"DemandCast/internal/domain/models"
	drepo "DemandCast/internal/domain/repository"
	mid "DemandCast/internal/middleware"
)

// MovementCollector consumes the live movement feed and routes events into
// the pipeline.
type MovementCollector struct {
	stream  drepo.MovementStream
	proc    *MovementProcessor
	metrics drepo.Metrics
	pipe    *mid.MovementPipeline
}

// NewMovementCollector creates a new MovementCollector instance.
func NewMovementCollector(stream drepo.MovementStream, proc *MovementProcessor, metrics drepo.Metrics, pipe *mid.MovementPipeline) *MovementCollector {
	return &MovementCollector{stream: stream, proc: proc, metrics: metrics, pipe: pipe}
}

// IsConnected returns true if the movement stream is connected.
func (c *MovementCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *MovementCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	mvCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, mvCh, errCh)
	return nil
}

func (c *MovementCollector) consume(ctx context.Context, mvCh <-chan *models.Movement, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("stream")
				_ = c.stream.Reconnect(ctx)
			}
		case m := <-mvCh:
			if m == nil {
				continue
			}
			if c.pipe != nil {
				_ = c.pipe.Process(ctx, m)
			} else {
				_ = c.proc.Process(ctx, m)
			}
		}
	}
}

// Processor returns the underlying MovementProcessor for lifecycle management.
func (c *MovementCollector) Processor() *MovementProcessor { return c.proc }

// Shutdown stops the pipeline and closes the stream.
func (c *MovementCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return c.stream.Close()
}
