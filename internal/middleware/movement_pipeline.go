package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"DemandCast/internal/domain/models"
	domrepo "DemandCast/internal/domain/repository"
)

// Proc is the minimal processor interface the pipeline needs.
type Proc interface {
	Process(ctx context.Context, m *models.Movement) error
}

// MovementPipeline sits between the WebSocket feed and storage. It
// validates, throttles per product, and buffers when downstream is
// unavailable.
type MovementPipeline struct {
	proc     Proc
	metrics  domrepo.Metrics
	maxRPS   int
	bufSize  int
	bufCh    chan *models.Movement
	stopCh   chan struct{}
	started  bool
	mu       sync.Mutex
	lastSeen map[string]time.Time // per-product last accepted time
}

type PipelineOption func(*MovementPipeline)

// WithMaxRPS sets the max movement events per second per product.
func WithMaxRPS(n int) PipelineOption {
	return func(p *MovementPipeline) {
		if n > 0 {
			p.maxRPS = n
		}
	}
}

// WithBufferSize sets the temporary buffer size when downstream is unavailable.
func WithBufferSize(n int) PipelineOption {
	return func(p *MovementPipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

// NewMovementPipeline creates a new pipeline.
func NewMovementPipeline(proc Proc, metrics domrepo.Metrics, opts ...PipelineOption) *MovementPipeline {
	p := &MovementPipeline{
		proc:     proc,
		metrics:  metrics,
		maxRPS:   50,
		bufSize:  1000,
		bufCh:    make(chan *models.Movement, 1000),
		stopCh:   make(chan struct{}),
		lastSeen: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufSize != cap(p.bufCh) {
		p.bufCh = make(chan *models.Movement, p.bufSize)
	}
	return p
}

// Start launches background flushing of buffered movements.
func (p *MovementPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		backoff := 50 * time.Millisecond
		for {
			select {
			case <-p.stopCh:
				return
			case m := <-p.bufCh:
				if m == nil {
					continue
				}
				if err := p.proc.Process(ctx, m); err != nil {
					if backoff < 2*time.Second {
						backoff *= 2
					}
					p.metrics.RecordError("pipeline_flush")
					time.Sleep(backoff)
					// requeue if space; drop otherwise
					select {
					case p.bufCh <- m:
					default:
						p.metrics.RecordError("pipeline_buffer_drop")
					}
				} else {
					backoff = 50 * time.Millisecond
				}
			}
		}
	}()
}

// Stop stops the background flushing.
func (p *MovementPipeline) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()
	close(p.stopCh)
}

// Process validates, throttles, and forwards a movement downstream,
// buffering on errors.
func (p *MovementPipeline) Process(ctx context.Context, m *models.Movement) error {
	start := time.Now()
	if err := validateMovement(m); err != nil {
		p.metrics.RecordError("pipeline_validate")
		return err
	}
	if !p.allow(m.ProductID, start) {
		p.metrics.RecordError("pipeline_throttle")
		return nil
	}

	if err := p.proc.Process(ctx, m); err != nil {
		p.metrics.RecordError("pipeline_process")
		select {
		case p.bufCh <- m:
		default:
			p.metrics.RecordError("pipeline_buffer_full")
		}
		return fmt.Errorf("pipeline downstream: %w", err)
	}
	p.metrics.RecordLatency("pipeline_process", time.Since(start).Seconds())
	return nil
}

func validateMovement(m *models.Movement) error {
	if m == nil {
		return fmt.Errorf("movement nil")
	}
	if m.ProductID == "" {
		return fmt.Errorf("product_id empty")
	}
	if m.Date.IsZero() {
		return fmt.Errorf("date invalid")
	}
	return nil
}

func (p *MovementPipeline) allow(productID string, now time.Time) bool {
	if p.maxRPS <= 0 {
		return true
	}
	last := p.lastSeen[productID]
	if last.IsZero() {
		p.lastSeen[productID] = now
		return true
	}
	if now.Sub(last) < time.Second/time.Duration(p.maxRPS) {
		return false
	}
	p.lastSeen[productID] = now
	return true
}
