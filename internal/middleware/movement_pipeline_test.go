package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"DemandCast/internal/domain/models"
)

type stubProc struct {
	mu   sync.Mutex
	got  []*models.Movement
	fail bool
}

func (s *stubProc) Process(_ context.Context, m *models.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("downstream unavailable")
	}
	s.got = append(s.got, m)
	return nil
}

func (s *stubProc) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.got)
}

type stubMetrics struct {
	mu     sync.Mutex
	errors map[string]int
}

func newStubMetrics() *stubMetrics { return &stubMetrics{errors: map[string]int{}} }

func (s *stubMetrics) RecordForecast(string)       {}
func (s *stubMetrics) RecordAnomalies(string, int) {}
func (s *stubMetrics) RecordLatency(string, float64) {}

func (s *stubMetrics) RecordError(kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors[kind]++
}

func (s *stubMetrics) errCount(kind string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors[kind]
}

func validMovement(productID string) *models.Movement {
	return &models.Movement{ProductID: productID, Date: time.Now().UTC(), Quantity: -2}
}

func TestPipelineForwardsValidMovement(t *testing.T) {
	proc := &stubProc{}
	p := NewMovementPipeline(proc, newStubMetrics())

	if err := p.Process(context.Background(), validMovement("p1")); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if proc.count() != 1 {
		t.Fatalf("movement not forwarded")
	}
}

func TestPipelineRejectsInvalidMovement(t *testing.T) {
	proc := &stubProc{}
	metrics := newStubMetrics()
	p := NewMovementPipeline(proc, metrics)

	cases := []*models.Movement{
		nil,
		{Date: time.Now().UTC()},       // missing product
		{ProductID: "p1"},              // zero date
	}
	for i, m := range cases {
		if err := p.Process(context.Background(), m); err == nil {
			t.Fatalf("case %d: invalid movement accepted", i)
		}
	}
	if metrics.errCount("pipeline_validate") != len(cases) {
		t.Fatalf("validation failures not recorded: %v", metrics.errors)
	}
	if proc.count() != 0 {
		t.Fatalf("invalid movement reached downstream")
	}
}

func TestPipelineThrottlesPerProduct(t *testing.T) {
	proc := &stubProc{}
	metrics := newStubMetrics()
	p := NewMovementPipeline(proc, metrics, WithMaxRPS(1))

	if err := p.Process(context.Background(), validMovement("p1")); err != nil {
		t.Fatalf("first event failed: %v", err)
	}
	// Second event inside the same second is silently dropped.
	if err := p.Process(context.Background(), validMovement("p1")); err != nil {
		t.Fatalf("throttled event must not error: %v", err)
	}
	if proc.count() != 1 {
		t.Fatalf("throttle did not drop the second event, forwarded %d", proc.count())
	}
	if metrics.errCount("pipeline_throttle") != 1 {
		t.Fatalf("throttle not recorded: %v", metrics.errors)
	}
	// A different product has its own budget.
	if err := p.Process(context.Background(), validMovement("p2")); err != nil {
		t.Fatalf("other product throttled: %v", err)
	}
	if proc.count() != 2 {
		t.Fatalf("expected 2 forwarded events, got %d", proc.count())
	}
}

func TestPipelineBuffersOnDownstreamFailure(t *testing.T) {
	proc := &stubProc{fail: true}
	metrics := newStubMetrics()
	p := NewMovementPipeline(proc, metrics, WithBufferSize(10))

	if err := p.Process(context.Background(), validMovement("p1")); err == nil {
		t.Fatalf("downstream failure must surface")
	}
	if metrics.errCount("pipeline_process") != 1 {
		t.Fatalf("downstream failure not recorded: %v", metrics.errors)
	}

	// Recover downstream and let the background flusher drain the buffer.
	proc.mu.Lock()
	proc.fail = false
	proc.mu.Unlock()

	p.Start(context.Background())
	defer p.Stop()

	deadline := time.After(2 * time.Second)
	for proc.count() == 0 {
		select {
		case <-deadline:
			t.Fatalf("buffered movement never flushed")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
