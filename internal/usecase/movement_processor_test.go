package usecase

import (
	"context"
	"testing"
	"time"

	"DemandCast/internal/domain/models"
)

func TestProcessStoresMovement(t *testing.T) {
	store := &fakeStore{}
	p := NewMovementProcessor(store, newFakeMetrics())

	m := &models.Movement{ProductID: "p1", Date: time.Now().UTC(), Quantity: -3}
	if err := p.Process(context.Background(), m); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if len(store.movements) != 1 || store.movements[0].ProductID != "p1" {
		t.Fatalf("movement not stored: %v", store.movements)
	}
}

func TestProcessNilMovement(t *testing.T) {
	p := NewMovementProcessor(&fakeStore{}, newFakeMetrics())
	if err := p.Process(context.Background(), nil); err == nil {
		t.Fatalf("nil movement must be rejected")
	}
}

func TestProcessBatch(t *testing.T) {
	store := &fakeStore{}
	p := NewMovementProcessor(store, newFakeMetrics())

	batch := []*models.Movement{
		{ProductID: "p1", Date: time.Now().UTC(), Quantity: -3},
		{ProductID: "p2", Date: time.Now().UTC(), Quantity: -5},
	}
	if err := p.ProcessBatch(context.Background(), batch); err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(store.movements) != 2 {
		t.Fatalf("stored %d movements, want 2", len(store.movements))
	}
	if err := p.ProcessBatch(context.Background(), nil); err != nil {
		t.Fatalf("empty batch must be a no-op: %v", err)
	}
}
