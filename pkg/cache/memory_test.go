package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type payload struct {
	ProductID string  `json:"product_id"`
	Demand    float64 `json:"demand"`
}

func TestMemoryCacheSetGetTyped(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	in := payload{ProductID: "p1", Demand: 42.5}
	if err := mc.Set(ctx, "forecast:p1", in, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	out, err := GetTyped[payload](ctx, mc, "forecast:p1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v vs %+v", out, in)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	if _, err := GetTyped[payload](context.Background(), mc, "absent"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiration(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	var got string
	if err := mc.Get(ctx, "k", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected expired key to miss, got %v", err)
	}
}

func TestMemoryCacheDeleteByPattern(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "forecast:p1", "a", time.Minute)
	_ = mc.Set(ctx, "forecast:p2", "b", time.Minute)
	_ = mc.Set(ctx, "anomaly:p1", "c", time.Minute)

	if err := mc.DeleteByPattern(ctx, BuildPattern("forecast")); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if ok, _ := mc.Exists(ctx, "forecast:p1", "forecast:p2"); ok {
		t.Fatalf("forecast keys survived pattern delete")
	}
	if ok, _ := mc.Exists(ctx, "anomaly:p1"); !ok {
		t.Fatalf("unrelated key removed")
	}
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "a", "1", time.Minute)
	time.Sleep(time.Millisecond)
	_ = mc.Set(ctx, "b", "2", time.Minute)
	time.Sleep(time.Millisecond)
	_ = mc.Set(ctx, "c", "3", time.Minute) // evicts a

	if ok, _ := mc.Exists(ctx, "a"); ok {
		t.Fatalf("oldest key not evicted")
	}
	if ok, _ := mc.Exists(ctx, "b", "c"); !ok {
		t.Fatalf("recent keys evicted")
	}
}

func TestMemoryCacheTryLock(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	ok, err := mc.TryLock(ctx, "lock:p1", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first lock should succeed: %v", err)
	}
	if ok, _ := mc.TryLock(ctx, "lock:p1", time.Minute); ok {
		t.Fatalf("second lock should fail while held")
	}
	if err := mc.Unlock(ctx, "lock:p1"); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}
	if ok, _ := mc.TryLock(ctx, "lock:p1", time.Minute); !ok {
		t.Fatalf("lock should be free after unlock")
	}
}

func TestGenerateKeyWithParams(t *testing.T) {
	got := GenerateKeyWithParams("forecast", "p1", "loc-1", 30, 180)
	want := "forecast:p1:loc-1:30:180"
	if got != want {
		t.Fatalf("key %q, want %q", got, want)
	}
}
