package ratelimit

import "testing"

func TestAllowExhaustsBucket(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("k", 3, 0) {
			t.Fatalf("request %d should pass within capacity", i)
		}
	}
	if l.Allow("k", 3, 0) {
		t.Fatalf("request beyond capacity should be rejected")
	}
}

func TestAllowKeysIsolated(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0) {
		t.Fatalf("first request for a should pass")
	}
	if l.Allow("a", 1, 0) {
		t.Fatalf("a is exhausted")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatalf("b has its own bucket")
	}
}
