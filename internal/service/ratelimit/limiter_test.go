package ratelimit

import (
	"testing"
	"time"
)

func TestBurstThenDeny(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("insights", 3, 0.1) {
			t.Fatalf("call %d within burst was denied", i+1)
		}
	}
	if l.Allow("insights", 3, 0.1) {
		t.Fatal("call beyond burst was allowed")
	}
}

func TestRefillOverTime(t *testing.T) {
	l := New()
	current := time.Unix(1000, 0)
	l.now = func() time.Time { return current }

	if !l.Allow("k", 1, 1) {
		t.Fatal("first call denied")
	}
	if l.Allow("k", 1, 1) {
		t.Fatal("bucket should be empty")
	}

	current = current.Add(1500 * time.Millisecond)
	if !l.Allow("k", 1, 1) {
		t.Fatal("bucket should have refilled")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0) {
		t.Fatal("first key denied")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatal("second key should have its own bucket")
	}
	if l.Allow("a", 1, 0) {
		t.Fatal("first key should be exhausted")
	}
}
