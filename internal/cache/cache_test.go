package cache_test

import (
	"testing"
	"time"

	"github.com/JanDarpan/JD-Backend/internal/cache"
)

// TestSetGet verifies that a value stored with a TTL is readable before the
// TTL elapses.
func TestSetGet(t *testing.T) {
	s := cache.New()
	s.Set("district", "GJ13", time.Minute)

	v, ok := s.Get("district")
	if !ok {
		t.Fatal("expected cache hit before expiry")
	}
	if v != "GJ13" {
		t.Errorf("expected GJ13, got %v", v)
	}
}

// TestExpiry verifies that a value is absent once its TTL has elapsed.
func TestExpiry(t *testing.T) {
	s := cache.New()
	s.Set("district", "GJ13", 20*time.Millisecond)

	time.Sleep(50 * time.Millisecond)

	if _, ok := s.Get("district"); ok {
		t.Error("expected cache miss after expiry")
	}
}

// TestNoExpiry verifies that a non-positive TTL stores the value indefinitely.
func TestNoExpiry(t *testing.T) {
	s := cache.New()
	s.Set("lang", "hi", 0)

	if _, ok := s.Get("lang"); !ok {
		t.Error("expected entry with zero TTL to persist")
	}
}

func TestDelete(t *testing.T) {
	s := cache.New()
	s.Set("k", 1, time.Minute)
	s.Delete("k")

	if _, ok := s.Get("k"); ok {
		t.Error("expected miss after delete")
	}
}

func TestKey(t *testing.T) {
	got := cache.Key("location", "ip", "203.0.113.9")
	want := "location:ip:203.0.113.9"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if got := cache.Key("stateavg", "Gujarat", 2025, 9); got != "stateavg:Gujarat:2025:9" {
		t.Errorf("unexpected key: %q", got)
	}
}
