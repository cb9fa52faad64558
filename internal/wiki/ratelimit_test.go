package wiki

import (
	"context"
	"testing"
	"time"
)

func TestHostLimiterBurst(t *testing.T) {
	l := NewHostLimiter(1, 2)

	if !l.Allow("https://en.wikipedia.org/wiki/Paris") {
		t.Error("first request should be allowed")
	}
	if !l.Allow("https://en.wikipedia.org/wiki/Octopus") {
		t.Error("second request should be allowed within burst")
	}
	if l.Allow("https://en.wikipedia.org/wiki/Moon") {
		t.Error("third request should exceed burst")
	}
}

func TestHostLimiterPerHost(t *testing.T) {
	l := NewHostLimiter(1, 1)

	if !l.Allow("https://en.wikipedia.org/wiki/Paris") {
		t.Error("first host should be allowed")
	}
	if l.Allow("https://en.wikipedia.org/wiki/Moon") {
		t.Error("first host should be exhausted")
	}
	if !l.Allow("https://fr.wikipedia.org/wiki/Paris") {
		t.Error("second host should have its own budget")
	}
}

func TestHostLimiterDefaults(t *testing.T) {
	l := NewHostLimiter(0, 0)

	if !l.Allow("https://en.wikipedia.org/wiki/Paris") {
		t.Error("limiter with zero config should still allow requests")
	}
}

func TestHostLimiterWaitWithDelay(t *testing.T) {
	l := NewHostLimiter(100, 10)

	start := time.Now()
	if err := l.WaitWithDelay(context.Background(), "https://en.wikipedia.org/wiki/Paris", 50*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected at least 50ms delay, waited %v", elapsed)
	}
}

func TestHostLimiterWaitCancelled(t *testing.T) {
	l := NewHostLimiter(1, 1)
	url := "https://en.wikipedia.org/wiki/Paris"

	if err := l.Wait(context.Background(), url); err != nil {
		t.Fatalf("first Wait failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Wait(ctx, url); err == nil {
		t.Error("expected error from cancelled context")
	}
}
