package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	l := NewLimiter(1, 2)

	if !l.Allow("https://example.com/a") {
		t.Error("Expected first request allowed")
	}
	if !l.Allow("https://example.com/b") {
		t.Error("Expected second request within burst allowed")
	}
	if l.Allow("https://example.com/c") {
		t.Error("Expected third request beyond burst denied")
	}
}

func TestLimiter_DomainsIndependent(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("https://a.example/x") {
		t.Error("Expected first domain allowed")
	}
	if !l.Allow("https://b.example/x") {
		t.Error("Expected a different domain to have its own budget")
	}
	if l.Allow("https://a.example/y") {
		t.Error("Expected first domain exhausted")
	}
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	l.Allow("https://example.com/") // drain the burst

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "https://example.com/"); err == nil {
		t.Error("Expected context deadline error while waiting for a token")
	}
}

func TestLimiter_WaitProceedsWithBudget(t *testing.T) {
	l := NewLimiter(100, 5)

	if err := l.Wait(context.Background(), "https://example.com/"); err != nil {
		t.Errorf("Wait: %v", err)
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	l := NewLimiter(1, 1)

	if l.Allow("://not a url") {
		t.Error("Expected invalid URL denied")
	}
	if err := l.Wait(context.Background(), "://not a url"); err == nil {
		t.Error("Expected parse error from Wait")
	}
}

func TestLimiter_DefaultBurst(t *testing.T) {
	l := NewLimiter(100, 0)

	// Zero burst falls back to 5.
	for i := 0; i < 5; i++ {
		if !l.Allow("https://example.com/") {
			t.Fatalf("Expected request %d within default burst", i+1)
		}
	}
}
