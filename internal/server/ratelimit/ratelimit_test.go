package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/resume-analyzer/internal/config"
)

// fakeClock is a manually advanced time source
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestBucket_Take(t *testing.T) {
	start := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	b := newBucket(3, 1.0, start)

	for i := 0; i < 3; i++ {
		ok, remaining, _ := b.take(start)
		if !ok {
			t.Fatalf("Expected take %d to succeed", i+1)
		}
		if remaining != 2-i {
			t.Errorf("take %d: expected %d remaining, got %d", i+1, 2-i, remaining)
		}
	}

	ok, _, reset := b.take(start)
	if ok {
		t.Error("Expected take on an empty bucket to fail")
	}
	if want := start.Add(3 * time.Second); !reset.Equal(want) {
		t.Errorf("Expected reset at %v, got %v", want, reset)
	}
	if got := b.retryIn(); got != time.Second {
		t.Errorf("Expected retry in 1s, got %v", got)
	}

	// half a second earns half a token, which is not enough
	if ok, _, _ := b.take(start.Add(500 * time.Millisecond)); ok {
		t.Error("Expected take after 0.5s to fail")
	}
	if ok, _, _ := b.take(start.Add(time.Second)); !ok {
		t.Error("Expected take after 1s to succeed")
	}
}

func TestBucket_RefillCapsAtCapacity(t *testing.T) {
	start := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	b := newBucket(2, 10.0, start)

	_, remaining, reset := b.take(start.Add(time.Hour))
	if remaining != 1 {
		t.Errorf("Expected 1 remaining after a long idle period, got %d", remaining)
	}
	if want := start.Add(time.Hour + 100*time.Millisecond); !reset.Equal(want) {
		t.Errorf("Expected reset at %v, got %v", want, reset)
	}
}

func TestLimiter_Allow(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  5,
		DefaultWindow: time.Minute,
	}).WithClock(clock.Now)
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("10.0.0.1", "/analyze", "POST")
		if !allowed {
			t.Fatalf("Expected request %d to be allowed", i+1)
		}
		if info.Limit != 5 || info.Remaining != 4-i {
			t.Errorf("request %d: unexpected info %+v", i+1, info)
		}
	}

	allowed, info := limiter.Allow("10.0.0.1", "/analyze", "POST")
	if allowed {
		t.Fatal("Expected 6th request to be denied")
	}
	if info.RetryAfter < 11*time.Second || info.RetryAfter > 12*time.Second {
		t.Errorf("Expected retry after about 12s, got %v", info.RetryAfter)
	}

	// another client has its own bucket
	if allowed, _ := limiter.Allow("10.0.0.2", "/analyze", "POST"); !allowed {
		t.Error("Expected a different client to be allowed")
	}

	clock.Advance(13 * time.Second)
	if allowed, _ := limiter.Allow("10.0.0.1", "/analyze", "POST"); !allowed {
		t.Error("Expected request after refill to be allowed")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false, DefaultLimit: 1})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		if allowed, _ := limiter.Allow("10.0.0.1", "/analyze", "POST"); !allowed {
			t.Fatalf("Expected request %d to be allowed when disabled", i+1)
		}
	}
	if limiter.Len() != 0 {
		t.Error("Expected no buckets when disabled")
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter := NewLimiter(FromSettings(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 8, Burst: 8})).
		WithClock(newFakeClock().Now)
	defer limiter.Stop()

	uploads := 0
	for i := 0; i < 5; i++ {
		if allowed, _ := limiter.Allow("10.0.0.1", "/analyze-resume", "POST"); allowed {
			uploads++
		}
	}
	if uploads != 2 {
		t.Errorf("Expected 2 uploads allowed, got %d", uploads)
	}

	texts := 0
	for i := 0; i < 10; i++ {
		if allowed, _ := limiter.Allow("10.0.0.1", "/analyze", "POST"); allowed {
			texts++
		}
	}
	if texts != 8 {
		t.Errorf("Expected 8 text requests allowed, got %d", texts)
	}

	for i := 0; i < 20; i++ {
		if allowed, info := limiter.Allow("10.0.0.1", "/health", "GET"); !allowed || info.Limit != 0 {
			t.Fatalf("Expected health checks to be unlimited, got %+v", info)
		}
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  50,
		DefaultWindow: time.Minute,
	}).WithClock(newFakeClock().Now)
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("10.0.0.1", "/analyze", "POST"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Errorf("Expected exactly 50 allowed requests, got %d", allowed)
	}
}

func TestLimiter_Sweep(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		IdleTTL:       10 * time.Minute,
	}).WithClock(clock.Now)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		limiter.Allow(fmt.Sprintf("10.0.0.%d", i), "/analyze", "POST")
	}
	clock.Advance(5 * time.Minute)
	limiter.Allow("10.0.0.0", "/analyze", "POST")

	clock.Advance(6 * time.Minute)
	limiter.sweep()

	if got := limiter.Len(); got != 1 {
		t.Errorf("Expected 1 bucket after sweep, got %d", got)
	}
}

func TestLimiter_UnmatchedPathsShareBucket(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    3,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(60, 10),
	}).WithClock(newFakeClock().Now)
	defer limiter.Stop()

	allowed := 0
	for i := 0; i < 50; i++ {
		if ok, _ := limiter.Allow("10.0.0.1", fmt.Sprintf("/missing/%d", i), "GET"); ok {
			allowed++
		}
	}
	if allowed != 3 {
		t.Errorf("Expected 3 requests to unknown paths allowed, got %d", allowed)
	}
	if got := limiter.Len(); got != 1 {
		t.Errorf("Expected one bucket for all unknown paths, got %d", got)
	}

	limiter.Allow("10.0.0.1", "/analyze", "POST")
	if got := limiter.Len(); got != 2 {
		t.Errorf("Expected a separate bucket for a configured endpoint, got %d", got)
	}
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("10.0.0.1", "/analyze", "POST")
	if !allowed || info.Limit != 60 {
		t.Errorf("Expected default limit of 60, got %+v", info)
	}
}

func TestLimiter_DefaultBurst(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  60,
		DefaultWindow: time.Minute,
		DefaultBurst:  3,
	})
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		if allowed, _ := limiter.Allow("10.0.0.1", "/analyze", "POST"); !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
	}
	if allowed, _ := limiter.Allow("10.0.0.1", "/analyze", "POST"); allowed {
		t.Error("Expected request beyond burst to be denied")
	}
}

func TestFromSettings(t *testing.T) {
	cfg := FromSettings(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 40, Burst: 20})

	if !cfg.Enabled || cfg.DefaultLimit != 40 || cfg.DefaultBurst != 20 {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	upload := MatchEndpoint("/analyze-resume", "POST", cfg.EndpointConfigs)
	if upload == nil || upload.Limit != 10 || upload.Burst != 10 {
		t.Errorf("Expected upload limit 10 with burst 10, got %+v", upload)
	}

	text := MatchEndpoint("/analyze", "POST", cfg.EndpointConfigs)
	if text == nil || text.Limit != 40 || text.Burst != 20 {
		t.Errorf("Expected text limit 40 with burst 20, got %+v", text)
	}

	if disabled := FromSettings(config.RateLimitConfig{}); disabled.Enabled {
		t.Error("Expected zero settings to disable rate limiting")
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/analyze", Method: "POST", Limit: 1},
		{Path: "/reports/", Method: "GET", Limit: 2},
	}

	tests := []struct {
		path, method string
		wantLimit    int
		wantNil      bool
	}{
		{path: "/health", method: "GET", wantLimit: 0},
		{path: "/analyze", method: "OPTIONS", wantLimit: 0},
		{path: "/analyze", method: "POST", wantLimit: 1},
		{path: "/reports/42", method: "GET", wantLimit: 2},
		{path: "/analyze", method: "GET", wantNil: true},
	}

	for _, tt := range tests {
		got := MatchEndpoint(tt.path, tt.method, configs)
		if tt.wantNil {
			if got != nil {
				t.Errorf("%s %s: expected no match, got %+v", tt.method, tt.path, got)
			}
			continue
		}
		if got == nil || got.Limit != tt.wantLimit {
			t.Errorf("%s %s: expected limit %d, got %+v", tt.method, tt.path, tt.wantLimit, got)
		}
	}
}

func TestLimiter_StopTwice(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: time.Minute})
	limiter.Stop()
	limiter.Stop()
}
