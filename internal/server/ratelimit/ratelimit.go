// Package ratelimit throttles analysis requests per client with token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// anyPath keys the bucket shared by every path without its own config
const anyPath = "*"

// DefaultIdleTTL is how long an unused bucket is kept before a sweep drops it
const DefaultIdleTTL = time.Hour

// bucket holds the tokens of one client on one endpoint. Tokens refill
// continuously at rate per second up to capacity.
type bucket struct {
	capacity float64
	rate     float64
	tokens   float64
	refilled time.Time
	lastUsed time.Time
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity),
		refilled: now,
		lastUsed: now,
	}
}

// take refills the bucket, then consumes a token when one is available.
// reset is when the bucket would be full again.
func (b *bucket) take(now time.Time) (ok bool, remaining int, reset time.Time) {
	if elapsed := now.Sub(b.refilled); elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed.Seconds()*b.rate)
	}
	b.refilled = now
	b.lastUsed = now

	if b.tokens >= 1 {
		b.tokens--
		ok = true
	}

	reset = now
	if missing := b.capacity - b.tokens; missing > 0 && b.rate > 0 {
		reset = now.Add(time.Duration(missing / b.rate * float64(time.Second)))
	}
	return ok, int(b.tokens), reset
}

// retryIn is how long until the next token arrives
func (b *bucket) retryIn() time.Duration {
	if b.tokens >= 1 || b.rate <= 0 {
		return 0
	}
	return time.Duration((1 - b.tokens) / b.rate * float64(time.Second))
}

// Info describes the outcome of one Allow call, for response headers
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	DefaultBurst    int // burst for unmatched endpoints; DefaultLimit when 0
	CleanupInterval time.Duration
	IdleTTL         time.Duration // DefaultIdleTTL when 0
	EndpointConfigs []EndpointConfig
}

type bucketKey struct {
	client string
	method string
	path   string
}

// Limiter keeps one bucket per client, method and path. It is safe for
// concurrent use.
type Limiter struct {
	config *Config
	now    func() time.Time

	mu      sync.Mutex
	buckets map[bucketKey]*bucket

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a limiter. A nil config allows 60 requests a minute on
// every endpoint. When CleanupInterval is set, idle buckets are swept in the
// background until Stop.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    60,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		config:  config,
		now:     time.Now,
		buckets: make(map[bucketKey]*bucket),
		stop:    make(chan struct{}),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		go l.sweepLoop(config.CleanupInterval)
	}
	return l
}

// WithClock replaces the limiter's time source
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.mu.Lock()
	l.now = now
	l.mu.Unlock()
	return l
}

// Allow consumes a token for clientID on the endpoint and reports whether the
// request may proceed.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	ec := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if ec == nil {
		ec = &EndpointConfig{
			Path:   anyPath,
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultBurst,
		}
	}
	if ec.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	// buckets follow the matched config, so unknown paths cannot add keys
	key := bucketKey{client: clientID, method: method, path: ec.Path}
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(ec.capacity(), ec.refillRate(), now)
		l.buckets[key] = b
	}

	allowed, remaining, reset := b.take(now)
	info := Info{
		Allowed:   allowed,
		Limit:     ec.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !allowed {
		info.RetryAfter = b.retryIn()
	}
	return allowed, info
}

// Len returns the number of live buckets
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// sweep drops buckets unused since before now minus the idle TTL
func (l *Limiter) sweep() {
	ttl := l.config.IdleTTL
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-ttl)
	for key, b := range l.buckets {
		if b.lastUsed.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

func (l *Limiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// Stop ends the background sweep. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
}
