// Package ratelimit provides per-client rate limiting using the token
// bucket algorithm.
package ratelimit

import (
	"sync"
	"time"
)

// Config holds rate limiting configuration. Analysis requests are the only
// expensive endpoint, so a single limit applies per client.
type Config struct {
	Enabled         bool
	Limit           int           // Requests per window
	Window          time.Duration // Refill window
	Burst           int           // Bucket capacity; defaults to Limit
	CleanupInterval time.Duration // Idle bucket eviction interval
}

// DefaultConfig returns the default rate limit: 60 requests per minute per
// client with a burst of 10.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		Limit:           60,
		Window:          time.Minute,
		Burst:           10,
		CleanupInterval: 5 * time.Minute,
	}
}

// Info reports rate limit state for response headers.
type Info struct {
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type tokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
}

func (tb *tokenBucket) take(now time.Time) (bool, Info) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.tokens = min(tb.capacity, tb.tokens+elapsed*tb.refillRate)
	tb.lastRefill = now
	tb.lastAccess = now

	allowed := tb.tokens >= 1.0
	if allowed {
		tb.tokens -= 1.0
	}

	info := Info{
		Limit:     int(tb.capacity),
		Remaining: int(tb.tokens),
		ResetTime: now,
	}
	if tb.tokens < tb.capacity {
		secondsUntilFull := (tb.capacity - tb.tokens) / tb.refillRate
		info.ResetTime = now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
	}
	if !allowed {
		info.RetryAfter = time.Duration((1.0 - tb.tokens) / tb.refillRate * float64(time.Second))
	}
	return allowed, info
}

// Limiter tracks a token bucket per client ID.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*tokenBucket
	config  *Config
	ticker  *time.Ticker
	stop    chan struct{}
}

// NewLimiter creates a rate limiter. A nil config uses DefaultConfig.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Burst <= 0 {
		config.Burst = config.Limit
	}

	l := &Limiter{
		buckets: make(map[string]*tokenBucket),
		config:  config,
	}
	if config.Enabled && config.CleanupInterval > 0 {
		l.ticker = time.NewTicker(config.CleanupInterval)
		l.stop = make(chan struct{})
		go l.cleanup()
	}
	return l
}

// Allow reports whether a request from the client may proceed, consuming a
// token when it does.
func (l *Limiter) Allow(clientID string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{}
	}
	return l.bucket(clientID).take(time.Now())
}

// Stop halts the idle-bucket cleanup goroutine.
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
		close(l.stop)
	}
}

func (l *Limiter) bucket(clientID string) *tokenBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	tb, ok := l.buckets[clientID]
	if !ok {
		now := time.Now()
		tb = &tokenBucket{
			capacity:   float64(l.config.Burst),
			refillRate: float64(l.config.Limit) / l.config.Window.Seconds(),
			tokens:     float64(l.config.Burst),
			lastRefill: now,
			lastAccess: now,
		}
		l.buckets[clientID] = tb
	}
	return tb
}

func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.stop:
			return
		case <-l.ticker.C:
			cutoff := time.Now().Add(-2 * l.config.CleanupInterval)
			l.mu.Lock()
			for id, tb := range l.buckets {
				tb.mu.Lock()
				idle := tb.lastAccess.Before(cutoff)
				tb.mu.Unlock()
				if idle {
					delete(l.buckets, id)
				}
			}
			l.mu.Unlock()
		}
	}
}
