package pricing

import (
	"sync"
	"time"
)

// DefaultMinInterval is the minimum spacing between outbound provider calls.
// CoinGecko's free tier tolerates just under one call per second.
const DefaultMinInterval = 1100 * time.Millisecond

// RateLimiter enforces a minimum spacing between calls to the price
// provider. It is not a token bucket: it guarantees spacing between
// consecutive calls, not a maximum rate over a window.
//
// The mutex is held across the sleep so that concurrent callers are
// serialized and the measured spacing holds under concurrent requests.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	// injectable for tests
	now   func() time.Time
	sleep func(time.Duration)
}

// NewRateLimiter creates a rate limiter with the given minimum interval.
// A non-positive interval falls back to DefaultMinInterval.
func NewRateLimiter(interval time.Duration) *RateLimiter {
	if interval <= 0 {
		interval = DefaultMinInterval
	}
	return &RateLimiter{
		interval: interval,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Wait blocks until at least the configured interval has passed since the
// previous permitted call, then stamps the current time as the last call.
// The stamp is updated whether or not a wait occurred.
func (l *RateLimiter) Wait() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.last.IsZero() {
		if elapsed := l.now().Sub(l.last); elapsed < l.interval {
			l.sleep(l.interval - elapsed)
		}
	}
	l.last = l.now()
}
