package pricing

import (
	"sync"
	"testing"
	"time"
)

// newFakeClockLimiter returns a limiter driven by a simulated clock: sleeping
// advances the clock by exactly the requested duration.
func newFakeClockLimiter(interval time.Duration) (*RateLimiter, *[]time.Duration) {
	current := time.Unix(1700000000, 0)
	slept := &[]time.Duration{}

	l := NewRateLimiter(interval)
	l.now = func() time.Time { return current }
	l.sleep = func(d time.Duration) {
		*slept = append(*slept, d)
		current = current.Add(d)
	}
	return l, slept
}

func TestRateLimiterWait(t *testing.T) {
	t.Run("first call never sleeps", func(t *testing.T) {
		l, slept := newFakeClockLimiter(1100 * time.Millisecond)

		l.Wait()

		if len(*slept) != 0 {
			t.Errorf("expected no sleep on first call, slept %v", *slept)
		}
		if l.last.IsZero() {
			t.Error("expected last-call stamp to be set")
		}
	})

	t.Run("consecutive calls keep minimum spacing", func(t *testing.T) {
		l, slept := newFakeClockLimiter(1100 * time.Millisecond)

		const n = 5
		for i := 0; i < n; i++ {
			l.Wait()
		}

		var total time.Duration
		for _, d := range *slept {
			total += d
		}
		if want := (n - 1) * 1100 * time.Millisecond; total < want {
			t.Errorf("expected total sleep >= %v for %d calls, got %v", want, n, total)
		}
	})

	t.Run("partial elapse sleeps only the remainder", func(t *testing.T) {
		current := time.Unix(1700000000, 0)
		var slept []time.Duration

		l := NewRateLimiter(1100 * time.Millisecond)
		l.now = func() time.Time { return current }
		l.sleep = func(d time.Duration) {
			slept = append(slept, d)
			current = current.Add(d)
		}

		l.Wait()
		current = current.Add(400 * time.Millisecond)
		l.Wait()

		if len(slept) != 1 {
			t.Fatalf("expected exactly one sleep, got %d", len(slept))
		}
		if want := 700 * time.Millisecond; slept[0] != want {
			t.Errorf("expected sleep of %v, got %v", want, slept[0])
		}
	})

	t.Run("no sleep once the interval has passed", func(t *testing.T) {
		current := time.Unix(1700000000, 0)
		var slept []time.Duration

		l := NewRateLimiter(1100 * time.Millisecond)
		l.now = func() time.Time { return current }
		l.sleep = func(d time.Duration) { slept = append(slept, d) }

		l.Wait()
		current = current.Add(2 * time.Second)
		l.Wait()

		if len(slept) != 0 {
			t.Errorf("expected no sleep after the interval elapsed, slept %v", slept)
		}
	})
}

func TestRateLimiterConcurrent(t *testing.T) {
	// Real clock, short interval: concurrent callers must be serialized so
	// the total wall time still reflects the spacing guarantee.
	const (
		n        = 5
		interval = 10 * time.Millisecond
	)
	l := NewRateLimiter(interval)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Wait()
		}()
	}
	wg.Wait()

	if elapsed, want := time.Since(start), (n-1)*interval; elapsed < want {
		t.Errorf("expected %d concurrent calls to take >= %v, took %v", n, want, elapsed)
	}
}
