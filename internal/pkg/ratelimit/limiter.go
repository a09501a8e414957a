package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter enforces a minimum delay between consecutive acquisitions.
// The upstream has no documented concurrency tolerance, so all requests
// behind one limiter are strictly serialized: the mutex is held for the
// whole wait, which makes concurrent callers queue up.
type Limiter struct {
	mu    sync.Mutex
	delay time.Duration
	last  time.Time

	// injectable clock for deterministic tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a limiter with the given minimum delay between acquisitions.
func New(delay time.Duration) *Limiter {
	return &Limiter{
		delay: delay,
		now:   time.Now,
		sleep: sleepContext,
	}
}

// Acquire blocks until at least the configured delay has elapsed since
// the previous acquisition, then stamps the acquisition time. The stamp
// is updated on every call, whether or not the caller waited.
func (l *Limiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.last.IsZero() {
		wait := l.delay - l.now().Sub(l.last)
		if wait > 0 {
			if err := l.sleep(ctx, wait); err != nil {
				return err
			}
		}
	}

	l.last = l.now()
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
