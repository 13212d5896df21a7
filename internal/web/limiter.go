package web

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrBusy is returned when every parse slot is occupied and the wait timeout
// expires. Clients should retry after a short delay.
var ErrBusy = errors.New("too many concurrent uploads, please try again later")

// parseLimiter bounds how many uploads are parsed at once. Parsing holds the
// whole file in memory, so unbounded parallelism under load turns into
// resource exhaustion; a request that cannot get a slot within maxWait is
// rejected with ErrBusy instead.
type parseLimiter struct {
	slots   chan struct{}
	maxWait time.Duration

	mu     sync.RWMutex
	active int
}

func newParseLimiter(maxConcurrent int, maxWait time.Duration) *parseLimiter {
	return &parseLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire claims a parse slot, waiting up to maxWait. The caller must call
// Release exactly once after a nil return.
func (l *parseLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.slots <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrBusy
	}
}

// Release frees a slot claimed by Acquire.
func (l *parseLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()
	<-l.slots
}

// Active returns the number of parses currently in flight.
func (l *parseLimiter) Active() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// LimiterStatus is the limiter snapshot reported by the health endpoint.
type LimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

func (l *parseLimiter) Status() LimiterStatus {
	l.mu.RLock()
	active := l.active
	l.mu.RUnlock()
	return LimiterStatus{
		Active:        active,
		Available:     cap(l.slots) - len(l.slots),
		MaxConcurrent: cap(l.slots),
	}
}
