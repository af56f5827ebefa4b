package fetch

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
)

// OriginLimiter enforces an origin's fetch budget: a connection
// semaphore bounding simultaneous fetches, plus a token bucket bounding
// request rate. Upstream mirrors enforce per-client limits, so this
// budget is independent of the pipeline's overall worker pool.
type OriginLimiter struct {
	slots   chan struct{}
	limiter *rate.Limiter
}

// NewOriginLimiter creates a limiter from an origin's declared budget.
// Non-positive values fall back to a single connection at 1 req/s.
func NewOriginLimiter(origin domain.FetchOrigin) *OriginLimiter {
	conns := origin.MaxConnections
	if conns <= 0 {
		conns = 1
	}
	rps := origin.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &OriginLimiter{
		slots:   make(chan struct{}, conns),
		limiter: rate.NewLimiter(rate.Limit(rps), conns),
	}
}

// Acquire blocks until a connection slot and a rate token are available,
// or ctx is cancelled. The caller must Release the slot when done.
func (l *OriginLimiter) Acquire(ctx context.Context) error {
	select {
	case l.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := l.limiter.Wait(ctx); err != nil {
		<-l.slots
		return err
	}
	return nil
}

// Release returns a connection slot.
func (l *OriginLimiter) Release() {
	<-l.slots
}

// LimiterPool hands out one shared limiter per origin name.
type LimiterPool struct {
	mu       sync.Mutex
	limiters map[string]*OriginLimiter
	origins  func(name string) domain.FetchOrigin
}

// NewLimiterPool creates a pool. origins resolves a name to its budget
// (typically registry.Origin).
func NewLimiterPool(origins func(name string) domain.FetchOrigin) *LimiterPool {
	return &LimiterPool{
		limiters: make(map[string]*OriginLimiter),
		origins:  origins,
	}
}

// For returns the limiter for an origin, creating it on first use.
func (p *LimiterPool) For(name string) *OriginLimiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if l, ok := p.limiters[name]; ok {
		return l
	}
	l := NewOriginLimiter(p.origins(name))
	p.limiters[name] = l
	return l
}
