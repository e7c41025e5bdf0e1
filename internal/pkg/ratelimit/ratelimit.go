package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Scope separates the budgets of unrelated endpoints sharing one limiter,
// so a flood on the public forms never costs a client its logins.
type Scope string

const (
	ScopeLogin Scope = "login"
	ScopeForms Scope = "forms"
)

// Decision is the outcome of one Take
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// RateLimiter allows limit hits per key within a sliding window
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	hits map[string][]time.Time
}

func New(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
		hits:   make(map[string][]time.Time),
	}
}

// WithClock overrides the clock, for tests
func (rl *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	rl.now = now
	return rl
}

func (rl *RateLimiter) Limit() int {
	return rl.limit
}

func (rl *RateLimiter) Window() time.Duration {
	return rl.window
}

// Take records a hit for key when the budget allows it. Rejected hits are
// not recorded.
func (rl *RateLimiter) Take(key string) Decision {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	live := unexpired(rl.hits[key], now.Add(-rl.window))

	if len(live) >= rl.limit {
		rl.store(key, live)
		reset := now.Add(rl.window)
		if len(live) > 0 {
			reset = live[0].Add(rl.window)
		}
		return Decision{Allowed: false, Remaining: 0, ResetAt: reset}
	}

	live = append(live, now)
	rl.hits[key] = live
	return Decision{
		Allowed:   true,
		Remaining: rl.limit - len(live),
		ResetAt:   live[0].Add(rl.window),
	}
}

// Forget drops every hit recorded for key
func (rl *RateLimiter) Forget(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.hits, key)
}

// Prune discards expired hits and keys left without any
func (rl *RateLimiter) Prune() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.window)
	for key, stamps := range rl.hits {
		rl.store(key, unexpired(stamps, cutoff))
	}
}

// Keys reports how many clients are currently tracked
func (rl *RateLimiter) Keys() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.hits)
}

// StartCleanup prunes every interval until ctx is done
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Prune()
			}
		}
	}()
}

func (rl *RateLimiter) store(key string, stamps []time.Time) {
	if len(stamps) == 0 {
		delete(rl.hits, key)
		return
	}
	rl.hits[key] = stamps
}

// unexpired returns the suffix of stamps newer than cutoff. Stamps are
// appended in time order, so the oldest live hit is always first.
func unexpired(stamps []time.Time, cutoff time.Time) []time.Time {
	for i, t := range stamps {
		if t.After(cutoff) {
			return stamps[i:]
		}
	}
	return nil
}
