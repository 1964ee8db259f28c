// Package ratelimit provides per-key admission control using token buckets.
package ratelimit

import (
	"sync"

	nport "github.com/ChipDale729/nport-viewer"
	"golang.org/x/time/rate"
)

// DefaultMaxEntries caps the number of tracked keys before idle entries
// are swept. Keys arrive from client addresses, so the map must not grow
// with every address ever seen.
const DefaultMaxEntries = 4096

var _ nport.Gate = (*KeyLimiter)(nil)

// KeyLimiter is a per-key nport.Gate using token buckets. Each key gets
// its own limiter, so one noisy client cannot exhaust another's quota.
// Denial is immediate; callers are never blocked. The key map is bounded:
// once it holds DefaultMaxEntries keys, inserting a new key first sweeps
// every key whose bucket has refilled completely.
type KeyLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*rate.Limiter
	limit      rate.Limit
	burst      int
	maxEntries int
}

// New creates a KeyLimiter with the given refill rate and burst.
func New(limit rate.Limit, burst int) *KeyLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &KeyLimiter{
		limiters:   make(map[string]*rate.Limiter),
		limit:      limit,
		burst:      burst,
		maxEntries: DefaultMaxEntries,
	}
}

// PerMinute creates a KeyLimiter admitting n requests per minute per key.
// The burst equals n, so a client may spend its whole minute at once.
func PerMinute(n int) *KeyLimiter {
	return New(rate.Limit(float64(n)/60), n)
}

// Allow reports whether the caller identified by key may proceed.
func (k *KeyLimiter) Allow(key string) bool {
	k.mu.Lock()
	limiter, ok := k.limiters[key]
	if !ok {
		if len(k.limiters) >= k.maxEntries {
			k.evictIdle()
		}
		limiter = rate.NewLimiter(k.limit, k.burst)
		k.limiters[key] = limiter
	}
	k.mu.Unlock()

	return limiter.Allow()
}

// Len reports the number of tracked keys.
func (k *KeyLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.limiters)
}

// evictIdle drops every key whose bucket has refilled completely. A full
// bucket means the key has been idle for at least one quota window, and
// dropping it loses no state: a fresh limiter starts full anyway. When
// every key is mid-window the map grows past the cap until one goes idle.
// Callers must hold mu.
func (k *KeyLimiter) evictIdle() {
	for key, limiter := range k.limiters {
		if limiter.Tokens() >= float64(limiter.Burst()) {
			delete(k.limiters, key)
		}
	}
}
