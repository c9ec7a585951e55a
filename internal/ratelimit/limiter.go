// Package ratelimit meters outbound calls to the remote travel backends.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Config is the token bucket applied to endpoints without an explicit
// override. Values come from the environment via internal/config.
type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

// EndpointLimiter hands each remote endpoint path its own token bucket, so a
// storm of searches cannot starve booking submissions of upstream capacity.
type EndpointLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	defaults Config
}

func NewEndpointLimiter(defaults Config) *EndpointLimiter {
	return &EndpointLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: defaults,
	}
}

// SetEndpointLimit overrides the default bucket for one endpoint.
func (l *EndpointLimiter) SetEndpointLimit(endpoint string, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiters[endpoint] = rate.NewLimiter(rate.Limit(rps), burst)
}

// Wait blocks until the endpoint's bucket has a token or ctx is done.
func (l *EndpointLimiter) Wait(ctx context.Context, endpoint string) error {
	return l.limiterFor(endpoint).Wait(ctx)
}

func (l *EndpointLimiter) limiterFor(endpoint string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[endpoint]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists = l.limiters[endpoint]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.BurstSize)
	l.limiters[endpoint] = limiter
	return limiter
}
