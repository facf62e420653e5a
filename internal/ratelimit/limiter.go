package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// EngineLimiter keeps one token bucket per search engine so flight and hotel
// traffic do not starve each other.
type EngineLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults Config
}

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
	// Engines overrides the default bucket for individual engines. Entries
	// with a non-positive rate or burst are ignored.
	Engines map[string]Limit
}

type Limit struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 5,
		BurstSize:         10,
	}
}

func NewEngineLimiter(config Config) *EngineLimiter {
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = DefaultConfig().RequestsPerSecond
	}
	if config.BurstSize <= 0 {
		config.BurstSize = DefaultConfig().BurstSize
	}
	l := &EngineLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: Config{RequestsPerSecond: config.RequestsPerSecond, BurstSize: config.BurstSize},
	}
	for engine, limit := range config.Engines {
		if limit.RequestsPerSecond > 0 && limit.BurstSize > 0 {
			l.SetEngineLimit(engine, limit.RequestsPerSecond, limit.BurstSize)
		}
	}
	return l
}

func (l *EngineLimiter) limiter(engine string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.limiters[engine]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok = l.limiters[engine]; ok {
		return lim
	}
	lim = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.BurstSize)
	l.limiters[engine] = lim
	return lim
}

func (l *EngineLimiter) SetEngineLimit(engine string, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiters[engine] = rate.NewLimiter(rate.Limit(rps), burst)
}

// Wait blocks until the engine has a free token or ctx is done.
func (l *EngineLimiter) Wait(ctx context.Context, engine string) error {
	return l.limiter(engine).Wait(ctx)
}
