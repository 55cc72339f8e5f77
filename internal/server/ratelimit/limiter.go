package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter decides whether one more attempt from key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Decision is the outcome of one counted attempt.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
}

func decide(count, max int) Decision {
	remaining := max - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{Allowed: count <= max, Limit: max, Remaining: remaining}
}

// Config is a ceiling of Max attempts per Window.
type Config struct {
	Max    int
	Window time.Duration
}

// DefaultConfig is the ceiling for general traffic.
func DefaultConfig() Config {
	return Config{Max: 100, Window: 15 * time.Minute}
}

// AuthConfig is the tighter ceiling for register and login.
func AuthConfig() Config {
	return Config{Max: 5, Window: 15 * time.Minute}
}

type window struct {
	start time.Time
	count int
}

// MemoryLimiter is a fixed-window counter per key, held in a mutex-guarded
// map.
type MemoryLimiter struct {
	config  Config
	now     func() time.Time
	mu      sync.Mutex
	windows map[string]*window
}

// MemoryOption customizes a MemoryLimiter.
type MemoryOption func(*MemoryLimiter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MemoryOption {
	return func(l *MemoryLimiter) { l.now = now }
}

func NewMemoryLimiter(config Config, opts ...MemoryOption) *MemoryLimiter {
	l := &MemoryLimiter{
		config:  config,
		now:     time.Now,
		windows: make(map[string]*window),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Allow counts the attempt and reports whether it is within the ceiling.
// It never returns an error.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || !now.Before(w.start.Add(l.config.Window)) {
		w = &window{start: now}
		l.windows[key] = w
	}

	w.count++
	return decide(w.count, l.config.Max), nil
}

// Cleanup drops windows that have already elapsed.
func (l *MemoryLimiter) Cleanup() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, w := range l.windows {
		if !now.Before(w.start.Add(l.config.Window)) {
			delete(l.windows, key)
		}
	}
}

// StartCleanup runs Cleanup once per window until ctx is done.
func (l *MemoryLimiter) StartCleanup(ctx context.Context) {
	ticker := time.NewTicker(l.config.Window)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (l *MemoryLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
