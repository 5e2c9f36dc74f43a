// Package timeouts provides centralized timeout values for handler operations.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Read: cache refreshes and single lookups against the API or store
//   - Mutation: a create, update, confirm or delete including the refetch
//     that follows it
//   - Refresh: refreshing every cache at once (startup, background worker)
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing     = 2 * time.Second
	DefaultRead     = 5 * time.Second
	DefaultMutation = 10 * time.Second
	DefaultRefresh  = 30 * time.Second
)

var mu sync.RWMutex

var (
	ping     = DefaultPing
	read     = DefaultRead
	mutation = DefaultMutation
	refresh  = DefaultRefresh
)

func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

func Read() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return read
}

func Mutation() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return mutation
}

func Refresh() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return refresh
}

// Config holds timeout configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	Ping     time.Duration
	Read     time.Duration
	Mutation time.Duration
	Refresh  time.Duration
}

// Configure sets custom timeout values. Call it during startup, before
// handlers are registered.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Read > 0 {
		read = cfg.Read
	}
	if cfg.Mutation > 0 {
		mutation = cfg.Mutation
	}
	if cfg.Refresh > 0 {
		refresh = cfg.Refresh
	}
}

// Reset restores all timeouts to their default values.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	read = DefaultRead
	mutation = DefaultMutation
	refresh = DefaultRefresh
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Read: read, Mutation: mutation, Refresh: refresh}
}

// WithTimeout creates a context with timeout and returns a cancel function that
// logs a warning if the context was canceled due to deadline exceeded.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Mutation(), h.Log, "dana update")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
