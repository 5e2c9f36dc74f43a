// internal/app/system/workers/cacherefresh.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/danahub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Refresher reloads cached data. *coordinator.Coordinator implements it.
type Refresher interface {
	RefreshAll(ctx context.Context) error
}

// CacheRefresh is a background worker that periodically reloads the
// coordinator's caches so edits made directly against the external API show
// up without a mutation here.
type CacheRefresh struct {
	target   Refresher
	log      *zap.Logger
	interval time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewCacheRefresh creates the worker. interval must be positive.
func NewCacheRefresh(target Refresher, logger *zap.Logger, interval time.Duration) *CacheRefresh {
	return &CacheRefresh{
		target:   target,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background refresh loop.
func (w *CacheRefresh) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("cache refresh worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop, cancels a refresh in progress and waits
// for the loop to exit. It is safe to call more than once.
func (w *CacheRefresh) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("cache refresh worker stopped")
	})
}

func (w *CacheRefresh) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.refresh()
		}
	}
}

func (w *CacheRefresh) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Refresh())
	defer cancel()

	// Abandon the refresh if Stop is called mid-way.
	go func() {
		select {
		case <-w.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := w.target.RefreshAll(ctx); err != nil {
		w.log.Warn("cache refresh failed", zap.Error(err))
	}
}
