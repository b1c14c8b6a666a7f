package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// RefreshFunc re-fetches the availability view from authoritative state
type RefreshFunc func(ctx context.Context) error

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder records refresh outcomes. Optional.
type MetricsRecorder interface {
	IncRefresh(result string)
	IncRefreshSkipped()
}

// Poller periodically re-fetches availability. Firings are guarded
// against re-entrancy: a tick that arrives while the previous refresh is
// still in flight is skipped and counted. A failed refresh is logged and
// silently skipped until the next tick.
type Poller struct {
	interval time.Duration
	refresh  RefreshFunc
	logger   Logger
	metrics  MetricsRecorder

	inFlight atomic.Bool
}

// New creates a poller. metrics may be nil.
func New(interval time.Duration, refresh RefreshFunc, logger Logger, metrics MetricsRecorder) *Poller {
	return &Poller{
		interval: interval,
		refresh:  refresh,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run blocks until ctx is done, refreshing once per interval
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("poller: started, interval=%s", p.interval)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller: stopped")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	if !p.inFlight.CompareAndSwap(false, true) {
		p.logger.Warn("poller: previous refresh still in flight, skipping tick")
		if p.metrics != nil {
			p.metrics.IncRefreshSkipped()
		}
		return
	}

	go func() {
		defer p.inFlight.Store(false)

		rctx, cancel := context.WithTimeout(ctx, p.interval)
		defer cancel()

		err := p.refresh(rctx)
		switch {
		case err == nil:
			if p.metrics != nil {
				p.metrics.IncRefresh("success")
			}
		case errors.Is(err, context.Canceled):
			// shutting down
		default:
			p.logger.Warn("poller: refresh failed, view may be stale until next tick: %v", err)
			if p.metrics != nil {
				p.metrics.IncRefresh("error")
			}
		}
	}()
}
