package uploads

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/qurancms/recitation-api/internal/lease"
)

// sweepLeaseName is shared by every process pointed at the same redis
const sweepLeaseName = "stuck-upload-sweep"

// Runner triggers Sweep on a fixed interval in the background
type Runner struct {
	svc      Service
	locker   lease.Locker
	interval time.Duration
	leaseTTL time.Duration
	logger   *zap.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewRunner creates a sweep runner. A nil locker runs without a lease.
func NewRunner(svc Service, locker lease.Locker, interval, leaseTTL time.Duration, logger *zap.Logger) *Runner {
	if locker == nil {
		locker = lease.Local{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if leaseTTL <= 0 {
		leaseTTL = interval
	}
	return &Runner{
		svc:      svc,
		locker:   locker,
		interval: interval,
		leaseTTL: leaseTTL,
		logger:   logger,
	}
}

// Start runs one sweep immediately and then one per interval until Stop
func (r *Runner) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		r.RunOnce(ctx)
		for {
			select {
			case <-ticker.C:
				r.RunOnce(ctx)
			case <-ctx.Done():
				r.logger.Info("stuck upload sweeper stopped")
				return
			}
		}
	}()

	r.logger.Info("stuck upload sweeper started", zap.Duration("interval", r.interval))
}

// Stop cancels the loop and waits for an in-flight sweep to return
func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

// RunOnce sweeps if the lease can be taken. It reports whether a sweep ran.
func (r *Runner) RunOnce(ctx context.Context) bool {
	held, ok, err := r.locker.TryAcquire(ctx, sweepLeaseName, r.leaseTTL)
	if err != nil {
		r.logger.Warn("sweep lease unavailable, skipping", zap.Error(err))
		return false
	}
	if !ok {
		r.logger.Debug("sweep lease held elsewhere, skipping")
		return false
	}
	defer func() {
		if err := held.Release(context.WithoutCancel(ctx)); err != nil {
			r.logger.Warn("failed to release sweep lease", zap.Error(err))
		}
	}()

	if _, err := r.svc.Sweep(ctx, false); err != nil && ctx.Err() == nil {
		r.logger.Error("stuck upload sweep failed", zap.Error(err))
	}
	return true
}
