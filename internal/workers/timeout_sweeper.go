package workers

import (
	"context"
	"log/slog"
	"time"
)

type ExpirySweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

// TimeoutSweeper periodically times out pending notifications past their
// deadline. It shares nothing with request handling except the store.
type TimeoutSweeper struct {
	sweeper  ExpirySweeper
	interval time.Duration
	logger   *slog.Logger
}

func NewTimeoutSweeper(sweeper ExpirySweeper, interval time.Duration, logger *slog.Logger) *TimeoutSweeper {
	return &TimeoutSweeper{sweeper: sweeper, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled.
func (w *TimeoutSweeper) Run(ctx context.Context) {
	w.logger.Info("timeout sweeper started", slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("timeout sweeper stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

func (w *TimeoutSweeper) RunOnce(ctx context.Context) int {
	n, err := w.sweeper.SweepExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Error("sweep failed", slog.Any("error", err))
		}
		return 0
	}
	if n > 0 {
		w.logger.Info("sweep done", slog.Int("timed_out", n))
	}
	return n
}
