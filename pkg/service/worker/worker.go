package worker

import (
	"context"
	"time"

	"github.com/markclong/slack-archiver/pkg/utils/logging"
)

// RunFunc executes one archive cycle
type RunFunc func(ctx context.Context) error

// Worker re-runs an archive cycle on a fixed interval, for deployments
// that keep the archiver running as a long-lived process instead of
// invoking it from cron.
//
// Architecture assumptions:
// - Single process per archive store (no distributed locking)
type Worker struct {
	run      RunFunc
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New creates a worker running fn every interval
func New(fn RunFunc, interval time.Duration) *Worker {
	return &Worker{
		run:      fn,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the cycle loop. The first cycle runs immediately and
// startup does not block on it.
func (w *Worker) Start(ctx context.Context) {
	logging.Default().Info("Archive worker starting", "interval", w.interval.String())
	go w.loop(ctx)
}

// Stop signals the worker to stop and waits for the running cycle
func (w *Worker) Stop() {
	logging.Default().Info("Archive worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Archive worker stopped")
}

func (w *Worker) loop(ctx context.Context) {
	defer close(w.doneCh)

	w.cycle(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.cycle(ctx)

		case <-w.stopCh:
			logging.Default().Info("Archive worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Archive worker context cancelled")
			return
		}
	}
}

// cycle runs one archive pass. Failures are logged and the loop keeps
// going, so a transient API or store problem delays the archive by one
// interval instead of killing the process.
func (w *Worker) cycle(ctx context.Context) {
	startTime := time.Now()

	if err := w.run(ctx); err != nil {
		logging.Default().Error("Archive cycle failed (will retry next interval)",
			"error", err.Error())
		return
	}

	logging.Default().Info("Archive cycle completed",
		"duration", time.Since(startTime).String())
}
