// Package worker holds the background jobs that run beside the HTTP
// surface. The retention worker is the safety net behind the read-path
// purge: it sweeps whole batches so expired orders disappear even for
// users who never open their order history.
package worker

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	domain "github.com/freshcart/freshcart-api/internal/entity"
	"github.com/freshcart/freshcart-api/internal/logging"
	"github.com/freshcart/freshcart-api/internal/usecase"
)

var ordersPurged = promauto.NewCounter(prometheus.CounterOpts{
	Name: "freshcart_orders_purged_total",
	Help: "Orders hard-deleted after the retention window",
})

type RetentionWorker struct {
	repo     usecase.OrderRepo
	interval time.Duration
	now      func() time.Time
}

func NewRetentionWorker(repo usecase.OrderRepo, interval time.Duration) *RetentionWorker {
	return &RetentionWorker{repo: repo, interval: interval, now: time.Now}
}

// Run blocks until ctx is done, sweeping on every tick.
func (w *RetentionWorker) Run(ctx context.Context) {
	log := logging.New("retention-worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Info("retention worker started", "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			log.Info("retention worker stopped")
			return
		case <-ticker.C:
			if err := w.sweep(ctx); err != nil {
				log.Error("retention sweep failed", "err", err)
			}
		}
	}
}

func (w *RetentionWorker) sweep(ctx context.Context) error {
	cutoff := w.now().UTC().Add(-domain.RetentionWindow)
	n, err := w.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if n > 0 {
		ordersPurged.Add(float64(n))
		logging.New("retention-worker").Info("purged expired orders", "count", n)
	}
	return nil
}
