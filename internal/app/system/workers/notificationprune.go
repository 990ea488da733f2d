// internal/app/system/workers/notificationprune.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	notificationstore "github.com/dialoguedock/dialoguedock/internal/app/store/notifications"
)

// NotificationPrune is a background worker that removes old notifications.
// The notification feed is append-only, so without pruning the collection
// grows without bound.
type NotificationPrune struct {
	notifications *notificationstore.Store
	log           *zap.Logger
	interval      time.Duration
	retention     time.Duration
	stopCh        chan struct{}
	wg            sync.WaitGroup
}

// NewNotificationPrune creates a new notification pruning worker.
//
// Parameters:
//   - store: the notifications store
//   - logger: zap logger for logging
//   - interval: how often to run a sweep (e.g., 1 hour)
//   - retention: how long notifications are kept (e.g., 720h)
func NewNotificationPrune(store *notificationstore.Store, logger *zap.Logger, interval, retention time.Duration) *NotificationPrune {
	return &NotificationPrune{
		notifications: store,
		log:           logger,
		interval:      interval,
		retention:     retention,
		stopCh:        make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *NotificationPrune) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("notification prune worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("retention", w.retention))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *NotificationPrune) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("notification prune worker stopped")
}

func (w *NotificationPrune) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *NotificationPrune) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.notifications.DeleteCreatedBefore(ctx, time.Now().Add(-w.retention))
	if err != nil {
		w.log.Error("failed to prune notifications", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("pruned old notifications", zap.Int64("count", count))
	}
}
