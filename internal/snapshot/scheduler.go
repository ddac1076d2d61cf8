package snapshot

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler reloads the snapshot on a fixed interval.
// It is stateless: each tick independently re-reads the whole source.
type Scheduler struct {
	store    *Store
	interval time.Duration
}

// NewScheduler creates a periodic reload scheduler.
func NewScheduler(store *Store, interval time.Duration) *Scheduler {
	return &Scheduler{store: store, interval: interval}
}

// Start begins periodic reloads. Runs until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Scheduler] Starting dataset reload scheduler", "interval", s.interval)

	for {
		select {
		case <-ticker.C:
			s.store.Reload(ctx)
		case <-ctx.Done():
			slog.Info("[Scheduler] Stopping (context cancelled)")
			return nil
		}
	}
}
