package cleanup

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// SessionEvicter drops live sessions that have been idle for too long.
type SessionEvicter interface {
	CleanupIdleSessions(idleFor time.Duration) int
}

// HistoryPruner deletes finished games past their retention.
type HistoryPruner interface {
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type Worker struct {
	Sessions      SessionEvicter
	History       HistoryPruner // nil when no history database is configured
	Interval      time.Duration
	IdleFor       time.Duration
	RetentionDays int
	logger        *log.Logger
}

// DefaultInterval replaces a non-positive interval, which a ticker rejects.
const DefaultInterval = time.Hour

func NewWorker(sessions SessionEvicter, history HistoryPruner, interval, idleFor time.Duration, retentionDays int) *Worker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Worker{
		Sessions:      sessions,
		History:       history,
		Interval:      interval,
		IdleFor:       idleFor,
		RetentionDays: retentionDays,
		logger:        log.WithPrefix("CLEANUP"),
	}
}

// Run cleans up once right away and then every Interval until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("background worker started", "interval", w.Interval)
	w.RunOnce(ctx)

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("background worker stopped")
			return nil
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single cleanup pass.
func (w *Worker) RunOnce(ctx context.Context) {
	evicted := w.Sessions.CleanupIdleSessions(w.IdleFor)
	if evicted > 0 {
		w.logger.Debug("idle sessions evicted", "count", evicted)
	}

	if w.History == nil || w.RetentionDays <= 0 {
		return
	}
	deleted, err := w.History.DeleteOlderThan(ctx, w.RetentionDays)
	if err != nil {
		w.logger.Error("pruning game history", "err", err)
		return
	}
	if deleted > 0 {
		w.logger.Info("removed old games", "count", deleted, "olderThanDays", w.RetentionDays)
	}
}
