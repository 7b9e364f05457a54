package core

// scheduler.go runs background maintenance for the service.
//
// The selection janitor prunes idle selection sessions so abandoned browser
// tabs do not hold row keys forever. It is long-running and stops when its
// context is cancelled.

import (
	"context"
	"log/slog"
	"time"
)

// StartSelectionJanitor prunes expired selection sessions every interval
// until ctx is cancelled. A non-positive interval uses the configured
// sweep interval.
func (s *Service) StartSelectionJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.selectionCfg.SweepInterval
	}
	slog.Info("selection janitor started",
		"interval", interval.String(),
		"ttl", s.selectionCfg.TTL.String(),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("selection janitor stopped")
			return
		case <-ticker.C:
			s.runSelectionSweep()
		}
	}
}

// runSelectionSweep performs one prune cycle.
func (s *Service) runSelectionSweep() {
	start := time.Now()
	removed := s.PruneSelections(s.now())
	if removed > 0 {
		slog.Info("pruned idle selections",
			"removed", removed,
			"remaining", s.SelectionCount(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
