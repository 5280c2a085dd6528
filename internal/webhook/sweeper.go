package webhook

import (
	"context"
	"time"

	"github.com/DarshanCode2005/gitmesh/pkg/log"
)

// RunSweeper calls uc.SweepStale every interval until ctx is done.
// It returns immediately when interval or olderThan is not positive.
func RunSweeper(ctx context.Context, l log.Logger, uc UseCase, interval, olderThan time.Duration) {
	if interval <= 0 || olderThan <= 0 {
		l.Infof(ctx, "webhook log sweeper disabled")
		return
	}

	l.Infof(ctx, "webhook log sweeper started: interval=%s older_than=%s", interval, olderThan)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.Infof(context.Background(), "webhook log sweeper stopped")
			return
		case <-ticker.C:
			if _, err := uc.SweepStale(ctx, olderThan); err != nil && ctx.Err() == nil {
				l.Errorf(ctx, "webhook log sweep failed: %v", err)
			}
		}
	}
}
