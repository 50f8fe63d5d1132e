package jobs

import (
	"context"
	"time"

	"fixmate/utils"

	"go.uber.org/zap"
)

// runStalePurge hard-deletes bookings still in requested status after the
// TTL. Keeps the collection free of abandoned requests.
func (e *Env) runStalePurge(ctx context.Context, ttl time.Duration) {
	logger := utils.GetLogger()

	cutoff := e.now().Add(-ttl)
	deleted, err := e.Bookings.DeleteStaleRequested(ctx, cutoff)
	if err != nil {
		logger.Error("stale booking purge failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		logger.Info("purged stale bookings", zap.Int64("count", deleted))
	}
}
