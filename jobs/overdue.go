package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fixmate/config"
	bookingRepo "fixmate/database/repository/booking"
	"fixmate/utils"

	"go.uber.org/zap"
)

// runOverdueScan auto-cancels accepted bookings whose scheduled time has
// passed by the configured threshold. The cancel is a single guarded write
// that also sets the overdue flag, so exactly one notification attempt goes
// out per booking even across overlapping scans.
func (e *Env) runOverdueScan(ctx context.Context) {
	logger := utils.GetLogger()

	threshold := time.Duration(config.AppConfig.OverdueCancelHours) * time.Hour
	if threshold <= 0 {
		threshold = 3 * time.Hour
	}
	now := e.now()

	bookings, err := e.Bookings.FindAcceptedWithoutFlag(ctx, bookingRepo.FlagOverdueCancel)
	if err != nil {
		logger.Error("overdue scan failed", zap.Error(err))
		return
	}

	for _, b := range bookings {
		scheduled, err := b.ScheduledAt()
		if err != nil {
			logger.Error("skipping booking with bad schedule",
				zap.String("bookingId", b.ID), zap.Error(err))
			continue
		}
		if now.Sub(scheduled) < threshold {
			continue
		}

		cancelled, err := e.Bookings.CancelOverdue(ctx, b.ID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrNotFound) {
				// Another pass or a user action got there first.
				continue
			}
			logger.Error("failed to auto-cancel overdue booking",
				zap.String("bookingId", b.ID), zap.Error(err))
			continue
		}

		logger.Info("auto-cancelled overdue booking",
			zap.String("bookingId", cancelled.ID),
			zap.String("jobCode", cancelled.JobCode),
		)
		e.notifyWorker(ctx, *cancelled, "booking_auto_cancelled",
			"Booking auto-cancelled",
			fmt.Sprintf("Your booking on %s at %s was cancelled after going unattended.", cancelled.Date, cancelled.Time))
	}
}
