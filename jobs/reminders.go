package jobs

import (
	"context"
	"fmt"
	"time"

	bookingRepo "fixmate/database/repository/booking"
	"fixmate/models"
	"fixmate/utils"

	"go.uber.org/zap"
)

// runReminderScan finds accepted bookings whose scheduled time falls inside
// the one-minute window starting lead from now, marks the at-most-once flag,
// and queues a worker notification. A failure on one booking is logged and
// never aborts the rest of the pass.
func (e *Env) runReminderScan(ctx context.Context, flag bookingRepo.ReminderFlag, lead time.Duration, kind string) {
	logger := utils.GetLogger()

	now := e.now()
	windowStart := now.Add(lead)
	windowEnd := windowStart.Add(time.Minute)

	bookings, err := e.Bookings.FindAcceptedWithoutFlag(ctx, flag)
	if err != nil {
		logger.Error("reminder scan failed", zap.String("kind", kind), zap.Error(err))
		return
	}

	for _, b := range bookings {
		scheduled, err := b.ScheduledAt()
		if err != nil {
			logger.Error("skipping booking with bad schedule",
				zap.String("bookingId", b.ID), zap.Error(err))
			continue
		}
		if scheduled.Before(windowStart) || !scheduled.Before(windowEnd) {
			continue
		}

		// Flag first so a crash cannot double-send on the next pass.
		if err := e.Bookings.SetReminderFlag(ctx, b.ID, flag); err != nil {
			logger.Error("failed to mark reminder flag",
				zap.String("bookingId", b.ID), zap.String("flag", string(flag)), zap.Error(err))
			continue
		}

		e.notifyWorker(ctx, b, kind,
			"Upcoming booking",
			fmt.Sprintf("You have a booking at %s on %s (%s).", b.Time, b.Date, b.JobCode))
	}
}

// notifyWorker queues a notification; enqueue failures are logged only.
func (e *Env) notifyWorker(ctx context.Context, b models.Booking, kind, title, body string) {
	if e.Notifier == nil {
		return
	}
	_ = e.Notifier.Dispatch(ctx, models.NotificationEvent{
		Target:    "worker",
		TargetID:  b.Worker,
		Kind:      kind,
		BookingID: b.ID,
		JobCode:   b.JobCode,
		Title:     title,
		Body:      body,
	})
}
