package jobs

import (
	"context"
	"time"

	"fixmate/config"
	bookingRepo "fixmate/database/repository/booking"
	"fixmate/services/notification"
)

// Env carries the collaborators shared by the booking jobs. Now is
// injectable so reminder-window arithmetic is testable.
type Env struct {
	Bookings bookingRepo.BookingRepository
	Notifier notification.Dispatcher
	Now      func() time.Time
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// RegisterAll wires the booking jobs onto the scheduler with the reference
// cadence: reminder and overdue scans every minute, stale purge hourly.
func RegisterAll(s *Scheduler, env *Env) error {
	reminderJobs := []struct {
		name string
		flag bookingRepo.ReminderFlag
		lead time.Duration
		kind string
	}{
		{"reminder-30min", bookingRepo.FlagReminder30Min, 30 * time.Minute, "reminder_30min"},
		{"reminder-1hour", bookingRepo.FlagReminder1Hour, time.Hour, "reminder_1hour"},
	}
	for _, j := range reminderJobs {
		j := j
		if err := s.Register(j.name, "* * * * *", func(ctx context.Context) {
			env.runReminderScan(ctx, j.flag, j.lead, j.kind)
		}); err != nil {
			return err
		}
	}

	if err := s.Register("overdue-auto-cancel", "* * * * *", env.runOverdueScan); err != nil {
		return err
	}

	ttl := time.Duration(config.AppConfig.StaleBookingTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return s.Register("stale-booking-purge", "0 * * * *", func(ctx context.Context) {
		env.runStalePurge(ctx, ttl)
	})
}
