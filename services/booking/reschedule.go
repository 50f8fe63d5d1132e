package booking

import (
	"context"
	"errors"

	bookingRepo "fixmate/database/repository/booking"
	workerRepo "fixmate/database/repository/worker"
	"fixmate/models"
	"fixmate/utils"

	"go.uber.org/zap"
)

// Reschedule moves an existing booking to a new slot. It reuses the
// availability index and conflict detector against the booking's identity;
// the write itself is guarded so a race with a concurrent creation or
// reschedule still resolves to a conflict error, never a silent overlap.
// Only the date and time change; status and all other fields are untouched.
func (s *DefaultBookingService) Reschedule(ctx context.Context, bookingID, newDate, newTime string) (*models.Booking, error) {
	if bookingID == "" || newDate == "" || newTime == "" {
		return nil, NewValidationError("body", "Booking ID, newDate, and newTime are required")
	}

	current, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &NotFoundError{Entity: "booking"}
		}
		return nil, err
	}

	parsed, err := validateRescheduleSchedule(newDate, newTime, today(), s.Policy)
	if err != nil {
		return nil, err
	}

	if current.Status != models.StatusRequested && current.Status != models.StatusAccepted {
		return nil, &StateError{Message: "Booking can only be rescheduled if it is requested or accepted"}
	}

	worker, err := s.Workers.GetByID(ctx, current.Worker)
	if err != nil {
		if errors.Is(err, workerRepo.ErrNotFound) {
			return nil, &NotFoundError{Entity: "worker"}
		}
		return nil, err
	}

	window, ok := WindowFor(worker.WorkSchedule, parsed.Weekday())
	if !ok {
		return nil, NewValidationError("newDate", "Worker is not available on selected day")
	}
	if !InsideWindow(window, newTime) {
		return nil, NewValidationError("newTime", "Selected time is outside of worker's working hours")
	}

	normalized := parsed.Format(dateLayout)
	conflict, err := s.Repo.FindWorkerConflict(ctx, current.Worker, normalized, newTime, current.ID)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, &ConflictError{Message: "Worker is already booked at the selected time"}
	}

	updated, err := s.Repo.MoveSchedule(ctx, bookingID, normalized, newTime)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrNoActiveBooking):
			return nil, &StateError{Message: "Booking can only be rescheduled if it is requested or accepted"}
		case errors.Is(err, bookingRepo.ErrWorkerConflict):
			// Lost the write-time race for the slot.
			return nil, &ConflictError{Message: "Worker is already booked at the selected time"}
		default:
			return nil, err
		}
	}

	utils.GetLogger().Info("booking rescheduled",
		zap.String("bookingId", updated.ID),
		zap.String("date", updated.Date),
		zap.String("time", updated.Time),
	)
	return updated, nil
}
