package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "fixmate/database/repository/booking"
	"fixmate/models"
	"fixmate/utils"

	"go.uber.org/zap"
)

// transitions is the adjacency table of the booking state machine. Only
// listed moves are allowed, so a booking cannot jump from requested straight
// to completed. Repeating the current status is an idempotent no-op handled
// before this table is consulted.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusRequested:  {models.StatusAccepted, models.StatusCancelled},
	models.StatusAccepted:   {models.StatusInProgress, models.StatusCompleted, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted:  {},
	models.StatusCancelled:  {},
}

func canTransition(from, to models.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus drives the booking state machine. Terminal targets clear
// IsActive and tear down the booking's chat; teardown and notification
// failures are logged, never propagated.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID string, rawStatus string) (*models.Booking, error) {
	if bookingID == "" {
		return nil, NewValidationError("bookingId", "Booking ID is required")
	}
	if rawStatus == "" {
		return nil, NewValidationError("status", "Status is required")
	}
	newStatus, ok := models.ParseBookingStatus(rawStatus)
	if !ok {
		return nil, NewValidationError("status", fmt.Sprintf("Unknown status %q", rawStatus))
	}

	current, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &NotFoundError{Entity: "booking"}
		}
		return nil, err
	}

	// Same status twice: same observable state, no repeated side effects.
	if current.Status == newStatus {
		return current, nil
	}
	if !canTransition(current.Status, newStatus) {
		return nil, &StateError{Message: fmt.Sprintf("Cannot move booking from %s to %s", current.Status, newStatus)}
	}

	isActive := current.IsActive
	if newStatus.IsTerminal() {
		isActive = false
	}

	updated, err := s.Repo.UpdateStatus(ctx, bookingID, current.Status, newStatus, isActive)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			// The guarded write missed: either the booking vanished or a
			// concurrent transition moved it first. Re-read to tell which.
			latest, rerr := s.Repo.GetByID(ctx, bookingID)
			if rerr != nil {
				return nil, &NotFoundError{Entity: "booking"}
			}
			if latest.Status == newStatus {
				// The race wrote the same target; side effects already fired.
				return latest, nil
			}
			return nil, &StateError{Message: fmt.Sprintf("Cannot move booking from %s to %s", latest.Status, newStatus)}
		}
		return nil, err
	}

	s.runTransitionEffects(ctx, updated)
	return updated, nil
}

// runTransitionEffects fires the side effects of entering a terminal state.
// Accepted and in_progress are plain checkpoints consumed later by the
// reminder and overdue jobs.
func (s *DefaultBookingService) runTransitionEffects(ctx context.Context, b *models.Booking) {
	logger := utils.GetLogger()

	if !b.Status.IsTerminal() {
		return
	}

	if s.Chat != nil {
		if err := s.Chat.TeardownForBooking(ctx, b.ID); err != nil {
			logger.Error("chat teardown failed",
				zap.String("bookingId", b.ID), zap.Error(err))
		}
	}

	if s.Notifier == nil {
		return
	}
	evt := models.NotificationEvent{
		Target:    "customer",
		TargetID:  b.Customer,
		BookingID: b.ID,
		JobCode:   b.JobCode,
	}
	switch b.Status {
	case models.StatusCompleted:
		evt.Kind = "booking_completed"
		evt.Title = "Booking completed"
		evt.Body = fmt.Sprintf("Your booking on %s at %s has been completed. You can now leave a review.", b.Date, b.Time)
	case models.StatusCancelled:
		evt.Kind = "booking_cancelled"
		evt.Title = "Booking cancelled"
		evt.Body = fmt.Sprintf("Your booking on %s at %s has been cancelled.", b.Date, b.Time)
	}
	_ = s.Notifier.Dispatch(ctx, evt)
}
