package booking

import (
	"context"
	"errors"

	bookingRepo "fixmate/database/repository/booking"
	workerRepo "fixmate/database/repository/worker"
	"fixmate/models"
)

const recentBookingsLimit = 5

// buildView attaches the referenced records to a booking for read responses.
// Lookup misses degrade to a partial view rather than failing the read; the
// booking itself is the source of truth.
func (s *DefaultBookingService) buildView(ctx context.Context, b models.Booking) models.BookingView {
	view := models.BookingView{Booking: b}
	if customer, err := s.Users.GetByID(ctx, b.Customer); err == nil {
		view.CustomerInfo = customer
	}
	if worker, err := s.Workers.GetByID(ctx, b.Worker); err == nil {
		view.WorkerInfo = worker
	}
	if svc, err := s.Services.GetByID(ctx, b.ServiceDetails.Service); err == nil {
		view.ServiceInfo = svc
	}
	return view
}

func (s *DefaultBookingService) buildViews(ctx context.Context, bookings []models.Booking) []models.BookingView {
	views := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, s.buildView(ctx, b))
	}
	return views
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.BookingView, error) {
	if bookingID == "" {
		return nil, NewValidationError("bookingId", "Booking ID is required")
	}
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &NotFoundError{Entity: "booking"}
		}
		return nil, err
	}
	view := s.buildView(ctx, *b)
	return &view, nil
}

func (s *DefaultBookingService) MyBookings(ctx context.Context, customerID string) ([]models.BookingView, error) {
	if customerID == "" {
		return nil, NewValidationError("customerId", "User ID is required")
	}
	bookings, err := s.Repo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, bookings), nil
}

// AssignedBookings lists the bookings assigned to the worker profile owned
// by the authenticated user.
func (s *DefaultBookingService) AssignedBookings(ctx context.Context, workerUserID string) ([]models.BookingView, error) {
	return s.assignedBookings(ctx, workerUserID, 0)
}

// RecentAssignedBookings returns the worker's most recent bookings.
func (s *DefaultBookingService) RecentAssignedBookings(ctx context.Context, workerUserID string) ([]models.BookingView, error) {
	return s.assignedBookings(ctx, workerUserID, recentBookingsLimit)
}

func (s *DefaultBookingService) assignedBookings(ctx context.Context, workerUserID string, limit int64) ([]models.BookingView, error) {
	if workerUserID == "" {
		return nil, NewValidationError("userId", "User ID is required")
	}
	worker, err := s.Workers.GetByUser(ctx, workerUserID)
	if err != nil {
		if errors.Is(err, workerRepo.ErrNotFound) {
			return nil, &NotFoundError{Entity: "worker"}
		}
		return nil, err
	}
	bookings, err := s.Repo.GetByWorker(ctx, worker.ID, limit)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, bookings), nil
}

// ActiveBookings lists every active booking across the marketplace, for the
// admin overview.
func (s *DefaultBookingService) ActiveBookings(ctx context.Context) ([]models.BookingView, error) {
	bookings, err := s.Repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, bookings), nil
}

// VerifyJobCode completes an accepted booking once the worker presents the
// customer's job code. The transition itself goes through the state machine
// so completion side effects fire exactly as for any other completion.
func (s *DefaultBookingService) VerifyJobCode(ctx context.Context, bookingID, jobCode string) (*models.Booking, error) {
	if bookingID == "" {
		return nil, NewValidationError("bookingId", "Booking ID is required")
	}
	if len(jobCode) != 6 {
		return nil, NewValidationError("jobCode", "Job code must be a 6-digit number")
	}

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &NotFoundError{Entity: "booking"}
		}
		return nil, err
	}
	if b.Status != models.StatusAccepted {
		return nil, &StateError{Message: "Booking must be accepted to verify job code"}
	}
	if b.JobCode != jobCode {
		return nil, NewValidationError("jobCode", "Invalid job code")
	}

	return s.UpdateStatus(ctx, bookingID, string(models.StatusCompleted))
}
