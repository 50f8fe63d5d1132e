package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "fixmate/database/repository/booking"
	serviceRepo "fixmate/database/repository/service"
	userRepo "fixmate/database/repository/user"
	workerRepo "fixmate/database/repository/worker"
	"fixmate/models"
	"fixmate/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking validates the request and persists the booking as one atomic
// unit. Validation failures abort before any transactional work; conflicts
// found inside the transaction abort it. The uniqueness index on active
// (worker, date, time) backs up the in-transaction checks, so concurrent
// creations of the same slot yield exactly one success.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, customerID string, in models.CreateBookingInput) (*models.Booking, error) {
	if customerID == "" {
		return nil, NewValidationError("customerId", "User ID is required")
	}
	if in.Date == "" || in.Time == "" || in.WorkerID == "" || in.JobCode == "" ||
		in.ServiceDetails.Service == "" || in.ServiceDetails.Description == "" {
		return nil, NewValidationError("body", "Required booking fields are missing")
	}

	bookingDate, err := validateCreateSchedule(in.Date, in.Time, today(), s.Policy)
	if err != nil {
		return nil, err
	}

	customer, err := s.Users.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, &NotFoundError{Entity: "customer"}
		}
		return nil, err
	}
	worker, err := s.Workers.GetByID(ctx, in.WorkerID)
	if err != nil {
		if errors.Is(err, workerRepo.ErrNotFound) {
			return nil, &NotFoundError{Entity: "worker"}
		}
		return nil, err
	}
	svc, err := s.Services.GetByID(ctx, in.ServiceDetails.Service)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return nil, &NotFoundError{Entity: "service"}
		}
		return nil, err
	}

	now := time.Now()
	booking := &models.Booking{
		ID:       uuid.New().String(),
		JobCode:  in.JobCode,
		Customer: customer.ID,
		Worker:   worker.ID,
		ServiceDetails: models.ServiceDetails{
			Service:     svc.ID,
			Urgency:     in.ServiceDetails.Urgency,
			Type:        in.ServiceDetails.Type,
			Description: in.ServiceDetails.Description,
			Duration:    in.ServiceDetails.Duration,
			Price:       in.ServiceDetails.Price,
		},
		Date:          bookingDate.Format(dateLayout),
		Time:          in.Time,
		Location:      in.Location,
		Status:        models.StatusRequested,
		IsActive:      true,
		CustomerNotes: in.CustomerNotes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Repo.CreateTransactionally(ctx, booking); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrCustomerConflict):
			return nil, &ConflictError{Message: "You already have a booking with this worker for this service at this time"}
		case errors.Is(err, bookingRepo.ErrWorkerConflict):
			return nil, &ConflictError{Message: "Worker is already booked at this time slot"}
		case errors.Is(err, bookingRepo.ErrTransient):
			return nil, &TransientCommitError{Cause: err}
		default:
			return nil, err
		}
	}

	utils.GetLogger().Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("jobCode", booking.JobCode),
		zap.String("worker", booking.Worker),
		zap.String("date", booking.Date),
		zap.String("time", booking.Time),
	)
	return booking, nil
}
