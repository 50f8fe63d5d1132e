package booking

import (
	"context"

	bookingRepo "fixmate/database/repository/booking"
	serviceRepo "fixmate/database/repository/service"
	userRepo "fixmate/database/repository/user"
	workerRepo "fixmate/database/repository/worker"
	"fixmate/models"
	"fixmate/services/chat"
	"fixmate/services/notification"
)

// BookingService owns the booking lifecycle: creation, status transitions,
// rescheduling and the read paths.
type BookingService interface {
	CreateBooking(ctx context.Context, customerID string, in models.CreateBookingInput) (*models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, rawStatus string) (*models.Booking, error)
	Reschedule(ctx context.Context, bookingID, newDate, newTime string) (*models.Booking, error)
	VerifyJobCode(ctx context.Context, bookingID, jobCode string) (*models.Booking, error)

	GetBooking(ctx context.Context, bookingID string) (*models.BookingView, error)
	MyBookings(ctx context.Context, customerID string) ([]models.BookingView, error)
	AssignedBookings(ctx context.Context, workerUserID string) ([]models.BookingView, error)
	RecentAssignedBookings(ctx context.Context, workerUserID string) ([]models.BookingView, error)
	ActiveBookings(ctx context.Context) ([]models.BookingView, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Users    userRepo.UserRepository
	Workers  workerRepo.WorkerRepository
	Services serviceRepo.ServiceRepository

	Chat     chat.Service
	Notifier notification.Dispatcher

	Policy Policy
}
