package bookingRepo

import (
	"context"
	"time"

	"fixmate/models"
)

// BookingRepository is the persistence contract for bookings. Conflict
// lookups accept a context so that, during creation, they can run inside the
// same transaction snapshot as the insert.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	GetByWorker(ctx context.Context, workerID string, limit int64) ([]models.Booking, error)
	// GetActive lists all bookings still marked active, newest first.
	GetActive(ctx context.Context) ([]models.Booking, error)

	// FindWorkerConflict returns an active booking holding (worker, date, time),
	// ignoring excludeID when non-empty. Nil result means the slot is free.
	FindWorkerConflict(ctx context.Context, workerID, date, timeStr, excludeID string) (*models.Booking, error)
	// FindCustomerConflict returns an active booking by the same customer for
	// the same worker, service and slot.
	FindCustomerConflict(ctx context.Context, customerID, workerID, serviceID, date, timeStr string) (*models.Booking, error)

	// CreateTransactionally runs both conflict checks and the insert inside a
	// single multi-document transaction.
	CreateTransactionally(ctx context.Context, booking *models.Booking) error

	// UpdateStatus persists a status change plus its derived fields. The
	// write is guarded on the status the caller observed; ErrNotFound means
	// the booking is gone or no longer in that status.
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, isActive bool) (*models.Booking, error)

	// MoveSchedule writes the new (date, time) for a booking, guarded so the
	// update only applies while the booking is still active. The caller must
	// have already cleared the slot; a concurrent occupation still surfaces
	// through the unique index.
	MoveSchedule(ctx context.Context, id, newDate, newTime string) (*models.Booking, error)

	// Job-facing queries.
	FindAcceptedWithoutFlag(ctx context.Context, flag ReminderFlag) ([]models.Booking, error)
	SetReminderFlag(ctx context.Context, id string, flag ReminderFlag) error
	CancelOverdue(ctx context.Context, id string) (*models.Booking, error)
	DeleteStaleRequested(ctx context.Context, olderThan time.Time) (int64, error)
}

// ReminderFlag names the per-booking at-most-once reminder markers.
type ReminderFlag string

const (
	FlagReminder30Min ReminderFlag = "acceptedReminder30Min"
	FlagReminder1Hour ReminderFlag = "acceptedReminder1Hour"
	FlagOverdueCancel ReminderFlag = "overdueRequestedReminder"
)
