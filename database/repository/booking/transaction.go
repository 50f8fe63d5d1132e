package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"fixmate/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CreateTransactionally runs the conflict checks and the insert as one
// atomic unit. The pre-checks inside the transaction give precise error
// reporting; the partial unique index on (worker, date, time) catches the
// race where two transactions both read a free slot.
func (r *MongoBookingRepo) CreateTransactionally(ctx context.Context, booking *models.Booking) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		byCustomer, err := r.FindCustomerConflict(sc,
			booking.Customer, booking.Worker, booking.ServiceDetails.Service, booking.Date, booking.Time)
		if err != nil {
			return err
		}
		if byCustomer != nil {
			return ErrCustomerConflict
		}

		byWorker, err := r.FindWorkerConflict(sc, booking.Worker, booking.Date, booking.Time, "")
		if err != nil {
			return err
		}
		if byWorker != nil {
			return ErrWorkerConflict
		}

		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				// Lost the race to a concurrent insert.
				return ErrWorkerConflict
			}
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	err = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
	if err != nil {
		if errors.Is(err, ErrWorkerConflict) || errors.Is(err, ErrCustomerConflict) {
			return err
		}
		if isTransientTxnError(err) {
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// isTransientTxnError reports whether the transaction coordinator itself
// failed, as opposed to a business-rule rejection. Callers may retry the
// whole operation; the server never retries on their behalf.
func isTransientTxnError(err error) bool {
	var se mongo.ServerError
	if errors.As(err, &se) {
		return se.HasErrorLabel("TransientTransactionError") ||
			se.HasErrorLabel("UnknownTransactionCommitResult") ||
			se.HasErrorCode(251) // NoSuchTransaction
	}
	return false
}
