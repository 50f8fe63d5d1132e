package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"fixmate/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Queries used by the background jobs. Each job scans for accepted bookings
// whose reminder flag has not fired yet and marks the flag before acting, so
// a reminder goes out at most once per booking.

func (r *MongoBookingRepo) FindAcceptedWithoutFlag(ctx context.Context, flag ReminderFlag) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":     models.StatusAccepted,
		string(flag): false,
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error scanning accepted bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding accepted bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) SetReminderFlag(ctx context.Context, id string, flag ReminderFlag) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		string(flag): true,
		"updatedAt":  time.Now(),
	}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("error setting %s on booking %s: %w", flag, id, err)
	}
	return nil
}

// CancelOverdue flips an accepted booking to cancelled and marks the overdue
// flag in one write. The filter re-checks the flag so two overlapping scans
// cannot both claim the same booking.
func (r *MongoBookingRepo) CancelOverdue(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":                       id,
		"status":                   models.StatusAccepted,
		"overdueRequestedReminder": false,
	}
	update := bson.M{"$set": bson.M{
		"status":                   models.StatusCancelled,
		"isActive":                 false,
		"overdueRequestedReminder": true,
		"updatedAt":                time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error auto-cancelling booking %s: %w", id, err)
	}
	return &booking, nil
}

// DeleteStaleRequested purges bookings still in requested status created
// before the cutoff. This is the only path that hard-deletes bookings.
func (r *MongoBookingRepo) DeleteStaleRequested(ctx context.Context, olderThan time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":    models.StatusRequested,
		"createdAt": bson.M{"$lte": olderThan},
	}
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error purging stale bookings: %w", err)
	}
	return res.DeletedCount, nil
}
