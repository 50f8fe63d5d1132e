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

// ensureIndexes creates the booking indexes. The partial unique index on
// (worker, date, time) is the enforcement backstop for the no-double-booking
// invariant: it only covers active statuses, so completed and cancelled
// bookings may share a slot historically.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	activeSlotOpts := options.Index().
		SetUnique(true).
		SetName("unique_active_worker_slot").
		SetPartialFilterExpression(bson.M{
			"status": bson.M{"$in": models.ActiveStatuses},
		})

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "jobCode", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_job_code"),
		},
		{
			Keys: bson.D{
				{Key: "worker", Value: 1},
				{Key: "date", Value: 1},
				{Key: "time", Value: 1},
			},
			Options: activeSlotOpts,
		},
		{
			Keys:    bson.D{{Key: "customer", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("customer_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("status_created_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
