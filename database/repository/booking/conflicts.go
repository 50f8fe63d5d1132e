package bookingRepo

import (
	"context"
	"fmt"

	"fixmate/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Conflict lookups deliberately take the caller's context unmodified: during
// creation they receive a mongo.SessionContext so the read and the eventual
// insert observe one transactional snapshot.

// FindWorkerConflict looks for an active booking occupying (worker, date, time).
func (r *MongoBookingRepo) FindWorkerConflict(ctx context.Context, workerID, date, timeStr, excludeID string) (*models.Booking, error) {
	filter := bson.M{
		"worker": workerID,
		"date":   date,
		"time":   timeStr,
		"status": bson.M{"$in": models.ActiveStatuses},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}

	var booking models.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error checking worker conflict: %w", err)
	}
	return &booking, nil
}

// FindCustomerConflict looks for an active booking by the same customer for
// the same worker, service and slot. This is narrower than the worker-wide
// slot lock and exists to stop duplicate submissions by one customer.
func (r *MongoBookingRepo) FindCustomerConflict(ctx context.Context, customerID, workerID, serviceID, date, timeStr string) (*models.Booking, error) {
	filter := bson.M{
		"customer":               customerID,
		"worker":                 workerID,
		"serviceDetails.service": serviceID,
		"date":                   date,
		"time":                   timeStr,
		"status":                 bson.M{"$in": models.ActiveStatuses},
	}

	var booking models.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error checking customer conflict: %w", err)
	}
	return &booking, nil
}
