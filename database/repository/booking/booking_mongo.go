package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fixmate/database"
	"fixmate/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sentinel errors surfaced to the service layer, which maps them onto its
// client-facing error taxonomy.
var (
	ErrNotFound         = errors.New("booking not found")
	ErrWorkerConflict   = errors.New("worker slot already booked")
	ErrCustomerConflict = errors.New("duplicate customer booking for slot")
	ErrTransient        = errors.New("transaction could not be completed")
	ErrNoActiveBooking  = errors.New("booking is no longer active")
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a booking repository and ensures its indexes.
func NewMongoBookingRepo() *MongoBookingRepo {
	repo := &MongoBookingRepo{coll: database.DB().Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("booking repository index setup failed: %v", err))
	}
	return repo
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) GetByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"customer": customerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings for customer %s: %w", customerID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding customer bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) GetByWorker(ctx context.Context, workerID string, limit int64) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, bson.M{"worker": workerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings for worker %s: %w", workerID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding worker bookings: %w", err)
	}
	return bookings, nil
}

// GetActive lists every booking still marked active, for the admin view.
func (r *MongoBookingRepo) GetActive(ctx context.Context) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching active bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding active bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus persists a status change and returns the updated document.
// The filter requires the status the caller observed, so two racing
// transitions cannot both apply; the loser sees ErrNotFound and re-reads.
func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, isActive bool) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{
		"status":    to,
		"isActive":  isActive,
		"updatedAt": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error updating status of booking %s: %w", id, err)
	}
	return &booking, nil
}

// MoveSchedule rewrites the booking's slot. The filter requires an active
// status so a terminal booking can never be moved, even by a stale caller.
func (r *MongoBookingRepo) MoveSchedule(ctx context.Context, id, newDate, newTime string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": models.ActiveStatuses},
	}
	update := bson.M{"$set": bson.M{
		"date":      newDate,
		"time":      newTime,
		"updatedAt": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoActiveBooking
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrWorkerConflict
		}
		return nil, fmt.Errorf("error rescheduling booking %s: %w", id, err)
	}
	return &booking, nil
}
