package workerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fixmate/database"
	"fixmate/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("worker not found")

// WorkerRepository is the lookup contract the booking core needs from the
// worker directory. The weekly schedule rides along on the profile.
type WorkerRepository interface {
	GetByID(ctx context.Context, id string) (*models.WorkerProfile, error)
	GetByUser(ctx context.Context, userID string) (*models.WorkerProfile, error)
}

// MongoWorkerRepo implements WorkerRepository using MongoDB.
type MongoWorkerRepo struct {
	coll *mongo.Collection
}

func NewMongoWorkerRepo() *MongoWorkerRepo {
	return &MongoWorkerRepo{coll: database.DB().Collection("workers")}
}

func (r *MongoWorkerRepo) GetByID(ctx context.Context, id string) (*models.WorkerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var worker models.WorkerProfile
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&worker); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching worker %s: %w", id, err)
	}
	return &worker, nil
}

func (r *MongoWorkerRepo) GetByUser(ctx context.Context, userID string) (*models.WorkerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var worker models.WorkerProfile
	if err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&worker); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching worker for user %s: %w", userID, err)
	}
	return &worker, nil
}
