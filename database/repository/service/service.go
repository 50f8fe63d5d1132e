package serviceRepo

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

var ErrNotFound = errors.New("service not found")

// ServiceRepository is the lookup contract for the service catalog.
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*models.ServiceCategory, error)
}

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

func NewMongoServiceRepo() *MongoServiceRepo {
	return &MongoServiceRepo{coll: database.DB().Collection("services")}
}

func (r *MongoServiceRepo) GetByID(ctx context.Context, id string) (*models.ServiceCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var svc models.ServiceCategory
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching service %s: %w", id, err)
	}
	return &svc, nil
}
