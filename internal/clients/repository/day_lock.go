package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"lumiere/pkg/config"
	"lumiere/pkg/model"
)

const DayLockCollectionName = "Day_locks"

// DayLockRepository provides operations for advisory per-day locks used
// to serialize quota admissions.
type DayLockRepository interface {
	Create(ctx context.Context, lock *model.DayLock) (*model.DayLock, error)
	Delete(ctx context.Context, lockID string) error
	DeleteMany(ctx context.Context, lockIDs []string) error
}

type mongoDayLockRepository struct {
	collection *mongo.Collection
}

func NewDayLockRepository(cfg *config.Config) DayLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDayLockRepository{
		collection: db.Collection(DayLockCollectionName),
	}
}

// Returns duplicate key error if the lock already exists
func (r *mongoDayLockRepository) Create(ctx context.Context, lock *model.DayLock) (*model.DayLock, error) {
	lock.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		return nil, err
	}

	return lock, nil
}

func (r *mongoDayLockRepository) Delete(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}

func (r *mongoDayLockRepository) DeleteMany(ctx context.Context, lockIDs []string) error {
	if len(lockIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": lockIDs}})
	return err
}
