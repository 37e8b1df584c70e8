package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/repository"
)

const gymScheduleCollectionName = "gym_schedule"

type mongoGymScheduleRepository struct {
	collection *mongo.Collection
}

func NewMongoGymScheduleRepository(db *mongo.Database) repository.GymScheduleRepository {
	return &mongoGymScheduleRepository{collection: db.Collection(gymScheduleCollectionName)}
}

// Get returns the oldest schedule document; there should only ever be one.
func (r *mongoGymScheduleRepository) Get(ctx context.Context) (*domain.GymSchedule, error) {
	var schedule domain.GymSchedule
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&schedule)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *mongoGymScheduleRepository) Save(ctx context.Context, schedule *domain.GymSchedule) (string, error) {
	now := time.Now().UTC()
	existing, err := r.Get(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		schedule.ID = newID()
		schedule.CreatedAt = now
		schedule.UpdatedAt = now
		if err := insertOne(ctx, r.collection, schedule); err != nil {
			return "", err
		}
		return schedule.ID, nil
	case err != nil:
		return "", err
	}

	schedule.ID = existing.ID
	schedule.CreatedAt = existing.CreatedAt
	schedule.UpdatedAt = now
	if err := replaceByID(ctx, r.collection, schedule.ID, schedule, false); err != nil {
		return "", err
	}
	return schedule.ID, nil
}
