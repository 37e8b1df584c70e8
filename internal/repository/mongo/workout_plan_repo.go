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

const workoutPlanCollectionName = "workout_plans"

// mongoWorkoutPlanRepository implements repository.WorkoutPlanRepository
type mongoWorkoutPlanRepository struct {
	collection *mongo.Collection
}

func NewMongoWorkoutPlanRepository(db *mongo.Database) repository.WorkoutPlanRepository {
	return &mongoWorkoutPlanRepository{
		collection: db.Collection(workoutPlanCollectionName),
	}
}

var byOrder = options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

func (r *mongoWorkoutPlanRepository) List(ctx context.Context) ([]domain.WorkoutPlan, error) {
	return findAll[domain.WorkoutPlan](ctx, r.collection, bson.M{}, byOrder)
}

// ListByFolder lists the plans of one folder. Root plans have no folderId
// field at all.
func (r *mongoWorkoutPlanRepository) ListByFolder(ctx context.Context, folderID string) ([]domain.WorkoutPlan, error) {
	filter := bson.M{"folderId": folderID}
	if folderID == "" {
		filter = bson.M{"folderId": bson.M{"$in": bson.A{nil, ""}}}
	}
	return findAll[domain.WorkoutPlan](ctx, r.collection, filter, byOrder)
}

func (r *mongoWorkoutPlanRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	return findByID[domain.WorkoutPlan](ctx, r.collection, id)
}

func (r *mongoWorkoutPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) (string, error) {
	if plan.Name == "" {
		return "", errors.New("workout plan name is required")
	}
	plan.ID = newID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	if err := insertOne(ctx, r.collection, plan); err != nil {
		return "", err
	}
	return plan.ID, nil
}

func (r *mongoWorkoutPlanRepository) Upsert(ctx context.Context, plan *domain.WorkoutPlan) error {
	now := time.Now().UTC()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now
	return replaceByID(ctx, r.collection, plan.ID, plan, true)
}

func (r *mongoWorkoutPlanRepository) Update(ctx context.Context, plan *domain.WorkoutPlan) error {
	plan.UpdatedAt = time.Now().UTC()
	return replaceByID(ctx, r.collection, plan.ID, plan, false)
}

func (r *mongoWorkoutPlanRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id)
}

// EnsureWorkoutPlanIndexes creates necessary indexes for the workout_plans collection.
func EnsureWorkoutPlanIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "folderId", Value: 1}, {Key: "order", Value: 1}}},
		{Keys: bson.D{{Key: "order", Value: 1}}},
		{Keys: bson.D{{Key: "associatedAthletes", Value: 1}}},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
