package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/repository"
)

const workoutFolderCollectionName = "workout_folders"

// mongoWorkoutFolderRepository implements repository.WorkoutFolderRepository.
// It also holds the plans collection to move plans out of deleted folders.
type mongoWorkoutFolderRepository struct {
	collection *mongo.Collection
	plans      *mongo.Collection
}

func NewMongoWorkoutFolderRepository(db *mongo.Database) repository.WorkoutFolderRepository {
	return &mongoWorkoutFolderRepository{
		collection: db.Collection(workoutFolderCollectionName),
		plans:      db.Collection(workoutPlanCollectionName),
	}
}

func (r *mongoWorkoutFolderRepository) List(ctx context.Context) ([]domain.WorkoutFolder, error) {
	return findAll[domain.WorkoutFolder](ctx, r.collection, bson.M{}, byOrder)
}

func (r *mongoWorkoutFolderRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutFolder, error) {
	return findByID[domain.WorkoutFolder](ctx, r.collection, id)
}

func (r *mongoWorkoutFolderRepository) Create(ctx context.Context, folder *domain.WorkoutFolder) (string, error) {
	if folder.Name == "" {
		return "", errors.New("workout folder name is required")
	}
	folder.ID = newID()
	now := time.Now().UTC()
	folder.CreatedAt = now
	folder.UpdatedAt = now

	if err := insertOne(ctx, r.collection, folder); err != nil {
		return "", err
	}
	return folder.ID, nil
}

func (r *mongoWorkoutFolderRepository) Upsert(ctx context.Context, folder *domain.WorkoutFolder) error {
	now := time.Now().UTC()
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = now
	}
	folder.UpdatedAt = now
	return replaceByID(ctx, r.collection, folder.ID, folder, true)
}

func (r *mongoWorkoutFolderRepository) Update(ctx context.Context, folder *domain.WorkoutFolder) error {
	folder.UpdatedAt = time.Now().UTC()
	return replaceByID(ctx, r.collection, folder.ID, folder, false)
}

// Delete moves the folder's direct sub-folders to its parent and its plans to
// the root, then removes the folder. The steps are not transactional.
func (r *mongoWorkoutFolderRepository) Delete(ctx context.Context, id string) error {
	folder, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	childUpdate := bson.M{"$unset": bson.M{"parentId": ""}, "$set": bson.M{"updatedAt": now}}
	if folder.ParentID != "" {
		childUpdate = bson.M{"$set": bson.M{"parentId": folder.ParentID, "updatedAt": now}}
	}
	if _, err := r.collection.UpdateMany(ctx, bson.M{"parentId": id}, childUpdate); err != nil {
		return err
	}

	planUpdate := bson.M{"$unset": bson.M{"folderId": ""}, "$set": bson.M{"updatedAt": now}}
	if _, err := r.plans.UpdateMany(ctx, bson.M{"folderId": id}, planUpdate); err != nil {
		return err
	}

	return deleteByID(ctx, r.collection, id)
}

// EnsureWorkoutFolderIndexes creates necessary indexes for the workout_folders collection.
func EnsureWorkoutFolderIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "parentId", Value: 1}}},
		{Keys: bson.D{{Key: "order", Value: 1}}},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
