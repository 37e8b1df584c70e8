package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/repository"
)

const userCollectionName = "users"

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// List returns every user ordered by name.
func (r *mongoUserRepository) List(ctx context.Context) ([]domain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[domain.User](ctx, r.collection, bson.M{}, opts)
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return findByID[domain.User](ctx, r.collection, id)
}

// GetByEmail matches the address case-insensitively.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	filter := bson.M{"email": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(email) + "$", Options: "i"}}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user under a fresh id.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	if user.Email == "" || user.Role == "" {
		return "", errors.New("user email and role are required")
	}
	user.ID = newID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := insertOne(ctx, r.collection, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// Upsert stores the user under its existing id.
func (r *mongoUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	return replaceByID(ctx, r.collection, user.ID, user, true)
}

func (r *mongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	return replaceByID(ctx, r.collection, user.ID, user, false)
}

func (r *mongoUserRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id)
}

// BatchCreate inserts all users in one round trip and returns their new ids
// in input order.
func (r *mongoUserRepository) BatchCreate(ctx context.Context, users []domain.User) ([]string, error) {
	if len(users) == 0 {
		return []string{}, nil
	}
	now := time.Now().UTC()
	docs := make([]any, len(users))
	ids := make([]string, len(users))
	for i := range users {
		users[i].ID = newID()
		users[i].CreatedAt = now
		users[i].UpdatedAt = now
		docs[i] = users[i]
		ids[i] = users[i].ID
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return ids, nil
}

// EnsureUserIndexes creates necessary indexes for the users collection.
// Call this once during application startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Not unique: the remote store accepts what migration copies.
			Keys: bson.D{{Key: "email", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}},
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
