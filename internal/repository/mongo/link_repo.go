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

const linkCollectionName = "links"

type mongoLinkRepository struct {
	collection *mongo.Collection
}

func NewMongoLinkRepository(db *mongo.Database) repository.LinkRepository {
	return &mongoLinkRepository{collection: db.Collection(linkCollectionName)}
}

func (r *mongoLinkRepository) List(ctx context.Context) ([]domain.Link, error) {
	return findAll[domain.Link](ctx, r.collection, bson.M{}, byOrder)
}

func (r *mongoLinkRepository) GetByID(ctx context.Context, id string) (*domain.Link, error) {
	return findByID[domain.Link](ctx, r.collection, id)
}

func (r *mongoLinkRepository) Create(ctx context.Context, link *domain.Link) (string, error) {
	if link.Title == "" || link.URL == "" {
		return "", errors.New("link title and url are required")
	}
	link.ID = newID()
	now := time.Now().UTC()
	link.CreatedAt = now
	link.UpdatedAt = now

	if err := insertOne(ctx, r.collection, link); err != nil {
		return "", err
	}
	return link.ID, nil
}

func (r *mongoLinkRepository) Update(ctx context.Context, link *domain.Link) error {
	link.UpdatedAt = time.Now().UTC()
	return replaceByID(ctx, r.collection, link.ID, link, false)
}

func (r *mongoLinkRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id)
}

func EnsureLinkIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "order", Value: 1}}})
	return err
}
