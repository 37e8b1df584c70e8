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

const rankingCollectionName = "rankings"

type mongoRankingRepository struct {
	collection *mongo.Collection
}

func NewMongoRankingRepository(db *mongo.Database) repository.RankingRepository {
	return &mongoRankingRepository{collection: db.Collection(rankingCollectionName)}
}

func (r *mongoRankingRepository) List(ctx context.Context) ([]domain.Ranking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[domain.Ranking](ctx, r.collection, bson.M{}, opts)
}

func (r *mongoRankingRepository) GetByID(ctx context.Context, id string) (*domain.Ranking, error) {
	return findByID[domain.Ranking](ctx, r.collection, id)
}

func (r *mongoRankingRepository) Create(ctx context.Context, ranking *domain.Ranking) (string, error) {
	if ranking.Name == "" {
		return "", errors.New("ranking name is required")
	}
	ranking.ID = newID()
	now := time.Now().UTC()
	ranking.CreatedAt = now
	ranking.UpdatedAt = now
	if ranking.Entries == nil {
		ranking.Entries = []domain.RankingEntry{}
	}

	if err := insertOne(ctx, r.collection, ranking); err != nil {
		return "", err
	}
	return ranking.ID, nil
}

func (r *mongoRankingRepository) Update(ctx context.Context, ranking *domain.Ranking) error {
	ranking.UpdatedAt = time.Now().UTC()
	return replaceByID(ctx, r.collection, ranking.ID, ranking, false)
}

func (r *mongoRankingRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id)
}

func EnsureRankingIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}})
	return err
}
