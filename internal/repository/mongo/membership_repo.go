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

const membershipCardCollectionName = "membership_cards"

type mongoMembershipCardRepository struct {
	collection *mongo.Collection
}

func NewMongoMembershipCardRepository(db *mongo.Database) repository.MembershipCardRepository {
	return &mongoMembershipCardRepository{collection: db.Collection(membershipCardCollectionName)}
}

var newestCardFirst = options.Find().SetSort(bson.D{{Key: "year", Value: -1}, {Key: "month", Value: -1}})

func (r *mongoMembershipCardRepository) List(ctx context.Context) ([]domain.MembershipCard, error) {
	return findAll[domain.MembershipCard](ctx, r.collection, bson.M{}, newestCardFirst)
}

func (r *mongoMembershipCardRepository) ListByUser(ctx context.Context, userID string) ([]domain.MembershipCard, error) {
	return findAll[domain.MembershipCard](ctx, r.collection, bson.M{"userId": userID}, newestCardFirst)
}

func (r *mongoMembershipCardRepository) GetByID(ctx context.Context, id string) (*domain.MembershipCard, error) {
	return findByID[domain.MembershipCard](ctx, r.collection, id)
}

func (r *mongoMembershipCardRepository) Create(ctx context.Context, card *domain.MembershipCard) (string, error) {
	if card.UserID == "" || card.Month == "" {
		return "", errors.New("membership card user and month are required")
	}
	card.ID = newID()
	now := time.Now().UTC()
	card.CreatedAt = now
	card.UpdatedAt = now

	if err := insertOne(ctx, r.collection, card); err != nil {
		return "", err
	}
	return card.ID, nil
}

func (r *mongoMembershipCardRepository) Update(ctx context.Context, card *domain.MembershipCard) error {
	card.UpdatedAt = time.Now().UTC()
	return replaceByID(ctx, r.collection, card.ID, card, false)
}

func (r *mongoMembershipCardRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id)
}

func EnsureMembershipCardIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "year", Value: -1}, {Key: "month", Value: -1}}},
		{Keys: bson.D{{Key: "year", Value: -1}, {Key: "month", Value: -1}}},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
