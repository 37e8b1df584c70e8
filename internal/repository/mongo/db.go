package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"kw8/gym-app/internal/logging"
	"kw8/gym-app/internal/repository"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI and
// verifies it with a ping. A zero timeout uses the default.
func ConnectDB(uri string, timeout time.Duration) (*mongo.Client, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// The initial connect can succeed against an unresponsive server.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}
	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// NewRepositories wires every remote collection of db.
func NewRepositories(db *mongo.Database) repository.Repositories {
	return repository.Repositories{
		Users:       NewMongoUserRepository(db),
		Plans:       NewMongoWorkoutPlanRepository(db),
		Folders:     NewMongoWorkoutFolderRepository(db),
		Rankings:    NewMongoRankingRepository(db),
		Links:       NewMongoLinkRepository(db),
		Memberships: NewMongoMembershipCardRepository(db),
		Schedule:    NewMongoGymScheduleRepository(db),
	}
}

// EnsureIndexes creates the indexes of every collection. Failures are logged
// and do not stop the caller.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log logging.Logger) {
	ensure := []struct {
		name string
		fn   func(context.Context, *mongo.Collection) error
	}{
		{userCollectionName, EnsureUserIndexes},
		{workoutPlanCollectionName, EnsureWorkoutPlanIndexes},
		{workoutFolderCollectionName, EnsureWorkoutFolderIndexes},
		{rankingCollectionName, EnsureRankingIndexes},
		{linkCollectionName, EnsureLinkIndexes},
		{membershipCardCollectionName, EnsureMembershipCardIndexes},
	}
	for _, e := range ensure {
		if err := e.fn(ctx, db.Collection(e.name)); err != nil {
			log.Warn(ctx, "failed to create indexes", "collection", e.name, "err", err)
			continue
		}
		log.Debug(ctx, "indexes ensured", "collection", e.name)
	}
}
