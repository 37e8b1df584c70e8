// Package app wires configuration, storage backends and services together
// for the server and the operator CLI.
package app

import (
	"context"
	"errors"
	"time"

	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"kw8/gym-app/internal/config"
	"kw8/gym-app/internal/localstore"
	"kw8/gym-app/internal/logging"
	"kw8/gym-app/internal/repository"
	localrepo "kw8/gym-app/internal/repository/local"
	"kw8/gym-app/internal/repository/mongo"
	"kw8/gym-app/internal/service"
	"kw8/gym-app/internal/storage"
)

// App holds the wired services. Remote and FileStorage are nil when the
// corresponding backend is not configured.
type App struct {
	Config      config.Config
	Log         logging.Logger
	Store       *localstore.Store
	Selector    *service.FlagSelector
	Backends    *service.Backends
	Remote      service.RemoteService
	FileStorage storage.FileStorage

	Users      service.UserService
	Workouts   service.WorkoutService
	Rankings   service.RankingService
	Links      service.LinkService
	Membership service.MembershipService
	Media      service.MediaService
	Schedule   service.ScheduleService
	Auth       service.AuthService

	closers []func() error
}

// Options tunes New for short-lived callers.
type Options struct {
	// SkipIndexes leaves remote index creation to the server.
	SkipIndexes bool
}

// New opens the local store and, when configured, the remote document store
// and object storage. A local store that cannot be opened degrades to memory;
// a configured remote store that cannot be reached is an error.
func New(ctx context.Context, cfg config.Config, log logging.Logger, opts Options) (*App, error) {
	a := &App{Config: cfg, Log: log}

	// --- Local Store ---
	var persistent localstore.Backend
	sqlite, err := localstore.OpenSQLite(ctx, cfg.Local.DSN)
	if err != nil {
		log.Error(ctx, "local database unavailable, keeping data in memory only", "dsn", cfg.Local.DSN, "err", err)
	} else {
		persistent = sqlite
		a.closers = append(a.closers, sqlite.Close)
	}
	a.Store = localstore.New(persistent, log)

	// --- Remote Store ---
	var remoteRepos repository.Repositories
	if cfg.RemoteConfigured() {
		client, err := mongo.ConnectDB(cfg.Database.URI, cfg.Database.ConnectTimeout)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() error { return mongo.DisconnectDB(client) })
		db := client.Database(cfg.Database.Name)
		remoteRepos = mongo.NewRepositories(db)
		if !opts.SkipIndexes {
			go ensureIndexes(db, log)
		}
		a.Remote = service.NewRemoteService(remoteRepos, a.Store, log)
		log.Info(ctx, "remote store connected", "database", cfg.Database.Name)
	}

	a.Selector = service.NewFlagSelector(a.Store, cfg.RemoteConfigured())
	a.Selector.Seed(ctx, cfg.Remote.Enabled)
	a.Backends = service.NewBackends(a.Selector, localrepo.NewRepositories(a.Store), remoteRepos, log)

	// --- Object Storage ---
	if cfg.S3Configured() {
		fs, err := storage.NewS3Storage(ctx, cfg.S3, log)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.FileStorage = fs
	}

	// --- Services ---
	a.Users = service.NewUserService(a.Backends)
	a.Workouts = service.NewWorkoutService(a.Backends)
	a.Rankings = service.NewRankingService(a.Backends)
	a.Links = service.NewLinkService(a.Backends)
	a.Membership = service.NewMembershipService(a.Backends)
	a.Media = service.NewMediaService(a.Workouts, a.FileStorage)
	a.Schedule = service.NewScheduleService(a.Backends)
	if cfg.JWT.Secret != "" {
		a.Auth = service.NewAuthService(a.Users, cfg.JWT.Secret, cfg.JWT.Expiration)
	}

	log.Info(ctx, "services ready",
		"remote_configured", cfg.RemoteConfigured(),
		"remote_enabled", a.Selector.RemoteEnabled(ctx),
		"local_persistent", persistent != nil,
		"media_storage", a.FileStorage != nil)
	return a, nil
}

func ensureIndexes(db *mongodrv.Database, log logging.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	mongo.EnsureIndexes(ctx, db, log)
	log.Info(ctx, "index creation process completed")
}

// Close releases backends in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
