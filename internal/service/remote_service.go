package service

import (
	"context"
	"fmt"
	"time"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/localstore"
	"kw8/gym-app/internal/logging"
	"kw8/gym-app/internal/metrics"
	"kw8/gym-app/internal/repository"
)

// MigrationOptions tunes MigrateFromLocalStore.
type MigrationOptions struct {
	// PreserveIDs upserts records under their local ids, so a re-run
	// overwrites instead of duplicating. By default every record gets a
	// fresh remote id and references between records keep the local ids.
	PreserveIDs bool
}

// MigrationReport counts the records written per collection.
type MigrationReport struct {
	Folders     int           `json:"folders"`
	Plans       int           `json:"plans"`
	Users       int           `json:"users"`
	PreserveIDs bool          `json:"preserveIds"`
	Duration    time.Duration `json:"duration"`
}

// RemoteService is the facade over the remote document store.
type RemoteService interface {
	Repositories() repository.Repositories
	// MigrateFromLocalStore copies folders, plans and users, in that order,
	// one record at a time. The first failure stops the run; records written
	// before it stay written.
	MigrateFromLocalStore(ctx context.Context, opts MigrationOptions) (*MigrationReport, error)
}

type remoteService struct {
	repos repository.Repositories
	store *localstore.Store
	log   logging.Logger
}

func NewRemoteService(repos repository.Repositories, store *localstore.Store, log logging.Logger) RemoteService {
	if log == nil {
		log = logging.Discard()
	}
	return &remoteService{repos: repos, store: store, log: log.With("component", "remote")}
}

func (s *remoteService) Repositories() repository.Repositories {
	return s.repos
}

func (s *remoteService) MigrateFromLocalStore(ctx context.Context, opts MigrationOptions) (*MigrationReport, error) {
	if s.repos.Users == nil {
		return nil, ErrRemoteUnavailable
	}
	start := time.Now()
	report := &MigrationReport{PreserveIDs: opts.PreserveIDs}
	defer func() {
		report.Duration = time.Since(start)
		metrics.ObserveMigration(report.Duration)
	}()

	s.log.Info(ctx, "migration started", "preserve_ids", opts.PreserveIDs)

	var err error
	report.Folders, err = migrateEach(ctx, "workout_folders", s.store.GetWorkoutFolders(ctx),
		func(f *domain.WorkoutFolder) string { return f.ID },
		func(ctx context.Context, f *domain.WorkoutFolder) error {
			if opts.PreserveIDs {
				return s.repos.Folders.Upsert(ctx, f)
			}
			_, err := s.repos.Folders.Create(ctx, f)
			return err
		})
	if err != nil {
		return s.fail(ctx, report, err)
	}

	report.Plans, err = migrateEach(ctx, "workout_plans", s.store.GetWorkoutPlans(ctx),
		func(p *domain.WorkoutPlan) string { return p.ID },
		func(ctx context.Context, p *domain.WorkoutPlan) error {
			if opts.PreserveIDs {
				return s.repos.Plans.Upsert(ctx, p)
			}
			_, err := s.repos.Plans.Create(ctx, p)
			return err
		})
	if err != nil {
		return s.fail(ctx, report, err)
	}

	report.Users, err = migrateEach(ctx, "users", s.store.GetUsers(ctx),
		func(u *domain.User) string { return u.ID },
		func(ctx context.Context, u *domain.User) error {
			if opts.PreserveIDs {
				return s.repos.Users.Upsert(ctx, u)
			}
			_, err := s.repos.Users.Create(ctx, u)
			return err
		})
	if err != nil {
		return s.fail(ctx, report, err)
	}

	s.log.Info(ctx, "migration finished",
		"folders", report.Folders, "plans", report.Plans, "users", report.Users)
	return report, nil
}

func (s *remoteService) fail(ctx context.Context, report *MigrationReport, err error) (*MigrationReport, error) {
	s.log.Error(ctx, "migration aborted", "err", err,
		"folders", report.Folders, "plans", report.Plans, "users", report.Users)
	return report, err
}

// migrateEach writes items in order and stops at the first error, which is
// wrapped with the collection and the record's local id.
func migrateEach[T any](ctx context.Context, collection string, items []T, id func(*T) string, write func(context.Context, *T) error) (int, error) {
	done := 0
	for i := range items {
		item := &items[i]
		localID := id(item)
		if err := write(ctx, item); err != nil {
			metrics.RecordMigratedRecord(collection, false)
			return done, fmt.Errorf("migrate %s %s: %w", collection, localID, err)
		}
		metrics.RecordMigratedRecord(collection, true)
		done++
	}
	return done, nil
}
