package repository

import (
	"context"

	"kw8/gym-app/internal/domain"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("already exists")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error) // ordered by name
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create assigns a fresh id, ignoring user.ID.
	Create(ctx context.Context, user *domain.User) (string, error)
	// Upsert writes the user under user.ID, creating it when absent.
	Upsert(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	BatchCreate(ctx context.Context, users []domain.User) ([]string, error)
}

// WorkoutPlanRepository defines the interface for interacting with workout plans.
type WorkoutPlanRepository interface {
	List(ctx context.Context) ([]domain.WorkoutPlan, error) // ordered by order
	// ListByFolder lists plans directly inside folderID; "" means the root.
	ListByFolder(ctx context.Context, folderID string) ([]domain.WorkoutPlan, error)
	GetByID(ctx context.Context, id string) (*domain.WorkoutPlan, error)
	Create(ctx context.Context, plan *domain.WorkoutPlan) (string, error)
	Upsert(ctx context.Context, plan *domain.WorkoutPlan) error
	Update(ctx context.Context, plan *domain.WorkoutPlan) error
	Delete(ctx context.Context, id string) error
}

// WorkoutFolderRepository defines the interface for interacting with workout folders.
// Delete re-parents the folder's direct children and never cascades.
type WorkoutFolderRepository interface {
	List(ctx context.Context) ([]domain.WorkoutFolder, error) // ordered by order
	GetByID(ctx context.Context, id string) (*domain.WorkoutFolder, error)
	Create(ctx context.Context, folder *domain.WorkoutFolder) (string, error)
	Upsert(ctx context.Context, folder *domain.WorkoutFolder) error
	Update(ctx context.Context, folder *domain.WorkoutFolder) error
	Delete(ctx context.Context, id string) error
}

type RankingRepository interface {
	List(ctx context.Context) ([]domain.Ranking, error) // ordered by name
	GetByID(ctx context.Context, id string) (*domain.Ranking, error)
	Create(ctx context.Context, ranking *domain.Ranking) (string, error)
	Update(ctx context.Context, ranking *domain.Ranking) error
	Delete(ctx context.Context, id string) error
}

type LinkRepository interface {
	List(ctx context.Context) ([]domain.Link, error) // ordered by order
	GetByID(ctx context.Context, id string) (*domain.Link, error)
	Create(ctx context.Context, link *domain.Link) (string, error)
	Update(ctx context.Context, link *domain.Link) error
	Delete(ctx context.Context, id string) error
}

type MembershipCardRepository interface {
	List(ctx context.Context) ([]domain.MembershipCard, error) // newest first
	ListByUser(ctx context.Context, userID string) ([]domain.MembershipCard, error)
	GetByID(ctx context.Context, id string) (*domain.MembershipCard, error)
	Create(ctx context.Context, card *domain.MembershipCard) (string, error)
	Update(ctx context.Context, card *domain.MembershipCard) error
	Delete(ctx context.Context, id string) error
}

// GymScheduleRepository holds the single weekly opening-hours document.
type GymScheduleRepository interface {
	// Get returns ErrNotFound while no schedule has been saved.
	Get(ctx context.Context) (*domain.GymSchedule, error)
	// Save creates the schedule or replaces the stored one, keeping its id
	// and CreatedAt.
	Save(ctx context.Context, schedule *domain.GymSchedule) (string, error)
}

// Repositories is the set of collections one backend provides. Collections a
// backend does not hold are nil.
type Repositories struct {
	Users       UserRepository
	Plans       WorkoutPlanRepository
	Folders     WorkoutFolderRepository
	Rankings    RankingRepository
	Links       LinkRepository
	Memberships MembershipCardRepository
	Schedule    GymScheduleRepository
}
