package local

import (
	"context"
	"errors"
	"sort"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/localstore"
	"kw8/gym-app/internal/repository"
)

type workoutPlanRepository struct {
	store *localstore.Store
}

func NewWorkoutPlanRepository(store *localstore.Store) repository.WorkoutPlanRepository {
	return &workoutPlanRepository{store: store}
}

func sortPlans(plans []domain.WorkoutPlan) []domain.WorkoutPlan {
	sort.SliceStable(plans, func(i, j int) bool { return plans[i].Order < plans[j].Order })
	return plans
}

func (r *workoutPlanRepository) List(ctx context.Context) ([]domain.WorkoutPlan, error) {
	return sortPlans(r.store.GetWorkoutPlans(ctx)), nil
}

func (r *workoutPlanRepository) ListByFolder(ctx context.Context, folderID string) ([]domain.WorkoutPlan, error) {
	return sortPlans(r.store.GetWorkoutPlansByFolder(ctx, folderID)), nil
}

func (r *workoutPlanRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	p, ok := r.store.GetWorkoutPlanByID(ctx, id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *workoutPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) (string, error) {
	if plan.Name == "" {
		return "", errors.New("workout plan name is required")
	}
	plan.ID = ""
	*plan = r.store.SaveWorkoutPlan(ctx, *plan)
	return plan.ID, nil
}

func (r *workoutPlanRepository) Upsert(ctx context.Context, plan *domain.WorkoutPlan) error {
	if plan.ID == "" {
		return repository.ErrNotFound
	}
	*plan = r.store.SaveWorkoutPlan(ctx, *plan)
	return nil
}

func (r *workoutPlanRepository) Update(ctx context.Context, plan *domain.WorkoutPlan) error {
	if _, ok := r.store.GetWorkoutPlanByID(ctx, plan.ID); !ok {
		return repository.ErrNotFound
	}
	*plan = r.store.SaveWorkoutPlan(ctx, *plan)
	return nil
}

func (r *workoutPlanRepository) Delete(ctx context.Context, id string) error {
	if !r.store.DeleteWorkoutPlan(ctx, id) {
		return repository.ErrNotFound
	}
	return nil
}

type workoutFolderRepository struct {
	store *localstore.Store
}

func NewWorkoutFolderRepository(store *localstore.Store) repository.WorkoutFolderRepository {
	return &workoutFolderRepository{store: store}
}

func (r *workoutFolderRepository) List(ctx context.Context) ([]domain.WorkoutFolder, error) {
	folders := r.store.GetWorkoutFolders(ctx)
	sort.SliceStable(folders, func(i, j int) bool { return folders[i].Order < folders[j].Order })
	return folders, nil
}

func (r *workoutFolderRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutFolder, error) {
	f, ok := r.store.GetWorkoutFolderByID(ctx, id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &f, nil
}

func (r *workoutFolderRepository) Create(ctx context.Context, folder *domain.WorkoutFolder) (string, error) {
	if folder.Name == "" {
		return "", errors.New("workout folder name is required")
	}
	folder.ID = ""
	*folder = r.store.SaveWorkoutFolder(ctx, *folder)
	return folder.ID, nil
}

func (r *workoutFolderRepository) Upsert(ctx context.Context, folder *domain.WorkoutFolder) error {
	if folder.ID == "" {
		return repository.ErrNotFound
	}
	*folder = r.store.SaveWorkoutFolder(ctx, *folder)
	return nil
}

func (r *workoutFolderRepository) Update(ctx context.Context, folder *domain.WorkoutFolder) error {
	if _, ok := r.store.GetWorkoutFolderByID(ctx, folder.ID); !ok {
		return repository.ErrNotFound
	}
	*folder = r.store.SaveWorkoutFolder(ctx, *folder)
	return nil
}

func (r *workoutFolderRepository) Delete(ctx context.Context, id string) error {
	if !r.store.DeleteWorkoutFolder(ctx, id) {
		return repository.ErrNotFound
	}
	return nil
}
