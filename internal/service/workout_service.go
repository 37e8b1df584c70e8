package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"kw8/gym-app/internal/domain"
)

type WorkoutService interface {
	ListPlans(ctx context.Context) ([]domain.WorkoutPlan, error)
	ListPlansByFolder(ctx context.Context, folderID string) ([]domain.WorkoutPlan, error)
	GetPlan(ctx context.Context, id string) (*domain.WorkoutPlan, error)
	SavePlan(ctx context.Context, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error)
	DeletePlan(ctx context.Context, id string) error

	ListFolders(ctx context.Context) ([]domain.WorkoutFolder, error)
	GetFolder(ctx context.Context, id string) (*domain.WorkoutFolder, error)
	SaveFolder(ctx context.Context, folder *domain.WorkoutFolder) (*domain.WorkoutFolder, error)
	// DeleteFolder re-parents the folder's children; nothing is deleted
	// transitively.
	DeleteFolder(ctx context.Context, id string) error
	Subfolders(ctx context.Context, parentID string) ([]domain.WorkoutFolder, error)
	FolderTree(ctx context.Context) (*domain.FolderTree, error)

	AddVariant(ctx context.Context, planID string, variant domain.WorkoutVariant) (*domain.WorkoutVariant, error)
	DeleteVariant(ctx context.Context, planID, variantID string) error
	VariantExercises(ctx context.Context, planID, variantID string) ([]domain.Exercise, error)
}

type workoutService struct {
	backends *Backends
}

func NewWorkoutService(backends *Backends) WorkoutService {
	return &workoutService{backends: backends}
}

func (s *workoutService) ListPlans(ctx context.Context) ([]domain.WorkoutPlan, error) {
	repos, remote, err := s.backends.current(ctx)
	if err != nil {
		return nil, err
	}
	plans, err := repos.Plans.List(ctx)
	return plans, s.backends.observe(ctx, "plans.list", remote, err)
}

func (s *workoutService) ListPlansByFolder(ctx context.Context, folderID string) ([]domain.WorkoutPlan, error) {
	repos, remote, err := s.backends.current(ctx)
	if err != nil {
		return nil, err
	}
	plans, err := repos.Plans.ListByFolder(ctx, folderID)
	return plans, s.backends.observe(ctx, "plans.list_by_folder", remote, err)
}

func (s *workoutService) GetPlan(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	repos, remote, err := s.backends.current(ctx)
	if err != nil {
		return nil, err
	}
	plan, err := repos.Plans.GetByID(ctx, id)
	return plan, s.backends.observe(ctx, "plans.get", remote, err)
}

func validatePlan(plan *domain.WorkoutPlan) error {
	plan.Name = strings.TrimSpace(plan.Name)
	if plan.Name == "" {
		return validationError("plan name is required")
	}
	if plan.Duration < 0 {
		return validationError("duration cannot be negative")
	}
	if plan.Difficulty < 0 || plan.Difficulty > 5 {
		return validationError("difficulty must be between 1 and 5")
	}
	for i := range plan.Exercises {
		if strings.TrimSpace(plan.Exercises[i].Name) == "" {
			return validationError("exercise %d has no name", i+1)
		}
		if plan.Exercises[i].ID == "" {
			plan.Exercises[i].ID = uuid.NewString()
		}
	}
	return nil
}

// SavePlan creates the plan when plan.ID is empty and replaces it otherwise.
// The folder, when set, must exist in the same backend.
func (s *workoutService) SavePlan(ctx context.Context, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	if err := validatePlan(plan); err != nil {
		return nil, err
	}
	plan.ApplyDefaults()

	repos, remote, err := s.backends.current(ctx)
	if err != nil {
		return nil, err
	}
	if plan.FolderID != "" {
		if _, err := repos.Folders.GetByID(ctx, plan.FolderID); err != nil {
			if isNotFound(err) {
				return nil, validationError("folder %s does not exist", plan.FolderID)
			}
			return nil, s.backends.observe(ctx, "folders.get", remote, err)
		}
	}

	if plan.ID == "" {
		_, err = repos.Plans.Create(ctx, plan)
		return plan, s.backends.observe(ctx, "plans.create", remote, err)
	}
	existing, err := repos.Plans.GetByID(ctx, plan.ID)
	if err != nil {
		return nil, s.backends.observe(ctx, "plans.get", remote, err)
	}
	plan.CreatedAt = existing.CreatedAt
	if err := repos.Plans.Update(ctx, plan); err != nil {
		return nil, s.backends.observe(ctx, "plans.update", remote, err)
	}
	return plan, nil
}

func (s *workoutService) DeletePlan(ctx context.Context, id string) error {
	repos, remote, err := s.backends.current(ctx)
	if err != nil {
		return err
	}
	return s.backends.observe(ctx, "plans.delete", remote, repos.Plans.Delete(ctx, id))
}

func (s *workoutService) ListFolders(ctx context.Context) ([]domain.WorkoutFolder, error) {
	repos, remote, err := s.backends.current(ctx)
	if err != nil {
		return nil, err
	}
	folders, err := repos.Folders.List(ctx)
	return folders, s.backends.observe(ctx, "folders.list", remote, err)
}

func (s *workoutService) GetFolder(ctx context.Context, id string) (*domain.WorkoutFolder, error) {
	repos, remote, err := s.backends.current(ctx)
	if err != nil {
		return nil, err
	}
	folder, err := repos.Folders.GetByID(ctx, id)
	return folder, s.backends.observe(ctx, "folders.get", remote, err)
}

// SaveFolder rejects a parent that is missing or would create a cycle.
func (s *workoutService) SaveFolder(ctx context.Context, folder *domain.WorkoutFolder) (*domain.WorkoutFolder, error) {
	folder.Name = strings.TrimSpace(folder.Name)
	if folder.Name == "" {
		return nil, validationError("folder name is required")
	}
	folder.ApplyDefaults()

	repos, remote, err := s.backends.current(ctx)
	if err != nil {
		return nil, err
	}
	if folder.ParentID != "" {
		folders, err := repos.Folders.List(ctx)
		if err != nil {
			return nil, s.backends.observe(ctx, "folders.list", remote, err)
		}
		if err := checkParent(folders, folder.ID, folder.ParentID); err != nil {
			return nil, err
		}
	}

	if folder.ID == "" {
		_, err = repos.Folders.Create(ctx, folder)
		return folder, s.backends.observe(ctx, "folders.create", remote, err)
	}
	existing, err := repos.Folders.GetByID(ctx, folder.ID)
	if err != nil {
		return nil, s.backends.observe(ctx, "folders.get", remote, err)
	}
	folder.CreatedAt = existing.CreatedAt
	if err := repos.Folders.Update(ctx, folder); err != nil {
		return nil, s.backends.observe(ctx, "folders.update", remote, err)
	}
	return folder, nil
}

// checkParent walks up from parentID and fails if it is unknown or reaches id.
func checkParent(folders []domain.WorkoutFolder, id, parentID string) error {
	parents := make(map[string]string, len(folders))
	for _, f := range folders {
		parents[f.ID] = f.ParentID
	}
	if _, ok := parents[parentID]; !ok {
		return validationError("parent folder %s does not exist", parentID)
	}
	for cur, steps := parentID, 0; cur != "" && steps <= len(folders); steps++ {
		if id != "" && cur == id {
			return validationError("folder cannot be moved inside itself")
		}
		cur = parents[cur]
	}
	return nil
}

func (s *workoutService) DeleteFolder(ctx context.Context, id string) error {
	repos, remote, err := s.backends.current(ctx)
	if err != nil {
		return err
	}
	return s.backends.observe(ctx, "folders.delete", remote, repos.Folders.Delete(ctx, id))
}

// Subfolders lists the direct children of parentID; "" lists root folders.
func (s *workoutService) Subfolders(ctx context.Context, parentID string) ([]domain.WorkoutFolder, error) {
	folders, err := s.ListFolders(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.WorkoutFolder{}
	for _, f := range folders {
		if f.ParentID == parentID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *workoutService) FolderTree(ctx context.Context) (*domain.FolderTree, error) {
	folders, err := s.ListFolders(ctx)
	if err != nil {
		return nil, err
	}
	plans, err := s.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	return domain.BuildFolderTree(folders, plans), nil
}

// AddVariant stores a new variant on the plan. Modifications must target
// exercises of the plan.
func (s *workoutService) AddVariant(ctx context.Context, planID string, variant domain.WorkoutVariant) (*domain.WorkoutVariant, error) {
	variant.Name = strings.TrimSpace(variant.Name)
	if variant.Name == "" {
		return nil, validationError("variant name is required")
	}
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(plan.Exercises)+len(variant.Exercises))
	for _, e := range plan.Exercises {
		known[e.ID] = true
	}
	for _, e := range variant.Exercises {
		known[e.ID] = true
	}
	for _, m := range variant.Modifications {
		if !known[m.ExerciseID] {
			return nil, validationError("modification targets unknown exercise %s", m.ExerciseID)
		}
	}

	now := time.Now().UTC()
	variant.ID = uuid.NewString()
	variant.ParentWorkoutID = plan.ID
	variant.CreatedAt = now
	variant.UpdatedAt = now
	if variant.Modifications == nil {
		variant.Modifications = []domain.ExerciseModification{}
	}
	plan.Variants = append(plan.Variants, variant)

	if _, err := s.SavePlan(ctx, plan); err != nil {
		return nil, err
	}
	return &variant, nil
}

// DeleteVariant removes the variant; a plan whose active variant it was falls
// back to the original exercises.
func (s *workoutService) DeleteVariant(ctx context.Context, planID, variantID string) error {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return err
	}
	kept := make([]domain.WorkoutVariant, 0, len(plan.Variants))
	for _, v := range plan.Variants {
		if v.ID != variantID {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(plan.Variants) {
		return ErrVariantNotFound
	}
	plan.Variants = kept
	if plan.ActiveVariantID == variantID {
		plan.ActiveVariantID = domain.OriginalVariantID
	}
	_, err = s.SavePlan(ctx, plan)
	return err
}

func (s *workoutService) VariantExercises(ctx context.Context, planID, variantID string) ([]domain.Exercise, error) {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	exercises, ok := plan.ExercisesFor(variantID)
	if !ok {
		return nil, ErrVariantNotFound
	}
	return exercises, nil
}
