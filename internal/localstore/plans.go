package localstore

import (
	"context"

	"github.com/google/uuid"

	"kw8/gym-app/internal/domain"
)

func (s *Store) GetWorkoutPlans(ctx context.Context) []domain.WorkoutPlan {
	return workoutPlans.load(ctx, s)
}

func (s *Store) GetWorkoutPlanByID(ctx context.Context, id string) (domain.WorkoutPlan, bool) {
	for _, p := range s.GetWorkoutPlans(ctx) {
		if p.ID == id {
			return p, true
		}
	}
	return domain.WorkoutPlan{}, false
}

// GetWorkoutPlansByFolder lists the plans directly inside folderID; an empty
// folderID lists the plans at the root.
func (s *Store) GetWorkoutPlansByFolder(ctx context.Context, folderID string) []domain.WorkoutPlan {
	out := []domain.WorkoutPlan{}
	for _, p := range s.GetWorkoutPlans(ctx) {
		if p.FolderID == folderID {
			out = append(out, p)
		}
	}
	return out
}

// SaveWorkoutPlan inserts or replaces the plan by id and returns the stored
// record. A plan without an id gets a fresh one. When the collection cannot
// be read back reliably the change is logged and dropped.
func (s *Store) SaveWorkoutPlan(ctx context.Context, plan domain.WorkoutPlan) domain.WorkoutPlan {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans, writable := workoutPlans.loadForUpdate(ctx, s)
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	plan.ApplyDefaults()
	for _, existing := range plans {
		if existing.ID == plan.ID && plan.CreatedAt.IsZero() {
			plan.CreatedAt = existing.CreatedAt
		}
	}
	plan.Touch(s.now())

	replaced := false
	for i := range plans {
		if plans[i].ID == plan.ID {
			plans[i] = plan
			replaced = true
			break
		}
	}
	if !replaced {
		plans = append(plans, plan)
	}
	if writable {
		workoutPlans.save(ctx, s, plans)
	}
	return plan
}

// DeleteWorkoutPlan reports whether a plan was removed.
func (s *Store) DeleteWorkoutPlan(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans, writable := workoutPlans.loadForUpdate(ctx, s)
	if !writable {
		return false
	}
	kept := plans[:0]
	for _, p := range plans {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(plans) {
		return false
	}
	workoutPlans.save(ctx, s, kept)
	return true
}
