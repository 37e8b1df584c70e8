package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/repository"
)

// AssignedWorkout is a plan resolved for one athlete, with the assigned
// variant's overrides applied.
type AssignedWorkout struct {
	Plan      domain.WorkoutPlan `json:"plan"`
	VariantID string             `json:"variantId,omitempty"`
	Exercises []domain.Exercise  `json:"exercises"`
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Save creates the user when user.ID is empty and updates it otherwise.
	// A non-empty password replaces the stored hash.
	Save(ctx context.Context, user *domain.User, password string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	BatchCreate(ctx context.Context, users []domain.User) ([]string, error)
	AssignPlan(ctx context.Context, userID string, ref domain.PlanRef) (*domain.User, error)
	UnassignPlan(ctx context.Context, userID string, ref domain.PlanRef) (*domain.User, error)
	AssignedWorkouts(ctx context.Context, userID string) ([]AssignedWorkout, error)
	// Authenticate checks the credentials against the selected backend.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

type userService struct {
	backends *Backends
}

func NewUserService(backends *Backends) UserService {
	return &userService{backends: backends}
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	repos, remote, err := s.backends.current(ctx)
	if err != nil {
		return nil, err
	}
	users, err := repos.Users.List(ctx)
	return users, s.backends.observe(ctx, "users.list", remote, err)
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	repos, remote, err := s.backends.current(ctx)
	if err != nil {
		return nil, err
	}
	user, err := repos.Users.GetByID(ctx, id)
	return user, s.backends.observe(ctx, "users.get", remote, err)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	repos, remote, err := s.backends.current(ctx)
	if err != nil {
		return nil, err
	}
	user, err := repos.Users.GetByEmail(ctx, strings.TrimSpace(email))
	return user, s.backends.observe(ctx, "users.get_by_email", remote, err)
}

// prepareUser checks the role before normalizing, so an empty or unknown
// role is rejected rather than widened to admin.
func prepareUser(user *domain.User) error {
	role, ok := domain.ParseRole(string(user.Role))
	if !ok {
		return validationError("invalid role %q", user.Role)
	}
	user.Role = role
	user.Normalize()
	return validateUser(user)
}

func validateUser(user *domain.User) error {
	if strings.TrimSpace(user.Name) == "" {
		return validationError("name is required")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(user.Email)); err != nil {
		return validationError("invalid email %q", user.Email)
	}
	return nil
}

func (s *userService) Save(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	if err := prepareUser(user); err != nil {
		return nil, err
	}
	repos, remote, err := s.backends.current(ctx)
	if err != nil {
		return nil, err
	}

	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrHashingFailed
		}
		user.PasswordHash = string(hashed)
	}

	if user.ID == "" {
		if _, err := repos.Users.GetByEmail(ctx, user.Email); err == nil {
			return nil, repository.ErrConflict
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, s.backends.observe(ctx, "users.get_by_email", remote, err)
		}
		if _, err := repos.Users.Create(ctx, user); err != nil {
			return nil, s.backends.observe(ctx, "users.create", remote, err)
		}
		return user, nil
	}

	existing, err := repos.Users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, s.backends.observe(ctx, "users.get", remote, err)
	}
	if other, err := repos.Users.GetByEmail(ctx, user.Email); err == nil && other.ID != user.ID {
		return nil, repository.ErrConflict
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, s.backends.observe(ctx, "users.get_by_email", remote, err)
	}
	if user.PasswordHash == "" {
		user.PasswordHash = existing.PasswordHash
	}
	user.CreatedAt = existing.CreatedAt
	if err := repos.Users.Update(ctx, user); err != nil {
		return nil, s.backends.observe(ctx, "users.update", remote, err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	repos, remote, err := s.backends.current(ctx)
	if err != nil {
		return err
	}
	return s.backends.observe(ctx, "users.delete", remote, repos.Users.Delete(ctx, id))
}

func (s *userService) BatchCreate(ctx context.Context, users []domain.User) ([]string, error) {
	for i := range users {
		if err := prepareUser(&users[i]); err != nil {
			return nil, err
		}
	}
	repos, remote, err := s.backends.current(ctx)
	if err != nil {
		return nil, err
	}
	ids, err := repos.Users.BatchCreate(ctx, users)
	return ids, s.backends.observe(ctx, "users.batch_create", remote, err)
}

// AssignPlan adds the reference to the user. A variant must belong to the
// referenced plan.
func (s *userService) AssignPlan(ctx context.Context, userID string, ref domain.PlanRef) (*domain.User, error) {
	if strings.TrimSpace(ref.PlanID) == "" {
		return nil, validationError("planId is required")
	}
	if ref.VariantID == domain.OriginalVariantID {
		ref.VariantID = ""
	}
	repos, remote, err := s.backends.current(ctx)
	if err != nil {
		return nil, err
	}
	plan, err := repos.Plans.GetByID(ctx, ref.PlanID)
	if err != nil {
		return nil, s.backends.observe(ctx, "plans.get", remote, err)
	}
	if ref.HasVariant() {
		if _, ok := plan.Variant(ref.VariantID); !ok {
			return nil, ErrVariantNotFound
		}
	}

	user, err := repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, s.backends.observe(ctx, "users.get", remote, err)
	}
	user.WorkoutPlans = domain.DedupPlanRefs(append(user.WorkoutPlans, ref))
	if err := repos.Users.Update(ctx, user); err != nil {
		return nil, s.backends.observe(ctx, "users.update", remote, err)
	}
	return user, nil
}

// UnassignPlan removes a reference. Without a variant id every reference to
// the plan is removed.
func (s *userService) UnassignPlan(ctx context.Context, userID string, ref domain.PlanRef) (*domain.User, error) {
	repos, remote, err := s.backends.current(ctx)
	if err != nil {
		return nil, err
	}
	user, err := repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, s.backends.observe(ctx, "users.get", remote, err)
	}
	kept := make([]domain.PlanRef, 0, len(user.WorkoutPlans))
	for _, r := range user.WorkoutPlans {
		if r.PlanID == ref.PlanID && (ref.VariantID == "" || r.VariantID == ref.VariantID) {
			continue
		}
		kept = append(kept, r)
	}
	user.WorkoutPlans = kept
	if err := repos.Users.Update(ctx, user); err != nil {
		return nil, s.backends.observe(ctx, "users.update", remote, err)
	}
	return user, nil
}

// AssignedWorkouts resolves the user's plan references, followed by plans
// that list the user (by id or email) among their associated athletes.
// References to missing plans or variants are skipped.
func (s *userService) AssignedWorkouts(ctx context.Context, userID string) ([]AssignedWorkout, error) {
	repos, remote, err := s.backends.current(ctx)
	if err != nil {
		return nil, err
	}
	user, err := repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, s.backends.observe(ctx, "users.get", remote, err)
	}
	plans, err := repos.Plans.List(ctx)
	if err != nil {
		return nil, s.backends.observe(ctx, "plans.list", remote, err)
	}
	byID := make(map[string]domain.WorkoutPlan, len(plans))
	for _, p := range plans {
		byID[p.ID] = p
	}

	out := []AssignedWorkout{}
	seen := make(map[string]bool)
	for _, ref := range user.WorkoutPlans {
		plan, ok := byID[ref.PlanID]
		if !ok {
			continue
		}
		exercises, ok := plan.ExercisesFor(ref.VariantID)
		if !ok {
			continue
		}
		seen[ref.PlanID] = true
		out = append(out, AssignedWorkout{Plan: plan, VariantID: ref.VariantID, Exercises: exercises})
	}
	for _, plan := range plans {
		if seen[plan.ID] {
			continue
		}
		for _, athlete := range plan.AssociatedAthletes {
			if athlete == user.ID || strings.EqualFold(athlete, user.Email) {
				exercises, _ := plan.ExercisesFor(plan.ActiveVariantID)
				if exercises == nil {
					exercises, _ = plan.ExercisesFor("")
				}
				out = append(out, AssignedWorkout{Plan: plan, VariantID: plan.ActiveVariantID, Exercises: exercises})
				seen[plan.ID] = true
				break
			}
		}
	}
	return out, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, validationError("email and password cannot be empty")
	}
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, ErrAuthenticationFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrAuthenticationFailed
	}
	return user, nil
}
