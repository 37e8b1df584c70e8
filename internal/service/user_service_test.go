package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/repository"
)

func intPtr(v int) *int { return &v }

func TestUserService_SaveAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(newTestEnv(t).backends)

	u, err := users.Save(ctx, &domain.User{Name: " Ana ", Email: "ana@gym.test", Role: "atleta"}, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, domain.RoleAthlete, u.Role)
	assert.NotEqual(t, "s3cret", u.PasswordHash)

	_, err = users.Save(ctx, &domain.User{Name: "Dup", Email: "ANA@gym.test", Role: domain.RoleCoach}, "")
	assert.ErrorIs(t, err, repository.ErrConflict)

	got, err := users.Authenticate(ctx, "ana@gym.test", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = users.Authenticate(ctx, "ana@gym.test", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	_, err = users.Authenticate(ctx, "nobody@gym.test", "x")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	// Updating without a password keeps the stored hash.
	u.Notes = "knee injury"
	u.PasswordHash = ""
	_, err = users.Save(ctx, u, "")
	require.NoError(t, err)
	_, err = users.Authenticate(ctx, "ana@gym.test", "s3cret")
	require.NoError(t, err)

	_, err = users.Save(ctx, &domain.User{Name: "No mail", Email: "not-an-email", Role: domain.RoleCoach}, "")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestUserService_SaveRejectsMissingOrUnknownRole(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(newTestEnv(t).backends)

	for _, role := range []domain.Role{"", "owner", "superuser"} {
		_, err := users.Save(ctx, &domain.User{Name: "Mallory", Email: "m@gym.test", Role: role}, "pw-1")
		assert.ErrorIs(t, err, ErrValidationFailed, "role %q", role)
	}
	_, err := users.GetByEmail(ctx, "m@gym.test")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = users.BatchCreate(ctx, []domain.User{{Name: "Amy", Email: "amy@gym.test"}})
	assert.ErrorIs(t, err, ErrValidationFailed)

	u, err := users.Save(ctx, &domain.User{Name: "Coach", Email: "c@gym.test", Role: " COACH "}, "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCoach, u.Role)
}

func TestUserService_UpdateRejectsTakenEmail(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(newTestEnv(t).backends)

	ana, err := users.Save(ctx, &domain.User{Name: "Ana", Email: "ana@gym.test", Role: domain.RoleAthlete}, "pw-a")
	require.NoError(t, err)
	bo, err := users.Save(ctx, &domain.User{Name: "Bo", Email: "bo@gym.test", Role: domain.RoleAthlete}, "pw-b")
	require.NoError(t, err)

	bo.Email = "ANA@gym.test"
	_, err = users.Save(ctx, bo, "")
	assert.ErrorIs(t, err, repository.ErrConflict)

	// Keeping one's own email is not a conflict.
	ana.Notes = "prefers mornings"
	_, err = users.Save(ctx, ana, "")
	require.NoError(t, err)

	got, err := users.Authenticate(ctx, "ana@gym.test", "pw-a")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, got.ID)
}

func TestUserService_Assignments(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	users := NewUserService(e.backends)
	workouts := NewWorkoutService(e.backends)

	plan, err := workouts.SavePlan(ctx, &domain.WorkoutPlan{
		Name:      "Legs",
		Exercises: []domain.Exercise{{ID: "sq", Name: "Squat", Sets: 5, Reps: 5}},
	})
	require.NoError(t, err)
	variant, err := workouts.AddVariant(ctx, plan.ID, domain.WorkoutVariant{
		Name: "Light",
		Modifications: []domain.ExerciseModification{
			{ExerciseID: "sq", Changes: domain.ExerciseChanges{Reps: intPtr(10)}},
		},
	})
	require.NoError(t, err)

	athlete, err := users.Save(ctx, &domain.User{Name: "Ana", Email: "ana@gym.test", Role: domain.RoleAthlete}, "")
	require.NoError(t, err)

	_, err = users.AssignPlan(ctx, athlete.ID, domain.PlanRef{PlanID: plan.ID, VariantID: "missing"})
	assert.ErrorIs(t, err, ErrVariantNotFound)

	updated, err := users.AssignPlan(ctx, athlete.ID, domain.PlanRef{PlanID: plan.ID, VariantID: variant.ID})
	require.NoError(t, err)
	updated, err = users.AssignPlan(ctx, athlete.ID, domain.PlanRef{PlanID: plan.ID, VariantID: variant.ID})
	require.NoError(t, err)
	assert.Len(t, updated.WorkoutPlans, 1)

	assigned, err := users.AssignedWorkouts(ctx, athlete.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, variant.ID, assigned[0].VariantID)
	assert.Equal(t, 10, assigned[0].Exercises[0].Reps)

	updated, err = users.UnassignPlan(ctx, athlete.ID, domain.PlanRef{PlanID: plan.ID})
	require.NoError(t, err)
	assert.Empty(t, updated.WorkoutPlans)

	// Plans naming the athlete are listed too.
	_, err = workouts.SavePlan(ctx, &domain.WorkoutPlan{Name: "Cardio", AssociatedAthletes: []string{"ana@gym.test"}})
	require.NoError(t, err)
	assigned, err = users.AssignedWorkouts(ctx, athlete.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "Cardio", assigned[0].Plan.Name)
}

func TestAuthService_LoginIssuesParsableToken(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(newTestEnv(t).backends)
	_, err := users.Save(ctx, &domain.User{Name: "Coach", Email: "coach@gym.test", Role: domain.RoleCoach}, "pw")
	require.NoError(t, err)

	auth := NewAuthService(users, "test-secret", 0)
	token, user, err := auth.Login(ctx, "coach@gym.test", "pw")
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleCoach, claims.Role)

	_, err = ParseToken("other-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
