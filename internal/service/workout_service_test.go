package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/repository"
)

func TestWorkoutService_Folders(t *testing.T) {
	ctx := context.Background()
	workouts := NewWorkoutService(newTestEnv(t).backends)

	root, err := workouts.SaveFolder(ctx, &domain.WorkoutFolder{Name: "Root", Order: 1})
	require.NoError(t, err)
	child, err := workouts.SaveFolder(ctx, &domain.WorkoutFolder{Name: "Child", ParentID: root.ID})
	require.NoError(t, err)

	_, err = workouts.SaveFolder(ctx, &domain.WorkoutFolder{Name: "Orphan", ParentID: "missing"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	root.ParentID = child.ID
	_, err = workouts.SaveFolder(ctx, root)
	assert.ErrorIs(t, err, ErrValidationFailed, "cycle")

	_, err = workouts.SavePlan(ctx, &domain.WorkoutPlan{Name: "In child", FolderID: child.ID})
	require.NoError(t, err)
	_, err = workouts.SavePlan(ctx, &domain.WorkoutPlan{Name: "Nowhere", FolderID: "missing"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	subs, err := workouts.Subfolders(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)

	tree, err := workouts.FolderTree(ctx)
	require.NoError(t, err)
	require.Len(t, tree.Folders, 1)
	require.Len(t, tree.Folders[0].Subfolders, 1)
	assert.Len(t, tree.Folders[0].Subfolders[0].Plans, 1)

	require.NoError(t, workouts.DeleteFolder(ctx, root.ID))
	moved, err := workouts.GetFolder(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "", moved.ParentID)

	assert.ErrorIs(t, workouts.DeleteFolder(ctx, root.ID), repository.ErrNotFound)
}

func TestWorkoutService_Variants(t *testing.T) {
	ctx := context.Background()
	workouts := NewWorkoutService(newTestEnv(t).backends)

	plan, err := workouts.SavePlan(ctx, &domain.WorkoutPlan{
		Name:      "Upper",
		Exercises: []domain.Exercise{{Name: "Bench", Sets: 3, Reps: 8}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, plan.Exercises[0].ID, "exercise ids are generated")
	benchID := plan.Exercises[0].ID

	_, err = workouts.AddVariant(ctx, plan.ID, domain.WorkoutVariant{
		Name:          "Bad",
		Modifications: []domain.ExerciseModification{{ExerciseID: "nope"}},
	})
	assert.ErrorIs(t, err, ErrValidationFailed)

	v, err := workouts.AddVariant(ctx, plan.ID, domain.WorkoutVariant{
		Name: "Heavy",
		Modifications: []domain.ExerciseModification{
			{ExerciseID: benchID, Changes: domain.ExerciseChanges{Sets: intPtr(5)}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, plan.ID, v.ParentWorkoutID)

	exercises, err := workouts.VariantExercises(ctx, plan.ID, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, exercises[0].Sets)

	base, err := workouts.VariantExercises(ctx, plan.ID, domain.OriginalVariantID)
	require.NoError(t, err)
	assert.Equal(t, 3, base[0].Sets)

	stored, err := workouts.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	stored.ActiveVariantID = v.ID
	_, err = workouts.SavePlan(ctx, stored)
	require.NoError(t, err)

	require.NoError(t, workouts.DeleteVariant(ctx, plan.ID, v.ID))
	after, err := workouts.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Empty(t, after.Variants)
	assert.Equal(t, domain.OriginalVariantID, after.ActiveVariantID)

	assert.ErrorIs(t, workouts.DeleteVariant(ctx, plan.ID, v.ID), ErrVariantNotFound)
	_, err = workouts.VariantExercises(ctx, plan.ID, v.ID)
	assert.ErrorIs(t, err, ErrVariantNotFound)
}
