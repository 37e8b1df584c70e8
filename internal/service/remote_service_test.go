package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kw8/gym-app/internal/domain"
)

func seedLocal(t *testing.T, e *testEnv) {
	t.Helper()
	ctx := context.Background()
	folder := e.local.SaveWorkoutFolder(ctx, domain.WorkoutFolder{Name: "Strength"})
	e.local.SaveWorkoutPlan(ctx, domain.WorkoutPlan{Name: "Push", FolderID: folder.ID})
	e.local.SaveWorkoutPlan(ctx, domain.WorkoutPlan{Name: "Pull", FolderID: folder.ID})
	e.local.SaveUser(ctx, domain.User{Name: "Ana", Email: "ana@gym.test", Role: domain.RoleAthlete})
}

func TestMigrate_DefaultModeDuplicatesOnRerun(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	seedLocal(t, e)
	svc := NewRemoteService(e.remoteRepos, e.local, nil)

	report, err := svc.MigrateFromLocalStore(ctx, MigrationOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Folders)
	assert.Equal(t, 2, report.Plans)
	assert.Equal(t, 1, report.Users)

	localPlan := e.local.GetWorkoutPlans(ctx)[0]
	_, ok := e.remoteStore.GetWorkoutPlanByID(ctx, localPlan.ID)
	assert.False(t, ok, "default mode assigns fresh ids")

	_, err = svc.MigrateFromLocalStore(ctx, MigrationOptions{})
	require.NoError(t, err)
	assert.Len(t, e.remoteStore.GetWorkoutFolders(ctx), 2)
	assert.Len(t, e.remoteStore.GetWorkoutPlans(ctx), 4)
	assert.Len(t, e.remoteStore.GetUsers(ctx), 2)

	// The source is never modified.
	assert.Len(t, e.local.GetWorkoutPlans(ctx), 2)
}

func TestMigrate_PreserveIDsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	seedLocal(t, e)
	svc := NewRemoteService(e.remoteRepos, e.local, nil)

	for i := 0; i < 2; i++ {
		report, err := svc.MigrateFromLocalStore(ctx, MigrationOptions{PreserveIDs: true})
		require.NoError(t, err)
		assert.True(t, report.PreserveIDs)
	}

	assert.Len(t, e.remoteStore.GetWorkoutFolders(ctx), 1)
	assert.Len(t, e.remoteStore.GetWorkoutPlans(ctx), 2)
	assert.Len(t, e.remoteStore.GetUsers(ctx), 1)

	for _, p := range e.local.GetWorkoutPlans(ctx) {
		remote, ok := e.remoteStore.GetWorkoutPlanByID(ctx, p.ID)
		require.True(t, ok)
		assert.Equal(t, p.FolderID, remote.FolderID)
	}
}

func TestMigrate_StopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	seedLocal(t, e)

	repos := e.remoteRepos
	repos.Plans = &failingPlans{WorkoutPlanRepository: repos.Plans, allow: 1}
	svc := NewRemoteService(repos, e.local, nil)

	failing := e.local.GetWorkoutPlans(ctx)[1]
	report, err := svc.MigrateFromLocalStore(ctx, MigrationOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errRemoteDown)
	assert.Contains(t, err.Error(), "migrate workout_plans "+failing.ID)

	require.NotNil(t, report)
	assert.Equal(t, 1, report.Folders)
	assert.Equal(t, 1, report.Plans)
	assert.Equal(t, 0, report.Users)

	// Records written before the failure stay written.
	assert.Len(t, e.remoteStore.GetWorkoutFolders(ctx), 1)
	assert.Len(t, e.remoteStore.GetWorkoutPlans(ctx), 1)
	assert.Empty(t, e.remoteStore.GetUsers(ctx))
}

func TestMigrate_RerunAfterPartialFailureDuplicatesCopiedRecords(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	seedLocal(t, e)

	repos := e.remoteRepos
	repos.Plans = &failingPlans{WorkoutPlanRepository: repos.Plans, allow: 1}
	_, err := NewRemoteService(repos, e.local, nil).MigrateFromLocalStore(ctx, MigrationOptions{})
	require.ErrorIs(t, err, errRemoteDown)

	report, err := NewRemoteService(e.remoteRepos, e.local, nil).MigrateFromLocalStore(ctx, MigrationOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Folders)
	assert.Equal(t, 2, report.Plans)
	assert.Equal(t, 1, report.Users)

	// Default mode has no resume: what the first run copied is copied again.
	assert.Len(t, e.remoteStore.GetWorkoutFolders(ctx), 2)
	assert.Len(t, e.remoteStore.GetWorkoutPlans(ctx), 3)
	assert.Len(t, e.remoteStore.GetUsers(ctx), 1)
}
