package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/localstore"
	"kw8/gym-app/internal/repository"
	localrepo "kw8/gym-app/internal/repository/local"
)

func TestBackends_RoutesByFlag(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	workouts := NewWorkoutService(e.backends)

	_, err := workouts.SavePlan(ctx, &domain.WorkoutPlan{Name: "Local plan"})
	require.NoError(t, err)

	e.useRemote(t, true)
	plans, err := workouts.ListPlans(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans, "remote starts empty")

	_, err = workouts.SavePlan(ctx, &domain.WorkoutPlan{Name: "Remote plan"})
	require.NoError(t, err)

	e.useRemote(t, false)
	plans, err = workouts.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Local plan", plans[0].Name)

	assert.Len(t, e.remoteStore.GetWorkoutPlans(ctx), 1)
}

func TestFlagSelector(t *testing.T) {
	ctx := context.Background()
	store := localstore.New(localstore.NewMemoryBackend(), nil)

	unconfigured := NewFlagSelector(store, false)
	assert.ErrorIs(t, unconfigured.Set(ctx, true), ErrRemoteUnavailable)
	require.NoError(t, unconfigured.Set(ctx, false))

	configured := NewFlagSelector(store, true)
	configured.Seed(ctx, true)
	assert.False(t, configured.RemoteEnabled(ctx), "seed does not override an existing flag")

	fresh := NewFlagSelector(localstore.New(localstore.NewMemoryBackend(), nil), true)
	fresh.Seed(ctx, true)
	assert.True(t, fresh.RemoteEnabled(ctx))
}

func TestBackends_RemoteSelectedButMissing(t *testing.T) {
	ctx := context.Background()
	store := localstore.New(localstore.NewMemoryBackend(), nil)
	b := NewBackends(StaticSelector(true), localrepo.NewRepositories(store), repository.Repositories{}, nil)

	_, err := NewUserService(b).List(ctx)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

func TestRemoteOnlyServicesWhenDisabled(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	rankings, err := NewRankingService(e.backends).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rankings)
	_, err = NewRankingService(e.backends).Create(ctx, &domain.Ranking{Name: "Bench"})
	assert.ErrorIs(t, err, ErrRemoteDisabled)

	links, err := NewLinkService(e.backends).List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, links)
	_, err = NewLinkService(e.backends).Create(ctx, &domain.Link{Title: "x", URL: "https://x.test"})
	assert.ErrorIs(t, err, ErrRemoteDisabled)

	cards, err := NewMembershipService(e.backends).ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cards)
	assert.ErrorIs(t, NewMembershipService(e.backends).Delete(ctx, "c1"), ErrRemoteDisabled)
}
