package local

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/localstore"
	"kw8/gym-app/internal/repository"
)

func newRepos(t *testing.T) repository.Repositories {
	t.Helper()
	return NewRepositories(localstore.New(localstore.NewMemoryBackend(), nil))
}

func TestLocalRepositories_Users(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	u := &domain.User{ID: "ignored", Name: "Zed", Email: "zed@gym.test", Role: domain.RoleAthlete}
	id, err := repos.Users.Create(ctx, u)
	require.NoError(t, err)
	assert.NotEqual(t, "ignored", id)
	assert.Equal(t, id, u.ID)

	_, err = repos.Users.BatchCreate(ctx, []domain.User{{Name: "Amy", Email: "amy@gym.test"}})
	require.NoError(t, err)

	list, err := repos.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Amy", list[0].Name)

	missing := &domain.User{ID: "nope", Email: "x@y.z"}
	assert.ErrorIs(t, repos.Users.Update(ctx, missing), repository.ErrNotFound)
	assert.ErrorIs(t, repos.Users.Delete(ctx, "nope"), repository.ErrNotFound)

	require.NoError(t, repos.Users.Upsert(ctx, missing))
	got, err := repos.Users.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Equal(t, "x@y.z", got.Email)

	_, err = repos.Users.GetByEmail(ctx, "ZED@gym.test")
	require.NoError(t, err)
}

func TestLocalRepositories_PlansAndFolders(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	folderID, err := repos.Folders.Create(ctx, &domain.WorkoutFolder{Name: "Legs"})
	require.NoError(t, err)

	_, err = repos.Plans.Create(ctx, &domain.WorkoutPlan{Name: "B", Order: 2, FolderID: folderID})
	require.NoError(t, err)
	_, err = repos.Plans.Create(ctx, &domain.WorkoutPlan{Name: "A", Order: 1, FolderID: folderID})
	require.NoError(t, err)

	inFolder, err := repos.Plans.ListByFolder(ctx, folderID)
	require.NoError(t, err)
	require.Len(t, inFolder, 2)
	assert.Equal(t, "A", inFolder[0].Name)

	require.NoError(t, repos.Folders.Delete(ctx, folderID))
	atRoot, err := repos.Plans.ListByFolder(ctx, "")
	require.NoError(t, err)
	assert.Len(t, atRoot, 2)

	_, err = repos.Plans.Create(ctx, &domain.WorkoutPlan{})
	assert.Error(t, err)
	assert.ErrorIs(t, repos.Folders.Delete(ctx, folderID), repository.ErrNotFound)
}
