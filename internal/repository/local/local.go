// Package local adapts the Local Store to the repository interfaces so the
// access services can treat both backends alike. The Local Store never
// fails, so the only errors returned are repository.ErrNotFound and
// validation failures.
package local

import (
	"kw8/gym-app/internal/localstore"
	"kw8/gym-app/internal/repository"
)

// NewRepositories returns the collections the Local Store holds: users,
// workout plans and workout folders.
func NewRepositories(store *localstore.Store) repository.Repositories {
	return repository.Repositories{
		Users:   NewUserRepository(store),
		Plans:   NewWorkoutPlanRepository(store),
		Folders: NewWorkoutFolderRepository(store),
	}
}
