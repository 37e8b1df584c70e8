package localstore

import (
	"context"

	"github.com/google/uuid"

	"kw8/gym-app/internal/domain"
)

func (s *Store) GetWorkoutFolders(ctx context.Context) []domain.WorkoutFolder {
	return workoutFolders.load(ctx, s)
}

func (s *Store) GetWorkoutFolderByID(ctx context.Context, id string) (domain.WorkoutFolder, bool) {
	for _, f := range s.GetWorkoutFolders(ctx) {
		if f.ID == id {
			return f, true
		}
	}
	return domain.WorkoutFolder{}, false
}

func (s *Store) SaveWorkoutFolder(ctx context.Context, folder domain.WorkoutFolder) domain.WorkoutFolder {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, writable := workoutFolders.loadForUpdate(ctx, s)
	if folder.ID == "" {
		folder.ID = uuid.NewString()
	}
	folder.ApplyDefaults()
	for _, existing := range folders {
		if existing.ID == folder.ID && folder.CreatedAt.IsZero() {
			folder.CreatedAt = existing.CreatedAt
		}
	}
	folder.Touch(s.now())

	replaced := false
	for i := range folders {
		if folders[i].ID == folder.ID {
			folders[i] = folder
			replaced = true
			break
		}
	}
	if !replaced {
		folders = append(folders, folder)
	}
	if writable {
		workoutFolders.save(ctx, s, folders)
	}
	return folder
}

// DeleteWorkoutFolder removes one folder. Its direct sub-folders move to the
// folder's parent and its plans move to the root; nothing else is deleted.
// Folders and plans are two separate writes.
func (s *Store) DeleteWorkoutFolder(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, foldersOK := workoutFolders.loadForUpdate(ctx, s)
	plans, plansOK := workoutPlans.loadForUpdate(ctx, s)
	if !foldersOK || !plansOK {
		return false
	}
	folders, plans, ok := domain.ReparentOnDelete(folders, plans, id, s.now())
	if !ok {
		return false
	}
	workoutFolders.save(ctx, s, folders)
	workoutPlans.save(ctx, s, plans)
	return true
}
