package local

import (
	"context"
	"errors"
	"sort"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/localstore"
	"kw8/gym-app/internal/repository"
)

type userRepository struct {
	store *localstore.Store
}

func NewUserRepository(store *localstore.Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	users := r.store.GetUsers(ctx)
	sort.SliceStable(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := r.store.GetUserByID(ctx, id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := r.store.GetUserByEmail(ctx, email)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	if user.Email == "" {
		return "", errors.New("user email is required")
	}
	user.ID = ""
	*user = r.store.SaveUser(ctx, *user)
	return user.ID, nil
}

func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		return repository.ErrNotFound
	}
	*user = r.store.SaveUser(ctx, *user)
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if _, ok := r.store.GetUserByID(ctx, user.ID); !ok {
		return repository.ErrNotFound
	}
	*user = r.store.SaveUser(ctx, *user)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	if !r.store.DeleteUser(ctx, id) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) BatchCreate(ctx context.Context, users []domain.User) ([]string, error) {
	ids := make([]string, 0, len(users))
	for i := range users {
		id, err := r.Create(ctx, &users[i])
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
