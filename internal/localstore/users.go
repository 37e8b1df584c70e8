package localstore

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"kw8/gym-app/internal/domain"
)

func (s *Store) GetUsers(ctx context.Context) []domain.User {
	return users.load(ctx, s)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (domain.User, bool) {
	for _, u := range s.GetUsers(ctx) {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

// GetUserByEmail matches case-insensitively.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (domain.User, bool) {
	email = strings.TrimSpace(email)
	for _, u := range s.GetUsers(ctx) {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return domain.User{}, false
}

func (s *Store) SaveUser(ctx context.Context, user domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, writable := users.loadForUpdate(ctx, s)
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Normalize()
	for _, existing := range all {
		if existing.ID == user.ID && user.CreatedAt.IsZero() {
			user.CreatedAt = existing.CreatedAt
		}
	}
	user.Touch(s.now())

	replaced := false
	for i := range all {
		if all[i].ID == user.ID {
			all[i] = user
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, user)
	}
	if writable {
		users.save(ctx, s, all)
	}
	return user
}

func (s *Store) DeleteUser(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, writable := users.loadForUpdate(ctx, s)
	if !writable {
		return false
	}
	kept := all[:0]
	for _, u := range all {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(all) {
		return false
	}
	users.save(ctx, s, kept)
	return true
}
