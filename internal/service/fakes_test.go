package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/localstore"
	"kw8/gym-app/internal/repository"
	localrepo "kw8/gym-app/internal/repository/local"
)

// memRepo is an in-memory stand-in for a remote-only collection.
type memRepo[T any] struct {
	mu    sync.Mutex
	items map[string]T
	id    func(*T) *string
}

func newMemRepo[T any](id func(*T) *string) *memRepo[T] {
	return &memRepo[T]{items: make(map[string]T), id: id}
}

func (m *memRepo[T]) List(context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m.items[k])
	}
	return out, nil
}

func (m *memRepo[T]) GetByID(_ context.Context, id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (m *memRepo[T]) Create(_ context.Context, v *T) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	*m.id(v) = id
	m.items[id] = *v
	return id, nil
}

func (m *memRepo[T]) Update(_ context.Context, v *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := *m.id(v)
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	m.items[id] = *v
	return nil
}

func (m *memRepo[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memCards struct {
	*memRepo[domain.MembershipCard]
}

func (m memCards) ListByUser(ctx context.Context, userID string) ([]domain.MembershipCard, error) {
	all, _ := m.List(ctx)
	out := []domain.MembershipCard{}
	for _, c := range all {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

// memSchedule keeps the one schedule document.
type memSchedule struct {
	mu  sync.Mutex
	doc *domain.GymSchedule
}

func (m *memSchedule) Get(context.Context) (*domain.GymSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return nil, repository.ErrNotFound
	}
	doc := *m.doc
	return &doc, nil
}

func (m *memSchedule) Save(_ context.Context, s *domain.GymSchedule) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	if m.doc == nil {
		s.ID = uuid.NewString()
		s.CreatedAt = now
	} else {
		s.ID = m.doc.ID
		s.CreatedAt = m.doc.CreatedAt
	}
	s.UpdatedAt = now
	doc := *s
	m.doc = &doc
	return s.ID, nil
}

var errRemoteDown = errors.New("remote unavailable")

// failingPlans fails every Create after the first `allow` calls.
type failingPlans struct {
	repository.WorkoutPlanRepository
	allow int
	calls int
}

func (f *failingPlans) Create(ctx context.Context, p *domain.WorkoutPlan) (string, error) {
	f.calls++
	if f.calls > f.allow {
		return "", errRemoteDown
	}
	return f.WorkoutPlanRepository.Create(ctx, p)
}

type testEnv struct {
	local       *localstore.Store
	remoteStore *localstore.Store
	remoteRepos repository.Repositories
	selector    *FlagSelector
	backends    *Backends
}

// newTestEnv backs the "remote" users, plans and folders with a second
// Local Store so migrations can be inspected record by record.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	local := localstore.New(localstore.NewMemoryBackend(), nil)
	remoteStore := localstore.New(localstore.NewMemoryBackend(), nil)

	remote := localrepo.NewRepositories(remoteStore)
	remote.Rankings = newMemRepo(func(r *domain.Ranking) *string { return &r.ID })
	remote.Links = newMemRepo(func(l *domain.Link) *string { return &l.ID })
	remote.Memberships = memCards{newMemRepo(func(c *domain.MembershipCard) *string { return &c.ID })}
	remote.Schedule = &memSchedule{}

	selector := NewFlagSelector(local, true)
	return &testEnv{
		local:       local,
		remoteStore: remoteStore,
		remoteRepos: remote,
		selector:    selector,
		backends:    NewBackends(selector, localrepo.NewRepositories(local), remote, nil),
	}
}

func (e *testEnv) useRemote(t *testing.T, enabled bool) {
	t.Helper()
	if err := e.selector.Set(context.Background(), enabled); err != nil {
		t.Fatalf("toggle remote: %v", err)
	}
}

// fakeStorage records presign and delete calls.
type fakeStorage struct {
	deleted []string
	failDel bool
}

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://s3.test/upload/" + key, nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://s3.test/download/" + key, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, key string) error {
	if f.failDel {
		return errRemoteDown
	}
	f.deleted = append(f.deleted, key)
	return nil
}
