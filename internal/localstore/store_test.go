package localstore

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// flakyBackend is a persistent backend that can be switched into failure,
// or made to fail a counted number of reads.
type flakyBackend struct {
	*MemoryBackend
	failing     atomic.Bool
	getFailures atomic.Int32
}

func newFlakyBackend() *flakyBackend {
	return &flakyBackend{MemoryBackend: NewMemoryBackend()}
}

func (f *flakyBackend) failNextGet() {
	f.getFailures.Add(1)
}

func (f *flakyBackend) takeGetFailure() bool {
	for {
		n := f.getFailures.Load()
		if n <= 0 {
			return false
		}
		if f.getFailures.CompareAndSwap(n, n-1) {
			return true
		}
	}
}

func (f *flakyBackend) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failing.Load() || f.takeGetFailure() {
		return "", false, errDiskFull
	}
	return f.MemoryBackend.Get(ctx, key)
}

func (f *flakyBackend) Set(ctx context.Context, key, value string) error {
	if f.failing.Load() {
		return errDiskFull
	}
	return f.MemoryBackend.Set(ctx, key, value)
}

func (f *flakyBackend) Delete(ctx context.Context, key string) error {
	if f.failing.Load() {
		return errDiskFull
	}
	return f.MemoryBackend.Delete(ctx, key)
}

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T, backend Backend) *Store {
	t.Helper()
	return New(backend, nil, WithClock(func() time.Time { return fixedNow }))
}

func TestStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyBackend()
	s := newTestStore(t, backend)

	_, ok := s.GetItem(ctx, "missing")
	assert.False(t, ok)

	s.SetItem(ctx, "k", "v1")
	got, ok := s.GetItem(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v1", got)

	persisted, ok, err := backend.MemoryBackend.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v1", persisted)

	s.RemoveItem(ctx, "k")
	_, ok = s.GetItem(ctx, "k")
	assert.False(t, ok)
}

func TestStore_FallbackKeepsReadAfterWrite(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyBackend()
	s := newTestStore(t, backend)

	s.SetItem(ctx, "k", "persisted")
	backend.failing.Store(true)

	s.SetItem(ctx, "k", "fallback")
	got, ok := s.GetItem(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "fallback", got)

	// Recovery: the shadow stays authoritative until a persistent write lands.
	backend.failing.Store(false)
	got, _ = s.GetItem(ctx, "k")
	assert.Equal(t, "fallback", got)

	s.SetItem(ctx, "k", "recovered")
	assert.Equal(t, 0, s.memory.Len())
	got, _ = s.GetItem(ctx, "k")
	assert.Equal(t, "recovered", got)
}

func TestStore_ReadFailureWithoutShadowIsAbsent(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyBackend()
	s := newTestStore(t, backend)

	s.SetItem(ctx, "k", "v")
	backend.failing.Store(true)

	_, ok := s.GetItem(ctx, "k")
	assert.False(t, ok)
}

func TestStore_MemoryOnly(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	assert.False(t, s.IsStorageAvailable(ctx))
	s.SetItem(ctx, "k", "v")
	got, ok := s.GetItem(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestStore_IsStorageAvailable(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyBackend()
	s := newTestStore(t, backend)

	assert.True(t, s.IsStorageAvailable(ctx))
	_, ok, _ := backend.MemoryBackend.Get(ctx, probeKey)
	assert.False(t, ok, "probe key must be cleaned up")

	backend.failing.Store(true)
	assert.False(t, s.IsStorageAvailable(ctx))
}

func TestStore_Check(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyBackend()
	s := newTestStore(t, backend)

	res := s.Check(ctx)
	assert.True(t, res.Healthy())
	assert.Equal(t, 0, res.MemoryEntries)

	backend.failing.Store(true)
	res = s.Check(ctx)
	assert.False(t, res.StorageAvailable)
	assert.True(t, res.ReadWriteOK, "memory fallback still serves the round trip")
	assert.False(t, res.Healthy())
}
