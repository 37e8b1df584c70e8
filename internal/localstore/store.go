// Package localstore is the device-local persistence layer: a string-keyed
// store over a persistent backend that degrades to process memory when the
// backend fails, plus typed JSON collections stored one blob per key.
package localstore

import (
	"context"
	"sync"
	"time"

	"kw8/gym-app/internal/logging"
	"kw8/gym-app/internal/metrics"
)

// probeKey is written and removed by IsStorageAvailable.
const probeKey = "__storage_test__"

// checkKey is used by the Check self-test.
const checkKey = "__db_test__"

// Store never surfaces storage errors to callers. A key whose last write
// fell back to memory is served from memory until a later persistent write
// succeeds, so reads observe the latest write within the process.
type Store struct {
	persistent Backend // nil means memory only
	memory     *MemoryBackend
	log        logging.Logger
	now        func() time.Time

	// mu serializes whole-blob read-modify-write cycles.
	mu sync.Mutex
}

type Option func(*Store)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a Store over persistent. A nil persistent backend makes every
// operation use memory.
func New(persistent Backend, log logging.Logger, opts ...Option) *Store {
	if log == nil {
		log = logging.Discard()
	}
	s := &Store{
		persistent: persistent,
		memory:     NewMemoryBackend(),
		log:        log.With("component", "localstore"),
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsStorageAvailable probes the persistent backend with a write and delete.
func (s *Store) IsStorageAvailable(ctx context.Context) bool {
	if s.persistent == nil {
		return false
	}
	if err := s.persistent.Set(ctx, probeKey, probeKey); err != nil {
		s.log.Debug(ctx, "storage probe write failed", "err", err)
		return false
	}
	if err := s.persistent.Delete(ctx, probeKey); err != nil {
		s.log.Debug(ctx, "storage probe delete failed", "err", err)
		return false
	}
	return true
}

// GetItem returns the value for key. ok is false when nothing is stored.
func (s *Store) GetItem(ctx context.Context, key string) (string, bool) {
	v, ok, _ := s.getItem(ctx, key)
	return v, ok
}

// getItem is GetItem that also reports a failed persistent read, so that a
// read-modify-write can tell "absent" from "unreadable".
func (s *Store) getItem(ctx context.Context, key string) (string, bool, error) {
	if v, ok, _ := s.memory.Get(ctx, key); ok {
		return v, true, nil
	}
	if s.persistent == nil {
		return "", false, nil
	}
	v, ok, err := s.persistent.Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "persistent read failed, using memory", "key", key, "err", err)
		metrics.RecordStorageFallback("get")
		return "", false, err
	}
	return v, ok, nil
}

// SetItem writes value persistently, or to memory when that fails.
func (s *Store) SetItem(ctx context.Context, key, value string) {
	if s.persistent != nil {
		err := s.persistent.Set(ctx, key, value)
		if err == nil {
			_ = s.memory.Delete(ctx, key)
			return
		}
		s.log.Warn(ctx, "persistent write failed, using memory", "key", key, "err", err)
		metrics.RecordStorageFallback("set")
	}
	_ = s.memory.Set(ctx, key, value)
}

// RemoveItem deletes key from both backends, best effort.
func (s *Store) RemoveItem(ctx context.Context, key string) {
	_ = s.memory.Delete(ctx, key)
	if s.persistent == nil {
		return
	}
	if err := s.persistent.Delete(ctx, key); err != nil {
		s.log.Warn(ctx, "persistent remove failed", "key", key, "err", err)
		metrics.RecordStorageFallback("remove")
	}
}

// CheckResult is the outcome of a Store self-test.
type CheckResult struct {
	StorageAvailable bool `json:"storageAvailable"`
	ReadWriteOK      bool `json:"readWriteOk"`
	MemoryEntries    int  `json:"memoryEntries"`
}

// Healthy reports whether data written now will survive a restart.
func (r CheckResult) Healthy() bool {
	return r.StorageAvailable && r.ReadWriteOK
}

// Check runs a write, read and remove round trip through the Store.
func (s *Store) Check(ctx context.Context) CheckResult {
	res := CheckResult{StorageAvailable: s.IsStorageAvailable(ctx)}

	stamp := s.now().Format(time.RFC3339Nano)
	s.SetItem(ctx, checkKey, stamp)
	got, ok := s.GetItem(ctx, checkKey)
	res.ReadWriteOK = ok && got == stamp
	s.RemoveItem(ctx, checkKey)

	res.MemoryEntries = s.memory.Len()
	if !res.Healthy() {
		s.log.Warn(ctx, "local store check degraded",
			"storage_available", res.StorageAvailable, "read_write_ok", res.ReadWriteOK)
	}
	return res
}
