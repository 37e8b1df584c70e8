package localstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"kw8/gym-app/internal/metrics"
)

var errUnknownLayout = errors.New("collection blob is neither an array nor an envelope")

// upgradeFunc moves raw documents one schema version forward in place.
type upgradeFunc func(docs []map[string]any, now time.Time)

// collection is a typed list stored as one JSON blob under key. Blobs are
// written as {"version": N, "items": [...]}; a bare array is version 0.
// upgrades[i] migrates version i to i+1, so len(upgrades) is the current
// version.
type collection[T any] struct {
	key      string
	upgrades []upgradeFunc
}

type envelope struct {
	Version int             `json:"version"`
	Items   json.RawMessage `json:"items"`
}

func (c collection[T]) version() int {
	return len(c.upgrades)
}

// snapshot is one decoded read of a collection blob.
type snapshot[T any] struct {
	items []T
	// from is the stored version; items are already upgraded past it.
	from int
	// readOnly is set when the blob must not be replaced: the persistent
	// read failed, or a newer schema wrote it.
	readOnly bool
}

func (sn snapshot[T]) upgraded(current int) bool {
	return !sn.readOnly && sn.from < current
}

// read decodes and upgrades the blob in memory. Missing or malformed blobs
// read as an empty list.
func (c collection[T]) read(ctx context.Context, s *Store) snapshot[T] {
	sn := snapshot[T]{items: []T{}, from: c.version()}
	raw, ok, err := s.getItem(ctx, c.key)
	if err != nil {
		sn.readOnly = true
		return sn
	}
	if !ok || len(bytes.TrimSpace([]byte(raw))) == 0 {
		return sn
	}

	version, items, err := decodeEnvelope([]byte(raw))
	if err != nil {
		s.log.Error(ctx, "malformed collection blob", "key", c.key, "err", err)
		return sn
	}
	if version > c.version() {
		s.log.Warn(ctx, "collection written by a newer schema, treating it as read-only", "key", c.key,
			"version", version, "supported", c.version())
		sn.readOnly = true
	}

	if version < c.version() {
		var docs []map[string]any
		if err := json.Unmarshal(items, &docs); err != nil {
			s.log.Error(ctx, "malformed collection items", "key", c.key, "err", err)
			return sn
		}
		docs = dropNull(docs)
		now := s.now()
		for v := version; v < c.version(); v++ {
			c.upgrades[v](docs, now)
		}
		if items, err = json.Marshal(docs); err != nil {
			s.log.Error(ctx, "re-encode upgraded collection", "key", c.key, "err", err)
			return sn
		}
		sn.from = version
	}

	if err := json.Unmarshal(items, &sn.items); err != nil {
		s.log.Error(ctx, "malformed collection items", "key", c.key, "err", err)
		sn.items = []T{}
		sn.from = c.version()
		return sn
	}
	if sn.items == nil {
		sn.items = []T{}
	}
	return sn
}

// load is the read path and never fails. An upgraded blob is written back
// while holding s.mu, from a fresh read, so a mutation that ran in between
// is not overwritten.
func (c collection[T]) load(ctx context.Context, s *Store) []T {
	sn := c.read(ctx, s)
	if !sn.upgraded(c.version()) {
		return sn.items
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sn = c.read(ctx, s)
	if sn.upgraded(c.version()) {
		c.save(ctx, s, sn.items)
		c.recordUpgrade(ctx, s, sn.from)
	}
	return sn.items
}

// loadForUpdate is the read half of a mutation; callers hold s.mu. ok is
// false when the result must not be written back, in which case the
// mutation is dropped. An upgrade is persisted by the caller's save.
func (c collection[T]) loadForUpdate(ctx context.Context, s *Store) ([]T, bool) {
	sn := c.read(ctx, s)
	if sn.readOnly {
		s.log.Error(ctx, "collection cannot be written back, change dropped", "key", c.key)
		metrics.RecordDroppedWrite(c.key)
		return sn.items, false
	}
	if sn.upgraded(c.version()) {
		c.recordUpgrade(ctx, s, sn.from)
	}
	return sn.items, true
}

func (c collection[T]) recordUpgrade(ctx context.Context, s *Store, from int) {
	metrics.RecordSchemaUpgrade(c.key)
	s.log.Info(ctx, "collection upgraded", "key", c.key, "from", from, "to", c.version())
}

func (c collection[T]) save(ctx context.Context, s *Store, items []T) {
	if items == nil {
		items = []T{}
	}
	body, err := json.Marshal(items)
	if err != nil {
		s.log.Error(ctx, "encode collection", "key", c.key, "err", err)
		return
	}
	blob, err := json.Marshal(envelope{Version: c.version(), Items: body})
	if err != nil {
		s.log.Error(ctx, "encode collection envelope", "key", c.key, "err", err)
		return
	}
	s.SetItem(ctx, c.key, string(blob))
}

func decodeEnvelope(raw []byte) (int, json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	switch raw[0] {
	case '[':
		if !json.Valid(raw) {
			return 0, nil, errors.New("invalid JSON array")
		}
		return 0, raw, nil
	case '{':
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return 0, nil, err
		}
		if len(env.Items) == 0 || bytes.Equal(env.Items, []byte("null")) {
			env.Items = json.RawMessage("[]")
		}
		return env.Version, env.Items, nil
	default:
		return 0, nil, errUnknownLayout
	}
}

func dropNull(docs []map[string]any) []map[string]any {
	out := docs[:0]
	for _, d := range docs {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}
