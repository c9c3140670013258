package store

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/atlaskv/atlaskv/internal/types"
)

// DefaultShards is the shard count used when none is configured.
const DefaultShards = 32

// shard is one independently locked partition of the key space.
type shard struct {
	mu   sync.RWMutex
	data map[types.Key]types.Record
}

// Memory is the in-memory Store implementation. The key space is partitioned
// by FNV-1a hash into a fixed set of shards, each guarded by its own RWMutex,
// so there is no global lock: two operations contend only when their keys
// hash to the same shard. Every operation is a single short critical section
// on one shard, which makes per-key operations linearizable and keeps the
// read-modify-write inside Upsert indivisible.
type Memory struct {
	shards []*shard
	mask   uint32

	// now is the clock used for timestamps. Tests substitute a
	// deterministic function.
	now func() time.Time
}

// NewMemory returns an empty Memory store with n shards. n must be a power
// of two; values below 1 fall back to DefaultShards.
func NewMemory(n int) *Memory {
	if n < 1 || n&(n-1) != 0 {
		n = DefaultShards
	}
	shards := make([]*shard, n)
	for i := range shards {
		shards[i] = &shard{data: make(map[types.Key]types.Record)}
	}
	return &Memory{
		shards: shards,
		mask:   uint32(n - 1),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// shardFor picks the shard owning key.
func (m *Memory) shardFor(key types.Key) *shard {
	h := fnv.New32a()
	h.Write([]byte(key.String()))
	return m.shards[h.Sum32()&m.mask]
}

// Get returns the record for key, or KeyNotFound. Metadata is never touched
// by a read.
func (m *Memory) Get(key types.Key) (types.Record, error) {
	s := m.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[key]
	if !ok {
		return types.Record{}, notFound(key)
	}
	return rec, nil
}

// Insert creates the record for key, failing with KeyAlreadyExists if the
// key is present. The existence check and the write happen under one shard
// lock, so two concurrent Inserts on the same key resolve to exactly one
// winner.
func (m *Memory) Insert(key types.Key, value string) (types.Record, error) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; ok {
		return types.Record{}, alreadyExists(key)
	}
	now := m.now()
	rec := types.Record{
		Value: value,
		Metadata: types.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	s.data[key] = rec
	return rec, nil
}

// Upsert inserts the record if the key is absent, otherwise replaces the
// value and refreshes UpdatedAt while preserving the original CreatedAt.
// Both branches run under the same shard lock acquisition, so no two
// concurrent Upserts on one key can both take the create branch, and no
// caller ever observes a partially written record.
func (m *Memory) Upsert(key types.Key, value string) types.Record {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := m.now()
	rec, ok := s.data[key]
	if ok {
		rec.Value = value
		rec.Metadata.UpdatedAt = now
	} else {
		rec = types.Record{
			Value: value,
			Metadata: types.Metadata{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
	}
	s.data[key] = rec
	return rec
}

// Delete removes the record for key and returns it as it existed immediately
// before removal, or KeyNotFound. Racing deletes on one key resolve to
// exactly one winner.
func (m *Memory) Delete(key types.Key) (types.Record, error) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.data[key]
	if !ok {
		return types.Record{}, notFound(key)
	}
	delete(s.data, key)
	return rec, nil
}

// ListKeys returns all keys present in the store. Each shard is snapshotted
// under its own read lock; there is no cross-shard lock, so the result is a
// point-in-time view per shard and the order is unspecified.
func (m *Memory) ListKeys() []types.Key {
	keys := make([]types.Key, 0)
	for _, s := range m.shards {
		s.mu.RLock()
		for k := range s.data {
			keys = append(keys, k)
		}
		s.mu.RUnlock()
	}
	return keys
}

// Len reports the number of records currently stored.
func (m *Memory) Len() int {
	n := 0
	for _, s := range m.shards {
		s.mu.RLock()
		n += len(s.data)
		s.mu.RUnlock()
	}
	return n
}
