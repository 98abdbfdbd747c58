package container

import (
	"hash/maphash"
	"sync"
)

var mapSeed = maphash.MakeSeed()

// ConcurrentMap is a hash map partitioned into 2^bits shards, each guarded
// by its own read/write lock, so lookups, inserts, and erases on different
// shards never contend. The hash function is fixed at construction; callers
// whose keys already embed hash bits supply one that just extracts them.
type ConcurrentMap[K comparable, V any] struct {
	shards []cmShard[K, V]
	mask   uint64
	hash   func(K) uint64
}

type cmShard[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

// NewConcurrentMap creates a map with 2^bits shards and the default hash.
func NewConcurrentMap[K comparable, V any](bits int) *ConcurrentMap[K, V] {
	return NewConcurrentMapHasher[K, V](bits, func(k K) uint64 {
		return maphash.Comparable(mapSeed, k)
	})
}

// NewConcurrentMapHasher creates a map with 2^bits shards and a custom hash
// function. bits of zero gives a single-shard map, which is still safe for
// concurrent use.
func NewConcurrentMapHasher[K comparable, V any](bits int, hash func(K) uint64) *ConcurrentMap[K, V] {
	if bits < 0 {
		bits = 0
	}
	n := 1 << bits
	m := &ConcurrentMap[K, V]{
		shards: make([]cmShard[K, V], n),
		mask:   uint64(n - 1),
		hash:   hash,
	}
	for i := range m.shards {
		m.shards[i].m = make(map[K]V)
	}
	return m
}

func (m *ConcurrentMap[K, V]) shard(key K) *cmShard[K, V] {
	return &m.shards[m.hash(key)&m.mask]
}

// Load returns the value stored for key.
func (m *ConcurrentMap[K, V]) Load(key K) (V, bool) {
	s := m.shard(key)
	s.mu.RLock()
	v, ok := s.m[key]
	s.mu.RUnlock()
	return v, ok
}

// Store sets the value for key, replacing any existing entry.
func (m *ConcurrentMap[K, V]) Store(key K, val V) {
	s := m.shard(key)
	s.mu.Lock()
	s.m[key] = val
	s.mu.Unlock()
}

// LoadOrStore returns the existing value for key if present; otherwise it
// stores and returns val. loaded is true if the value was already present.
func (m *ConcurrentMap[K, V]) LoadOrStore(key K, val V) (actual V, loaded bool) {
	s := m.shard(key)
	s.mu.Lock()
	if v, ok := s.m[key]; ok {
		s.mu.Unlock()
		return v, true
	}
	s.m[key] = val
	s.mu.Unlock()
	return val, false
}

// Delete removes the entry for key.
func (m *ConcurrentMap[K, V]) Delete(key K) {
	s := m.shard(key)
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
}

// Pop removes and returns the entry for key.
func (m *ConcurrentMap[K, V]) Pop(key K) (V, bool) {
	s := m.shard(key)
	s.mu.Lock()
	v, ok := s.m[key]
	if ok {
		delete(s.m, key)
	}
	s.mu.Unlock()
	return v, ok
}

// Update applies fn to the current value for key (the zero value if absent)
// under the shard's write lock and stores the result. Used for
// read-modify-write sequences like appending to a callback list without a
// separate lock.
func (m *ConcurrentMap[K, V]) Update(key K, fn func(cur V, ok bool) V) {
	s := m.shard(key)
	s.mu.Lock()
	cur, ok := s.m[key]
	s.m[key] = fn(cur, ok)
	s.mu.Unlock()
}

// Range calls fn for every entry until fn returns false. Each shard is
// snapshotted under its read lock before fn runs, so fn may call back into
// the map.
func (m *ConcurrentMap[K, V]) Range(fn func(key K, val V) bool) {
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.RLock()
		keys := make([]K, 0, len(s.m))
		vals := make([]V, 0, len(s.m))
		for k, v := range s.m {
			keys = append(keys, k)
			vals = append(vals, v)
		}
		s.mu.RUnlock()
		for j := range keys {
			if !fn(keys[j], vals[j]) {
				return
			}
		}
	}
}

// Len returns the total number of entries across all shards.
func (m *ConcurrentMap[K, V]) Len() int {
	n := 0
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.RLock()
		n += len(s.m)
		s.mu.RUnlock()
	}
	return n
}

// Clear removes all entries.
func (m *ConcurrentMap[K, V]) Clear() {
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.Lock()
		s.m = make(map[K]V)
		s.mu.Unlock()
	}
}
