package handle

import (
	"sync/atomic"

	"github.com/gfxlayers/chassis/container"
)

// Map associates virtual handle IDs with real handle values. It is safe
// for concurrent use; synchronization is per shard, with the shard chosen
// from the hash bits packed into each ID.
type Map struct {
	counter atomic.Uint64
	ids     *container.ConcurrentMap[uint64, uint64]
}

// NewMap creates an empty identity map.
func NewMap() *Map {
	return &Map{
		ids: container.NewConcurrentMapHasher[uint64, uint64](ShardBits, shardOf),
	}
}

// Default is the process-wide identity map shared by all scope objects.
var Default = NewMap()

// WrapNew issues a fresh virtual ID for real and records the association.
// Wrapping the null handle yields the null handle.
func (m *Map) WrapNew(real uint64) uint64 {
	if real == 0 {
		return 0
	}
	id := pack(m.counter.Add(1))
	m.ids.Store(id, real)
	return id
}

// Unwrap returns the real value behind id. The null handle unwraps to
// itself; an ID that was never issued or has been erased unwraps to
// Invalid, which downstream consumers treat as a usage error.
func (m *Map) Unwrap(id uint64) uint64 {
	if id == 0 {
		return 0
	}
	real, ok := m.ids.Load(id)
	if !ok {
		return Invalid
	}
	return real
}

// Find looks up id without the null special case: absent IDs, including
// zero, yield Invalid.
func (m *Map) Find(id uint64) uint64 {
	real, ok := m.ids.Load(id)
	if !ok {
		return Invalid
	}
	return real
}

// Erase removes the association for id and returns the real value it held.
// Same lookup contract as Unwrap. This is the only removal path; entries
// never expire on their own.
func (m *Map) Erase(id uint64) uint64 {
	if id == 0 {
		return 0
	}
	real, ok := m.ids.Pop(id)
	if !ok {
		return Invalid
	}
	return real
}

// Len returns the number of live associations.
func (m *Map) Len() int {
	return m.ids.Len()
}

// Typed helpers. Handle types are all ~uint64; these keep call sites free
// of casts.

// Wrap issues a virtual ID for a newly created real handle.
func Wrap[T ~uint64](m *Map, real T) T {
	return T(m.WrapNew(uint64(real)))
}

// Unwrap resolves a virtual handle to its real value.
func Unwrap[T ~uint64](m *Map, id T) T {
	return T(m.Unwrap(uint64(id)))
}

// Find resolves a virtual handle without the null special case.
func Find[T ~uint64](m *Map, id T) T {
	return T(m.Find(uint64(id)))
}

// Erase removes a virtual handle and returns its real value.
func Erase[T ~uint64](m *Map, id T) T {
	return T(m.Erase(uint64(id)))
}

// WrapSlice wraps each element of reals in place and returns it.
func WrapSlice[T ~uint64](m *Map, reals []T) []T {
	for i := range reals {
		reals[i] = Wrap(m, reals[i])
	}
	return reals
}

// UnwrapSlice returns a new slice holding the real values behind ids,
// leaving the client's slice untouched.
func UnwrapSlice[T ~uint64](m *Map, ids []T) []T {
	if ids == nil {
		return nil
	}
	out := make([]T, len(ids))
	for i := range ids {
		out[i] = Unwrap(m, ids[i])
	}
	return out
}
