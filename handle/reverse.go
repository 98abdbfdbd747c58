package handle

import (
	"github.com/gfxlayers/chassis/container"
)

// Reverse maintains a real-to-virtual mapping for handle classes the
// implementation creates outside client control (display-type handles).
// Repeated queries must present the same virtual ID for the same real
// object, so the reverse table is consulted before allocating.
type Reverse struct {
	ids *Map
	rev *container.ConcurrentMap[uint64, uint64]
}

// NewReverse creates a reverse table issuing IDs from ids.
func NewReverse(ids *Map) *Reverse {
	return &Reverse{
		ids: ids,
		rev: container.NewConcurrentMap[uint64, uint64](0),
	}
}

// MaybeWrap returns the virtual ID for real, allocating one only on first
// sight. Idempotent, including under concurrent first sightings: the loser
// of the race discards its speculative ID.
func (r *Reverse) MaybeWrap(real uint64) uint64 {
	if real == 0 {
		return 0
	}
	if id, ok := r.rev.Load(real); ok {
		return id
	}
	id := r.ids.WrapNew(real)
	if won, loaded := r.rev.LoadOrStore(real, id); loaded {
		r.ids.Erase(id)
		return won
	}
	return id
}

// Erase drops the reverse entry and the identity mapping for real.
func (r *Reverse) Erase(real uint64) {
	if id, ok := r.rev.Pop(real); ok {
		r.ids.Erase(id)
	}
}

// Len returns the number of tracked real handles.
func (r *Reverse) Len() int {
	return r.rev.Len()
}

// Clear erases every tracked handle from both the reverse table and the
// identity map. Called at scope teardown.
func (r *Reverse) Clear() {
	r.rev.Range(func(real, id uint64) bool {
		r.ids.Erase(id)
		return true
	})
	r.rev.Clear()
}
