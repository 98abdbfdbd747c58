package container

// SmallVectorInlineCap is the number of elements a SmallVector holds before
// promoting to heap storage.
const SmallVectorInlineCap = 4

// SmallVector is a growable sequence that stores up to SmallVectorInlineCap
// elements inline. Growth past the inline capacity promotes the contents to
// a heap-backed slice; the vector never demotes back to inline storage
// except through ShrinkToFit. The zero value is an empty, inline vector.
type SmallVector[T any] struct {
	inline [SmallVectorInlineCap]T
	n      int
	heap   []T // non-nil iff promoted
}

// Len returns the number of elements.
func (v *SmallVector[T]) Len() int {
	if v.heap != nil {
		return len(v.heap)
	}
	return v.n
}

// Inline reports whether the vector is still using inline storage.
func (v *SmallVector[T]) Inline() bool { return v.heap == nil }

// At returns the element at index i. Panics if i is out of range.
func (v *SmallVector[T]) At(i int) T {
	if v.heap != nil {
		return v.heap[i]
	}
	if i < 0 || i >= v.n {
		panic("container: SmallVector index out of range")
	}
	return v.inline[i]
}

// Set replaces the element at index i. Panics if i is out of range.
func (v *SmallVector[T]) Set(i int, x T) {
	if v.heap != nil {
		v.heap[i] = x
		return
	}
	if i < 0 || i >= v.n {
		panic("container: SmallVector index out of range")
	}
	v.inline[i] = x
}

// Push appends x. Pushing past the inline capacity promotes to heap
// storage with a single allocation.
func (v *SmallVector[T]) Push(x T) {
	if v.heap == nil {
		if v.n < SmallVectorInlineCap {
			v.inline[v.n] = x
			v.n++
			return
		}
		v.promote(2 * SmallVectorInlineCap)
	}
	v.heap = append(v.heap, x)
}

// Pop removes and returns the last element.
func (v *SmallVector[T]) Pop() (T, bool) {
	var zero T
	if v.heap != nil {
		if len(v.heap) == 0 {
			return zero, false
		}
		x := v.heap[len(v.heap)-1]
		v.heap[len(v.heap)-1] = zero
		v.heap = v.heap[:len(v.heap)-1]
		return x, true
	}
	if v.n == 0 {
		return zero, false
	}
	v.n--
	x := v.inline[v.n]
	v.inline[v.n] = zero
	return x, true
}

// Truncate shortens the vector to k elements. No-op if k >= Len. Storage
// mode is unchanged; use ShrinkToFit to return to inline storage.
func (v *SmallVector[T]) Truncate(k int) {
	if k < 0 {
		k = 0
	}
	var zero T
	if v.heap != nil {
		if k >= len(v.heap) {
			return
		}
		for i := k; i < len(v.heap); i++ {
			v.heap[i] = zero
		}
		v.heap = v.heap[:k]
		return
	}
	for i := k; i < v.n; i++ {
		v.inline[i] = zero
	}
	if k < v.n {
		v.n = k
	}
}

// Clear removes all elements, keeping the current storage mode.
func (v *SmallVector[T]) Clear() {
	v.Truncate(0)
}

// ShrinkToFit demotes a heap-backed vector whose contents fit inline back
// to inline storage. This is the only demotion path.
func (v *SmallVector[T]) ShrinkToFit() {
	if v.heap == nil || len(v.heap) > SmallVectorInlineCap {
		return
	}
	n := copy(v.inline[:], v.heap)
	v.n = n
	v.heap = nil
}

// TakeFrom moves src's contents into v, leaving src empty. A heap-backed
// source transfers its backing store by pointer; an inline source moves
// element-wise.
func (v *SmallVector[T]) TakeFrom(src *SmallVector[T]) {
	if src == v {
		return
	}
	if src.heap != nil {
		v.heap = src.heap
		v.n = 0
		src.heap = nil
		src.n = 0
		return
	}
	v.heap = nil
	v.n = copy(v.inline[:], src.inline[:src.n])
	src.Clear()
}

// Range calls fn for each element in order until fn returns false.
func (v *SmallVector[T]) Range(fn func(i int, x T) bool) {
	if v.heap != nil {
		for i, x := range v.heap {
			if !fn(i, x) {
				return
			}
		}
		return
	}
	for i := 0; i < v.n; i++ {
		if !fn(i, v.inline[i]) {
			return
		}
	}
}

func (v *SmallVector[T]) promote(capacity int) {
	h := make([]T, v.n, capacity)
	copy(h, v.inline[:v.n])
	var zero T
	for i := 0; i < v.n; i++ {
		v.inline[i] = zero
	}
	v.heap = h
	v.n = 0
}

// SmallVectorsEqual compares length first, then elements in order.
func SmallVectorsEqual[T comparable](a, b *SmallVector[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if a.At(i) != b.At(i) {
			return false
		}
	}
	return true
}
