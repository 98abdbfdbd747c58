package container

// SmallMapInlineCap is the number of entries a SmallMap or SmallSet keeps
// in its linear inline region before spilling to a hash map.
const SmallMapInlineCap = 4

// SmallMap is an associative container that stores up to SmallMapInlineCap
// entries in a linear-scan inline array, spilling further entries into a
// conventional map. Lookups scan the inline slots first, so small maps
// never hash and never allocate. A key lives in exactly one of the two
// regions. The zero value is an empty map.
type SmallMap[K comparable, V any] struct {
	keys  [SmallMapInlineCap]K
	vals  [SmallMapInlineCap]V
	used  [SmallMapInlineCap]bool
	spill map[K]V
}

// Get returns the value for key.
func (m *SmallMap[K, V]) Get(key K) (V, bool) {
	for i := range m.used {
		if m.used[i] && m.keys[i] == key {
			return m.vals[i], true
		}
	}
	if m.spill != nil {
		v, ok := m.spill[key]
		return v, ok
	}
	var zero V
	return zero, false
}

// Contains reports whether key is present.
func (m *SmallMap[K, V]) Contains(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Put inserts or updates the entry for key.
func (m *SmallMap[K, V]) Put(key K, val V) {
	free := -1
	for i := range m.used {
		if m.used[i] {
			if m.keys[i] == key {
				m.vals[i] = val
				return
			}
		} else if free < 0 {
			free = i
		}
	}
	if m.spill != nil {
		if _, ok := m.spill[key]; ok {
			m.spill[key] = val
			return
		}
	}
	if free >= 0 {
		m.keys[free] = key
		m.vals[free] = val
		m.used[free] = true
		return
	}
	if m.spill == nil {
		m.spill = make(map[K]V, SmallMapInlineCap)
	}
	m.spill[key] = val
}

// Delete removes the entry for key, reporting whether it was present.
func (m *SmallMap[K, V]) Delete(key K) bool {
	var zeroK K
	var zeroV V
	for i := range m.used {
		if m.used[i] && m.keys[i] == key {
			m.used[i] = false
			m.keys[i] = zeroK
			m.vals[i] = zeroV
			return true
		}
	}
	if m.spill != nil {
		if _, ok := m.spill[key]; ok {
			delete(m.spill, key)
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (m *SmallMap[K, V]) Len() int {
	n := len(m.spill)
	for i := range m.used {
		if m.used[i] {
			n++
		}
	}
	return n
}

// Range calls fn for every entry until fn returns false. Iteration order is
// unspecified.
func (m *SmallMap[K, V]) Range(fn func(key K, val V) bool) {
	for i := range m.used {
		if m.used[i] {
			if !fn(m.keys[i], m.vals[i]) {
				return
			}
		}
	}
	for k, v := range m.spill {
		if !fn(k, v) {
			return
		}
	}
}

// Clear removes all entries.
func (m *SmallMap[K, V]) Clear() {
	var zeroK K
	var zeroV V
	for i := range m.used {
		m.used[i] = false
		m.keys[i] = zeroK
		m.vals[i] = zeroV
	}
	m.spill = nil
}

// SmallSet is a set with the same inline-then-spill storage as SmallMap.
// The zero value is an empty set.
type SmallSet[K comparable] struct {
	m SmallMap[K, struct{}]
}

// Add inserts key.
func (s *SmallSet[K]) Add(key K) { s.m.Put(key, struct{}{}) }

// Contains reports whether key is present.
func (s *SmallSet[K]) Contains(key K) bool { return s.m.Contains(key) }

// Delete removes key, reporting whether it was present.
func (s *SmallSet[K]) Delete(key K) bool { return s.m.Delete(key) }

// Len returns the number of keys.
func (s *SmallSet[K]) Len() int { return s.m.Len() }

// Range calls fn for every key until fn returns false.
func (s *SmallSet[K]) Range(fn func(key K) bool) {
	s.m.Range(func(k K, _ struct{}) bool { return fn(k) })
}

// Clear removes all keys.
func (s *SmallSet[K]) Clear() { s.m.Clear() }
