package container

import (
	"math/rand"
	"testing"
)

func TestSmallMap_Basic(t *testing.T) {
	var m SmallMap[string, int]

	if m.Len() != 0 {
		t.Fatal("zero value should be empty")
	}

	m.Put("a", 1)
	m.Put("b", 2)
	if v, ok := m.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = (%d, %v)", v, ok)
	}

	m.Put("a", 10)
	if v, _ := m.Get("a"); v != 10 {
		t.Fatal("Put should update existing key")
	}
	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}

	if !m.Delete("a") {
		t.Fatal("Delete of present key returned false")
	}
	if m.Delete("a") {
		t.Fatal("Delete of absent key returned true")
	}
	if m.Contains("a") {
		t.Fatal("deleted key still present")
	}
}

func TestSmallMap_NoAllocWhileInline(t *testing.T) {
	allocs := testing.AllocsPerRun(100, func() {
		var m SmallMap[uint64, uint64]
		for i := uint64(0); i < SmallMapInlineCap; i++ {
			m.Put(i, i)
		}
		for i := uint64(0); i < SmallMapInlineCap; i++ {
			if _, ok := m.Get(i); !ok {
				panic("lost key")
			}
		}
	})
	if allocs != 0 {
		t.Fatalf("inline-only usage allocated %.0f times, want 0", allocs)
	}
}

func TestSmallMap_SpillAndRefill(t *testing.T) {
	var m SmallMap[int, int]
	const total = SmallMapInlineCap * 3

	for i := 0; i < total; i++ {
		m.Put(i, i*i)
	}
	if m.Len() != total {
		t.Fatalf("Len = %d, want %d", m.Len(), total)
	}
	for i := 0; i < total; i++ {
		if v, ok := m.Get(i); !ok || v != i*i {
			t.Fatalf("Get(%d) = (%d, %v)", i, v, ok)
		}
	}

	// Delete an inline entry, re-insert: freed slot is reused, value intact
	m.Delete(0)
	m.Put(0, -1)
	if v, _ := m.Get(0); v != -1 {
		t.Fatal("reinserted key has stale value")
	}
}

// SmallMap must behave identically to a plain map for any operation
// sequence, whether or not it stays within the inline capacity.
func TestSmallMap_MatchesPlainMap(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var m SmallMap[int, int]
	ref := make(map[int]int)

	const ops = 4000
	const keySpace = SmallMapInlineCap * 4 // forces spill and refill

	for i := 0; i < ops; i++ {
		k := rng.Intn(keySpace)
		switch rng.Intn(3) {
		case 0:
			v := rng.Int()
			m.Put(k, v)
			ref[k] = v
		case 1:
			got := m.Delete(k)
			_, want := ref[k]
			if got != want {
				t.Fatalf("op %d: Delete(%d) = %v, plain map says %v", i, k, got, want)
			}
			delete(ref, k)
		case 2:
			gotV, gotOK := m.Get(k)
			wantV, wantOK := ref[k]
			if gotOK != wantOK || (gotOK && gotV != wantV) {
				t.Fatalf("op %d: Get(%d) = (%d, %v), plain map says (%d, %v)",
					i, k, gotV, gotOK, wantV, wantOK)
			}
		}
		if m.Len() != len(ref) {
			t.Fatalf("op %d: Len = %d, plain map has %d", i, m.Len(), len(ref))
		}
	}

	// Final sweep via Range
	seen := make(map[int]int)
	m.Range(func(k, v int) bool {
		seen[k] = v
		return true
	})
	if len(seen) != len(ref) {
		t.Fatalf("Range visited %d entries, want %d", len(seen), len(ref))
	}
	for k, v := range ref {
		if seen[k] != v {
			t.Fatalf("Range missed or corrupted key %d", k)
		}
	}
}

func TestSmallSet_Basic(t *testing.T) {
	var s SmallSet[uint64]

	for i := uint64(0); i < SmallMapInlineCap+2; i++ {
		s.Add(i)
	}
	s.Add(3) // duplicate
	if s.Len() != SmallMapInlineCap+2 {
		t.Fatalf("Len = %d, want %d", s.Len(), SmallMapInlineCap+2)
	}
	if !s.Contains(0) || !s.Contains(SmallMapInlineCap+1) {
		t.Fatal("missing key")
	}
	if !s.Delete(0) {
		t.Fatal("Delete of present key returned false")
	}
	if s.Contains(0) {
		t.Fatal("deleted key still present")
	}

	n := 0
	s.Range(func(uint64) bool { n++; return true })
	if n != s.Len() {
		t.Fatalf("Range visited %d keys, Len says %d", n, s.Len())
	}

	s.Clear()
	if s.Len() != 0 {
		t.Fatal("Clear left keys behind")
	}
}
