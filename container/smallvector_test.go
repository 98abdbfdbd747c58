package container

import (
	"testing"
)

func TestSmallVector_Basic(t *testing.T) {
	var v SmallVector[int]

	if v.Len() != 0 {
		t.Fatal("zero value should be empty")
	}
	if !v.Inline() {
		t.Fatal("zero value should be inline")
	}

	for i := 0; i < SmallVectorInlineCap; i++ {
		v.Push(i * 10)
	}
	if v.Len() != SmallVectorInlineCap {
		t.Fatalf("expected %d elements, got %d", SmallVectorInlineCap, v.Len())
	}
	if !v.Inline() {
		t.Fatal("should still be inline at capacity")
	}
	for i := 0; i < v.Len(); i++ {
		if v.At(i) != i*10 {
			t.Fatalf("At(%d) = %d, want %d", i, v.At(i), i*10)
		}
	}

	v.Push(999)
	if v.Inline() {
		t.Fatal("should have promoted to heap storage")
	}
	if v.Len() != SmallVectorInlineCap+1 {
		t.Fatalf("expected %d elements, got %d", SmallVectorInlineCap+1, v.Len())
	}
	if v.At(SmallVectorInlineCap) != 999 {
		t.Fatal("element pushed during promotion lost")
	}
	// Elements survive promotion in order
	for i := 0; i < SmallVectorInlineCap; i++ {
		if v.At(i) != i*10 {
			t.Fatalf("element %d corrupted by promotion", i)
		}
	}
}

func TestSmallVector_NoAllocWhileInline(t *testing.T) {
	allocs := testing.AllocsPerRun(100, func() {
		var v SmallVector[uint64]
		for i := 0; i < SmallVectorInlineCap; i++ {
			v.Push(uint64(i))
		}
	})
	if allocs != 0 {
		t.Fatalf("pushing %d elements allocated %.0f times, want 0", SmallVectorInlineCap, allocs)
	}
}

func TestSmallVector_SingleAllocOnPromotion(t *testing.T) {
	allocs := testing.AllocsPerRun(100, func() {
		var v SmallVector[uint64]
		for i := 0; i <= SmallVectorInlineCap; i++ {
			v.Push(uint64(i))
		}
	})
	if allocs != 1 {
		t.Fatalf("pushing %d elements allocated %.0f times, want exactly 1", SmallVectorInlineCap+1, allocs)
	}
}

func TestSmallVector_PopAndTruncate(t *testing.T) {
	var v SmallVector[int]
	for i := 0; i < 6; i++ {
		v.Push(i)
	}

	x, ok := v.Pop()
	if !ok || x != 5 {
		t.Fatalf("Pop = (%d, %v), want (5, true)", x, ok)
	}

	v.Truncate(2)
	if v.Len() != 2 {
		t.Fatalf("Len after Truncate(2) = %d", v.Len())
	}
	if v.At(0) != 0 || v.At(1) != 1 {
		t.Fatal("Truncate corrupted remaining elements")
	}

	// Truncate never demotes on its own
	if v.Inline() {
		t.Fatal("Truncate should not change storage mode")
	}
}

func TestSmallVector_ShrinkToFit(t *testing.T) {
	var v SmallVector[int]
	for i := 0; i < SmallVectorInlineCap+3; i++ {
		v.Push(i)
	}
	if v.Inline() {
		t.Fatal("expected heap storage")
	}

	// Too many elements: ShrinkToFit is a no-op
	v.ShrinkToFit()
	if v.Inline() {
		t.Fatal("ShrinkToFit should not demote an oversized vector")
	}

	v.Truncate(SmallVectorInlineCap - 1)
	v.ShrinkToFit()
	if !v.Inline() {
		t.Fatal("ShrinkToFit should demote once contents fit inline")
	}
	for i := 0; i < v.Len(); i++ {
		if v.At(i) != i {
			t.Fatalf("element %d corrupted by demotion", i)
		}
	}
}

func TestSmallVector_TakeFromHeap(t *testing.T) {
	fill := func(v *SmallVector[int]) {
		for i := 0; i < SmallVectorInlineCap*2; i++ {
			v.Push(i)
		}
	}

	var src, dst SmallVector[int]
	fill(&src)
	dst.TakeFrom(&src)
	if src.Len() != 0 {
		t.Fatal("source should be empty after TakeFrom")
	}
	if dst.Len() != SmallVectorInlineCap*2 {
		t.Fatalf("destination has %d elements", dst.Len())
	}
	if dst.Inline() {
		t.Fatal("heap-backed move should keep heap storage")
	}

	// AllocsPerRun re-invokes the closure, so each run needs its own
	// pre-filled source; the moves themselves must not allocate.
	const runs = 4
	srcs := make([]SmallVector[int], runs+1)
	for i := range srcs {
		fill(&srcs[i])
	}
	next := 0
	allocs := testing.AllocsPerRun(runs, func() {
		dst.TakeFrom(&srcs[next])
		next++
	})
	if allocs != 0 {
		t.Fatalf("heap-backed TakeFrom allocated %.0f times, want 0 (pointer theft)", allocs)
	}
}

func TestSmallVector_TakeFromInline(t *testing.T) {
	var src, dst SmallVector[int]
	src.Push(7)
	src.Push(8)

	dst.TakeFrom(&src)
	if src.Len() != 0 {
		t.Fatal("source should be empty after TakeFrom")
	}
	if !dst.Inline() {
		t.Fatal("inline move should keep destination inline")
	}
	if dst.Len() != 2 || dst.At(0) != 7 || dst.At(1) != 8 {
		t.Fatal("elements lost in inline move")
	}
}

func TestSmallVectorsEqual(t *testing.T) {
	var a, b SmallVector[int]
	for i := 0; i < 3; i++ {
		a.Push(i)
		b.Push(i)
	}
	if !SmallVectorsEqual(&a, &b) {
		t.Fatal("equal vectors reported unequal")
	}

	b.Push(3)
	if SmallVectorsEqual(&a, &b) {
		t.Fatal("length mismatch reported equal")
	}

	a.Push(4)
	if SmallVectorsEqual(&a, &b) {
		t.Fatal("element mismatch reported equal")
	}

	// Equality must not depend on storage mode
	var c SmallVector[int]
	for i := 0; i < SmallVectorInlineCap+2; i++ {
		c.Push(i)
	}
	var d SmallVector[int]
	for i := 0; i < SmallVectorInlineCap+2; i++ {
		d.Push(i)
	}
	d.Push(-1)
	d.Pop()
	if !SmallVectorsEqual(&c, &d) {
		t.Fatal("storage mode leaked into equality")
	}
}
