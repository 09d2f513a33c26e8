package malloc

import (
	"testing"
	"unsafe"
)

// S1: an empty allocator serving allocate(0) must hand back a valid,
// freeable minimum-sized chunk, and freeing it must restore the
// empty-state byte counts.
func TestAllocateZero(t *testing.T) {
	m := newTestMalloc(t)

	before := m.Stats()

	p := m.Alloc(0)
	if p == nil {
		t.Fatalf("allocate(0) returned nil")
	}
	if u := m.Usablesize(p); u < 0 {
		t.Fatalf("usable size %v is negative", u)
	}
	m.Free(p)

	after := m.Stats()
	if after.Inuse != before.Inuse {
		t.Fatalf("inuse not restored: before=%v after=%v", before.Inuse, after.Inuse)
	}
}

func TestAllocateAlignment(t *testing.T) {
	m := newTestMalloc(t)

	for _, n := range []int64{0, 1, 7, 8, 15, 16, 100, 4096} {
		p := m.Alloc(n)
		if p == nil {
			t.Fatalf("allocate(%v) returned nil", n)
		}
		if uintptr(p)%16 != 0 {
			t.Fatalf("allocate(%v) returned unaligned pointer %#x", n, p)
		}
		if u := m.Usablesize(p); u < n {
			t.Fatalf("allocate(%v): usable size %v smaller than requested", n, u)
		}
	}
}

func TestAllocateDisjoint(t *testing.T) {
	m := newTestMalloc(t)

	const n = 64
	ptrs := make([]uintptr, 0, 100)
	for i := 0; i < 100; i++ {
		p := m.Alloc(n)
		if p == nil {
			t.Fatalf("allocate %v failed", i)
		}
		ptrs = append(ptrs, uintptr(p))
	}
	for i := range ptrs {
		for j := range ptrs {
			if i == j {
				continue
			}
			lo, hi := ptrs[i], ptrs[j]
			if lo+n > hi && hi+n > lo && lo != hi {
				t.Fatalf("chunks %v and %v overlap: %#x %#x", i, j, lo, hi)
			}
		}
	}
}

// S3: filling with equal fast-bin-sized chunks and freeing all of them
// (they are parked in the fast bins, not merged), then requesting
// something larger than any single original chunk must succeed without
// a fresh system extension.
func TestAllocateFillAndConsolidate(t *testing.T) {
	m := newTestMalloc(t)

	ptrs := make([]unsafe.Pointer, 0, 10)
	for i := 0; i < 10; i++ {
		p := m.Alloc(24)
		if p == nil {
			t.Fatalf("allocate %v failed", i)
		}
		ptrs = append(ptrs, p)
	}
	for _, p := range ptrs {
		m.Free(p)
	}

	before := m.Stats()
	p := m.Alloc(40)
	if p == nil {
		t.Fatalf("allocate(40) after consolidation failed")
	}
	after := m.Stats()
	if after.Sbrked > before.Sbrked {
		t.Fatalf("allocate(40) triggered a fresh system extension: before=%v after=%v",
			before.Sbrked, after.Sbrked)
	}
}
