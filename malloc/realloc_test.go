package malloc

import "testing"

func TestReallocNullBehavesAsAlloc(t *testing.T) {
	m := newTestMalloc(t)
	p := m.Realloc(nil, 32)
	if p == nil {
		t.Fatalf("realloc(nil, 32) returned nil")
	}
}

// S6: shrinking a chunk in place returns the same pointer and frees
// the trailing remainder back to the allocator, where a small
// follow-up request can land inside it.
func TestReallocShrinkReusesTail(t *testing.T) {
	m := newTestMalloc(t)

	p := m.Alloc(64)
	if p == nil {
		t.Fatalf("allocate(64) failed")
	}
	fillBytes(p, 64, 0x42)

	q := m.Realloc(p, 32)
	if q != p {
		t.Fatalf("shrink realloc should return the same pointer: p=%p q=%p", p, q)
	}
	checkBytes(t, q, 32, 0x42)

	r := m.Alloc(16)
	if r == nil {
		t.Fatalf("allocate(16) after shrink failed")
	}
	lo, hi := uintptr(q), uintptr(q)+64
	if addr := uintptr(r); addr < lo || addr >= hi {
		t.Fatalf("expected allocate(16) to land inside former tail [%#x,%#x), got %#x", lo, hi, addr)
	}
}

// Property 9: growing a chunk preserves the original bytes.
func TestReallocGrowPreservesData(t *testing.T) {
	m := newTestMalloc(t)

	p := m.Alloc(24)
	if p == nil {
		t.Fatalf("allocate(24) failed")
	}
	fillBytes(p, 24, 0x7a)

	q := m.Realloc(p, 4096)
	if q == nil {
		t.Fatalf("realloc grow failed")
	}
	checkBytes(t, q, 24, 0x7a)
	if u := m.Usablesize(q); u < 4096 {
		t.Fatalf("usable size %v smaller than requested 4096", u)
	}
}

func TestReallocZeroWithNonNilBehavesAsMinAlloc(t *testing.T) {
	m := newTestMalloc(t)

	p := m.Alloc(128)
	q := m.Realloc(p, 0)
	if q == nil {
		t.Fatalf("realloc(p, 0) returned nil")
	}
}
