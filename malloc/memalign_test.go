package malloc

import "testing"

func TestMemalignSmallAlignDegeneratesToAlloc(t *testing.T) {
	m := newTestMalloc(t)

	p := m.Memalign(8, 64) // align <= 2*wordsize
	if p == nil {
		t.Fatalf("memalign(8, 64) returned nil")
	}
	if uintptr(p)%16 != 0 {
		t.Fatalf("memalign(8, 64) not even naturally aligned: %#x", p)
	}
}

func TestMemalignReturnsRequestedAlignment(t *testing.T) {
	m := newTestMalloc(t)

	for _, align := range []int64{32, 64, 128, 256, 4096} {
		p := m.Memalign(align, 48)
		if p == nil {
			t.Fatalf("memalign(%v, 48) returned nil", align)
		}
		if uintptr(p)%uintptr(align) != 0 {
			t.Fatalf("memalign(%v, 48): pointer %#x not aligned", align, p)
		}
		if u := m.Usablesize(p); u < 48 {
			t.Fatalf("memalign(%v, 48): usable size %v too small", align, u)
		}
	}
}

func TestMemalignNonPowerOfTwoRoundsUp(t *testing.T) {
	m := newTestMalloc(t)

	p := m.Memalign(100, 32) // 100 rounds up to 128
	if p == nil {
		t.Fatalf("memalign(100, 32) returned nil")
	}
	if uintptr(p)%128 != 0 {
		t.Fatalf("memalign(100, 32): expected 128-byte alignment, got %#x", p)
	}
}

func TestMemalignPreservesNeighborData(t *testing.T) {
	m := newTestMalloc(t)

	a := m.Alloc(48)
	fillBytes(a, 48, 0x11)

	p := m.Memalign(256, 64)
	if p == nil {
		t.Fatalf("memalign(256, 64) returned nil")
	}
	fillBytes(p, 64, 0x22)

	checkBytes(t, a, 48, 0x11)
	checkBytes(t, p, 64, 0x22)
}
