package malloc

import "testing"

// S5: a request at or above the default mmap threshold is served by a
// direct mapping, tracked in Stats, and fully released on free.
func TestStatsMmapThresholdRequest(t *testing.T) {
	m := newTestMalloc(t)

	a := m.Alloc(400000)
	if a == nil {
		t.Fatalf("allocate(400000) failed")
	}
	stats := m.Stats()
	if stats.NMmaps != 1 {
		t.Fatalf("expected 1 mapping, got %v", stats.NMmaps)
	}
	if stats.Mmapped == 0 {
		t.Fatalf("expected nonzero mmapped bytes")
	}

	m.Free(a)
	stats = m.Stats()
	if stats.NMmaps != 0 {
		t.Fatalf("expected mapping count back to 0, got %v", stats.NMmaps)
	}
	if stats.Mmapped != 0 {
		t.Fatalf("expected mmapped bytes back to 0, got %v", stats.Mmapped)
	}
}

// S4: a heap-resident allocation folds into top on free, and a
// subsequent explicit Trim releases sbrked memory back to the OS.
func TestStatsTrimReleasesHeapMemory(t *testing.T) {
	m := newTestMalloc(t)

	a := m.Alloc(200 * 1024) // below mmap threshold, so served from the heap
	if a == nil {
		t.Fatalf("allocate(200KiB) failed")
	}
	m.Free(a)

	before := m.Stats()
	released := m.Trim(0)
	after := m.Stats()

	if released && after.Sbrked >= before.Sbrked {
		t.Fatalf("trim reported success but sbrked did not shrink: before=%v after=%v",
			before.Sbrked, after.Sbrked)
	}
}

// S8: trim is idempotent -- calling it twice in a row with nothing
// new to release must return false the second time.
func TestStatsTrimIdempotent(t *testing.T) {
	m := newTestMalloc(t)

	a := m.Alloc(300 * 1024)
	m.Free(a)

	m.Trim(0)
	if m.Trim(0) {
		t.Fatalf("second consecutive trim should release nothing")
	}
}

func TestStatsInuseTracksOutstandingAllocations(t *testing.T) {
	m := newTestMalloc(t)

	before := m.Stats()
	a := m.Alloc(100)
	mid := m.Stats()
	if mid.Inuse <= before.Inuse {
		t.Fatalf("inuse did not grow after allocation: before=%v mid=%v", before.Inuse, mid.Inuse)
	}
	m.Free(a)
	after := m.Stats()
	if after.Inuse != before.Inuse {
		t.Fatalf("inuse did not return to baseline: before=%v after=%v", before.Inuse, after.Inuse)
	}
}
