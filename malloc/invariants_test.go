package malloc

import "testing"

// Invariant 3: once all fast bins are consolidated, no two free,
// non-mmapped chunks are physically adjacent -- they would have been
// merged into one.
func TestInvariantConsolidationMergesAdjacentFreeChunks(t *testing.T) {
	m := newTestMalloc(t)

	a := m.Alloc(40)
	b := m.Alloc(40)
	c := m.Alloc(40)
	if a == nil || b == nil || c == nil {
		t.Fatalf("setup allocation failed")
	}

	m.Free(a)
	m.Free(b)
	m.Free(c)

	// Force fastbin consolidation the same way Release does, then a
	// fresh request spanning all three chunks' combined space should
	// succeed, proving they were merged into one contiguous free run
	// rather than left as three disjoint free chunks.
	m.mu.Lock()
	m.state.consolidate()
	m.mu.Unlock()

	big := m.Alloc(100)
	if big == nil {
		t.Fatalf("expected consolidated free span to satisfy a 100 byte request")
	}
}

// Invariant 4: a free chunk's boundary tag (foot) equals its head
// size, and the physical successor's prev-inuse bit is clear.
func TestInvariantBoundaryTagsConsistent(t *testing.T) {
	m := newTestMalloc(t)

	p := m.Alloc(80)
	if p == nil {
		t.Fatalf("allocate(80) failed")
	}
	m.Free(p)

	cp := mem2chunk(uintptr(p))
	sz := cp.size()
	next := cp.nextChunk()
	if next.prevInuse() {
		t.Fatalf("successor of a free chunk must have its prev-inuse bit clear")
	}
	if next.prevSize() != sz {
		t.Fatalf("free chunk's foot (successor prev_size=%v) does not match its head size %v",
			next.prevSize(), sz)
	}
}

// Invariant 5: walking physical chunks from the heap base reaches the
// top chunk exactly once, at the end of the walk.
func TestInvariantTopIsUniqueAtHeapEnd(t *testing.T) {
	m := newTestMalloc(t)

	a := m.Alloc(40)
	b := m.Alloc(80)
	if a == nil || b == nil {
		t.Fatalf("setup allocation failed")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur := chunkptr(m.state.heapBase)
	topHits := 0
	for i := 0; i < 10000; i++ {
		if cur == m.state.top {
			topHits++
			break
		}
		sz := cur.size()
		if sz <= 0 {
			break
		}
		cur = cur.plus(sz)
	}
	if topHits != 1 {
		t.Fatalf("expected to reach top exactly once walking from heap base, got %v hits", topHits)
	}
}

// Invariant 6: sbrked_mem accounts for exactly the heap bytes obtained
// from the source, independent of how much of it is currently in use.
func TestInvariantSbrkedAccountsForHeapExtension(t *testing.T) {
	m := newTestMalloc(t)

	before := m.Stats().Sbrked
	p := m.Alloc(100 * 1024) // below the mmap threshold, so served by heap extension
	if p == nil {
		t.Fatalf("allocate(100KiB) failed")
	}
	after := m.Stats().Sbrked
	if after <= before {
		t.Fatalf("expected sbrked_mem to grow after a large heap-resident request: before=%v after=%v",
			before, after)
	}
}
