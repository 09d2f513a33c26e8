package malloc

// coalesceFree is the merge step shared by free and consolidate: given
// a chunk p of size psize that is about to become free (whether fresh
// off the fastbins or handed in directly by the caller), absorb any
// free physical neighbor, park the result in the unsorted queue, or
// fold it into top if it borders the wilderness.
//
// Backward coalescing must already have happened by the time this is
// called if p's own prev-inuse bit said its predecessor was free --
// see maybeAbsorbPrev, which callers run first.
func (s *State) coalesceFree(p chunkptr, size int64) {
	next := p.plus(size)

	if next == s.top {
		size += next.size()
		p.setHeadRaw(uint64(size) | flagPrevInuse)
		s.top = p
		return
	}

	nextsize := next.size()
	if !next.inuse() {
		// next itself is free: absorb it too.
		s.unlinkFromBin(next)
		size += nextsize
	} else {
		next.clearPrevInuseBit()
	}

	p.setHeadRaw(uint64(size) | flagPrevInuse)
	p.setFoot(size)
	s.binInsertFront(unsortedBin, p)
}

// maybeAbsorbPrev backward-coalesces p with its physical predecessor
// when p's own prev-inuse bit says that predecessor is free. Returns
// the (possibly moved) chunk base and its (possibly grown) size.
func (s *State) maybeAbsorbPrev(p chunkptr, size int64) (chunkptr, int64) {
	if p.prevInuse() {
		return p, size
	}
	prevsize := p.prevSize()
	prev := p.plus(-prevsize)
	s.unlinkFromBin(prev)
	return prev, size + prevsize
}
