package malloc

import "unsafe"

// extendHeap grows the contiguous region (or starts a fresh one) to
// cover nb more bytes of chunk space, in the manner of dlmalloc's
// sysmalloc sbrk path. It returns the payload already carved off the
// new/grown top, or ok=false if the extension primitive itself failed
// or the new top is too small to carve nb from.
func (s *State) extendHeap(nb int64) (unsafe.Pointer, bool) {
	topsz := int64(0)
	if s.top != 0 {
		topsz = s.top.size()
	}
	want := nb + s.topPad + minChunkSize
	if s.contiguous {
		want -= topsz
	}
	size := pageRound(want, s.pagesize)
	if size < s.pagesize {
		size = s.pagesize
	}

	if !s.contiguous || s.top == 0 {
		return s.extendFreshRegion(nb, size)
	}

	expect := s.top.addr() + uintptr(topsz)
	base, err := s.source.Extend(size)
	if err != nil {
		s.contiguous = false
		debugf("malloc: contiguous extend of %v bytes failed: %v", size, err)
		return s.extendFreshRegion(nb, size)
	}
	s.sbrkedMem += size
	s.bumpMaxTotal()

	if base == expect {
		s.top.setHeadRaw(uint64(topsz+size) | flagPrevInuse)
		debugf("malloc: grew top in place by %v bytes", size)
		return s.carveFromGrownTop(nb)
	}

	// The break moved out from under us -- a foreign caller, or the
	// source simply can't promise contiguity here. Fence off the old
	// top (if any) and start a new top at the fresh base.
	warnf("malloc: heap extension landed at %#x, expected %#x; marking non-contiguous", base, expect)
	s.contiguous = false
	s.fencepostOldTop()
	s.top = chunkptr(base)
	s.top.setHeadRaw(uint64(size) | flagPrevInuse)
	return s.carveFromGrownTop(nb)
}

// extendFreshRegion handles the first-ever extension, or any
// extension once the heap is known non-contiguous: learn the current
// break, pad forward so the first chunk is 2*wordsize aligned, then
// extend once more to cover the requested size on top of that pad.
func (s *State) extendFreshRegion(nb, size int64) (unsafe.Pointer, bool) {
	base, err := s.source.Extend(s.pagesize)
	if err != nil {
		return nil, false
	}
	front := alignUp(int64(base), 2*wordsize) - int64(base)
	remaining := pageRound(size-s.pagesize+front, s.pagesize)

	total := s.pagesize
	if remaining > 0 {
		base2, err2 := s.source.Extend(remaining)
		if err2 != nil || base2 < base {
			s.contiguous = false
			warnf("malloc: secondary heap extension failed or went backwards")
			return nil, false
		}
		total += remaining
	}
	s.sbrkedMem += total
	s.bumpMaxTotal()

	if s.top != 0 {
		s.fencepostOldTop()
	}
	if s.heapBase == 0 {
		s.heapBase = uintptr(int64(base) + front)
	}

	s.top = chunkptr(uintptr(int64(base) + front))
	s.top.setHeadRaw(uint64(total-front) | flagPrevInuse)
	debugf("malloc: started fresh region of %v bytes (front pad %v)", total, front)
	return s.carveFromGrownTop(nb)
}

// carveFromGrownTop splits nb off the just-enlarged top. When the heap
// grew in place or a fresh region was sized for nb alone, top holds at
// least nb+top_pad+MIN_CHUNK bytes and the split succeeds. A request
// sized net of the old top that lands in a new, non-contiguous region
// can leave top smaller than nb+MIN_CHUNK; the call then reports
// ok=false.
func (s *State) carveFromGrownTop(nb int64) (unsafe.Pointer, bool) {
	c, ok := s.tryTop(nb)
	if !ok {
		errorf("malloc: internal error, grown top of %v bytes cannot serve %v", s.top.size(), nb)
		return nil, false
	}
	return unsafe.Pointer(c.chunk2mem()), true
}
