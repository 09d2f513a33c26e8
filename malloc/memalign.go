package malloc

import "unsafe"

// memalign mirrors dlmalloc's memalign. align is rounded up to a
// power of two with a floor of 2*wordsize; at or below that floor
// alignment is already
// guaranteed by request2size's own rounding, so it degenerates to an
// ordinary allocate. Otherwise the request is over-allocated by
// align+MIN_CHUNK bytes, the lowest correctly aligned payload address
// inside that block is located, and whatever sits before and after it
// is handed back to the allocator.
func (s *State) memalign(align, n int64) unsafe.Pointer {
	align = alignPow2(align)
	if align <= 2*wordsize {
		return s.allocate(n)
	}

	s.ensureInit()

	nb, ok := request2size(n)
	if !ok {
		s.outOfMemory("memalign: request %v bytes overflows", n)
		return nil
	}

	raw := s.allocate(nb + align + minChunkSize)
	if raw == nil {
		return nil
	}

	p := mem2chunk(uintptr(raw))

	if p.isMmapped() {
		return s.memalignMmapped(p, align)
	}

	total := p.size()
	m := p.chunk2mem()
	aligned := uintptr(alignUp(int64(m), align))
	lead := int64(aligned - m)

	if lead == 0 {
		s.splitReallocTail(p, total, nb)
		return unsafe.Pointer(p.chunk2mem())
	}

	if lead < minChunkSize {
		aligned = uintptr(alignUp(int64(aligned)+1, align))
		lead = int64(aligned - m)
	}

	newp := mem2chunk(uintptr(aligned))
	frontSize := int64(uintptr(newp) - uintptr(p))
	remaining := total - frontSize

	pinuse := p.head() & flagPrevInuse
	p.setHeadRaw(pinuse | uint64(frontSize))
	newp.setHeadRaw(uint64(remaining) | flagPrevInuse)
	newp.setInuse()
	p.setFoot(frontSize)

	// Splitting one in-use chunk into two costs one header word of
	// payload; free below only accounts for p's own share.
	s.inuseMem -= wordsize
	s.free(unsafe.Pointer(p.chunk2mem()))
	s.splitReallocTail(newp, remaining, nb)

	return unsafe.Pointer(newp.chunk2mem())
}

// memalignMmapped satisfies an aligned request out of an already
// direct-mapped chunk by sliding the chunk pointer forward within the
// mapping and recording the new distance back to the real mapping
// base in prev_size, the same slack-tracking trick mmapChunk uses for
// ordinary front misalignment.
func (s *State) memalignMmapped(p chunkptr, align int64) unsafe.Pointer {
	m := p.chunk2mem()
	aligned := uintptr(alignUp(int64(m), align))
	if aligned == m {
		return unsafe.Pointer(m)
	}

	base := p.addr() - uintptr(p.prevSize())
	newchunk := chunkptr(aligned - chunkHeaderSize)
	newSize := p.size() - int64(aligned-m)
	frontFromBase := int64(newchunk.addr() - base)

	newchunk.setHeadRaw(uint64(newSize) | flagMmapped | flagPrevInuse)
	newchunk.setPrevSize(frontFromBase)
	s.inuseMem -= int64(aligned - m)

	return unsafe.Pointer(newchunk.chunk2mem())
}

// alignPow2 rounds align up to the next power of two, with a floor of
// 2*wordsize (the natural alignment request2size already delivers).
func alignPow2(align int64) int64 {
	min := int64(2 * wordsize)
	if align <= min {
		return min
	}
	p := min
	for p < align {
		p <<= 1
	}
	return p
}
