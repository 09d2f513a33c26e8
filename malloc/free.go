package malloc

import "unsafe"

import "github.com/bnclabs/gomalloc/api"

// free releases the payload at mem back to s. mem == nil is a no-op,
// matching the contract every caller above this layer relies on.
func (s *State) free(mem unsafe.Pointer) {
	if mem == nil {
		return
	}
	s.ensureInit()

	p := mem2chunk(uintptr(mem))

	if p.isMmapped() {
		s.freeMmapped(p)
		return
	}

	size := p.size()
	s.inuseMem -= chunksizeFor(size)

	if size <= s.maxFast {
		s.fastbinPush(p, size)
		debugf("malloc: free %v bytes to fastbin", size)
		return
	}

	s.anyChunks = true
	p, size = s.maybeAbsorbPrev(p, size)
	s.coalesceFree(p, size)

	threshold := s.trimThreshold / api.FastbinConsolidationDivisor
	if size >= threshold {
		s.consolidate()
		if s.topsize() >= s.trimThreshold {
			s.systrim(s.topPad)
		}
	}
}

// freeMmapped releases a direct-mapped chunk's backing mapping. The
// mapping's base address sits prevSize bytes below the chunk (the
// leading alignment pad recorded when the mapping was made).
func (s *State) freeMmapped(p chunkptr) {
	size := p.size()
	pad := p.prevSize()
	base := p.addr() - uintptr(pad)
	length := size + pad

	if err := s.source.Munmap(base, length); err != nil {
		errorf("malloc: munmap %#x (%v bytes): %v", base, length, err)
	}
	s.nMmaps--
	s.mmappedMem -= length
	s.inuseMem -= chunksizeFor(size)
}
