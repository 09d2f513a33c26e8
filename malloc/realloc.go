package malloc

import "unsafe"

import "github.com/bnclabs/gomalloc/lib"

// realloc mirrors dlmalloc's realloc. oldmem == nil behaves as
// allocate. A direct-mapped chunk is handled separately since it can
// never be resized in place beyond its own mapping. Otherwise: kept in
// place if the chunk is already big enough (any trailing remainder of
// at least MIN_CHUNK is freed), else try expanding forward into top or
// a free physical neighbor, else allocate fresh and copy, with a
// splice special case when the fresh allocation happens to land right
// after the old chunk.
func (s *State) realloc(oldmem unsafe.Pointer, bytes int64) unsafe.Pointer {
	if oldmem == nil {
		return s.allocate(bytes)
	}
	s.ensureInit()

	nb, ok := request2size(bytes)
	if !ok {
		s.outOfMemory("realloc: request %v bytes overflows", bytes)
		return nil
	}

	p := mem2chunk(uintptr(oldmem))

	if p.isMmapped() {
		return s.reallocMmapped(p, nb, bytes)
	}

	size := p.size()

	if size >= nb {
		s.splitReallocTail(p, size, nb)
		return oldmem
	}

	if grown, ok := s.reallocExpandForward(p, size, nb); ok {
		s.splitReallocTail(p, grown, nb)
		return unsafe.Pointer(p.chunk2mem())
	}

	newmem := s.allocate(bytes)
	if newmem == nil {
		return nil
	}
	newp := mem2chunk(uintptr(newmem))
	if newp == p.plus(size) {
		s.spliceAdjacent(p, size, newp)
		return unsafe.Pointer(p.chunk2mem())
	}

	lib.Memcpy(newmem, oldmem, int(minInt64(chunksizeFor(size), chunksizeFor(nb))))
	s.free(oldmem)
	return newmem
}

// reallocMmapped handles realloc of a direct-mapped chunk: a mapping
// is never resized in place here, only reused verbatim when it
// already has a word of slack, or replaced wholesale.
func (s *State) reallocMmapped(p chunkptr, nb, bytes int64) unsafe.Pointer {
	oldsize := p.size()
	if oldsize >= nb+wordsize {
		return unsafe.Pointer(p.chunk2mem())
	}

	newmem := s.allocate(bytes)
	if newmem == nil {
		return nil
	}
	lib.Memcpy(newmem, unsafe.Pointer(p.chunk2mem()), int(minInt64(chunksizeFor(oldsize), chunksizeFor(nb))))
	s.free(unsafe.Pointer(p.chunk2mem()))
	return newmem
}

// reallocExpandForward tries to grow p in place to at least nb bytes
// by absorbing top or a free physical successor. Returns p's new
// total size and true on success.
func (s *State) reallocExpandForward(p chunkptr, size, nb int64) (int64, bool) {
	next := p.plus(size)

	if next == s.top {
		needed := nb - size
		topsz := s.top.size()
		if topsz < needed {
			return 0, false
		}
		remaining := topsz - needed
		if remaining > 0 && remaining < minChunkSize {
			return 0, false
		}

		pinuse := p.head() & flagPrevInuse
		p.setHeadRaw(pinuse | uint64(nb))
		if remaining == 0 {
			s.top = 0
		} else {
			s.top = p.plus(nb)
			s.top.setHeadRaw(uint64(remaining) | flagPrevInuse)
		}
		s.inuseMem += chunksizeFor(nb) - chunksizeFor(size)
		return nb, true
	}

	if next.inuse() {
		return 0, false
	}
	nextsize := next.size()
	combined := size + nextsize
	if combined < nb {
		return 0, false
	}

	s.unlinkFromBin(next)
	pinuse := p.head() & flagPrevInuse
	p.setHeadRaw(pinuse | uint64(combined))
	p.setInuse()
	s.inuseMem += chunksizeFor(combined) - chunksizeFor(size)
	return combined, true
}

// splitReallocTail trims a trailing remainder of total-nb bytes off an
// in-use chunk whose actual size exceeds what was requested, freeing
// it the way realloc does when it shrinks a chunk in place. The
// remainder's predecessor (p) stays in use, so no backward
// coalescing applies; coalesceFree still has to run to
// fold the remainder into top or clear its successor's prev-inuse bit
// before parking it in the unsorted queue, exactly as a direct free of
// this chunk would.
func (s *State) splitReallocTail(p chunkptr, total, nb int64) {
	remSize := total - nb
	if remSize < minChunkSize {
		return
	}

	pinuse := p.head() & flagPrevInuse
	p.setHeadRaw(pinuse | uint64(nb))

	rem := p.plus(nb)
	s.inuseMem -= remSize
	s.anyChunks = true
	s.coalesceFree(rem, remSize)
}

// spliceAdjacent merges an in-use chunk p with an in-use chunk newp
// that happens to sit immediately after it -- the corner case in
// realloc's fallback path where the fresh allocation lands right
// where the old chunk's tail already was.
func (s *State) spliceAdjacent(p chunkptr, size int64, newp chunkptr) {
	combined := size + newp.size()
	pinuse := p.head() & flagPrevInuse
	p.setHeadRaw(pinuse | uint64(combined))
	s.inuseMem += wordsize
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
