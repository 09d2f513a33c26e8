package malloc

import "unsafe"

import "github.com/bnclabs/gomalloc/api"

// allocate tries, in order: a fast-bin pop, a small-bin tail pop, a
// drain of the unsorted queue (which also bins anything it cannot
// satisfy immediately), a targeted large-bin scan, a binmap-guided
// scan of the higher bins, a carve off top, and finally sysmalloc to
// obtain fresh memory.
func (s *State) allocate(req int64) unsafe.Pointer {
	s.ensureInit()

	nb, ok := request2size(req)
	if !ok {
		s.outOfMemory("allocate: request %v bytes overflows", req)
		return nil
	}

	if nb <= s.maxFast {
		idx := fastbinIndex(nb)
		if c := s.fastbinPop(idx); c != 0 {
			s.inuseMem += chunksizeFor(nb)
			debugf("malloc: alloc %v bytes from fastbin[%v]", nb, idx)
			return unsafe.Pointer(c.chunk2mem())
		}
	}

	if nb < minLargeSize {
		if c := s.binPopTail(smallBinIndex(nb)); c != 0 {
			c.setInuse()
			s.inuseMem += chunksizeFor(nb)
			debugf("malloc: alloc %v bytes from smallbin", nb)
			return unsafe.Pointer(c.chunk2mem())
		}
	} else if s.fastChunks {
		s.consolidate()
	}

	if c := s.drainUnsorted(nb); c != 0 {
		return unsafe.Pointer(c.chunk2mem())
	}

	targetIdx := binIndex(nb)
	if nb >= minLargeSize {
		if c := s.largeBinScan(targetIdx, nb); c != 0 {
			return unsafe.Pointer(c.chunk2mem())
		}
	}

	if c := s.binmapScan(targetIdx+1, nb); c != 0 {
		return unsafe.Pointer(c.chunk2mem())
	}

	if s.top != 0 && s.top.size() >= nb+minChunkSize {
		c := s.splitFromTop(nb)
		return unsafe.Pointer(c.chunk2mem())
	}

	return s.sysmalloc(nb)
}

func (s *State) outOfMemory(format string, v ...interface{}) {
	s.lastError = api.ErrOutOfMemory
	warnf(format, v...)
}
