package malloc

import "unsafe"

// independentCalloc mirrors dlmalloc's independent_calloc: every
// element gets its own freestanding chunk, but all of them are carved
// out of a single aggregate allocation so the bookkeeping and
// possible sysmalloc call happens once instead of len(sizes) times.
// Direct mapping is suppressed for the aggregate itself -- a mmapped
// chunk cannot be subdivided, since each piece must later be freeable
// on its own.
func (s *State) independentCalloc(sizes []int64, zero bool) []unsafe.Pointer {
	n := len(sizes)
	if n == 0 {
		return nil
	}

	s.ensureInit()

	nbs := make([]int64, n)
	total := int64(0)
	for i, sz := range sizes {
		nb, ok := request2size(sz)
		if !ok {
			s.outOfMemory("independent_calloc: request %v bytes overflows", sz)
			return nil
		}
		nbs[i] = nb
		total += nb
	}

	savedThreshold := s.mmapThreshold
	s.mmapThreshold = maxInt64
	raw := s.allocate(total - wordsize)
	s.mmapThreshold = savedThreshold
	if raw == nil {
		return nil
	}

	p := mem2chunk(uintptr(raw))
	actualTotal := p.size()
	slack := actualTotal - total

	ptrs := make([]unsafe.Pointer, n)
	cur := p
	leadPrevInuse := p.head() & flagPrevInuse

	for i, nb := range nbs {
		sz := nb
		if i == n-1 {
			sz += slack
		}

		head := uint64(sz)
		if i == 0 {
			head |= leadPrevInuse
		} else {
			head |= flagPrevInuse
		}
		cur.setHeadRaw(head)

		mem := cur.chunk2mem()
		if zero {
			zeroBytes(mem, chunksizeFor(sz))
		}
		ptrs[i] = unsafe.Pointer(mem)
		cur = cur.plus(sz)
	}

	s.inuseMem -= int64(n-1) * wordsize
	debugf("malloc: independent_calloc carved %v chunks from %v bytes", n, actualTotal)

	return ptrs
}

func zeroBytes(addr uintptr, n int64) {
	for i := int64(0); i < n; i++ {
		*(*byte)(unsafe.Pointer(addr + uintptr(i))) = 0
	}
}
