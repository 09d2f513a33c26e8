package malloc

// fastbinIndex maps a chunk size already known to be <= max_fast onto
// its fast-bin slot.
func fastbinIndex(size int64) int {
	idx := int(size/(2*wordsize)) - 2
	if idx < 0 {
		idx = 0
	}
	if idx >= numFastbins {
		idx = numFastbins - 1
	}
	return idx
}

// fastbinPush parks c, of the given size, at the head of its fast
// bin. The successor's prev-inuse bit is deliberately left untouched:
// a fastbinned chunk still looks "in use" to its neighbor, which is
// exactly what keeps fastbin push/pop O(1) and defers coalescing to
// consolidate.
func (s *State) fastbinPush(c chunkptr, size int64) {
	idx := fastbinIndex(size)
	c.setFd(s.fastbins[idx])
	s.fastbins[idx] = c
	s.fastChunks = true
	s.anyChunks = true
}

// fastbinPop detaches and returns the head of fast bin idx, or 0 if
// empty.
func (s *State) fastbinPop(idx int) chunkptr {
	c := s.fastbins[idx]
	if c == 0 {
		return 0
	}
	s.fastbins[idx] = c.fd()
	return c
}

// fastbinDrain removes and returns every chunk parked in every fast
// bin, clearing fastChunks. Used only by consolidate.
func (s *State) fastbinDrain() []chunkptr {
	var out []chunkptr
	for i := range s.fastbins {
		for c := s.fastbins[i]; c != 0; {
			next := c.fd()
			out = append(out, c)
			c = next
		}
		s.fastbins[i] = 0
	}
	s.fastChunks = false
	return out
}
