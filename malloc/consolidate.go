package malloc

// consolidate drains every fast bin, merges each chunk with its
// physical neighbors exactly as free does, and routes the result into
// the unsorted queue or top. It is invoked lazily whenever the
// allocator discovers it has never been touched (first running
// ensureInit), and opportunistically from allocate and free, mirroring
// dlmalloc's own fastbin consolidation points.
func (s *State) consolidate() {
	s.ensureInit()

	if !s.fastChunks {
		return
	}

	chunks := s.fastbinDrain()
	for _, p := range chunks {
		size := p.size()
		p, size = s.maybeAbsorbPrev(p, size)
		s.coalesceFree(p, size)
	}
	debugf("malloc: consolidate drained %v fastbin chunks", len(chunks))
}
