package malloc

// splitFromTop carves nb bytes off the low end of top, shrinking top
// by nb and handing back a chunk marked in-use whose successor (the
// new, smaller top) keeps its prev-inuse bit set. Top itself carries
// no foot and is never binned; this is distinct from splitting a
// chunk drawn out of a bin, where the remainder must get a foot.
func (s *State) splitFromTop(nb int64) chunkptr {
	top := s.top
	topsz := top.size()

	used := top
	used.setHeadRaw(uint64(nb) | flagPrevInuse)

	newTop := top.plus(nb)
	newTop.setHeadRaw(uint64(topsz-nb) | flagPrevInuse)
	s.top = newTop

	s.inuseMem += chunksizeFor(nb)
	debugf("malloc: split %v bytes from top, new topsize=%v", nb, topsz-nb)
	return used
}

// splitFree carves a nb-byte, in-use chunk off the low end of a free
// chunk c of size total, drawn from the unsorted queue, a small bin,
// a large bin, or the binmap scan. If the leftover is too small to
// stand as a chunk on its own (< MinChunk), c is handed out whole
// (exhausted) and ok is false. Otherwise the remainder keeps c's old
// foot-bearing successor relationship intact -- its own prev-inuse
// bit is unaffected by the split, since both the pre-split chunk and
// the remainder are free -- and the caller is responsible for placing
// the remainder (last_remainder, a normal bin, or discarding it).
func (s *State) splitFree(c chunkptr, total, nb int64) (used, remainder chunkptr, remSize int64, ok bool) {
	remSize = total - nb
	if remSize < minChunkSize {
		c.setHeadRaw(uint64(total) | flagPrevInuse)
		c.setInuse()
		s.inuseMem += chunksizeFor(total)
		return c, 0, 0, false
	}

	c.setHeadRaw(uint64(nb) | flagPrevInuse)
	remainder = c.plus(nb)
	remainder.setHeadRaw(uint64(remSize) | flagPrevInuse)
	remainder.setFoot(remSize)

	s.inuseMem += chunksizeFor(nb)
	return c, remainder, remSize, true
}
