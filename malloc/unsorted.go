package malloc

// drainUnsorted gives every chunk parked in the unsorted queue its one
// chance at servicing request nb before routing it to its definitive
// bin. It is the sole path that ever populates a normal (non-fastbin,
// non-unsorted) bin -- free never does so directly. Returns a chunk
// already marked in-use if nb was satisfied, or 0 once the queue runs
// dry.
func (s *State) drainUnsorted(nb int64) chunkptr {
	for {
		v := s.binPopTail(unsortedBin)
		if v == 0 {
			return 0
		}
		vsize := v.size()

		if nb < minLargeSize && s.bins[unsortedBin].empty() &&
			v == s.lastRemainder && vsize >= nb+minChunkSize {
			remainder := vsize - nb
			newRem := v.plus(nb)
			v.setHeadSize(nb)
			newRem.setHeadRaw(uint64(remainder) | flagPrevInuse)
			newRem.setFoot(remainder)
			s.lastRemainder = newRem
			s.binInsertFront(unsortedBin, newRem)
			s.inuseMem += chunksizeFor(nb)
			return v
		}

		if vsize == nb {
			v.setInuse()
			s.inuseMem += chunksizeFor(nb)
			return v
		}

		s.binInsert(binIndex(vsize), v, vsize)
	}
}
