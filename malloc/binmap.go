package malloc

// The binmap is a 128-bit hint vector, four 32-bit words wide, one
// bit per bin. A set bit means the bin has been observed non-empty;
// it is cleared lazily when a scan finds the bin actually empty, not
// eagerly on removal -- a stale set bit just costs one wasted probe,
// which is the algorithm's intended amortized cost, not a bug.

func (s *State) binmapSet(idx int) {
	w, b := idx>>5, uint8(idx&31)
	s.binmap[w] = s.binmap[w].Setbit(b)
}

func (s *State) binmapClear(idx int) {
	w, b := idx>>5, uint8(idx&31)
	s.binmap[w] = s.binmap[w].Clearbit(b)
}

func (s *State) binmapGet(idx int) bool {
	w, b := idx>>5, uint8(idx&31)
	return (s.binmap[w]>>b)&1 != 0
}

// binmapNextSet scans forward from idx (inclusive) for the next bin
// the map claims is non-empty, word by word, taking the lowest set
// bit within the first non-zero word it finds. Returns ok=false once
// the scan passes catchAllBin without finding one.
func (s *State) binmapNextSet(idx int) (next int, ok bool) {
	w, b := idx>>5, uint8(idx&31)
	for w < len(s.binmap) {
		word := s.binmap[w] >> b
		if word != 0 {
			return w<<5 + int(b) + int(word.Findfirstset()), true
		}
		w++
		b = 0
	}
	return 0, false
}
