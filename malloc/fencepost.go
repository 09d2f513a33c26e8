package malloc

import "unsafe"

// maxInt64 disables the opportunistic-trim threshold for the duration
// of a single free call, used while fencing off an orphaned top.
const maxInt64 = int64(1<<63 - 1)

// fencepostOldTop installs dlmalloc's double-fencepost protocol at
// the tail of the outgoing top before a new, disjoint region takes
// over: two minimum-sized chunks, forced in-use regardless of what
// actually follows them, so that backward coalescing can never bridge
// across memory this allocator no longer controls. Whatever is left
// of the old top below the fences is released as an ordinary chunk,
// with trim disabled so installing the fences cannot itself trigger a
// syscall.
func (s *State) fencepostOldTop() {
	if s.top == 0 {
		return
	}
	old := s.top
	oldsz := old.size()
	s.top = 0

	if oldsz < 2*minChunkSize {
		// Too little room for two independent fenceposts: fold
		// whatever is here into a single oversized, forced-in-use
		// fencepost rather than leave a real gap unmarked.
		old.setHeadRaw(uint64(oldsz) | flagPrevInuse)
		return
	}

	body := oldsz - 2*minChunkSize
	fence1 := old.plus(body)
	fence2 := fence1.plus(minChunkSize)

	fence1.setHeadRaw(uint64(minChunkSize) | flagPrevInuse)
	fence2.setHeadRaw(uint64(minChunkSize) | flagPrevInuse)

	if body < minChunkSize {
		// Slack too small to stand alone: grow fence1 to cover it,
		// still forced in-use.
		fence1 = old
		fence1.setHeadRaw(uint64(minChunkSize+body) | flagPrevInuse)
		return
	}

	old.setHeadRaw(uint64(body) | flagPrevInuse)
	savedTrim := s.trimThreshold
	s.trimThreshold = maxInt64
	s.inuseMem += chunksizeFor(body) // free() below will subtract this back out
	s.free(unsafe.Pointer(old.chunk2mem()))
	s.trimThreshold = savedTrim
}
