package malloc

import "unsafe"

// sysmalloc is reached only once no bin, fast bin, or top split can
// satisfy nb. It tries a direct mapping for large requests, then
// extends the contiguous heap, and as a last resort falls back to a
// one-shot non-contiguous mapping.
func (s *State) sysmalloc(nb int64) unsafe.Pointer {
	if s.fastChunks {
		// The "re-enter allocate" trick the source this allocator is
		// modeled on uses here -- consolidate, then recursively call
		// the public allocator with a shrunk, re-normalized size --
		// is deliberately not replicated (see the design notes on
		// recursive re-normalization). Retry the top split directly
		// instead; if that still falls short, fall through to
		// acquiring fresh memory below.
		s.consolidate()
		if c, ok := s.tryTop(nb); ok {
			return unsafe.Pointer(c.chunk2mem())
		}
	}

	if nb >= s.mmapThreshold && s.nMmaps < s.mmapMax {
		if ptr, ok := s.mmapChunk(s.mmapRequestSize(nb), nb); ok {
			debugf("malloc: sysmalloc served %v bytes via mmap", nb)
			return ptr
		}
	}

	if ptr, ok := s.extendHeap(nb); ok {
		return ptr
	}

	size := nb
	if size < mmapMinUnit {
		size = mmapMinUnit
	}
	if ptr, ok := s.mmapChunk(s.mmapRequestSize(size), nb); ok {
		s.contiguous = false
		warnf("malloc: heap extension failed, fell back to a %v byte mapping", size)
		return ptr
	}

	s.outOfMemory("sysmalloc: unable to obtain %v bytes", nb)
	return nil
}

// tryTop attempts to carve nb out of the current top without
// acquiring any new system memory, used by the fastchunks retry above
// and by carveFromGrownTop after a heap extension.
func (s *State) tryTop(nb int64) (chunkptr, bool) {
	if s.top == 0 {
		return 0, false
	}
	if s.top.size() >= nb+minChunkSize {
		return s.splitFromTop(nb), true
	}
	return 0, false
}

// mmapRequestSize is the mapping size sysmalloc asks for: enough for
// the chunk header, the requested size, and slop to cover front
// misalignment, rounded up to a page.
func (s *State) mmapRequestSize(nb int64) int64 {
	return pageRound(nb+wordsize+alignMask, s.pagesize)
}

// mmapChunk obtains a fresh mapping of at least mapSize bytes from
// the source and carves a single mmapped, in-use chunk of nb bytes
// out of its front, recording any leading alignment pad in prev_size
// so free can recover the original mapping base.
func (s *State) mmapChunk(mapSize, nb int64) (unsafe.Pointer, bool) {
	base, err := s.source.Mmap(mapSize)
	if err != nil {
		debugf("malloc: mmap %v bytes failed: %v", mapSize, err)
		return nil, false
	}

	front := alignUp(int64(base), 2*wordsize) - int64(base)
	chunk := chunkptr(base + uintptr(front))
	chunkSize := mapSize - front

	chunk.setHeadRaw(uint64(chunkSize) | flagMmapped | flagPrevInuse)
	chunk.setPrevSize(front)

	s.nMmaps++
	s.mmappedMem += mapSize
	s.inuseMem += chunksizeFor(chunkSize)
	s.bumpMaxTotal()

	return unsafe.Pointer(chunk.chunk2mem()), true
}

// defaultPageSizeGuess is used only if a Source ever reports a
// nonsensical page size; NewState always seeds pagesize from
// source.PageSize() so this is a last-ditch safety net, not the
// normal path.
const defaultPageSizeGuess = int64(4096)

func pageRound(n, page int64) int64 {
	if page <= 0 {
		page = defaultPageSizeGuess
	}
	if r := n % page; r != 0 {
		n += page - r
	}
	return n
}
