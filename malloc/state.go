package malloc

import (
	"github.com/bnclabs/gomalloc/api"
	"github.com/bnclabs/gomalloc/lib"
	"github.com/bnclabs/gomalloc/sysmem"
)

const (
	numBins     = 128
	unsortedBin = 1
	firstSmall  = 2
	lastSmall   = 33
	firstLarge  = 34
	lastLarge   = 126
	catchAllBin = 127

	minLargeSize = 256 // smallbin range is sz < minLargeSize

	numFastbins = 10

	mmapMinUnit = int64(1024 * 1024)
)

// bin is a sentinel-node free list: the bin itself is never a chunk,
// only head/tail chunk addresses, following the re-architecting note
// that a memory-safe rewrite should not alias a list header onto a
// chunk.
type bin struct {
	head chunkptr
	tail chunkptr
}

func (b *bin) empty() bool { return b.head == 0 }

// State is one allocator instance: every bin, fast bin, the top
// chunk, the binmap and the running tunables and counters. Nothing
// here is safe for concurrent use; callers sharing a State across
// goroutines must serialize every method behind one lock.
type State struct {
	source sysmem.Source

	bins     [numBins]bin
	fastbins [numFastbins]chunkptr
	binmap   [4]lib.Bit32

	// binOf records which bin currently holds a free, non-fastbin
	// chunk. A chunk's own fd/bk pointers are not enough to unlink it
	// without knowing which bin's head/tail to patch, since bins are
	// plain Go-side sentinels rather than an aliased in-band header;
	// this map stands in for that lookup.
	binOf map[chunkptr]int

	top           chunkptr
	lastRemainder chunkptr

	maxFast       int64
	trimThreshold int64
	topPad        int64
	mmapThreshold int64
	mmapMax       int64

	anyChunks   bool
	fastChunks  bool
	contiguous  bool
	initialized bool

	heapBase uintptr
	pagesize int64

	nMmaps     int64
	mmappedMem int64
	sbrkedMem  int64
	inuseMem   int64
	maxTotal   int64

	// lastError records the most recent error indication (out-of-memory,
	// or use after Release), read back by the front API after a nil
	// return.
	lastError error
}

// NewState builds an allocator over source, applying settings on top
// of Defaultsettings. The allocator is lazily initialized on first
// use, matching the "uninitialized state is legal" behavior the
// source relies on, except made explicit here: Release is the only
// way back to an unusable State, there is no implicit all-zero
// interpretation.
func NewState(settings lib.Settings, source sysmem.Source) *State {
	setts := Defaultsettings().Mixin(settings)
	s := &State{
		source:        source,
		binOf:         make(map[chunkptr]int),
		maxFast:       setts.Int64("maxfast"),
		trimThreshold: setts.Int64("trimthreshold"),
		topPad:        setts.Int64("toppad"),
		mmapThreshold: setts.Int64("mmapthreshold"),
		mmapMax:       setts.Int64("mmapmax"),
		contiguous:    true,
		pagesize:      source.PageSize(),
	}
	infof("malloc: new allocator, maxfast=%v trimthreshold=%v mmapthreshold=%v",
		s.maxFast, s.trimThreshold, s.mmapThreshold)
	return s
}

// ensureInit runs init_state's job the first time any entry point
// touches an allocator that has never allocated anything. Unlike the
// source, which infers this from max_fast being all-zero, the flag
// here is explicit.
func (s *State) ensureInit() {
	if s.initialized {
		return
	}
	s.initialized = true
	debugf("malloc: lazy init")
}

func (s *State) stats() api.Stats {
	var fbCount, fbBytes int64
	for i := range s.fastbins {
		for c := s.fastbins[i]; c != 0; c = c.fd() {
			fbCount++
			fbBytes += c.size()
		}
	}
	var obCount, obBytes int64
	for i := unsortedBin; i < catchAllBin+1; i++ {
		for c := s.bins[i].head; c != 0; c = c.fd() {
			obCount++
			obBytes += c.size()
		}
	}
	if s.top != 0 {
		obCount++
		obBytes += s.top.size()
	}
	return api.Stats{
		FastbinCount: fbCount,
		FastbinBytes: fbBytes,
		OrdblksCount: obCount,
		OrdblksBytes: obBytes,
		Inuse:        s.inuseMem,
		Sbrked:       s.sbrkedMem,
		Mmapped:      s.mmappedMem,
		NMmaps:       s.nMmaps,
		Topsize:      s.topsize(),
		MaxTotal:     s.maxTotal,
	}
}

func (s *State) topsize() int64 {
	if s.top == 0 {
		return 0
	}
	return s.top.size()
}

func (s *State) bumpMaxTotal() {
	if total := s.sbrkedMem + s.mmappedMem; total > s.maxTotal {
		s.maxTotal = total
	}
}
