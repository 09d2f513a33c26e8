package malloc

import (
	"sync"
	"unsafe"

	"github.com/bnclabs/gomalloc/api"
	"github.com/bnclabs/gomalloc/lib"
	"github.com/bnclabs/gomalloc/sysmem"
)

// Malloc is the concrete api.Mallocer: a State plus the single global
// lock every entry point serializes behind -- coalescing can reach
// across any bin, so there is no finer-grained locking that would
// stay correct.
type Malloc struct {
	mu       sync.Mutex
	state    *State
	released bool
}

// NewMalloc builds a Malloc over source, applying settings on top of
// Defaultsettings.
func NewMalloc(settings lib.Settings, source sysmem.Source) *Malloc {
	return &Malloc{state: NewState(settings, source)}
}

var _ api.Mallocer = (*Malloc)(nil)

// checkReleased records ErrReleased on the state and reports whether
// the caller must bail out immediately. Must be called with mu held.
func (m *Malloc) checkReleased() bool {
	if !m.released {
		return false
	}
	m.state.lastError = api.ErrReleased
	return true
}

func (m *Malloc) Alloc(n int64) unsafe.Pointer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.checkReleased() {
		return nil
	}
	return m.state.allocate(n)
}

// Calloc is Alloc(k*s) with the payload zeroed; k*s overflowing int64
// fails the same way an oversized Alloc request does.
func (m *Malloc) Calloc(k, s int64) unsafe.Pointer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.checkReleased() {
		return nil
	}
	if k < 0 || s < 0 {
		m.state.outOfMemory("calloc: negative k=%v or s=%v", k, s)
		return nil
	}
	n := k * s
	if s != 0 && n/s != k {
		m.state.outOfMemory("calloc: k=%v * s=%v overflows", k, s)
		return nil
	}
	ptr := m.state.allocate(n)
	if ptr == nil {
		return nil
	}
	c := mem2chunk(uintptr(ptr))
	zeroBytes(uintptr(ptr), chunksizeFor(c.size()))
	return ptr
}

func (m *Malloc) Memalign(align, n int64) unsafe.Pointer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.checkReleased() {
		return nil
	}
	return m.state.memalign(align, n)
}

func (m *Malloc) Realloc(ptr unsafe.Pointer, n int64) unsafe.Pointer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.checkReleased() {
		return nil
	}
	return m.state.realloc(ptr, n)
}

func (m *Malloc) Free(ptr unsafe.Pointer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.checkReleased() {
		return
	}
	m.state.free(ptr)
}

func (m *Malloc) IndependentCalloc(sizes []int64, zero bool) []unsafe.Pointer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.checkReleased() {
		return nil
	}
	return m.state.independentCalloc(sizes, zero)
}

// Usablesize reports the actual payload span backing ptr, which can
// exceed what was originally requested once rounding and any split
// remainder are accounted for.
func (m *Malloc) Usablesize(ptr unsafe.Pointer) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr == nil || m.released {
		return 0
	}
	c := mem2chunk(uintptr(ptr))
	return chunksizeFor(c.size())
}

func (m *Malloc) Trim(pad int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.checkReleased() {
		return false
	}
	return m.state.trim(pad)
}

func (m *Malloc) Tune(param api.TuneParam, value int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.checkReleased() {
		return false
	}
	return m.state.tune(param, value)
}

func (m *Malloc) Stats() api.Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.checkReleased() {
		return api.Stats{}
	}
	return m.state.stats()
}

// Release consolidates the fast bins, trims top back to the OS as far
// as systrim allows, and marks this Malloc unusable. systrim keeps at
// least one page plus MIN_CHUNK in top, and memory held by chunks
// still in use stays committed. Outstanding direct (mmapped)
// allocations the caller never freed are not tracked individually and
// so are not reclaimed here either.
func (m *Malloc) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.released {
		return
	}
	if m.state.fastChunks {
		m.state.consolidate()
	}
	for m.state.systrim(0) {
	}
	m.released = true
	infof("malloc: allocator released")
}

// LastError returns the most recent error recorded by any entry point:
// api.ErrOutOfMemory after a failed request, or api.ErrReleased after a
// call on a released Malloc. Later successful calls do not clear it.
func (m *Malloc) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.lastError
}
