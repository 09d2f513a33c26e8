//go:build !linux && !darwin

package sysmem

import (
	"fmt"
	"sync"
	"unsafe"
)

// fallbackHeap backs Source with a single pre-sized Go byte slice on
// platforms without mmap/mprotect. The region never moves once
// allocated, so it offers the same contiguity guarantee as unixHeap
// within its fixed capacity; exhausting that capacity permanently
// marks the heap non-contiguous, same as a foreign sbrk collision
// would on a real Unix box.
type fallbackHeap struct {
	mu        sync.Mutex
	region    []byte
	committed int64
	pagesize  int64
	contig    bool
	mmaps     map[uintptr][]byte
}

// NewUnixHeap is named for interface parity with the unix build; on
// this platform it allocates ordinary Go memory instead of reserving
// address space.
func NewUnixHeap(reserve int64) (Source, error) {
	if reserve <= 0 {
		reserve = defaultReserveFromSysmem()
	}
	pagesize := defaultPageSize
	reserve = roundup(reserve, pagesize)
	return &fallbackHeap{
		region:   make([]byte, reserve),
		pagesize: pagesize,
		contig:   true,
		mmaps:    make(map[uintptr][]byte),
	}, nil
}

func (h *fallbackHeap) PageSize() int64 { return h.pagesize }

func (h *fallbackHeap) Break() uintptr {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.addr(h.committed)
}

func (h *fallbackHeap) Contiguous() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.contig
}

func (h *fallbackHeap) Extend(delta int64) (uintptr, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if delta <= 0 || (delta%h.pagesize) != 0 {
		return 0, fmt.Errorf("sysmem: extend delta %v not a multiple of page", delta)
	}
	old := h.committed
	if old+delta > int64(len(h.region)) {
		h.contig = false
		return 0, fmt.Errorf("sysmem: reservation exhausted")
	}
	h.committed = old + delta
	return h.addr(old), nil
}

func (h *fallbackHeap) Shrink(extra int64) (uintptr, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if extra <= 0 || (extra%h.pagesize) != 0 {
		return 0, fmt.Errorf("sysmem: shrink extra %v not a multiple of page", extra)
	}
	if extra > h.committed {
		return 0, fmt.Errorf("sysmem: shrink %v exceeds committed %v", extra, h.committed)
	}
	h.committed -= extra
	return h.addr(h.committed), nil
}

func (h *fallbackHeap) Mmap(size int64) (uintptr, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	size = roundup(size, h.pagesize)
	data := make([]byte, size)
	base := addrOf(data)
	h.mmaps[base] = data
	return base, nil
}

func (h *fallbackHeap) Munmap(base uintptr, size int64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.mmaps[base]; !ok {
		return fmt.Errorf("sysmem: unknown mapping at %#x", base)
	}
	delete(h.mmaps, base)
	return nil
}

func (h *fallbackHeap) addr(off int64) uintptr {
	if len(h.region) == 0 {
		return 0
	}
	return addrOf(h.region) + uintptr(off)
}

func addrOf(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return (uintptr)(unsafe.Pointer(&b[0]))
}

func roundup(n, unit int64) int64 {
	if r := n % unit; r != 0 {
		return n + (unit - r)
	}
	return n
}
