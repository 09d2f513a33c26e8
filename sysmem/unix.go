//go:build linux || darwin

package sysmem

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// unixHeap implements Source over anonymous mmap/mprotect. A single
// large PROT_NONE reservation is made up front so that every Extend
// call, short of exhausting the reservation, lands contiguously with
// the region before it -- the same guarantee sbrk gives on a
// traditional Unix heap.
type unixHeap struct {
	mu        sync.Mutex
	region    []byte
	committed int64
	pagesize  int64
	contig    bool
}

// NewUnixHeap reserves `reserve` bytes of address space (rounded up to
// a page) for a contiguous heap region. reserve <= 0 selects a
// generous default.
func NewUnixHeap(reserve int64) (Source, error) {
	if reserve <= 0 {
		reserve = defaultReserveFromSysmem()
	}
	pagesize := int64(unix.Getpagesize())
	reserve = roundup(reserve, pagesize)
	region, err := unix.Mmap(
		-1, 0, int(reserve),
		unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON,
	)
	if err != nil {
		return nil, fmt.Errorf("sysmem: reserve %v bytes: %v", reserve, err)
	}
	return &unixHeap{region: region, pagesize: pagesize, contig: true}, nil
}

func (h *unixHeap) PageSize() int64 {
	return h.pagesize
}

func (h *unixHeap) Break() uintptr {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.addr(h.committed)
}

func (h *unixHeap) Contiguous() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.contig
}

func (h *unixHeap) Extend(delta int64) (uintptr, error) {
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
	slab := h.region[old : old+delta]
	if err := unix.Mprotect(slab, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		h.contig = false
		return 0, err
	}
	h.committed = old + delta
	return h.addr(old), nil
}

func (h *unixHeap) Shrink(extra int64) (uintptr, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if extra <= 0 || (extra%h.pagesize) != 0 {
		return 0, fmt.Errorf("sysmem: shrink extra %v not a multiple of page", extra)
	}
	if extra > h.committed {
		return 0, fmt.Errorf("sysmem: shrink %v exceeds committed %v", extra, h.committed)
	}
	newcommitted := h.committed - extra
	slab := h.region[newcommitted:h.committed]
	if err := unix.Mprotect(slab, unix.PROT_NONE); err != nil {
		return 0, err
	}
	h.committed = newcommitted
	return h.addr(h.committed), nil
}

func (h *unixHeap) Mmap(size int64) (uintptr, error) {
	size = roundup(size, int64(unix.Getpagesize()))
	data, err := unix.Mmap(
		-1, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON,
	)
	if err != nil {
		return 0, err
	}
	return addrOf(data), nil
}

func (h *unixHeap) Munmap(base uintptr, size int64) error {
	size = roundup(size, int64(unix.Getpagesize()))
	return munmapAt(base, size)
}

func (h *unixHeap) addr(off int64) uintptr {
	if len(h.region) == 0 {
		return 0
	}
	return addrOf(h.region) + uintptr(off)
}

func roundup(n, unit int64) int64 {
	if r := n % unit; r != 0 {
		return n + (unit - r)
	}
	return n
}
