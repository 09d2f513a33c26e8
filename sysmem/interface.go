package sysmem

// Source is the system-memory primitive the allocator core extends
// its heap from and maps large chunks through. Implementations need
// not be safe for concurrent use; the allocator serializes access.
type Source interface {
	// PageSize reports the granularity of Extend and Mmap requests.
	PageSize() int64

	// Break reports the current end of the contiguous region; before
	// the first Extend this is the region's start.
	Break() uintptr

	// Contiguous reports whether the region returned by Extend is
	// known to be contiguous with everything extended before it. Once
	// false, it never becomes true again.
	Contiguous() bool

	// Extend grows the contiguous region by delta bytes (delta must
	// be a positive multiple of PageSize) and returns the address of
	// the region's previous end. It fails, and marks the source
	// non-contiguous, if the underlying reservation is exhausted or
	// the platform cannot guarantee contiguity.
	Extend(delta int64) (uintptr, error)

	// Shrink releases the trailing extra bytes of the contiguous
	// region, moving Break back by extra (a positive multiple of
	// PageSize). It reports the new break.
	Shrink(extra int64) (uintptr, error)

	// Mmap obtains an independent anonymous mapping of at least size
	// bytes, rounded up to PageSize, and returns its base address.
	Mmap(size int64) (uintptr, error)

	// Munmap releases a mapping previously returned by Mmap.
	Munmap(base uintptr, size int64) error
}
