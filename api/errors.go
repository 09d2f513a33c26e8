package api

import "errors"

// ErrOutOfMemory is returned when a request cannot be satisfied by
// growing the heap, mapping a fresh region, or any bin.
var ErrOutOfMemory = errors.New("malloc.outofmemory")

// ErrInvalidSize names a requested size or alignment outside the
// representable range. Package malloc does not record it: negative and
// oversized requests are reported there as ErrOutOfMemory.
var ErrInvalidSize = errors.New("malloc.invalidsize")

// ErrReleased is returned by operations attempted on a Mallocer whose
// Release method has already run.
var ErrReleased = errors.New("malloc.released")
