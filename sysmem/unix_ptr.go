//go:build linux || darwin

package sysmem

import (
	"reflect"
	"unsafe"

	"golang.org/x/sys/unix"
)

// addrOf returns the base address of a byte slice's backing array.
func addrOf(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return (uintptr)(unsafe.Pointer(&b[0]))
}

// munmapAt unmaps a region given only its base address and length,
// reconstructing the slice header unix.Munmap expects.
func munmapAt(base uintptr, size int64) error {
	var b []byte
	sl := (*reflect.SliceHeader)(unsafe.Pointer(&b))
	sl.Data, sl.Len, sl.Cap = base, int(size), int(size)
	return unix.Munmap(b)
}
