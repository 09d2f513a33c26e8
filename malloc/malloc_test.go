package malloc

import (
	"testing"
	"unsafe"

	"github.com/bnclabs/gomalloc/lib"
	"github.com/bnclabs/gomalloc/sysmem"
)

// newTestMalloc builds a Malloc over a fresh reserved heap, defaults
// untouched, for use across this package's tests.
func newTestMalloc(t *testing.T) *Malloc {
	t.Helper()
	source, err := sysmem.NewUnixHeap(64 * 1024 * 1024)
	if err != nil {
		t.Fatalf("reserve heap: %v", err)
	}
	return NewMalloc(lib.Settings{}, source)
}

func fillBytes(ptr unsafe.Pointer, n int64, b byte) {
	for i := int64(0); i < n; i++ {
		*(*byte)(unsafe.Pointer(uintptr(ptr) + uintptr(i))) = b
	}
}

func checkBytes(t *testing.T, ptr unsafe.Pointer, n int64, want byte) {
	t.Helper()
	for i := int64(0); i < n; i++ {
		if got := *(*byte)(unsafe.Pointer(uintptr(ptr) + uintptr(i))); got != want {
			t.Fatalf("byte %v: expected %v, got %v", i, want, got)
		}
	}
}
