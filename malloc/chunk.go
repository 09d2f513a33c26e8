package malloc

import (
	"unsafe"

	"github.com/bnclabs/gomalloc/api"
)

// chunkptr addresses the prev_size word of a chunk header. Every
// chunk, free or in use, starts with two header words:
//
//	+0  prev_size   valid only when the physical predecessor is free
//	+8  size        chunk size, PREV_INUSE and IS_MMAPPED in the low bits
//	+16 payload...  fd/bk overlay the first two payload words when free
//
// A chunk's size always includes its own header, so the distance from
// one chunk's base to the next chunk's base equals chunk.size().
type chunkptr uintptr

const (
	wordsize  = 8 // must track api.Wordsize
	alignMask = 2*wordsize - 1

	flagPrevInuse = uint64(1)
	flagMmapped   = uint64(2)
	flagBits      = flagPrevInuse | flagMmapped

	chunkHeaderSize = 2 * wordsize // prev_size + size
	minChunkSize    = 4 * wordsize // header + fd + bk
)

func init() {
	if wordsize != int(api.Wordsize) {
		panic("malloc: wordsize constant out of sync with api.Wordsize")
	}
	if minChunkSize != int(api.MinChunk) {
		panic("malloc: minChunkSize constant out of sync with api.MinChunk")
	}
}

func readWord(addr uintptr) uint64 {
	return *(*uint64)(unsafe.Pointer(addr))
}

func writeWord(addr uintptr, v uint64) {
	*(*uint64)(unsafe.Pointer(addr)) = v
}

// mem2chunk recovers a chunk's base from the payload pointer handed
// to callers.
func mem2chunk(mem uintptr) chunkptr {
	return chunkptr(mem - chunkHeaderSize)
}

// chunk2mem returns the payload pointer a caller sees for c.
func (c chunkptr) chunk2mem() uintptr {
	return uintptr(c) + chunkHeaderSize
}

func (c chunkptr) addr() uintptr { return uintptr(c) }

func (c chunkptr) plus(off int64) chunkptr { return chunkptr(uintptr(c) + uintptr(off)) }

func (c chunkptr) head() uint64        { return readWord(uintptr(c) + wordsize) }
func (c chunkptr) setHeadRaw(v uint64) { writeWord(uintptr(c)+wordsize, v) }

// size is the chunk's usable span in bytes, header included, with the
// flag bits masked off.
func (c chunkptr) size() int64 { return int64(c.head() &^ flagBits) }

// setHeadSize rewrites the size field, preserving the prev-inuse bit
// and clearing the mmapped bit (used only for heap-resident chunks).
func (c chunkptr) setHeadSize(sz int64) {
	c.setHeadRaw((c.head() & flagPrevInuse) | uint64(sz))
}

func (c chunkptr) prevSize() int64    { return int64(readWord(uintptr(c))) }
func (c chunkptr) setPrevSize(v int64) { writeWord(uintptr(c), uint64(v)) }

// setFoot writes size into the prev_size slot of the chunk that
// follows c, which is how a free chunk's footer is actually stored.
func (c chunkptr) setFoot(size int64) {
	c.plus(size).setPrevSize(size)
}

// prevInuse reports whether c's physical predecessor is currently
// allocated, per the bit c itself carries.
func (c chunkptr) prevInuse() bool { return c.head()&flagPrevInuse != 0 }

func (c chunkptr) setPrevInuseBit()   { c.setHeadRaw(c.head() | flagPrevInuse) }
func (c chunkptr) clearPrevInuseBit() { c.setHeadRaw(c.head() &^ flagPrevInuse) }

func (c chunkptr) isMmapped() bool { return c.head()&flagMmapped != 0 }
func (c chunkptr) setMmappedBit()  { c.setHeadRaw(c.head() | flagMmapped) }

// nextChunk returns c's physical successor.
func (c chunkptr) nextChunk() chunkptr { return c.plus(c.size()) }

// prevChunk returns c's physical predecessor. Only valid when
// c.prevInuse() is false.
func (c chunkptr) prevChunk() chunkptr { return c.plus(-c.prevSize()) }

// inuse reports whether c itself is allocated, read from the
// prev-inuse bit stored in its successor.
func (c chunkptr) inuse() bool { return c.nextChunk().prevInuse() }

func (c chunkptr) setInuse()   { c.nextChunk().setPrevInuseBit() }
func (c chunkptr) clearInuse() { c.nextChunk().clearPrevInuseBit() }

// fd/bk overlay the first two payload words of a free chunk; they are
// only meaningful while c sits on some bin.
func (c chunkptr) fd() chunkptr      { return chunkptr(readWord(uintptr(c) + 2*wordsize)) }
func (c chunkptr) setFd(v chunkptr)  { writeWord(uintptr(c)+2*wordsize, uint64(v)) }
func (c chunkptr) bk() chunkptr      { return chunkptr(readWord(uintptr(c) + 3*wordsize)) }
func (c chunkptr) setBk(v chunkptr)  { writeWord(uintptr(c)+3*wordsize, uint64(v)) }

func alignUp(n, unit int64) int64 {
	if r := n % unit; r != 0 {
		return n + (unit - r)
	}
	return n
}

// maxRequest is the largest user request that request2size can turn
// into a chunk size without overflowing.
const maxRequest = (int64(1)<<62 - 1) - chunkHeaderSize - alignMask

// request2size converts a caller's byte request into the chunk size
// that will hold it, honoring the minimum chunk size and 2*wordsize
// alignment. ok is false when req is negative or too large to
// represent.
func request2size(req int64) (sz int64, ok bool) {
	if req < 0 || req > maxRequest {
		return 0, false
	}
	sz = alignUp(req+wordsize, 2*wordsize)
	if sz < minChunkSize {
		sz = minChunkSize
	}
	return sz, true
}

// chunksizeFor is the inverse of request2size's rounding: the usable
// payload a caller gets back from a chunk of the given size.
func chunksizeFor(chunkSize int64) int64 {
	return chunkSize - wordsize
}
