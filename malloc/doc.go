// Package malloc implements a boundary-tagged, segregated-fit memory
// allocator in the dlmalloc tradition: a binmap-guided set of fast
// bins, small bins and large bins, an unsorted queue that gives every
// freed or split-off chunk one chance at reuse before it gets binned,
// and a top chunk that absorbs the unindexed remainder of whatever
// memory the allocator last obtained from the system.
//
// A State is not thread safe: shared across goroutines it needs a
// single external lock, since coalescing a freed chunk can touch the
// fast bins, the unsorted queue and an arbitrary regular bin in one
// call. Malloc is that wrapper: it holds one mutex around every entry
// point.
package malloc
