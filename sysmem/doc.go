// Package sysmem is the allocator's system-memory interface: the
// contiguous-extension and anonymous-mapping primitives that malloc's
// sysmalloc/systrim call into. It is a trait, not a hard-coded
// syscall, so tests can supply a fake Source over a plain byte slice.
package sysmem
