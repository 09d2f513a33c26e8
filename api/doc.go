// Package api defines the types and interfaces shared between the
// allocator core, its system-memory backends and its callers. A
// Mallocer implementation that does not lock internally must be
// serialized by the caller, typically with a single global lock.
package api
