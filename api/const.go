package api

// Wordsize is the machine word used for in-band chunk metadata. Every
// chunk size is a multiple of 2*Wordsize.
const Wordsize = int64(8)

// MinChunk is the smallest chunk a Mallocer will ever hand out or
// place on a free-list.
const MinChunk = 4 * Wordsize

// DefaultMaxFast is the default upper bound, in bytes, for a request to
// be eligible for the fast bins.
const DefaultMaxFast = int64(80)

// MaxFastCeiling is the compile-time ceiling accepted by
// Tune(TuneMaxFast, ...).
const MaxFastCeiling = int64(80)

// DefaultTrimThreshold is the default top-chunk size, in bytes, above
// which a Free opportunistically calls Trim.
const DefaultTrimThreshold = int64(256 * 1024)

// DefaultTopPad is the default amount of slack requested on top of a
// user request when the heap is extended.
const DefaultTopPad = int64(0)

// DefaultMmapThreshold is the default size, in bytes, above which a
// request is satisfied by an independent anonymous mapping instead of
// carving from the heap.
const DefaultMmapThreshold = int64(256 * 1024)

// DefaultMmapMax bounds how many concurrent direct mappings the
// allocator will hold open by default.
const DefaultMmapMax = int64(65536)

// FastbinConsolidationDivisor derives the fastbin consolidation
// threshold from the trim threshold: trimThreshold/divisor.
const FastbinConsolidationDivisor = int64(2)

// TuneParam identifies a tunable accepted by Mallocer.Tune.
type TuneParam int

// Recognized tunables.
const (
	TuneMaxFast TuneParam = iota + 1
	TuneTrimThreshold
	TuneTopPad
	TuneMmapThreshold
	TuneMmapMax
)

// Stats is a point-in-time snapshot of allocator bookkeeping returned
// by Mallocer.Stats.
type Stats struct {
	FastbinCount int64 // chunks parked in fast bins
	FastbinBytes int64 // bytes parked in fast bins
	OrdblksCount int64 // free chunks outside fast bins, including top
	OrdblksBytes int64 // bytes free outside fast bins, including top
	Inuse        int64 // bytes currently handed to callers
	Sbrked       int64 // bytes obtained by contiguous heap extension
	Mmapped      int64 // bytes obtained through direct mappings
	NMmaps       int64 // live direct mappings
	Topsize      int64 // bytes available in the top chunk
	MaxTotal     int64 // lifetime high-water mark of sbrked+mmapped
}
