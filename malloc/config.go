package malloc

import "github.com/bnclabs/gomalloc/api"
import "github.com/bnclabs/gomalloc/lib"

// Defaultsettings returns the allocator's tunables at their default
// values, following the defaults api.DefaultMaxFast et al document.
//
// "maxfast" (int64, default: api.DefaultMaxFast)
//		Upper size bound, in bytes, for a freed chunk to be parked in
//		a fast bin instead of coalesced immediately.
//
// "trimthreshold" (int64, default: api.DefaultTrimThreshold)
//		Top-chunk size, in bytes, above which a Free opportunistically
//		calls Trim.
//
// "toppad" (int64, default: api.DefaultTopPad)
//		Extra slack requested on top of a user request when the heap
//		is extended.
//
// "mmapthreshold" (int64, default: api.DefaultMmapThreshold)
//		Request size, in bytes, above which allocation is served by an
//		independent anonymous mapping.
//
// "mmapmax" (int64, default: api.DefaultMmapMax)
//		Maximum number of concurrent direct mappings.
func Defaultsettings() lib.Settings {
	return lib.Settings{
		"maxfast":       api.DefaultMaxFast,
		"trimthreshold": api.DefaultTrimThreshold,
		"toppad":        api.DefaultTopPad,
		"mmapthreshold": api.DefaultMmapThreshold,
		"mmapmax":       api.DefaultMmapMax,
	}
}

// tunable bounds, validated explicitly here since the source this
// allocator is modeled on leaves most of them unchecked (see the
// open question about tune's parameter ranges).
const (
	minTrimThreshold = int64(0)
	minTopPad        = int64(0)
	minMmapThreshold = int64(0)
	minMmapMax       = int64(0)
)

// tune validates and applies a single tunable, reporting whether the
// value was within bounds and accepted.
func (s *State) tune(param api.TuneParam, value int64) bool {
	switch param {
	case api.TuneMaxFast:
		if value < 0 || value > api.MaxFastCeiling {
			return false
		}
		s.maxFast = value
	case api.TuneTrimThreshold:
		if value < minTrimThreshold {
			return false
		}
		s.trimThreshold = value
	case api.TuneTopPad:
		if value < minTopPad {
			return false
		}
		s.topPad = value
	case api.TuneMmapThreshold:
		if value < minMmapThreshold {
			return false
		}
		s.mmapThreshold = value
	case api.TuneMmapMax:
		if value < minMmapMax {
			return false
		}
		s.mmapMax = value
	default:
		return false
	}
	return true
}
