package sysmem

import "github.com/cloudfoundry/gosigar"

// defaultPageSize backs platform heap implementations that cannot ask
// the OS for its real page size.
const defaultPageSize = int64(4096)

// defaultReserve is the cap defaultReserveFromSysmem will not go
// above when sizing the address-space reservation backing a heap's
// contiguous region. The reservation itself costs no physical memory on platforms
// where it is a real mmap reservation; pages are committed on demand
// by Extend.
const defaultReserve = int64(64) * 1024 * 1024 * 1024

// minReserve is the floor defaultReserveFromSysmem will not go below,
// so a host reporting very little free memory still gets enough
// address space to serve more than a handful of Extend calls.
const minReserve = int64(256) * 1024 * 1024

// SystemMemory reports total, used and free physical memory, used to
// pick a sane default reservation size when the caller does not
// supply one explicitly.
func SystemMemory() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}

// defaultReserveFromSysmem sizes an unset NewUnixHeap reservation off
// a quarter of currently free physical memory, the same fraction the
// teacher's bogn/llrb configs hand to their own capacity defaults,
// floored and capped so a machine with little or no free memory still
// gets a workable reservation and a very large one doesn't reserve an
// unreasonable chunk of address space up front.
func defaultReserveFromSysmem() int64 {
	_, _, free := SystemMemory()
	reserve := int64(free / 4)
	if reserve < minReserve {
		reserve = minReserve
	}
	if reserve > defaultReserve {
		reserve = defaultReserve
	}
	return reserve
}
