package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc  uint64 // bytes in use by the heap
	TotalAlloc uint64 // cumulative bytes allocated
	Mallocs    uint64 // cumulative heap objects allocated
	NumGC      uint32 // completed GC cycles
}

// MemoryDelta is the difference between two snapshots taken around a
// workload such as a sweep.
type MemoryDelta struct {
	AllocBytes uint64
	Allocs     uint64
	GCCycles   uint32
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:  m.HeapAlloc,
		TotalAlloc: m.TotalAlloc,
		Mallocs:    m.Mallocs,
		NumGC:      m.NumGC,
	}
}

// Since returns the allocation activity between before and s.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		AllocBytes: s.TotalAlloc - before.TotalAlloc,
		Allocs:     s.Mallocs - before.Mallocs,
		GCCycles:   s.NumGC - before.NumGC,
	}
}

// PerOp divides the delta by ops, returning allocated bytes and objects per
// operation. It returns zeros when ops is not positive.
func (d MemoryDelta) PerOp(ops int) (bytes, allocs float64) {
	if ops <= 0 {
		return 0, 0
	}
	return float64(d.AllocBytes) / float64(ops), float64(d.Allocs) / float64(ops)
}
