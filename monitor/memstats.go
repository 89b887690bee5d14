package monitor

import "runtime"

// MemorySnapshot captures process-level memory statistics for reports.
type MemorySnapshot struct {
	HeapAllocMB  float64 `json:"heap_alloc_mb"`
	HeapSysMB    float64 `json:"heap_sys_mb"`
	TotalAllocMB float64 `json:"total_alloc_mb"`
	NumGC        uint32  `json:"num_gc"`
	Goroutines   int     `json:"goroutines"`
}

// ReadMemorySnapshot reads the runtime's current memory statistics.
func ReadMemorySnapshot() MemorySnapshot {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	return MemorySnapshot{
		HeapAllocMB:  float64(stats.HeapAlloc) / bytesPerMB,
		HeapSysMB:    float64(stats.HeapSys) / bytesPerMB,
		TotalAllocMB: float64(stats.TotalAlloc) / bytesPerMB,
		NumGC:        stats.NumGC,
		Goroutines:   runtime.NumGoroutine(),
	}
}
