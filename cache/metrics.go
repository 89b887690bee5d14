package cache

const bytesPerMB = 1024 * 1024

// Metrics is a point-in-time snapshot of a cache's counters.
type Metrics struct {
	CacheName     string  `json:"cache_name"`
	HitCount      int64   `json:"hit_count"`
	MissCount     int64   `json:"miss_count"`
	HitRatio      float64 `json:"hit_ratio"`
	EntryCount    int     `json:"entry_count"`
	EvictionCount int64   `json:"eviction_count"`
	MemoryUsageMB float64 `json:"memory_usage_mb"`
	TotalSize     int     `json:"total_size"`
	UsedSize      int     `json:"used_size"`

	// AverageAccessTime is the mean of the raw wall-clock timestamps
	// (unix seconds) of recent hits, not an inter-access interval.
	// Existing consumers depend on the literal value, so it is kept
	// as-is rather than being replaced with an interval.
	AverageAccessTime float64 `json:"average_access_time"`
}

// Metrics returns a snapshot of the cache's counters. It has no side
// effects: it neither expires entries nor touches hit/miss counts.
func (c *Cache[V]) Metrics() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := Metrics{
		CacheName:     c.name,
		HitCount:      c.hitCount,
		MissCount:     c.missCount,
		EntryCount:    len(c.entries),
		EvictionCount: c.evictionCount,
		TotalSize:     c.maxSize,
		UsedSize:      len(c.entries),
	}

	if total := c.hitCount + c.missCount; total > 0 {
		m.HitRatio = float64(c.hitCount) / float64(total)
	}

	var bytes int64
	for _, e := range c.entries {
		bytes += e.sizeBytes
	}
	m.MemoryUsageMB = float64(bytes) / bytesPerMB

	if len(c.accessTimes) > 0 {
		var sum float64
		for _, t := range c.accessTimes {
			sum += float64(t.UnixNano()) / 1e9
		}
		m.AverageAccessTime = sum / float64(len(c.accessTimes))
	}

	return m
}
