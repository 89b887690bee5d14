package monitor

import "sync"

// The process-wide default monitor, created exactly once on first use.
var (
	globalOnce    sync.Once
	globalMonitor *Monitor
)

// Global returns the process-wide default Monitor, lazily constructing
// it with monitoring enabled on first call. Every subsequent call
// returns the same instance.
func Global() *Monitor {
	globalOnce.Do(func() {
		globalMonitor = New(Config{Enabled: true})
	})
	return globalMonitor
}

// Configure reconfigures the global monitor in place: it flips the
// enabled flag and creates (or replaces) one cache per entry in caches.
// Long-lived references to the global monitor stay valid because the
// instance itself is never swapped out.
func Configure(enabled bool, caches map[string]CacheConfig) *Monitor {
	m := Global()
	m.SetEnabled(enabled)
	for name, cc := range caches {
		m.CreateCache(name, cc)
	}
	return m
}
