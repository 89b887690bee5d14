package settings

import (
	"strings"
	"time"

	"github.com/jonwraymond/perfcache/cache"
	"github.com/jonwraymond/perfcache/monitor"
)

// Operation names containing any of these fragments are considered
// settings-related and included in the report.
var reportNameFragments = []string{"settings", "config", "schema"}

// Report is a consolidated performance view over the settings,
// validation, and schema caches and their related operations.
type Report struct {
	PerformanceMetrics map[string]monitor.OperationMetrics `json:"performance_metrics"`
	CacheMetrics       map[string]cache.Metrics            `json:"cache_metrics"`
	Suggestions        []monitor.Suggestion                `json:"optimization_suggestions"`
	MemoryUsageMB      float64                             `json:"memory_usage_mb"`
	Runtime            monitor.MemorySnapshot              `json:"runtime"`
	GeneratedAt        time.Time                           `json:"generated_at"`
	MonitoringEnabled  bool                                `json:"monitoring_enabled"`
}

// Report generates a settings performance report. Operation metrics are
// filtered to names containing "settings", "config", or "schema"
// (case-insensitive); cache metrics always cover the three standard
// caches.
func (mgr *Manager) Report() *Report {
	perf := mgr.monitor.PerformanceMetrics()
	filtered := make(map[string]monitor.OperationMetrics)
	for name, om := range perf {
		if settingsRelated(name) {
			filtered[name] = om
		}
	}

	standard := []string{
		monitor.SettingsCacheName,
		monitor.ValidationCacheName,
		monitor.SchemaCacheName,
	}
	cacheMetrics := make(map[string]cache.Metrics, len(standard))
	for _, name := range standard {
		if c, ok := mgr.monitor.GetCache(name); ok {
			cacheMetrics[name] = c.Metrics()
		}
	}

	return &Report{
		PerformanceMetrics: filtered,
		CacheMetrics:       cacheMetrics,
		Suggestions:        mgr.monitor.SuggestOptimizations(),
		MemoryUsageMB:      mgr.monitor.EstimatedMemoryMB(),
		Runtime:            monitor.ReadMemorySnapshot(),
		GeneratedAt:        time.Now().UTC(),
		MonitoringEnabled:  mgr.monitor.Enabled(),
	}
}

func settingsRelated(operation string) bool {
	lower := strings.ToLower(operation)
	for _, frag := range reportNameFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}
