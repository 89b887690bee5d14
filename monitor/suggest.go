package monitor

import (
	"fmt"
	"sort"
	"time"

	"github.com/jonwraymond/perfcache/cache"
)

// Suggestion thresholds. These are part of the monitor's contract:
// downstream tooling keys off them, so they are constants rather than
// configuration.
const (
	// slowOperationThreshold marks an operation's average duration as
	// slow enough to warrant a high-severity suggestion.
	slowOperationThreshold = time.Second

	// lowHitRatioThreshold marks a cache hit ratio as poor.
	lowHitRatioThreshold = 0.5

	// minHitRatioSamples is the minimum number of recorded calls before
	// an operation's hit ratio is considered meaningful.
	minHitRatioSamples = 10

	// memoryBudgetMB is the aggregate estimated usage above which a
	// memory suggestion is emitted.
	memoryBudgetMB = 100.0

	// outlierFactor and outlierMinSamples control when a single slow
	// sample is flagged as an outlier worth investigating.
	outlierFactor     = 10.0
	outlierMinSamples = 50
)

// SuggestionType classifies an optimization suggestion.
type SuggestionType string

const (
	SuggestionPerformance SuggestionType = "performance"
	SuggestionCache       SuggestionType = "cache"
	SuggestionMemory      SuggestionType = "memory"
)

// Severity ranks how urgent a suggestion is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Suggestion is a heuristic optimization recommendation derived from
// observed operation and cache metrics.
type Suggestion struct {
	Type         SuggestionType `json:"type"`
	Severity     Severity       `json:"severity"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	GainEstimate float64        `json:"performance_gain_estimate"`
}

// SuggestOptimizations scans operation and cache metrics and returns
// suggestions for slow operations, poorly hitting caches, and excessive
// aggregate memory use. It returns nil when monitoring is disabled.
func (m *Monitor) SuggestOptimizations() []Suggestion {
	if !m.Enabled() {
		return nil
	}

	perf := m.PerformanceMetrics()

	names := make([]string, 0, len(perf))
	for name := range perf {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []Suggestion
	for _, name := range names {
		om := perf[name]

		if om.AverageDuration > slowOperationThreshold {
			out = append(out, Suggestion{
				Type:     SuggestionPerformance,
				Severity: SeverityHigh,
				Title:    fmt.Sprintf("Slow operation: %s", name),
				Description: fmt.Sprintf(
					"Operation %q averages %.2fs per call; consider caching or restructuring it.",
					name, om.AverageDuration.Seconds()),
				GainEstimate: 30,
			})
		}

		sampled := om.CacheHits+om.CacheMisses > 0
		if om.TotalCalls >= minHitRatioSamples && sampled && om.CacheHitRatio < lowHitRatioThreshold {
			out = append(out, Suggestion{
				Type:     SuggestionCache,
				Severity: SeverityMedium,
				Title:    fmt.Sprintf("Low cache hit ratio: %s", name),
				Description: fmt.Sprintf(
					"Operation %q hits its cache only %.0f%% of the time; review its key design or TTLs.",
					name, om.CacheHitRatio*100),
				GainEstimate: 20,
			})
		}
	}

	if total := m.estimatedMemoryMB(perf); total > memoryBudgetMB {
		out = append(out, Suggestion{
			Type:     SuggestionMemory,
			Severity: SeverityMedium,
			Title:    "High memory usage",
			Description: fmt.Sprintf(
				"Caches and operation series hold an estimated %.1f MB; consider smaller cache bounds or shorter TTLs.",
				total),
			GainEstimate: 15,
		})
	}

	return out
}

// estimatedMemoryMB sums the estimated memory held by all caches and
// operation series.
func (m *Monitor) estimatedMemoryMB(perf map[string]OperationMetrics) float64 {
	var total float64
	for _, cm := range m.CacheEffectiveness() {
		total += cm.MemoryUsageMB
	}
	for _, om := range perf {
		total += om.MemoryEstimateMB
	}
	return total
}

// EstimatedMemoryMB returns the aggregate estimated memory usage of all
// caches and tracked operation series, in megabytes.
func (m *Monitor) EstimatedMemoryMB() float64 {
	return m.estimatedMemoryMB(m.PerformanceMetrics())
}

// CacheTuning describes the current shape of a cache along with any
// suggested configuration changes.
type CacheTuning struct {
	CacheName         string   `json:"cache_name"`
	MaxSize           int      `json:"max_size"`
	Strategy          string   `json:"strategy"`
	HitRatio          float64  `json:"hit_ratio"`
	Utilization       float64  `json:"utilization"`
	SuggestedMaxSize  int      `json:"suggested_max_size,omitempty"`
	SuggestedStrategy string   `json:"suggested_strategy,omitempty"`
	Notes             []string `json:"notes,omitempty"`
}

// OptimizeCacheConfiguration inspects a cache's metrics and suggests
// configuration changes: a smaller bound when the cache is both
// underutilized and hitting poorly, and a switch to the adaptive
// strategy whenever the hit ratio is low. Unknown names return
// ErrCacheNotFound.
func (m *Monitor) OptimizeCacheConfiguration(name string) (*CacheTuning, error) {
	c, ok := m.GetCache(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCacheNotFound, name)
	}

	cm := c.Metrics()
	t := &CacheTuning{
		CacheName: name,
		MaxSize:   cm.TotalSize,
		Strategy:  c.Strategy().String(),
		HitRatio:  cm.HitRatio,
	}
	if cm.TotalSize > 0 {
		t.Utilization = float64(cm.UsedSize) / float64(cm.TotalSize)
	}

	sampled := cm.HitCount+cm.MissCount > 0
	if !sampled || cm.HitRatio >= lowHitRatioThreshold {
		return t, nil
	}

	if t.Utilization < 0.5 {
		suggested := cm.TotalSize / 2
		if suggested < 10 {
			suggested = 10
		}
		t.SuggestedMaxSize = suggested
		t.Notes = append(t.Notes, fmt.Sprintf(
			"cache holds %d of %d entries with a %.0f%% hit ratio; a smaller bound frees memory without hurting hits",
			cm.UsedSize, cm.TotalSize, cm.HitRatio*100))
	}

	t.SuggestedStrategy = cache.StrategyAdaptive.String()
	t.Notes = append(t.Notes, fmt.Sprintf(
		"hit ratio %.0f%% is below %.0f%%; the adaptive strategy may retain hotter entries",
		cm.HitRatio*100, lowHitRatioThreshold*100))

	return t, nil
}

// OptimizationOpportunities returns heuristic follow-ups for one
// operation's timing series: caching for slow means, async processing
// for very slow means, and an outlier investigation when one sample
// dwarfs a large series.
func (m *Monitor) OptimizationOpportunities(name string) []string {
	m.mu.Lock()
	st := m.ops[name]
	if st == nil || len(st.durations) == 0 {
		m.mu.Unlock()
		return nil
	}
	durations := make([]time.Duration, len(st.durations))
	copy(durations, st.durations)
	m.mu.Unlock()

	var total, max time.Duration
	for _, d := range durations {
		total += d
		if d > max {
			max = d
		}
	}
	mean := total / time.Duration(len(durations))

	var out []string
	if mean > 500*time.Millisecond {
		out = append(out, "Consider adding caching")
	}
	if mean > time.Second {
		out = append(out, "Consider async processing")
	}
	if len(durations) > outlierMinSamples && float64(max) > outlierFactor*float64(mean) {
		out = append(out, "Investigate performance outliers")
	}
	return out
}
