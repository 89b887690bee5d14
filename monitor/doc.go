// Package monitor provides in-process performance monitoring over a set
// of named caches and instrumented operations.
//
// A Monitor owns named cache instances, records per-operation timing
// series with EWMA degradation baselines, derives optimization
// suggestions from observed metrics, and optionally exports counters
// and histograms through OpenTelemetry.
package monitor
