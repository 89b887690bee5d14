// Package cache provides a bounded in-memory cache with pluggable
// eviction strategies and built-in usage metrics.
//
// It provides a generic Cache type with LRU, LFU, TTL, and adaptive
// eviction, lazy TTL expiry, and a runtime size estimator for tracking
// approximate memory usage.
package cache
