package cache

import (
	"sync"
	"time"
)

const (
	// DefaultMaxSize is the entry-count bound used when Config.MaxSize
	// is zero or negative.
	DefaultMaxSize = 1000

	// accessRingCap bounds the ring of recent hit timestamps.
	accessRingCap = 1000

	// patternWindow bounds how long per-key access history is retained
	// for the adaptive strategy.
	patternWindow = time.Hour
)

// Config configures a Cache.
type Config[V any] struct {
	// Name identifies the cache in metrics.
	Name string

	// MaxSize is the maximum number of entries. Zero or negative
	// selects DefaultMaxSize. This is an entry-count bound, not a
	// byte bound.
	MaxSize int

	// Strategy selects the eviction policy. Zero value is StrategyLRU.
	Strategy Strategy

	// DefaultTTL is applied by Put. Zero means entries never expire.
	DefaultTTL time.Duration

	// Estimator, if set, computes the approximate size in bytes of a
	// value at insertion time. If nil, EstimateSize is used.
	Estimator func(V) int64
}

type entry[V any] struct {
	value        V
	createdAt    time.Time
	lastAccessed time.Time
	accessCount  int64
	ttl          time.Duration // 0 = never expires
	sizeBytes    int64
}

func (e *entry[V]) expired(now time.Time) bool {
	return e.ttl > 0 && now.Sub(e.createdAt) > e.ttl
}

// Cache is a bounded key/value store with strategy-driven eviction.
//
// Contract:
// - Concurrency: safe for concurrent use; one mutex serializes mutation.
// - Expiry: TTLs are enforced lazily at read time; there is no sweeper.
// - Errors: Get never errors; it returns (zero, false) on miss.
type Cache[V any] struct {
	mu sync.Mutex

	name       string
	maxSize    int
	strategy   Strategy
	defaultTTL time.Duration
	estimator  func(V) int64

	entries       map[string]*entry[V]
	hitCount      int64
	missCount     int64
	evictionCount int64

	// accessTimes holds the wall-clock timestamps of recent hits,
	// oldest first, capped at accessRingCap.
	accessTimes []time.Time

	// Adaptive-only bookkeeping. Both maps stay nil for the other
	// strategies so the hot path pays nothing for them.
	accessPatterns  map[string][]time.Time
	frequencyScores map[string]float64
}

// New creates a cache with the given configuration.
func New[V any](cfg Config[V]) *Cache[V] {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}

	c := &Cache[V]{
		name:       cfg.Name,
		maxSize:    cfg.MaxSize,
		strategy:   cfg.Strategy,
		defaultTTL: cfg.DefaultTTL,
		estimator:  cfg.Estimator,
		entries:    make(map[string]*entry[V]),
	}

	if cfg.Strategy == StrategyAdaptive {
		c.accessPatterns = make(map[string][]time.Time)
		c.frequencyScores = make(map[string]float64)
	}

	return c
}

// Name returns the cache name.
func (c *Cache[V]) Name() string {
	return c.name
}

// MaxSize returns the entry-count bound.
func (c *Cache[V]) MaxSize() int {
	return c.maxSize
}

// Strategy returns the active eviction strategy.
func (c *Cache[V]) Strategy() Strategy {
	return c.strategy
}

// Put inserts or overwrites an entry using the cache's default TTL.
func (c *Cache[V]) Put(key string, value V) {
	c.put(key, value, c.defaultTTL)
}

// PutWithTTL inserts or overwrites an entry with an explicit TTL,
// overriding the default. A TTL of zero or less means the entry never
// expires.
func (c *Cache[V]) PutWithTTL(key string, value V, ttl time.Duration) {
	c.put(key, value, ttl)
}

func (c *Cache[V]) put(key string, value V, ttl time.Duration) {
	size := c.estimate(value)
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Overwriting an existing key never evicts.
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictLocked(now)
		c.evictionCount++
	}

	c.entries[key] = &entry[V]{
		value:        value,
		createdAt:    now,
		lastAccessed: now,
		ttl:          ttl,
		sizeBytes:    size,
	}
}

// Get retrieves a value. Expired entries are removed and counted as
// misses. A hit updates the entry's access bookkeeping.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.missCount++
		return zero, false
	}

	if e.expired(now) {
		c.removeLocked(key)
		c.missCount++
		return zero, false
	}

	c.hitCount++
	e.accessCount++
	e.lastAccessed = now

	c.accessTimes = append(c.accessTimes, now)
	if len(c.accessTimes) > accessRingCap {
		c.accessTimes = c.accessTimes[1:]
	}

	if c.strategy == StrategyAdaptive {
		c.recordPatternLocked(key, now)
	}

	return e.value, true
}

// Invalidate removes an entry if present. It reports whether the entry
// existed and does not touch the hit/miss counters.
func (c *Cache[V]) Invalidate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	c.removeLocked(key)
	return true
}

// Clear empties the store and zeroes all counters and access history.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry[V])
	c.hitCount = 0
	c.missCount = 0
	c.evictionCount = 0
	c.accessTimes = nil

	if c.strategy == StrategyAdaptive {
		c.accessPatterns = make(map[string][]time.Time)
		c.frequencyScores = make(map[string]float64)
	}
}

// Len returns the current number of entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[V]) estimate(value V) int64 {
	if c.estimator != nil {
		return c.estimator(value)
	}
	return EstimateSize(value)
}

// removeLocked deletes an entry and its adaptive bookkeeping.
func (c *Cache[V]) removeLocked(key string) {
	delete(c.entries, key)
	if c.strategy == StrategyAdaptive {
		delete(c.accessPatterns, key)
		delete(c.frequencyScores, key)
	}
}

// recordPatternLocked appends a hit to the key's access history, prunes
// history beyond the pattern window, and recomputes the key's
// recency-weighted frequency score (hits per second over the window).
func (c *Cache[V]) recordPatternLocked(key string, now time.Time) {
	times := append(c.accessPatterns[key], now)

	cutoff := now.Add(-patternWindow)
	for len(times) > 0 && times[0].Before(cutoff) {
		times = times[1:]
	}

	c.accessPatterns[key] = times
	c.frequencyScores[key] = float64(len(times)) / patternWindow.Seconds()
}
