package cache

import "time"

// Composite-score weights for the adaptive strategy. Frequency and age
// together outweigh recency, so a key is never kept on recency alone.
const (
	adaptiveRecencyWeight   = 0.4
	adaptiveFrequencyWeight = 0.4
	adaptiveAgeWeight       = 0.2
)

// evictLocked removes exactly one entry chosen by the active strategy.
// Callers must hold the mutex and have verified the cache is non-empty.
func (c *Cache[V]) evictLocked(now time.Time) {
	var victim string

	switch c.strategy {
	case StrategyLRU:
		victim = c.selectLRULocked()
	case StrategyLFU:
		victim = c.selectLFULocked()
	case StrategyTTL:
		victim = c.selectTTLLocked()
	case StrategyAdaptive:
		victim = c.selectAdaptiveLocked(now)
	default:
		victim = c.selectLRULocked()
	}

	if victim != "" {
		c.removeLocked(victim)
	}
}

// selectLRULocked picks the entry with the oldest last access.
func (c *Cache[V]) selectLRULocked() string {
	var victim string
	var oldest time.Time

	for key, e := range c.entries {
		if victim == "" || e.lastAccessed.Before(oldest) {
			victim = key
			oldest = e.lastAccessed
		}
	}
	return victim
}

// selectLFULocked picks the entry with the lowest access count,
// breaking ties by oldest last access.
func (c *Cache[V]) selectLFULocked() string {
	var victim string
	var minCount int64
	var oldest time.Time

	for key, e := range c.entries {
		switch {
		case victim == "":
			victim, minCount, oldest = key, e.accessCount, e.lastAccessed
		case e.accessCount < minCount:
			victim, minCount, oldest = key, e.accessCount, e.lastAccessed
		case e.accessCount == minCount && e.lastAccessed.Before(oldest):
			victim, oldest = key, e.lastAccessed
		}
	}
	return victim
}

// selectTTLLocked picks the entry expiring soonest. Entries without a
// TTL are treated as expiring last; when no entry carries a TTL the
// oldest entry by creation time is chosen.
func (c *Cache[V]) selectTTLLocked() string {
	var victim string
	var soonest time.Time

	for key, e := range c.entries {
		if e.ttl <= 0 {
			continue
		}
		expiry := e.createdAt.Add(e.ttl)
		if victim == "" || expiry.Before(soonest) {
			victim = key
			soonest = expiry
		}
	}
	if victim != "" {
		return victim
	}

	// No entry has a TTL: fall back to oldest creation time.
	var oldest time.Time
	for key, e := range c.entries {
		if victim == "" || e.createdAt.Before(oldest) {
			victim = key
			oldest = e.createdAt
		}
	}
	return victim
}

// selectAdaptiveLocked picks the entry with the lowest composite score.
// The score blends how recently the entry was accessed, how frequently
// it has been hit inside the pattern window, and how old it is. Between
// two equally cold entries the older one always scores lower.
func (c *Cache[V]) selectAdaptiveLocked(now time.Time) string {
	var victim string
	var minScore float64

	for key, e := range c.entries {
		score := c.compositeScoreLocked(key, e, now)
		if victim == "" || score < minScore {
			victim = key
			minScore = score
		}
	}
	return victim
}

// compositeScoreLocked returns the retention score for an entry.
// Higher is more worth keeping.
func (c *Cache[V]) compositeScoreLocked(key string, e *entry[V], now time.Time) float64 {
	idle := now.Sub(e.lastAccessed).Seconds()
	age := now.Sub(e.createdAt).Seconds()

	// Hits inside the pattern window, normalized to [0, 1).
	freq := c.frequencyScores[key] * patternWindow.Seconds()
	if freq == 0 {
		freq = float64(e.accessCount)
	}
	freqScore := freq / (1 + freq)

	recencyScore := 1 / (1 + idle)
	ageScore := 1 / (1 + age)

	return adaptiveRecencyWeight*recencyScore +
		adaptiveFrequencyWeight*freqScore +
		adaptiveAgeWeight*ageScore
}
