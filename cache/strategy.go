package cache

import "strings"

// Strategy selects how a full cache picks the entry to evict.
type Strategy int

const (
	// StrategyLRU evicts the entry with the oldest last access.
	StrategyLRU Strategy = iota

	// StrategyLFU evicts the entry with the lowest access count,
	// breaking ties by oldest last access.
	StrategyLFU

	// StrategyTTL evicts the entry expiring soonest. Entries without a
	// TTL are considered last; if no entry has a TTL, the oldest entry
	// by creation time is evicted.
	StrategyTTL

	// StrategyAdaptive evicts the entry with the worst composite score,
	// a weighted blend of recency, access frequency, and age.
	StrategyAdaptive
)

func (s Strategy) String() string {
	switch s {
	case StrategyLRU:
		return "lru"
	case StrategyLFU:
		return "lfu"
	case StrategyTTL:
		return "ttl"
	case StrategyAdaptive:
		return "adaptive"
	default:
		return "unknown"
	}
}

// ParseStrategy parses a strategy name. Matching is case-insensitive.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lru":
		return StrategyLRU, nil
	case "lfu":
		return StrategyLFU, nil
	case "ttl":
		return StrategyTTL, nil
	case "adaptive":
		return StrategyAdaptive, nil
	default:
		return StrategyLRU, ErrUnknownStrategy
	}
}
