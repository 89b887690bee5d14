package cache

import "errors"

// Sentinel errors for cache operations.
var (
	// ErrUnknownStrategy indicates an unrecognized eviction strategy name.
	ErrUnknownStrategy = errors.New("cache: unknown eviction strategy")
)
