package settings

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/perfcache/cache"
	"github.com/jonwraymond/perfcache/monitor"
)

// loadOperation is the operation name settings loads are tracked under.
const loadOperation = "settings_load"

// Manager binds a monitor's standard caches to settings-specific
// helpers.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Caches are resolved by name on every call, so a reconfigured
//   monitor never leaves the manager holding stale cache references.
type Manager struct {
	monitor *monitor.Monitor
	group   singleflight.Group

	loadHits   atomic.Int64
	loadMisses atomic.Int64
}

// NewManager creates a Manager over the given monitor. A nil monitor
// selects the process-wide default.
func NewManager(m *monitor.Monitor) *Manager {
	if m == nil {
		m = monitor.Global()
	}
	return &Manager{monitor: m}
}

// Monitor returns the underlying monitor.
func (mgr *Manager) Monitor() *monitor.Monitor {
	return mgr.monitor
}

func (mgr *Manager) cacheFor(name string) *cache.Cache[any] {
	c, ok := mgr.monitor.GetCache(name)
	if !ok {
		return nil
	}
	return c
}

// CacheSettings stores a settings value under the cache's default TTL.
func (mgr *Manager) CacheSettings(key string, value any) {
	if c := mgr.cacheFor(monitor.SettingsCacheName); c != nil {
		c.Put(key, value)
	}
}

// CacheSettingsWithTTL stores a settings value with an explicit TTL.
func (mgr *Manager) CacheSettingsWithTTL(key string, value any, ttl time.Duration) {
	if c := mgr.cacheFor(monitor.SettingsCacheName); c != nil {
		c.PutWithTTL(key, value, ttl)
	}
}

// GetCachedSettings retrieves a cached settings value.
func (mgr *Manager) GetCachedSettings(key string) (any, bool) {
	c := mgr.cacheFor(monitor.SettingsCacheName)
	if c == nil {
		return nil, false
	}
	return c.Get(key)
}

// CacheValidation stores a validation result under the cache's default TTL.
func (mgr *Manager) CacheValidation(key string, value any) {
	if c := mgr.cacheFor(monitor.ValidationCacheName); c != nil {
		c.Put(key, value)
	}
}

// CacheValidationWithTTL stores a validation result with an explicit TTL.
func (mgr *Manager) CacheValidationWithTTL(key string, value any, ttl time.Duration) {
	if c := mgr.cacheFor(monitor.ValidationCacheName); c != nil {
		c.PutWithTTL(key, value, ttl)
	}
}

// GetCachedValidation retrieves a cached validation result.
func (mgr *Manager) GetCachedValidation(key string) (any, bool) {
	c := mgr.cacheFor(monitor.ValidationCacheName)
	if c == nil {
		return nil, false
	}
	return c.Get(key)
}

// CacheSchema stores a schema under the cache's default TTL.
func (mgr *Manager) CacheSchema(key string, value any) {
	if c := mgr.cacheFor(monitor.SchemaCacheName); c != nil {
		c.Put(key, value)
	}
}

// CacheSchemaWithTTL stores a schema with an explicit TTL.
func (mgr *Manager) CacheSchemaWithTTL(key string, value any, ttl time.Duration) {
	if c := mgr.cacheFor(monitor.SchemaCacheName); c != nil {
		c.PutWithTTL(key, value, ttl)
	}
}

// GetCachedSchema retrieves a cached schema.
func (mgr *Manager) GetCachedSchema(key string) (any, bool) {
	c := mgr.cacheFor(monitor.SchemaCacheName)
	if c == nil {
		return nil, false
	}
	return c.Get(key)
}

// InvalidateSettings removes one settings entry and reports whether it
// was present.
func (mgr *Manager) InvalidateSettings(key string) bool {
	c := mgr.cacheFor(monitor.SettingsCacheName)
	if c == nil {
		return false
	}
	return c.Invalidate(key)
}

// ClearSettings empties the settings cache.
func (mgr *Manager) ClearSettings() {
	if c := mgr.cacheFor(monitor.SettingsCacheName); c != nil {
		c.Clear()
	}
}

// ClearValidation empties the validation cache.
func (mgr *Manager) ClearValidation() {
	if c := mgr.cacheFor(monitor.ValidationCacheName); c != nil {
		c.Clear()
	}
}

// LoadSettings returns the cached value for key, or runs loader to
// produce, cache, and return it. Concurrent loads for the same key are
// deduplicated: only one loader runs and every caller receives its
// result. Loader errors are returned unchanged and never cached. A nil
// loader returns ErrNilLoader.
func (mgr *Manager) LoadSettings(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, ErrNilLoader
	}
	start := time.Now()

	if v, ok := mgr.GetCachedSettings(key); ok {
		mgr.loadHits.Add(1)
		mgr.trackLoad(start)
		return v, nil
	}

	v, err, _ := mgr.group.Do(key, func() (any, error) {
		// A concurrent loader may have populated the cache while this
		// call waited on the flight group.
		if v, ok := mgr.GetCachedSettings(key); ok {
			return v, nil
		}
		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		mgr.CacheSettings(key, v)
		return v, nil
	})
	if err != nil {
		mgr.monitor.TrackOperation(loadOperation, time.Since(start), map[string]any{"error": err.Error()})
		return nil, err
	}

	mgr.loadMisses.Add(1)
	mgr.trackLoad(start)
	return v, nil
}

func (mgr *Manager) trackLoad(start time.Time) {
	mgr.monitor.TrackOperation(loadOperation, time.Since(start), map[string]any{
		"cache_hits":   mgr.loadHits.Load(),
		"cache_misses": mgr.loadMisses.Load(),
	})
}
