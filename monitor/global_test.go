package monitor

import (
	"testing"

	"github.com/jonwraymond/perfcache/cache"
)

func TestGlobal_SameInstance(t *testing.T) {
	m1 := Global()
	m2 := Global()

	if m1 != m2 {
		t.Fatal("Global should always return the same instance")
	}
	if m1 == nil {
		t.Fatal("Global should never return nil")
	}
}

func TestConfigure_MutatesInPlace(t *testing.T) {
	before := Global()

	after := Configure(true, map[string]CacheConfig{
		"configured": {MaxSize: 25, Strategy: cache.StrategyLFU},
	})

	if after != before {
		t.Error("Configure must mutate the existing singleton, not replace it")
	}
	if !before.Enabled() {
		t.Error("Configure(true, ...) should enable monitoring")
	}

	c, ok := before.GetCache("configured")
	if !ok {
		t.Fatal("Configure should create the requested cache on the singleton")
	}
	if c.MaxSize() != 25 || c.Strategy() != cache.StrategyLFU {
		t.Errorf("configured cache has size=%d strategy=%v", c.MaxSize(), c.Strategy())
	}

	// Toggling off also happens in place.
	if got := Configure(false, nil); got != before {
		t.Error("Configure must keep returning the same instance")
	}
	if before.Enabled() {
		t.Error("Configure(false, nil) should disable monitoring")
	}

	// Restore for other tests touching the global.
	Configure(true, nil)
}
