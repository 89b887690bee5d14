package settings

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jonwraymond/perfcache/monitor"
)

func TestReport_FiltersToSettingsOperations(t *testing.T) {
	mgr := newTestManager()
	m := mgr.Monitor()

	m.TrackOperation("settings_load", 10*time.Millisecond, nil)
	m.TrackOperation("config_parse", 5*time.Millisecond, nil)
	m.TrackOperation("SCHEMA_validate", 5*time.Millisecond, nil)
	m.TrackOperation("image_render", 50*time.Millisecond, nil)

	report := mgr.Report()

	for _, name := range []string{"settings_load", "config_parse", "SCHEMA_validate"} {
		if _, ok := report.PerformanceMetrics[name]; !ok {
			t.Errorf("report missing settings-related operation %q", name)
		}
	}
	if _, ok := report.PerformanceMetrics["image_render"]; ok {
		t.Error("unrelated operation should be filtered out of the report")
	}
}

func TestReport_CoversStandardCaches(t *testing.T) {
	mgr := newTestManager()
	mgr.CacheSettings("a", 1)
	mgr.CacheValidation("b", 2)
	mgr.CacheSchema("c", 3)

	report := mgr.Report()

	for _, name := range []string{
		monitor.SettingsCacheName,
		monitor.ValidationCacheName,
		monitor.SchemaCacheName,
	} {
		cm, ok := report.CacheMetrics[name]
		if !ok {
			t.Errorf("report missing cache metrics for %q", name)
			continue
		}
		if cm.EntryCount != 1 {
			t.Errorf("%s entry count = %d, want 1", name, cm.EntryCount)
		}
	}
}

func TestReport_Fields(t *testing.T) {
	mgr := newTestManager()
	before := time.Now().UTC()

	report := mgr.Report()

	if !report.MonitoringEnabled {
		t.Error("report should reflect the monitor's enabled state")
	}
	if report.GeneratedAt.Before(before) {
		t.Errorf("generated_at %v predates the call", report.GeneratedAt)
	}
	if report.MemoryUsageMB < 0 {
		t.Errorf("memory usage = %f, want >= 0", report.MemoryUsageMB)
	}
	if report.Runtime.Goroutines <= 0 {
		t.Error("runtime snapshot should report live goroutines")
	}
	if len(report.Suggestions) != 0 {
		t.Errorf("idle monitor should yield no suggestions, got %d", len(report.Suggestions))
	}
}

func TestReport_DisabledMonitor(t *testing.T) {
	mgr := NewManager(monitor.New(monitor.Config{Enabled: false, Logger: monitor.NopLogger()}))

	report := mgr.Report()

	if report.MonitoringEnabled {
		t.Error("report should mark monitoring as disabled")
	}
	if len(report.PerformanceMetrics) != 0 {
		t.Errorf("disabled monitor should yield no operation metrics, got %d", len(report.PerformanceMetrics))
	}
	// Cache metrics are structural and remain available.
	if len(report.CacheMetrics) != 3 {
		t.Errorf("expected metrics for the 3 standard caches, got %d", len(report.CacheMetrics))
	}
}

func TestReport_SerializesToJSON(t *testing.T) {
	mgr := newTestManager()
	mgr.CacheSettings("a", 1)
	mgr.Monitor().TrackOperation("settings_load", 10*time.Millisecond, nil)
	mgr.LoadSettings(context.Background(), "k", func(ctx context.Context) (any, error) {
		return "v", nil
	})

	data, err := json.Marshal(mgr.Report())
	if err != nil {
		t.Fatalf("report failed to marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report JSON round-trip failed: %v", err)
	}
	for _, key := range []string{
		"performance_metrics", "cache_metrics", "optimization_suggestions",
		"memory_usage_mb", "runtime", "generated_at", "monitoring_enabled",
	} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("report JSON missing key %q", key)
		}
	}
}
