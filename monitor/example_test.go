package monitor_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/perfcache/cache"
	"github.com/jonwraymond/perfcache/monitor"
)

func ExampleNew() {
	m := monitor.New(monitor.Config{Enabled: true, Logger: monitor.NopLogger()})

	m.TrackOperation("config_load", 25*time.Millisecond, nil)
	m.TrackOperation("config_load", 35*time.Millisecond, nil)

	om := m.PerformanceMetrics()["config_load"]
	fmt.Printf("calls=%d avg=%v\n", om.TotalCalls, om.AverageDuration)
	// Output: calls=2 avg=30ms
}

func ExampleMonitor_CreateCache() {
	m := monitor.New(monitor.Config{Enabled: true, Logger: monitor.NopLogger()})

	c := m.CreateCache("sessions", monitor.CacheConfig{
		MaxSize:  500,
		Strategy: cache.StrategyAdaptive,
		TTL:      10 * time.Minute,
	})

	c.Put("user-1", "state")
	if _, ok := c.Get("user-1"); ok {
		fmt.Println("cached")
	}
	// Output: cached
}

func ExampleInstrument() {
	m := monitor.New(monitor.Config{Enabled: true, Logger: monitor.NopLogger()})

	load := monitor.Instrument("load_profile", m, func(ctx context.Context) (string, error) {
		return "profile", nil
	})

	result, err := load(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	om := m.PerformanceMetrics()["load_profile"]
	fmt.Printf("%s calls=%d\n", result, om.TotalCalls)
	// Output: profile calls=1
}

func ExampleMonitor_EndTiming() {
	m := monitor.New(monitor.Config{Enabled: true, Logger: monitor.NopLogger()})

	m.StartTiming("req-42")
	// ... the timed work happens here ...
	if _, ok := m.EndTiming("req-42", "request", nil); ok {
		fmt.Println("recorded")
	}
	// Output: recorded
}
