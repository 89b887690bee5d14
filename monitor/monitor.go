package monitor

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/perfcache/cache"
)

const (
	// maxSamples bounds the per-operation duration series.
	maxSamples = 1000

	// Per-sample and per-metadata-entry byte costs used for the
	// operation memory estimate.
	sampleBytes        = 8
	metadataEntryBytes = 64

	bytesPerMB = 1024 * 1024
)

// CacheConfig describes a cache to be created on a Monitor.
type CacheConfig struct {
	MaxSize  int
	Strategy cache.Strategy
	TTL      time.Duration
}

// Names of the caches every Monitor creates at construction.
const (
	SchemaCacheName     = "schema"
	ValidationCacheName = "validation"
	SettingsCacheName   = "settings"
)

// Standard caches created on every Monitor.
var standardCaches = map[string]CacheConfig{
	SchemaCacheName:     {MaxSize: 50, Strategy: cache.StrategyTTL, TTL: time.Hour},
	ValidationCacheName: {MaxSize: 200, Strategy: cache.StrategyAdaptive, TTL: 5 * time.Minute},
	SettingsCacheName:   {MaxSize: 100, Strategy: cache.StrategyLRU, TTL: 30 * time.Minute},
}

// Config configures a Monitor.
type Config struct {
	// Enabled gates the tracking, timing, and reporting APIs. Cache
	// creation is structural and happens regardless.
	Enabled bool

	// Logger receives degradation warnings. If nil, a JSON logger at
	// warn level writing to stderr is used.
	Logger Logger

	// Meter, if set, exports per-operation counters and a duration
	// histogram through OpenTelemetry.
	Meter metric.Meter

	// Tracer, if set, is used by Instrument to start a span around
	// every wrapped call.
	Tracer trace.Tracer
}

// operationStats is the per-operation bookkeeping.
type operationStats struct {
	durations []time.Duration // capped at maxSamples, oldest first
	metadata  map[string]any  // merged; later values overwrite
	baseline  float64         // EWMA of duration in seconds
	seeded    bool
}

// OperationMetrics is a derived per-operation snapshot.
type OperationMetrics struct {
	TotalCalls       int           `json:"total_calls"`
	TotalDuration    time.Duration `json:"total_duration"`
	AverageDuration  time.Duration `json:"average_duration"`
	MinDuration      time.Duration `json:"min_duration"`
	MaxDuration      time.Duration `json:"max_duration"`
	CacheHits        int64         `json:"cache_hits"`
	CacheMisses      int64         `json:"cache_misses"`
	CacheHitRatio    float64       `json:"cache_hit_ratio"`
	MemoryEstimateMB float64       `json:"memory_estimate_mb"`
}

// Monitor tracks operation timings and owns a set of named caches.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Disabled monitors: tracking and timing calls are true no-ops; they
//   neither mutate state nor panic.
type Monitor struct {
	mu      sync.Mutex
	enabled bool
	logger  Logger

	caches map[string]*cache.Cache[any]
	ops    map[string]*operationStats
	timers map[string]time.Time

	instruments *instruments
	tracer      trace.Tracer

	// Providers owned by NewWithTelemetry, flushed by Shutdown.
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
}

// New creates a Monitor. The three standard caches ("schema",
// "validation", "settings") are always created, even when monitoring
// is disabled.
func New(cfg Config) *Monitor {
	m := &Monitor{
		enabled: cfg.Enabled,
		logger:  cfg.Logger,
		caches:  make(map[string]*cache.Cache[any]),
		ops:     make(map[string]*operationStats),
		timers:  make(map[string]time.Time),
		tracer:  cfg.Tracer,
	}
	if m.logger == nil {
		m.logger = NewLogger("warn")
	}

	for name, cc := range standardCaches {
		m.caches[name] = newCache(name, cc)
	}

	if cfg.Meter != nil {
		inst, err := newInstruments(cfg.Meter)
		if err != nil {
			m.logger.Warn("telemetry instruments unavailable", Field{Key: "error", Value: err.Error()})
		} else {
			m.instruments = inst
		}
	}

	return m
}

func newCache(name string, cc CacheConfig) *cache.Cache[any] {
	return cache.New(cache.Config[any]{
		Name:       name,
		MaxSize:    cc.MaxSize,
		Strategy:   cc.Strategy,
		DefaultTTL: cc.TTL,
	})
}

// Enabled reports whether the tracking APIs are active.
func (m *Monitor) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// SetEnabled toggles the tracking APIs in place.
func (m *Monitor) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

// CreateCache creates a named cache, replacing any existing cache with
// the same name. It returns the new cache.
func (m *Monitor) CreateCache(name string, cc CacheConfig) *cache.Cache[any] {
	c := newCache(name, cc)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.caches[name] = c
	return c
}

// GetCache returns the named cache.
func (m *Monitor) GetCache(name string) (*cache.Cache[any], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.caches[name]
	return c, ok
}

// TrackOperation records one observed duration for an operation,
// merging metadata into the operation's accumulated metadata and
// updating the EWMA degradation baseline. A duration more than twice
// the previous baseline logs an advisory warning.
func (m *Monitor) TrackOperation(name string, duration time.Duration, metadata map[string]any) {
	m.mu.Lock()
	if !m.enabled {
		m.mu.Unlock()
		return
	}

	st := m.ops[name]
	if st == nil {
		st = &operationStats{metadata: make(map[string]any)}
		m.ops[name] = st
	}

	st.durations = append(st.durations, duration)
	if len(st.durations) > maxSamples {
		st.durations = st.durations[1:]
	}

	for k, v := range metadata {
		st.metadata[k] = v
	}

	seconds := duration.Seconds()
	degraded := false
	prior := st.baseline
	if !st.seeded {
		st.baseline = seconds
		st.seeded = true
	} else {
		degraded = seconds > 2*prior
		st.baseline = prior*0.9 + seconds*0.1
	}
	inst := m.instruments
	m.mu.Unlock()

	if degraded {
		m.logger.Warn("operation performance degraded",
			Field{Key: "operation", Value: name},
			Field{Key: "duration_ms", Value: float64(duration.Milliseconds())},
			Field{Key: "baseline_ms", Value: prior * 1000},
		)
	}
	if inst != nil {
		inst.record(context.Background(), name, duration, degraded)
	}
}

// StartTiming begins a timing window identified by a caller-supplied
// token. Tokens are single-use: EndTiming consumes them.
func (m *Monitor) StartTiming(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled {
		return
	}
	m.timers[token] = time.Now()
}

// EndTiming closes the timing window for a token, recording the elapsed
// duration against the named operation. An unknown token (never
// started, or ended twice) is benign: it records nothing and returns
// (0, false).
func (m *Monitor) EndTiming(token, name string, metadata map[string]any) (time.Duration, bool) {
	m.mu.Lock()
	if !m.enabled {
		m.mu.Unlock()
		return 0, false
	}
	start, ok := m.timers[token]
	if !ok {
		m.mu.Unlock()
		return 0, false
	}
	delete(m.timers, token)
	m.mu.Unlock()

	d := time.Since(start)
	m.TrackOperation(name, d, metadata)
	return d, true
}

// PerformanceMetrics returns a derived snapshot for every tracked
// operation. The map is empty when monitoring is disabled.
func (m *Monitor) PerformanceMetrics() map[string]OperationMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]OperationMetrics, len(m.ops))
	if !m.enabled {
		return out
	}

	for name, st := range m.ops {
		out[name] = deriveOperationMetrics(st)
	}
	return out
}

func deriveOperationMetrics(st *operationStats) OperationMetrics {
	om := OperationMetrics{
		TotalCalls:  len(st.durations),
		CacheHits:   metadataInt(st.metadata, "cache_hits"),
		CacheMisses: metadataInt(st.metadata, "cache_misses"),
	}

	for i, d := range st.durations {
		om.TotalDuration += d
		if i == 0 || d < om.MinDuration {
			om.MinDuration = d
		}
		if d > om.MaxDuration {
			om.MaxDuration = d
		}
	}
	if om.TotalCalls > 0 {
		om.AverageDuration = om.TotalDuration / time.Duration(om.TotalCalls)
	}

	if total := om.CacheHits + om.CacheMisses; total > 0 {
		om.CacheHitRatio = float64(om.CacheHits) / float64(total)
	}

	bytes := len(st.durations)*sampleBytes + len(st.metadata)*metadataEntryBytes
	om.MemoryEstimateMB = float64(bytes) / bytesPerMB

	return om
}

// metadataInt reads a numeric metadata value, tolerating the common
// integer and float encodings.
func metadataInt(md map[string]any, key string) int64 {
	switch v := md[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// CacheEffectiveness returns a metrics snapshot for every registered
// cache. Cache state is structural, so this is available even when
// monitoring is disabled.
func (m *Monitor) CacheEffectiveness() map[string]cache.Metrics {
	m.mu.Lock()
	caches := make(map[string]*cache.Cache[any], len(m.caches))
	for name, c := range m.caches {
		caches[name] = c
	}
	m.mu.Unlock()

	out := make(map[string]cache.Metrics, len(caches))
	for name, c := range caches {
		out[name] = c.Metrics()
	}
	return out
}
