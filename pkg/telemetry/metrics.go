package telemetry

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the pipeline metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "assetref").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for operation duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "assetref",
		// Resolution and rewriting are sub-millisecond on warm caches.
		Buckets:  []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for the pipeline.
type Metrics struct {
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	cacheEvictions  prometheus.Counter
	resolvesTotal   *prometheus.CounterVec
	operationsTotal *prometheus.CounterVec
	opDuration      *prometheus.HistogramVec
	assetsCollected prometheus.Counter
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// NewMetrics creates and registers the pipeline metrics.
//
// Metrics collected:
//   - assetref_resolver_cache_hits_total
//   - assetref_resolver_cache_misses_total
//   - assetref_resolver_cache_evictions_total
//   - assetref_resolves_total{kind,status}
//   - assetref_operations_total{op,status}
//   - assetref_operation_duration_seconds{op}
//   - assetref_assets_collected_total
//
// Collectors on the default registerer are created once and shared, so
// calling NewMetrics repeatedly without WithRegistry does not panic.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if config.Registry == prometheus.DefaultRegisterer {
		defaultMetricsOnce.Do(func() {
			defaultMetrics = initMetrics(config)
		})
		return defaultMetrics
	}
	return initMetrics(config)
}

func initMetrics(config MetricsConfig) *Metrics {
	factory := promauto.With(config.Registry)

	return &Metrics{
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolver_cache_hits_total",
			Help:        "Resource root lookups served from the resolver cache",
			ConstLabels: config.ConstLabels,
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolver_cache_misses_total",
			Help:        "Resource root lookups that went to the loader",
			ConstLabels: config.ConstLabels,
		}),

		cacheEvictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolver_cache_evictions_total",
			Help:        "Resource roots evicted from the resolver cache",
			ConstLabels: config.ConstLabels,
		}),

		resolvesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolves_total",
			Help:        "Asset references resolved, by path kind and status",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),

		operationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "operations_total",
			Help:        "Pipeline operations (rewrite, render, publish) by status",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "status"}),

		opDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "operation_duration_seconds",
			Help:        "Pipeline operation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"op"}),

		assetsCollected: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "assets_collected_total",
			Help:        "Distinct assets added to collected-asset sets",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// CacheHit records a resolver cache hit.
func (m *Metrics) CacheHit() {
	if m != nil {
		m.cacheHits.Inc()
	}
}

// CacheMiss records a resolver cache miss.
func (m *Metrics) CacheMiss() {
	if m != nil {
		m.cacheMisses.Inc()
	}
}

// CacheEvicted records a resolver cache eviction.
func (m *Metrics) CacheEvicted() {
	if m != nil {
		m.cacheEvictions.Inc()
	}
}

// Resolve records one resolution of the given path kind.
func (m *Metrics) Resolve(kind string, err error) {
	if m != nil {
		m.resolvesTotal.WithLabelValues(kind, status(err)).Inc()
	}
}

// Operation records a finished pipeline operation started at start.
func (m *Metrics) Operation(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.opDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	m.operationsTotal.WithLabelValues(op, status(err)).Inc()
}

// AssetCollected records a new distinct collected asset.
func (m *Metrics) AssetCollected() {
	if m != nil {
		m.assetsCollected.Inc()
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
