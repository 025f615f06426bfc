// Package metrics exposes Prometheus collectors for the render engine.
//
// Metrics collected (default namespace "wecco"):
//   - wecco_render_passes_total: Counter of component render passes by component and status
//   - wecco_render_duration_seconds: Histogram of render pass duration by component
//   - wecco_update_requests_total: Counter of update requests by component
//   - wecco_coalesced_updates_total: Counter of update requests folded into a pending pass
//   - wecco_template_compiles_total: Counter of templates compiled
//   - wecco_bindings_created_total: Counter of bindings instantiated
//   - wecco_rebuilds_total: Counter of full rebuilds by reason
//   - wecco_connected_hosts: Gauge of connected component hosts
//   - wecco_cached_targets: Gauge of update targets with a cached template instance
//
// Example:
//
//	m := metrics.New(metrics.WithNamespace("myapp"))
//	metrics.SetDefault(m)
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
//
// Every recording method is safe to call on a nil *Metrics, so components
// hold an optional *Metrics without guarding each call.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "wecco").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collectors.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "wecco",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the engine collectors.
type Metrics struct {
	renderPasses     *prometheus.CounterVec
	renderDuration   *prometheus.HistogramVec
	updateRequests   *prometheus.CounterVec
	coalescedUpdates *prometheus.CounterVec
	templateCompiles prometheus.Counter
	bindingsCreated  prometheus.Counter
	rebuilds         *prometheus.CounterVec
	connectedHosts   prometheus.Gauge
	cachedTargets    prometheus.Gauge
}

// New creates and registers the collectors.
func New(opts ...Option) *Metrics {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		renderPasses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_passes_total",
			Help:        "Total number of component render passes",
			ConstLabels: config.ConstLabels,
		}, []string{"component", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Component render pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"component"}),

		updateRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "update_requests_total",
			Help:        "Total number of component update requests",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),

		coalescedUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "coalesced_updates_total",
			Help:        "Update requests folded into an already pending render pass",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),

		templateCompiles: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "template_compiles_total",
			Help:        "Total number of templates compiled",
			ConstLabels: config.ConstLabels,
		}),

		bindingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "bindings_created_total",
			Help:        "Total number of bindings instantiated",
			ConstLabels: config.ConstLabels,
		}),

		rebuilds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "rebuilds_total",
			Help:        "Total number of full target rebuilds",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),

		connectedHosts: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "connected_hosts",
			Help:        "Number of connected component hosts",
			ConstLabels: config.ConstLabels,
		}),

		cachedTargets: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cached_targets",
			Help:        "Number of update targets holding a template instance",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Rebuild reasons.
const (
	ReasonFirstRender = "first_render"
	ReasonNewTemplate = "new_template"
	ReasonStructure   = "structure"
)

// RecordRenderPass records one component render pass.
func (m *Metrics) RecordRenderPass(component string, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.renderPasses.WithLabelValues(component, status).Inc()
	m.renderDuration.WithLabelValues(component).Observe(d.Seconds())
}

// RecordUpdateRequest records an update request. coalesced is true when a
// render pass was already pending.
func (m *Metrics) RecordUpdateRequest(component string, coalesced bool) {
	if m == nil {
		return
	}
	m.updateRequests.WithLabelValues(component).Inc()
	if coalesced {
		m.coalescedUpdates.WithLabelValues(component).Inc()
	}
}

// RecordCompile records a template compilation.
func (m *Metrics) RecordCompile() {
	if m == nil {
		return
	}
	m.templateCompiles.Inc()
}

// RecordBindings records n instantiated bindings.
func (m *Metrics) RecordBindings(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.bindingsCreated.Add(float64(n))
}

// RecordRebuild records a full rebuild of an update target.
func (m *Metrics) RecordRebuild(reason string) {
	if m == nil {
		return
	}
	m.rebuilds.WithLabelValues(reason).Inc()
}

// HostConnected records a component host becoming connected.
func (m *Metrics) HostConnected() {
	if m == nil {
		return
	}
	m.connectedHosts.Inc()
}

// HostDisconnected records a component host being detached.
func (m *Metrics) HostDisconnected() {
	if m == nil {
		return
	}
	m.connectedHosts.Dec()
}

// SetCachedTargets records the number of cached update targets.
func (m *Metrics) SetCachedTargets(n int) {
	if m == nil {
		return
	}
	m.cachedTargets.Set(float64(n))
}

var (
	defaultMetrics   *Metrics
	defaultMetricsMu sync.RWMutex
)

// SetDefault installs m as the process-wide collector set used by code that
// has no injected *Metrics, such as the template compiler.
func SetDefault(m *Metrics) {
	defaultMetricsMu.Lock()
	defaultMetrics = m
	defaultMetricsMu.Unlock()
}

// Default returns the process-wide collectors, or nil if none were set.
func Default() *Metrics {
	defaultMetricsMu.RLock()
	defer defaultMetricsMu.RUnlock()
	return defaultMetrics
}
