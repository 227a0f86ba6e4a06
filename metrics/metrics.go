package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config configures a Collector.
type Config struct {
	// Namespace is the metrics namespace (default: "switchback").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for guard duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is where metrics are registered and gathered from.
	// Default: a fresh *prometheus.Registry
	Registry *prometheus.Registry
}

// An Option configures a Collector.
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
func WithRegistry(registry *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "switchback",
		Buckets:   prometheus.DefBuckets,
	}
}

// A Collector records route resolution, guard and navigation metrics.
//
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	resolutions   *prometheus.CounterVec
	guardChecks   *prometheus.CounterVec
	guardDuration *prometheus.HistogramVec
	redirects     prometheus.Counter
	navigations   *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
}

// New constructs a Collector, registering its metrics.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}

	factory := promauto.With(config.Registry)

	return &Collector{
		registry: config.Registry,

		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolutions_total",
			Help:        "Total number of path resolutions by final outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		guardChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "guard_checks_total",
			Help:        "Total number of guard checks by route and outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "outcome"}),

		guardDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "guard_duration_seconds",
			Help:        "Guard check duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		redirects: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "redirects_total",
			Help:        "Total number of guard redirects followed",
			ConstLabels: config.ConstLabels,
		}),

		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of client navigations by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "content_cache_lookups_total",
			Help:        "Total number of content cache lookups by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),
	}
}

// ObserveResolution counts a finished resolution.
func (c *Collector) ObserveResolution(outcome string) {
	if c == nil {
		return
	}
	c.resolutions.WithLabelValues(outcome).Inc()
}

// ObserveGuard counts a guard check on the route pattern and records how long it took.
func (c *Collector) ObserveGuard(route, outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.guardChecks.WithLabelValues(route, outcome).Inc()
	c.guardDuration.WithLabelValues(route).Observe(d.Seconds())
}

// ObserveRedirect counts a followed redirect.
func (c *Collector) ObserveRedirect() {
	if c == nil {
		return
	}
	c.redirects.Inc()
}

// ObserveNavigation counts a finished client navigation.
func (c *Collector) ObserveNavigation(result string) {
	if c == nil {
		return
	}
	c.navigations.WithLabelValues(result).Inc()
}

// ObserveCache counts a content cache lookup.
func (c *Collector) ObserveCache(hit bool) {
	if c == nil {
		return
	}

	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(result).Inc()
}

// Registry returns the registry the Collector's metrics live in.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the Collector's metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
