package guard

import (
	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultMaxRedirects = 5
	DefaultReturnParam  = "returnUrl"

	tracerName = "github.com/xy-planning-network/switchback/guard"
)

type config struct {
	logger       logger.Logger
	tracer       trace.Tracer
	metrics      *metrics.Collector
	loginPath    string
	returnParam  string
	maxRedirects int
}

func newConfig(opts []Option) config {
	c := config{
		logger:       logger.New(),
		tracer:       otel.Tracer(tracerName),
		returnParam:  DefaultReturnParam,
		maxRedirects: DefaultMaxRedirects,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// An Option configures a Pipeline or a Resolver.
type Option func(*config)

// WithLogger sets the logger failed guards are reported to.
func WithLogger(l logger.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTracer sets the tracer guard checks and resolutions are traced with.
// The global OpenTelemetry provider is used by default.
func WithTracer(t trace.Tracer) Option {
	return func(c *config) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithMetrics sets the Collector guard checks and resolutions are counted by.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithLoginPath turns a guard rejection into a redirect to path,
// carrying the rejected target in the return parameter.
func WithLoginPath(path string) Option {
	return func(c *config) {
		c.loginPath = path
	}
}

// WithReturnParam sets the query key the rejected target is carried under.
func WithReturnParam(key string) Option {
	return func(c *config) {
		if key != "" {
			c.returnParam = key
		}
	}
}

// WithMaxRedirects bounds how many chained guard redirects a Resolver follows.
func WithMaxRedirects(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxRedirects = n
		}
	}
}
