package navigation

import (
	"net/url"

	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/metrics"
)

// DefaultMaxRedirects bounds how many redirected responses a navigation follows.
const DefaultMaxRedirects = 5

// An Option configures a Controller.
type Option func(*Controller)

// WithOrigin sets the origin links must share to be intercepted
// and redirects must stay within to be followed.
func WithOrigin(origin *url.URL) Option {
	return func(c *Controller) {
		if origin != nil {
			c.origin = &url.URL{Scheme: origin.Scheme, Host: origin.Host}
		}
	}
}

// WithLogger sets the logger navigation failures are reported to.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the Collector navigations are counted by.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithMaxRedirects bounds how many redirected responses a navigation follows.
func WithMaxRedirects(n int) Option {
	return func(c *Controller) {
		if n >= 0 {
			c.maxRedirects = n
		}
	}
}

// A NavigateOption adjusts a single navigation.
type NavigateOption func(*navOptions)

type navOptions struct {
	replace  bool
	noScroll bool
}

// WithReplace replaces the current history entry instead of pushing a new one.
func WithReplace() NavigateOption {
	return func(o *navOptions) {
		o.replace = true
	}
}

// WithoutScroll leaves the scroll offset untouched.
func WithoutScroll() NavigateOption {
	return func(o *navOptions) {
		o.noScroll = true
	}
}
