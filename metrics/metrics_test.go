package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/metrics"
)

func TestCollectorNil(t *testing.T) {
	var c *metrics.Collector

	require.NotPanics(t, func() {
		c.ObserveResolution("allow")
		c.ObserveGuard("/account", "deny", time.Millisecond)
		c.ObserveRedirect()
		c.ObserveNavigation("applied")
		c.ObserveCache(true)
	})
}

func TestCollectorObserve(t *testing.T) {
	// Arrange
	reg := prometheus.NewRegistry()
	c := metrics.New(metrics.WithRegistry(reg), metrics.WithNamespace("test"))

	// Act
	c.ObserveResolution("allow")
	c.ObserveResolution("allow")
	c.ObserveGuard("/account", "deny", time.Millisecond)
	c.ObserveRedirect()
	c.ObserveCache(false)

	// Assert
	total, err := testutil.GatherAndCount(reg)
	require.Nil(t, err)
	require.Equal(t, 5, total)

	n, err := testutil.GatherAndCount(reg, "test_resolutions_total")
	require.Nil(t, err)
	require.Equal(t, 1, n)
	require.Same(t, reg, c.Registry())
}

func TestCollectorHandler(t *testing.T) {
	// Arrange
	c := metrics.New()
	c.ObserveRedirect()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	// Act
	c.Handler().ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "switchback_redirects_total 1")
}
