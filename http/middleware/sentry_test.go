package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
)

func TestReportPanic(t *testing.T) {
	// Arrange + Act
	actual := middleware.ReportPanic(switchback.Development)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	h := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	// Act + Assert
	require.NotPanics(t, func() { middleware.ReportPanic(switchback.Testing)(h).ServeHTTP(w, r) })
}
