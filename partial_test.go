package switchback_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
)

func TestIsPartialRequest(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com/products", nil)

	// Act + Assert
	require.False(t, switchback.IsPartialRequest(nil))
	require.False(t, switchback.IsPartialRequest(r))

	// Arrange
	r.Header.Set(switchback.PartialHeader, "xmlhttprequest")

	// Act + Assert
	require.True(t, switchback.IsPartialRequest(r))
}

func TestIsPartial(t *testing.T) {
	require.False(t, switchback.IsPartial(context.Background()))
	require.False(t, switchback.IsPartial(context.WithValue(context.Background(), switchback.PartialKey, "yes")))
	require.True(t, switchback.IsPartial(context.WithValue(context.Background(), switchback.PartialKey, true)))
}
