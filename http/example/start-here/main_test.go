package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test(t *testing.T) {
	rng, err := newApp()
	require.Nil(t, err)

	for _, tc := range []struct {
		name     string
		input    string
		expected int
		location string
	}{
		{"root", "/", http.StatusOK, ""},
		{"list", "/products", http.StatusOK, ""},
		{"detail", "/products/1", http.StatusOK, ""},
		{"detail-rejected", "/products/abc", http.StatusForbidden, ""},
		{"retired", "/catalog", http.StatusFound, "/products"},
		{"not-found", "/not-found", http.StatusNotFound, ""},
		{"health", "/healthz", http.StatusNoContent, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, tc.input, nil)

			// Act
			rng.ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.expected, w.Code)
			require.Equal(t, tc.location, w.Header().Get("Location"))
		})
	}
}
