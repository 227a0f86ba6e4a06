package navigation_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/navigation"
)

func TestHTTPFetcher(t *testing.T) {
	// Arrange
	mux := http.NewServeMux()
	mux.HandleFunc("/account", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login?returnUrl=%2Faccount", http.StatusFound)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "partial=%t", switchback.IsPartialRequest(r))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f, err := navigation.NewHTTPFetcher(srv.URL, srv.Client())
	require.Nil(t, err)

	// Act
	resp, err := f.Fetch(context.Background(), "/login")

	// Assert
	require.Nil(t, err)
	require.False(t, resp.Redirected)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "partial=true", resp.Body)

	// Act
	resp, err = f.Fetch(context.Background(), "/account")

	// Assert
	require.Nil(t, err)
	require.True(t, resp.Redirected)
	require.Equal(t, "/login?returnUrl=%2Faccount", resp.URL)
	require.Equal(t, "partial=true", resp.Body)

	// Act
	resp, err = f.Fetch(context.Background(), "/missing")

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNewHTTPFetcherInvalid(t *testing.T) {
	_, err := navigation.NewHTTPFetcher("/relative", nil)
	require.ErrorIs(t, err, switchback.ErrNotValid)
}

func TestHTTPFetcherOtherOrigin(t *testing.T) {
	// Arrange
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "elsewhere")
	}))
	defer other.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, other.URL+"/landing", http.StatusFound)
	}))
	defer srv.Close()

	f, err := navigation.NewHTTPFetcher(srv.URL, srv.Client())
	require.Nil(t, err)

	// Act
	resp, err := f.Fetch(context.Background(), "/away")

	// Assert
	require.Nil(t, err)
	require.True(t, resp.Redirected)
	require.Equal(t, other.URL+"/landing", resp.URL)
	require.Equal(t, srv.URL, f.Origin().String())
}

func TestHTTPFetcherMaxBody(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, r.URL.Query().Get("body"))
	}))
	defer srv.Close()

	f, err := navigation.NewHTTPFetcher(srv.URL, srv.Client(), navigation.WithMaxBody(4))
	require.Nil(t, err)

	for _, tc := range []struct {
		name string
		body string
		err  error
	}{
		{"At-Limit", "abcd", nil},
		{"Over-Limit", "abcde", navigation.ErrBodyTooLarge},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			resp, err := f.Fetch(context.Background(), "/?body="+tc.body)

			// Assert
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.Nil(t, resp)
				return
			}

			require.Nil(t, err)
			require.Equal(t, tc.body, resp.Body)
		})
	}
}
