package navigation_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/navigation"
	"github.com/xy-planning-network/switchback/navigation/navtest"
)

func TestNavigateToFollowsServerRedirect(t *testing.T) {
	// Arrange
	mux := http.NewServeMux()
	mux.HandleFunc("/account", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login?returnUrl=%2Faccount", http.StatusFound)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "<h1>Sign in</h1><p>partial=%t</p>", switchback.IsPartialRequest(r))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f, err := navigation.NewHTTPFetcher(srv.URL, srv.Client())
	require.Nil(t, err)

	history := navtest.NewHistory("/")
	doc := &navtest.Document{}
	ctrl := navigation.New(history, doc, f, navigation.WithLogger(logger.Discard()))

	// Act
	err = ctrl.NavigateTo(context.Background(), "/account")

	// Assert
	require.Nil(t, err)
	require.Equal(t, []string{"/", "/login?returnUrl=%2Faccount"}, history.Entries())
	require.Equal(t, "<h1>Sign in</h1><p>partial=true</p>", doc.Outlet())
	require.Equal(t, "/login?returnUrl=%2Faccount", ctrl.State().CurrentURL)
	require.Empty(t, doc.Errors())
}

func TestNavigateToRejectsRedirectToOtherOrigin(t *testing.T) {
	// Arrange
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<h1>Elsewhere</h1>")
	}))
	defer other.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, other.URL+"/landing", http.StatusFound)
	}))
	defer srv.Close()

	f, err := navigation.NewHTTPFetcher(srv.URL, srv.Client())
	require.Nil(t, err)

	history := navtest.NewHistory("/")
	doc := &navtest.Document{}
	ctrl := navigation.New(history, doc, f, navigation.WithLogger(logger.Discard()))

	// Act
	err = ctrl.NavigateTo(context.Background(), "/away")

	// Assert
	require.ErrorIs(t, err, navigation.ErrCrossOrigin)
	require.Equal(t, []string{"/"}, history.Entries())
	require.Equal(t, "", doc.Outlet())
}
