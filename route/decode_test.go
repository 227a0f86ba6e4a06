package route_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/route"
)

const routesYAML = `
routes:
  - path: /
    name: home
  - path: /account
    name: account
    guard: authenticated
    children:
      - path: ""
        name: overview
      - path: settings/:tab
        name: settings
  - path: "*"
    name: not-found
`

func TestDecode(t *testing.T) {
	// Arrange
	authed := route.Predicate(func(context.Context, *route.GuardContext) (bool, error) { return true, nil })
	guards := map[string]route.Guard{"authenticated": authed}

	// Act
	routes, err := route.Decode(strings.NewReader(routesYAML), guards)

	// Assert
	require.Nil(t, err)
	require.Len(t, routes, 3)
	require.Equal(t, "account", routes[1].Name)
	require.NotNil(t, routes[1].Guard)
	require.Nil(t, routes[0].Guard)
	require.Len(t, routes[1].Children, 2)
	require.Equal(t, "settings/:tab", routes[1].Children[1].Path)

	tbl, err := route.NewTable(routes)
	require.Nil(t, err)
	require.Equal(t, "account.settings", tbl.Match("/account/settings/profile").Name())
}

func TestDecodeErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		yaml string
		err  error
	}{
		{"Empty", "", route.ErrInvalidTable},
		{"Unknown-Field", "routes:\n  - path: /\n    title: Home\n", route.ErrInvalidTable},
		{"Unknown-Guard", "routes:\n  - path: /admin\n    guard: admin\n", route.ErrUnknownGuard},
		{"Nested-Unknown-Guard", "routes:\n  - path: /a\n    children:\n      - path: b\n        guard: nope\n", route.ErrUnknownGuard},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, err := route.Decode(strings.NewReader(tc.yaml), nil)

			// Assert
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	// Arrange
	name := filepath.Join(t.TempDir(), "routes.yaml")
	require.Nil(t, os.WriteFile(name, []byte("routes:\n  - path: /products/:id\n    name: product\n"), 0o600))

	// Act
	routes, err := route.LoadFile(name, nil)

	// Assert
	require.Nil(t, err)
	require.Equal(t, []route.Route{{Path: "/products/:id", Name: "product"}}, routes)

	// Act
	_, err = route.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), nil)

	// Assert
	require.ErrorIs(t, err, os.ErrNotExist)
}
