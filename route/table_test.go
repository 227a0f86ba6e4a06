package route_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/route"
)

func shopRoutes() []route.Route {
	return []route.Route{
		{Path: "/", Name: "home"},
		{Path: "/products", Name: "products"},
		{Path: "/products/:id", Name: "product-detail"},
		{Path: "*", Name: "not-found"},
	}
}

func TestTableMatchScenario(t *testing.T) {
	// Arrange
	tbl, err := route.NewTable(shopRoutes())
	require.Nil(t, err)

	// Act
	m := tbl.Match("/products/42")

	// Assert
	require.NotNil(t, m)
	require.Equal(t, "product-detail", m.Leaf().Name)
	require.Equal(t, route.Params{{Key: "id", Value: "42"}}, m.Params)
	require.Equal(t, "", m.Remaining)

	// Act
	m = tbl.Match("/unknown")

	// Assert
	require.NotNil(t, m)
	require.Equal(t, "not-found", m.Leaf().Name)
	require.Equal(t, "unknown", m.Params.ByName(route.WildcardKey))
	require.Len(t, m.Params, 1)
}

func TestTableMatch(t *testing.T) {
	routes := []route.Route{
		{Path: "/", Name: "home"},
		{Path: "/users/new", Name: "user-new"},
		{Path: "/users/:id", Name: "user"},
		{Path: "/orgs/:org/repos/:repo", Name: "repo"},
		{Path: "/files/*", Name: "files"},
		{Path: "/account", Name: "account", Children: []route.Route{
			{Path: "", Name: "overview"},
			{Path: "settings/:tab", Name: "settings"},
		}},
		{Path: "/docs", Name: "docs", Children: []route.Route{
			{Path: "intro", Name: "intro"},
		}},
		{Path: "/docs/:page", Name: "doc-page"},
	}
	tbl, err := route.NewTable(routes)
	require.Nil(t, err)

	for _, tc := range []struct {
		name   string
		path   string
		chain  []string
		params route.Params
		clean  string
		query  string
	}{
		{"Root", "/", []string{"home"}, nil, "/", ""},
		{"Root-With-Query", "/?ref=nav", []string{"home"}, nil, "/", "ref=nav"},
		{"Literal-Before-Param", "/users/new", []string{"user-new"}, nil, "/users/new", ""},
		{"Param", "/users/7", []string{"user"}, route.Params{{"id", "7"}}, "/users/7", ""},
		{"Trailing-Slash", "/users/7/", []string{"user"}, route.Params{{"id", "7"}}, "/users/7", ""},
		{"Fragment", "/users/7#bio", []string{"user"}, route.Params{{"id", "7"}}, "/users/7", ""},
		{"Decoded-Param", "/users/jane%20doe", []string{"user"}, route.Params{{"id", "jane doe"}}, "/users/jane%20doe", ""},
		{"Params-In-Order", "/orgs/xy/repos/switchback", []string{"repo"}, route.Params{{"org", "xy"}, {"repo", "switchback"}}, "/orgs/xy/repos/switchback", ""},
		{"Wildcard-Rest", "/files/a/b/c.txt", []string{"files"}, route.Params{{"*", "a/b/c.txt"}}, "/files/a/b/c.txt", ""},
		{"Wildcard-Empty", "/files", []string{"files"}, route.Params{{"*", ""}}, "/files", ""},
		{"Index-Child", "/account", []string{"account", "overview"}, nil, "/account", ""},
		{"Nested-Child", "/account/settings/billing", []string{"account", "settings"}, route.Params{{"tab", "billing"}}, "/account/settings/billing", ""},
		{"Parent-Terminal", "/docs", []string{"docs"}, nil, "/docs", ""},
		{"Backtrack-To-Sibling", "/docs/faq", []string{"doc-page"}, route.Params{{"page", "faq"}}, "/docs/faq", ""},
		{"Nested-Before-Sibling", "/docs/intro", []string{"docs", "intro"}, nil, "/docs/intro", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			m := tbl.Match(tc.path)

			// Assert
			require.NotNil(t, m)
			var names []string
			for _, r := range m.Chain {
				names = append(names, r.Name)
			}
			require.Equal(t, tc.chain, names)
			require.Equal(t, tc.params, m.Params)
			require.Equal(t, tc.clean, m.Path)
			require.Equal(t, tc.query, m.Query)
		})
	}
}

func TestTableNoMatch(t *testing.T) {
	// Arrange
	tbl, err := route.NewTable([]route.Route{
		{Path: "/users/:id", Name: "user"},
		{Path: "/account", Name: "account", Children: []route.Route{
			{Path: "settings", Name: "settings"},
		}},
	})
	require.Nil(t, err)

	for _, path := range []string{
		"/",
		"/users",
		"/users/7/posts",
		"/Users/7",
		"/users/%zz",
		"/account/billing",
	} {
		t.Run(path, func(t *testing.T) {
			require.Nil(t, tbl.Match(path))
		})
	}
}

func TestTableMatchIdempotent(t *testing.T) {
	// Arrange
	tbl, err := route.NewTable(shopRoutes())
	require.Nil(t, err)

	// Act
	first := tbl.Match("/products/42?color=red")
	second := tbl.Match("/products/42?color=red")

	// Assert
	require.Equal(t, first, second)
	require.NotSame(t, first, second)
}

func TestTableFirstDeclaredWins(t *testing.T) {
	// Arrange
	tbl, err := route.NewTable([]route.Route{
		{Path: "/items/:id", Name: "dynamic"},
		{Path: "/items/special", Name: "literal"},
	})
	require.Nil(t, err)

	// Act
	m := tbl.Match("/items/special")

	// Assert
	require.Equal(t, "dynamic", m.Leaf().Name)
}

func TestTableInnermostParamWins(t *testing.T) {
	// Arrange
	tbl, err := route.NewTable([]route.Route{
		{Path: "/a/:id", Children: []route.Route{{Path: ":id", Name: "inner"}}},
	})
	require.Nil(t, err)

	// Act
	m := tbl.Match("/a/1/2")

	// Assert
	require.Equal(t, "2", m.Params.ByName("id"))
	require.Equal(t, []string{"id", "id"}, m.Params.Keys())
	require.Equal(t, map[string]string{"id": "2"}, m.Params.Map())
}

func TestNewTableInvalid(t *testing.T) {
	for _, tc := range []struct {
		name   string
		routes []route.Route
		err    error
	}{
		{"Bad-Pattern", []route.Route{{Path: "/x/*/y"}}, route.ErrInvalidPattern},
		{"Catch-All-Not-Last", []route.Route{{Path: "*"}, {Path: "/x"}}, route.ErrInvalidTable},
		{"Two-Catch-Alls", []route.Route{{Path: "*"}, {Path: "/*"}}, route.ErrInvalidTable},
		{"Duplicate-Names", []route.Route{{Path: "/a", Name: "a"}, {Path: "/b", Name: "a"}}, route.ErrInvalidTable},
		{"Nested-Bad-Pattern", []route.Route{{Path: "/a", Children: []route.Route{{Path: ":"}}}}, route.ErrInvalidPattern},
		{"Nested-Catch-All", []route.Route{{Path: "/a", Children: []route.Route{{Path: "*"}, {Path: "b"}}}}, route.ErrInvalidTable},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			tbl, err := route.NewTable(tc.routes)

			// Assert
			require.Nil(t, tbl)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestNewTableCopiesRoutes(t *testing.T) {
	// Arrange
	routes := []route.Route{{Path: "/a", Name: "a", Children: []route.Route{{Path: "b", Name: "b"}}}}
	tbl, err := route.NewTable(routes)
	require.Nil(t, err)

	// Act
	routes[0].Name = "changed"
	routes[0].Children[0].Path = "c"

	// Assert
	m := tbl.Match("/a/b")
	require.NotNil(t, m)
	require.Equal(t, "a.b", m.Name())
	require.Equal(t, "/a/b", m.Pattern())
	require.Equal(t, "a", tbl.Routes()[0].Name)
}

func TestTableWalk(t *testing.T) {
	// Arrange
	tbl, err := route.NewTable([]route.Route{
		{Path: "/", Name: "home"},
		{Path: "/account", Name: "account", Children: []route.Route{
			{Path: "/", Name: "overview"},
			{Path: "settings", Name: "settings"},
		}},
	})
	require.Nil(t, err)

	var got []string
	depths := make(map[string]int)

	// Act
	tbl.Walk(func(full string, depth int, r *route.Route) {
		got = append(got, full)
		depths[r.Name] = depth
	})

	// Assert
	require.Equal(t, []string{"/", "/account", "/account", "/account/settings"}, got)
	require.Equal(t, 1, depths["settings"])
	require.Equal(t, 0, depths["account"])
}

func TestMatchRoutes(t *testing.T) {
	// Act
	m, err := route.MatchRoutes(shopRoutes(), "/products")

	// Assert
	require.Nil(t, err)
	require.Equal(t, "products", m.Leaf().Name)

	// Act
	m, err = route.MatchRoutes([]route.Route{{Path: "/a"}}, "/b")

	// Assert
	require.Nil(t, err)
	require.Nil(t, m)

	// Act
	_, err = route.MatchRoutes([]route.Route{{Path: "/:x/:x"}}, "/a/b")

	// Assert
	require.ErrorIs(t, err, route.ErrInvalidPattern)
}

func TestNormalize(t *testing.T) {
	for _, tc := range []struct {
		in, path, query string
	}{
		{"", "/", ""},
		{"/", "/", ""},
		{"products/", "/products", ""},
		{"/a//b/?x=1#top", "/a/b", "x=1"},
		{"/#top?no", "/", ""},
	} {
		t.Run(tc.in, func(t *testing.T) {
			path, query := route.Normalize(tc.in)
			require.Equal(t, tc.path, path)
			require.Equal(t, tc.query, query)
		})
	}
}

func TestNewTableWithSharedCompiler(t *testing.T) {
	// Arrange
	c := route.NewCompiler()

	// Act
	a, err := route.NewTableWith(shopRoutes(), c)
	require.Nil(t, err)
	b, err := route.NewTableWith([]route.Route{{Path: "/products/:id", Name: "detail"}}, c)
	require.Nil(t, err)

	// Assert
	require.Equal(t, 4, c.Len())
	require.Equal(t, "product-detail", a.Match("/products/1").Leaf().Name)
	require.Equal(t, "detail", b.Match("/products/1").Leaf().Name)

	tbl, err := route.NewTableWith(shopRoutes(), nil)
	require.Nil(t, err)
	require.NotNil(t, tbl.Match("/"))
}
