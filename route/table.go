package route

import (
	"fmt"
)

// A Table is an immutable, compiled set of routes.
// It is safe for concurrent use.
type Table struct {
	routes []Route
	nodes  []*node
}

type node struct {
	route    *Route
	pattern  Pattern
	children []*node
}

// NewTable compiles routes into a Table.
//
// NewTable fails when a pattern does not compile,
// when a sibling list holds more than one catch-all route or one not declared last,
// or when sibling names collide.
func NewTable(routes []Route) (*Table, error) {
	return newTable(routes, NewCompiler())
}

// NewTableWith is like NewTable but compiles patterns with c.
func NewTableWith(routes []Route, c *Compiler) (*Table, error) {
	if c == nil {
		c = NewCompiler()
	}
	return newTable(routes, c)
}

func newTable(routes []Route, c *Compiler) (*Table, error) {
	t := &Table{routes: cloneRoutes(routes)}
	nodes, err := build(t.routes, "", c)
	if err != nil {
		return nil, err
	}
	t.nodes = nodes

	return t, nil
}

func build(routes []Route, parent string, c *Compiler) ([]*node, error) {
	nodes := make([]*node, 0, len(routes))
	names := make(map[string]bool)
	for i := range routes {
		r := &routes[i]
		full := Join(parent, r.Path)

		p, err := c.Compile(r.Path)
		if err != nil {
			return nil, err
		}

		if p.IsCatchAll() && i != len(routes)-1 {
			return nil, fmt.Errorf("%w: catch-all %q must be the last route under %q", ErrInvalidTable, full, Join(parent, ""))
		}

		if r.Name != "" {
			if names[r.Name] {
				return nil, fmt.Errorf("%w: duplicate route name %q under %q", ErrInvalidTable, r.Name, Join(parent, ""))
			}
			names[r.Name] = true
		}

		children, err := build(r.Children, full, c)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, &node{route: r, pattern: p, children: children})
	}

	return nodes, nil
}

// Routes returns a copy of the routes the Table was built from.
func (t *Table) Routes() []Route { return cloneRoutes(t.routes) }

// Match resolves path against the Table.
// Match returns nil when no route matches.
func (t *Table) Match(path string) *Match {
	clean, query := Normalize(path)
	chain, params, ok := matchNodes(t.nodes, splitPath(clean))
	if !ok {
		return nil
	}

	return &Match{Chain: chain, Params: params, Path: clean, Query: query}
}

func matchNodes(nodes []*node, segs []string) ([]*Route, Params, bool) {
	for _, n := range nodes {
		params, rest, ok := n.pattern.match(segs)
		if !ok {
			continue
		}

		if len(n.children) > 0 {
			if chain, inner, ok := matchNodes(n.children, rest); ok {
				return append([]*Route{n.route}, chain...), append(params, inner...), true
			}
		}

		if len(rest) == 0 {
			return []*Route{n.route}, params, true
		}
	}

	return nil, nil, false
}

// A WalkFunc visits a route along with its full pattern and nesting depth.
type WalkFunc func(full string, depth int, r *Route)

// Walk visits every route depth first in declaration order.
func (t *Table) Walk(fn WalkFunc) {
	walk(t.nodes, "", 0, fn)
}

func walk(nodes []*node, parent string, depth int, fn WalkFunc) {
	for _, n := range nodes {
		full := Join(parent, n.route.Path)
		fn(full, depth, n.route)
		walk(n.children, full, depth+1, fn)
	}
}

// MatchRoutes compiles routes and matches path against them.
// A nil Match with a nil error means nothing matched.
func MatchRoutes(routes []Route, path string) (*Match, error) {
	t, err := NewTable(routes)
	if err != nil {
		return nil, err
	}
	return t.Match(path), nil
}
