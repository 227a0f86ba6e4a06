package route

import "strings"

// A Match is the result of resolving a path against a Table.
type Match struct {
	// Chain lists the matched routes from the outermost ancestor to the leaf.
	Chain []*Route

	// Params holds every bound parameter across Chain.
	Params Params

	// Remaining is the path left unmatched at the leaf.
	Remaining string

	// Path is the normalized path that was matched.
	Path string

	// Query is the raw query stripped from the path.
	Query string
}

// Leaf returns the innermost matched route.
func (m *Match) Leaf() *Route {
	if m == nil || len(m.Chain) == 0 {
		return nil
	}
	return m.Chain[len(m.Chain)-1]
}

// Name joins the names of the matched chain with dots, skipping unnamed routes.
func (m *Match) Name() string {
	if m == nil {
		return ""
	}

	var names []string
	for _, r := range m.Chain {
		if r.Name != "" {
			names = append(names, r.Name)
		}
	}
	return strings.Join(names, ".")
}

// Pattern joins the paths of the matched chain.
func (m *Match) Pattern() string {
	if m == nil {
		return ""
	}

	var full string
	for _, r := range m.Chain {
		full = Join(full, r.Path)
	}
	return full
}

// URL is Path with Query reattached.
func (m *Match) URL() string {
	if m.Query == "" {
		return m.Path
	}
	return m.Path + "?" + m.Query
}
