package route

// A Route defines one entry of a route table.
type Route struct {
	// Path is the pattern relative to the parent route.
	// A child Path of "" or "/" is the parent's index.
	Path string

	// Name identifies the route among its siblings.
	Name string

	// Guard, when set, must allow the route before it activates.
	Guard Guard

	// Children are tried in order against the path the route leaves unmatched.
	Children []Route
}

func cloneRoutes(routes []Route) []Route {
	if routes == nil {
		return nil
	}

	out := make([]Route, len(routes))
	for i, r := range routes {
		out[i] = r
		out[i].Children = cloneRoutes(r.Children)
	}
	return out
}
