package route

// A Param is a single bound path parameter.
type Param struct {
	Key   string
	Value string
}

// Params are bound in the order they appear in the path.
type Params []Param

// Get returns the value bound under key.
// When nested routes bind the same key, the innermost value wins.
func (ps Params) Get(key string) (string, bool) {
	for i := len(ps) - 1; i >= 0; i-- {
		if ps[i].Key == key {
			return ps[i].Value, true
		}
	}
	return "", false
}

// ByName returns the value bound under key or an empty string.
func (ps Params) ByName(key string) string {
	v, _ := ps.Get(key)
	return v
}

// Keys lists the bound keys in order.
func (ps Params) Keys() []string {
	keys := make([]string, len(ps))
	for i, p := range ps {
		keys[i] = p.Key
	}
	return keys
}

// Map flattens Params into a map.
func (ps Params) Map() map[string]string {
	m := make(map[string]string, len(ps))
	for _, p := range ps {
		m[p.Key] = p.Value
	}
	return m
}
