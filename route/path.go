package route

import (
	"net/url"
	"strings"
)

// Normalize strips any fragment and query from path, ensures a leading slash,
// drops empty segments and removes a trailing slash unless path is the root.
// The raw query is returned alongside the cleaned path.
func Normalize(path string) (string, string) {
	if i := strings.IndexByte(path, '#'); i >= 0 {
		path = path[:i]
	}

	var query string
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, query = path[:i], path[i+1:]
	}

	return "/" + strings.Join(splitPath(path), "/"), query
}

func splitPath(path string) []string {
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

func unescape(s string) (string, error) {
	return url.PathUnescape(s)
}

// Join concatenates a parent and child pattern.
func Join(parent, child string) string {
	segs := append(splitPath(parent), splitPath(child)...)
	return "/" + strings.Join(segs, "/")
}
