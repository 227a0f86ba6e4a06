package switchback

import (
	"context"
	"net/http"
	"strings"
)

const (
	// PartialHeader marks a request made by a navigation controller
	// that expects only the content of the page outlet in response.
	PartialHeader = "X-Requested-With"

	// PartialValue is the value of PartialHeader a navigation controller sends.
	PartialValue = "XMLHttpRequest"
)

// IsPartialRequest asserts whether r carries the partial content marker.
func IsPartialRequest(r *http.Request) bool {
	if r == nil {
		return false
	}

	return strings.EqualFold(r.Header.Get(PartialHeader), PartialValue)
}

// IsPartial reports whether a middleware earlier in the chain
// flagged the request behind ctx as asking for partial content.
func IsPartial(ctx context.Context) bool {
	ok, _ := ctx.Value(PartialKey).(bool)
	return ok
}
