package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/switchback"
)

// InjectPartial flags under switchback.PartialKey whether the request
// asks for the page outlet's content only.
//
// Responses vary on switchback.PartialHeader so caches keep fragments and full pages apart.
func InjectPartial() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", switchback.PartialHeader)
			ctx := context.WithValue(r.Context(), switchback.PartialKey, switchback.IsPartialRequest(r))
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
