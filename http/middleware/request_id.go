package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/switchback"
)

// RequestIDHeader carries the request ID in and out of switchback.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under switchback.RequestIDKey
// and echoes it in the response's RequestIDHeader.
//
// A well-formed uuid sent by a proxy in RequestIDHeader is reused.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			r = r.Clone(context.WithValue(r.Context(), switchback.RequestIDKey, id))
			r.Header.Set(RequestIDHeader, id)
			w.Header().Set(RequestIDHeader, id)
			h.ServeHTTP(w, r)
		})
	}
}
