package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/session"
)

// InjectSession stores the session associated with the *http.Request in *http.Request.Context
// under switchback.SessionKey.
//
// If store is nil, NoopAdapter returns and this middleware does nothing.
func InjectSession(store session.SessionStorer) Adapter {
	if store == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// NOTE: gorilla hands back a fresh session alongside a decoding error
			s, _ := store.GetSession(r)
			ctx := context.WithValue(r.Context(), switchback.SessionKey, s)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}

// CurrentSubject promotes the subject signed in to the session in *http.Request.Context
// to switchback.CurrentUserKey and refreshes the session's expiry.
//
// Requests without a session or without a subject pass through untouched;
// guards decide what anonymous visitors can reach.
func CurrentSubject() Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := r.Context().Value(switchback.SessionKey).(session.Session)
			if !ok {
				handler.ServeHTTP(w, r)
				return
			}

			sub, err := s.Subject()
			if err != nil {
				handler.ServeHTTP(w, r)
				return
			}

			if err := s.ResetExpiry(w, r); err != nil {
				_ = s.Delete(w, r)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			w.Header().Add("Cache-control", "no-store")
			w.Header().Add("Pragma", "no-cache")

			ctx := context.WithValue(r.Context(), switchback.CurrentUserKey, sub)
			handler.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
