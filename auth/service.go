package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/xy-planning-network/switchback/route"
)

// QueryParam is the query parameter a token may be passed in.
const QueryParam = "jwt"

var _ route.Authenticator = (*Service)(nil)

type ctxKey struct{}

// Service verifies and issues HS256 signed tokens.
type Service struct {
	issuer string
	key    []byte
	now    func() time.Time
	parser *jwt.Parser
}

// NewService constructs a Service signing with jwtKey.
func NewService(jwtKey, issuer string) (*Service, error) {
	if jwtKey == "" {
		return nil, fmt.Errorf(`%w: jwt key cannot be ""`, ErrNotValid)
	}

	return &Service{
		issuer: issuer,
		key:    []byte(jwtKey),
		now:    time.Now,
		parser: &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}},
	}, nil
}

// Sign issues a token for subject expiring after ttl.
func (s *Service) Sign(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf(`%w: subject cannot be ""`, ErrNotValid)
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnexpected, err)
	}

	return signed, nil
}

// Verify parses raw into claims, checking its signature, expiry and issuer.
func (s *Service) Verify(raw string) (*jwt.RegisteredClaims, error) {
	claims := new(jwt.RegisteredClaims)
	_, err := s.parser.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotValid, err)
	}

	if s.issuer != "" && !claims.VerifyIssuer(s.issuer, true) {
		return nil, fmt.Errorf("%w: issuer %q", ErrNotValid, claims.Issuer)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: no subject", ErrNotValid)
	}

	return claims, nil
}

// Authenticate verifies the token r carries.
// A request without one returns ErrNoToken.
func (s *Service) Authenticate(r *http.Request) (*jwt.RegisteredClaims, error) {
	raw := Token(r)
	if raw == "" {
		return nil, ErrNoToken
	}

	return s.Verify(raw)
}

// Inject stashes the claims of a valid token on the request context.
// Requests with a bad or missing token pass through anonymous.
func (s *Service) Inject(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.Authenticate(r)
		if err != nil {
			h.ServeHTTP(w, r)
			return
		}

		h.ServeHTTP(w, r.Clone(WithClaims(r.Context(), claims)))
	})
}

// Authenticated reports whether Inject verified a token for the request behind ctx.
func (s *Service) Authenticated(ctx context.Context) (bool, error) {
	_, ok := Claims(ctx)
	return ok, nil
}

// WithClaims stashes claims on ctx.
func WithClaims(ctx context.Context, claims *jwt.RegisteredClaims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

// Claims retrieves the claims Inject stashed on ctx.
func Claims(ctx context.Context) (*jwt.RegisteredClaims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*jwt.RegisteredClaims)
	return c, ok && c != nil
}

// Token pulls a raw token out of the Authorization header or the QueryParam.
func Token(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "bearer") {
			return strings.TrimSpace(token)
		}
	}

	return r.URL.Query().Get(QueryParam)
}

// Any is authenticated when any of auths is.
// nil entries are skipped and errors stop the search.
func Any(auths ...route.Authenticator) route.Authenticator {
	return route.AuthenticatorFunc(func(ctx context.Context) (bool, error) {
		for _, a := range auths {
			if a == nil {
				continue
			}

			ok, err := a.Authenticated(ctx)
			if err != nil {
				return false, err
			}

			if ok {
				return true, nil
			}
		}

		return false, nil
	})
}
