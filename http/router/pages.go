package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/auth"
	"github.com/xy-planning-network/switchback/content"
	"github.com/xy-planning-network/switchback/guard"
	"github.com/xy-planning-network/switchback/http/req"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/session"
	"github.com/xy-planning-network/switchback/route"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Pages resolves requests against a route table and renders the content of the matched route.
type Pages struct {
	resolver  *guard.Resolver
	renderer  content.Renderer
	responder *resp.Responder
	auths     []route.Authenticator
	parser    *req.Parser
}

// A PagesOpt configures Pages.
type PagesOpt func(*Pages)

// WithAuthenticator adds an authenticator consulted, alongside the request's session,
// when guards ask whether the request is signed in.
func WithAuthenticator(a route.Authenticator) PagesOpt {
	return func(p *Pages) {
		if a != nil {
			p.auths = append(p.auths, a)
		}
	}
}

// NewPages constructs Pages.
func NewPages(resolver *guard.Resolver, renderer content.Renderer, responder *resp.Responder, opts ...PagesOpt) *Pages {
	p := &Pages{
		resolver:  resolver,
		renderer:  renderer,
		responder: responder,
		parser:    req.NewParser(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// ServeHTTP resolves the request's path and query and responds with the outcome.
func (p *Pages) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, err := p.resolver.Resolve(r.Context(), r.URL.RequestURI(), p.Capabilities(r))
	if errors.Is(err, guard.ErrTooManyRedirects) {
		p.respondErr(w, r, p.responder.Error(w, r, http.StatusLoopDetected, err))
		return
	}

	if err != nil {
		p.respondErr(w, r, p.responder.Error(w, r, http.StatusInternalServerError, err))
		return
	}

	if res.Redirected() {
		p.respondErr(w, r, p.responder.Redirect(w, r, resp.Url(res.Location())))
		return
	}

	if !res.Found() {
		p.respondErr(w, r, p.responder.Error(w, r, http.StatusNotFound, nil))
		return
	}

	pattern := res.Match.Pattern()
	if res.Outcome.IsDeny() {
		flash := session.Flash{Class: session.FlashWarning, Msg: session.NoAccessMsg}
		p.respondErr(w, r, p.responder.Error(w, r, http.StatusForbidden, res.Outcome.Reason, resp.Route(pattern), resp.Flash(flash)))
		return
	}

	html, err := p.renderer.Render(r.Context(), res.Match)
	if errors.Is(err, content.ErrNotFound) {
		p.respondErr(w, r, p.responder.Error(w, r, http.StatusNotFound, err, resp.Route(pattern)))
		return
	}

	if err != nil {
		p.respondErr(w, r, p.responder.Error(w, r, http.StatusInternalServerError, err, resp.Route(pattern)))
		return
	}

	p.respondErr(w, r, p.responder.Page(w, r, resp.Route(pattern), resp.Title(p.Title(res.Match)), resp.Content(html)))
}

// Capabilities collects what guards may consult about r.
//
// Auth reports the request signed in when its session has a subject
// or any authenticator added with WithAuthenticator agrees.
// Values holds the request id, the current subject and whether the request asks for a fragment.
func (p *Pages) Capabilities(r *http.Request) route.Capabilities {
	ctx := r.Context()
	auths := append([]route.Authenticator{}, p.auths...)
	if s, ok := ctx.Value(switchback.SessionKey).(session.Session); ok {
		auths = append([]route.Authenticator{s}, auths...)
	}

	vals := map[string]any{"partial": switchback.IsPartial(ctx)}
	if id, ok := ctx.Value(switchback.RequestIDKey).(string); ok {
		vals["request_id"] = id
	}

	if sub, ok := ctx.Value(switchback.CurrentUserKey).(string); ok {
		vals["subject"] = sub
	}

	return route.Capabilities{Auth: auth.Any(auths...), Values: vals}
}

// Title names the page for m after its innermost named route,
// e.g. "product-detail" becomes "Product Detail".
func (p *Pages) Title(m *route.Match) string {
	for i := len(m.Chain) - 1; i >= 0; i-- {
		if name := m.Chain[i].Name; name != "" {
			return cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(name))
		}
	}

	return ""
}

// respondErr reports failures writing the response itself.
func (p *Pages) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	p.responder.Logger().Error("could not respond: "+err.Error(), nil)
}
