package router

import (
	"errors"
	"net/http"

	"github.com/xy-planning-network/switchback/guard"
	"github.com/xy-planning-network/switchback/http/req"
	"github.com/xy-planning-network/switchback/http/resp"
)

// ResolvePath is where Resolve is conventionally mounted.
const ResolvePath = "/_switchback/resolve"

// A ResolveQuery is the query string Resolve expects.
type ResolveQuery struct {
	Path string `schema:"path" validate:"required,localpath"`
}

// A ResolveResult describes how Pages would answer a request for Target.
type ResolveResult struct {
	Target    string            `json:"target"`
	Status    int               `json:"status"`
	Outcome   string            `json:"outcome,omitempty"`
	Location  string            `json:"location,omitempty"`
	Redirects []string          `json:"redirects,omitempty"`
	Route     string            `json:"route,omitempty"`
	Name      string            `json:"name,omitempty"`
	Params    map[string]string `json:"params,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// Resolve reports, as JSON, how the path in the "path" query param resolves for the requesting party
// without rendering any content.
// Clients use it to learn where a navigation ends up before fetching it.
//
// A missing or external path responds 400 with the validation errors.
func (p *Pages) Resolve(w http.ResponseWriter, r *http.Request) {
	var q ResolveQuery
	if err := p.parser.ParseQueryParams(r.URL.Query(), &q); err != nil {
		var verrs req.ValidationErrors
		if !errors.As(err, &verrs) {
			p.respondErr(w, r, p.responder.Json(w, r, resp.Code(http.StatusBadRequest)))
			return
		}

		p.respondErr(w, r, p.responder.Json(w, r, resp.Code(http.StatusBadRequest), resp.Data(verrs)))
		return
	}

	res, err := p.resolver.Resolve(r.Context(), q.Path, p.Capabilities(r))
	out := ResolveResult{
		Target:    q.Path,
		Status:    StatusOf(res, err),
		Redirects: res.Redirects,
	}

	if err != nil {
		out.Error = err.Error()
	}

	if err == nil && res.Redirected() {
		out.Location = res.Location()
	}

	if res.Found() {
		out.Outcome = res.Outcome.String()
		out.Route = res.Match.Pattern()
		out.Name = res.Match.Name()
		out.Params = res.Match.Params.Map()
	}

	p.respondErr(w, r, p.responder.Json(w, r, resp.Data(out)))
}

// StatusOf is the status code Pages answers a resolution with,
// before looking up the matched route's content.
func StatusOf(res guard.Resolution, err error) int {
	switch {
	case errors.Is(err, guard.ErrTooManyRedirects):
		return http.StatusLoopDetected
	case err != nil:
		return http.StatusInternalServerError
	case res.Redirected():
		return http.StatusFound
	case !res.Found():
		return http.StatusNotFound
	case res.Outcome.IsDeny():
		return http.StatusForbidden
	default:
		return http.StatusOK
	}
}
