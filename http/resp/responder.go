package resp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"sync"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/session"
	tmpl "github.com/xy-planning-network/switchback/http/template"
	"github.com/xy-planning-network/switchback/logger"
)

const (
	responderFrames = 0

	defaultErrTmpl    = "tmpl/error.tmpl"
	defaultLayoutTmpl = "tmpl/layout.tmpl"
)

// Responder maintains reusable pieces for responding to HTTP requests.
// These are the forms of response Responder can execute:
//
//	Page
//	Error
//	Json
//	Redirect
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
//
// When handling a specific HTTP request, calling code supplies additional data, structure,
// and so forth through Fn functions.
type Responder struct {
	logger logger.Logger

	// Initialized template parser
	parser *tmpl.Parser

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool

	// Error message to use for "contact us" style client-side error messages,
	// i.e., those set in a session.Flash
	contactErrMsg string

	// Root URL the responder is listening on, also used when in an error state
	rootURL *url.URL

	// The environment and filesystem static assets are looked up with
	env    switchback.Environment
	assets fs.FS

	// Pulls values out of the *http.Request.Context for the layout
	injector ContextInjector

	templates struct {
		// Root template wrapping page content on full page loads
		layout string

		// Template rendering a status page
		err string
	}
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		env:      switchback.Development,
		injector: NoopInjector{},
		pool:     &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	d.templates.err = defaultErrTmpl
	d.templates.layout = defaultLayoutTmpl

	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(responderFrames)
	}

	if d.parser == nil {
		d.parser = tmpl.NewParser(nil)
	}

	d.parser.AddFn(tmpl.Nonce())
	d.parser.AddFn(tmpl.PartialHeader())
	d.parser.AddFn(tmpl.RootURL(d.rootURL))
	d.parser.AddFn(tmpl.Env(d.env))
	d.parser.AddFn("assetURI", tmpl.AssetURI(d.rootURL, d.env, d.assets))

	return d
}

// Logger exposes the logger.Logger the Responder reports through.
func (doer *Responder) Logger() logger.Logger { return doer.logger }

// page is the data the layout template renders.
type page struct {
	Content template.HTML
	Context map[string]any
	Data    any
	Flashes []session.Flash
	Path    string
	Title   string
}

// errPage is the data the error template renders.
type errPage struct {
	Message    string
	Status     int
	StatusText string
}

// Page writes the content set by Content.
//
// When the request asks for a fragment, only the content is written.
// Otherwise, the content is rendered inside the layout template
// alongside the session's flashes.
//
// The default status code is 200.
func (doer *Responder) Page(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return doer.handleHtmlError(w, r, err)
	}

	if rr.closeBody {
		defer r.Body.Close()
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	return doer.write(w, r, rr)
}

// Error renders the error template for code inside the page,
// logging err at ERROR for server errors and at INFO otherwise.
//
// Msg overrides the message shown, which defaults to one matching code.
func (doer *Responder) Error(w http.ResponseWriter, r *http.Request, code int, err error, opts ...Fn) error {
	rr, nested := doer.do(w, r, opts...)
	if nested != nil {
		return doer.handleHtmlError(w, r, fmt.Errorf("%w: %s", nested, err))
	}

	if rr.closeBody {
		defer r.Body.Close()
	}

	if err != nil {
		lc := newLogContext(r, err, nil)
		lc.Route = rr.route
		if code >= http.StatusInternalServerError {
			doer.logger.Error(err.Error(), lc)
		} else {
			doer.logger.Info(err.Error(), lc)
		}
	}

	rr.code = code
	if rr.msg == "" {
		rr.msg = doer.errMsg(code)
	}

	t, nested := doer.parser.Parse(doer.templates.err)
	if nested != nil {
		return doer.handleHtmlError(w, r, fmt.Errorf("cannot parse: %w", nested))
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	data := errPage{Message: rr.msg, Status: code, StatusText: http.StatusText(code)}
	if nested := t.Execute(b, data); nested != nil {
		return doer.handleHtmlError(w, r, nested)
	}

	rr.content = template.HTML(b.String())
	if rr.title == "" {
		rr.title = data.StatusText
	}

	return doer.write(w, r, rr)
}

// Err wraps http.Error(), logging the error causing the failure state.
//
// Use in exceptional circumstances when no Redirect or Page can occur.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	rr, nested := doer.do(w, r, append(opts, Err(err))...)
	defer r.Body.Close()
	if nested != nil {
		err = fmt.Errorf("%w: %s", err, nested)
	}

	var msg string
	if err != nil {
		msg = err.Error()
	}

	code := http.StatusInternalServerError
	if rr != nil && rr.code != 0 {
		code = rr.code
	}

	http.Error(w, msg, code)
}

type jsonSchema struct {
	D any `json:"data,omitempty"`
}

// Json responds with the value set by Data encoded as JSON under "data".
//
// The default status code is 200.
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.closeBody {
		defer r.Body.Close()
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(jsonSchema{D: rr.data}); err != nil {
		doer.logger.Error(err.Error(), newLogContext(r, err, nil))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(rr.code)
	_, err = b.WriteTo(w)

	return err
}

// Redirect calls http.Redirect, given Url() set the redirect destination.
// If Url() is not passed in opts, then ToRoot() sets the redirect destination.
//
// The default response status code is 302.
//
// If Code() set the status code to something other than standard redirect 3xx statuses,
// Redirect overwrites the status code with an appropriate 3xx status code.
func (doer *Responder) Redirect(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	if doer.rootURL != nil {
		opts = append([]Fn{ToRoot()}, opts...)
	}

	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.closeBody {
		defer r.Body.Close()
	}

	if rr.url == nil {
		return fmt.Errorf("%w: cannot redirect, no resp.url", ErrMissingData)
	}

	switch {
	case rr.code >= http.StatusMultipleChoices && rr.code <= http.StatusPermanentRedirect:
		// NOTE: code is already a 3xx, so do nothing
	case rr.code >= http.StatusBadRequest && rr.code < http.StatusInternalServerError:
		rr.code = http.StatusSeeOther
	case rr.code >= http.StatusInternalServerError:
		rr.code = http.StatusTemporaryRedirect
	default:
		rr.code = http.StatusFound
	}

	http.Redirect(w, r, rr.url.String(), rr.code)
	return nil
}

// Session retrieves the session set in the context as a session.Session.
//
// If the context.Context has no value for switchback.SessionKey, ErrNotFound returns.
func (doer Responder) Session(ctx context.Context) (session.Session, error) {
	val := ctx.Value(switchback.SessionKey)
	if val == nil {
		return session.Session{}, fmt.Errorf("%w: no session found with %q", ErrNotFound, switchback.SessionKey)
	}

	s, ok := val.(session.Session)
	if !ok {
		return session.Session{}, fmt.Errorf("%w: is not session.Session, is %T", ErrInvalid, val)
	}

	return s, nil
}

// write sends rr.content as a fragment or wrapped in the layout.
func (doer *Responder) write(w http.ResponseWriter, r *http.Request, rr *Response) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if isPartial(r) {
		w.WriteHeader(rr.code)
		_, err := w.Write([]byte(rr.content))
		return err
	}

	t, err := doer.parser.Parse(doer.templates.layout)
	if err != nil {
		return doer.handleHtmlError(w, r, fmt.Errorf("cannot parse: %w", err))
	}

	p := page{
		Content: rr.content,
		Context: make(map[string]any),
		Data:    rr.data,
		Path:    r.URL.Path,
		Title:   rr.title,
	}
	doer.injector.Inject(p.Context, r.Context())

	if s, err := doer.Session(r.Context()); err == nil {
		p.Flashes = s.Flashes(w, r)
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := t.Execute(b, p); err != nil {
		return doer.handleHtmlError(w, r, err)
	}

	w.WriteHeader(rr.code)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

// do applies all options to the passed in http.ResponseWriter and *http.Request.
//
// Calling code ought to pass Options in the correct order.
// An option requiring something set by another one should come after.
// do nonetheless attempts to retry calling functional options until all do not return errors or,
// a set of options unable to not return errors is reached.
//
// Should all options apply successfully, do returns a validly formed *Response.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{
		closeBody: true,
		w:         w,
		r:         r,
	}

	var err error
	redos := make([]Fn, 0)
	for _, opt := range opts {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			if err = opt(*doer, resp); err != nil {
				redos = append(redos, opt)
			}
		}
	}

	i := -1
	for i != len(redos) {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			// NOTE: because doer.redo shrinks redos,
			// stop once a pass leaves its length unchanged.
			i = len(redos)
			redos = doer.redo(resp, redos...)
		}
	}

	err = nil
	for _, opt := range redos {
		nested := opt(*doer, resp)
		if err == nil {
			err = nested
			continue
		}

		err = fmt.Errorf("%w: %s", err, nested)
	}

	if err != nil {
		return resp, err
	}

	return resp, nil
}

// handleHtmlError reports err and falls back to a bare 500.
func (doer *Responder) handleHtmlError(w http.ResponseWriter, r *http.Request, err error) error {
	doer.logger.Error(err.Error(), newLogContext(r, err, nil))
	http.Error(w, doer.contactMsg(), http.StatusInternalServerError)
	return err
}

// redo applies as many Options as it can, returning those Options that continue to throw an error.
func (doer *Responder) redo(r *Response, opts ...Fn) []Fn {
	bad := make([]Fn, 0)
	for _, opt := range opts {
		if err := opt(*doer, r); err != nil {
			bad = append(bad, opt)
		}
	}

	return bad
}

func (doer Responder) contactMsg() string {
	if doer.contactErrMsg != "" {
		return doer.contactErrMsg
	}

	return session.DefaultErrMsg
}

// errMsg picks the message an error page shows for code.
func (doer Responder) errMsg(code int) string {
	switch code {
	case http.StatusForbidden, http.StatusUnauthorized:
		return session.NoAccessMsg
	case http.StatusNotFound:
		return session.NotFoundMsg
	default:
		return doer.contactMsg()
	}
}

// isPartial reads the flag middleware.InjectPartial sets,
// falling back to the request headers when that middleware did not run.
func isPartial(r *http.Request) bool {
	if _, ok := r.Context().Value(switchback.PartialKey).(bool); ok {
		return switchback.IsPartial(r.Context())
	}

	return switchback.IsPartialRequest(r)
}
