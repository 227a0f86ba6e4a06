package resp

import (
	"io/fs"
	"net/url"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/template"
	"github.com/xy-planning-network/switchback/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithAssets sets the filesystem static assets are found in for the layout's assetURI function.
func WithAssets(assets fs.FS) ResponderOptFn {
	return func(d *Responder) {
		d.assets = assets
	}
}

// WithContactErrMsg sets the error message to use for error Flashes and error pages.
//
// We recommend using session.ContactUsErr as a template.
func WithContactErrMsg(msg string) ResponderOptFn {
	return func(d *Responder) {
		d.contactErrMsg = msg
	}
}

// WithCtxKeys sets the keys whose values in the *http.Request.Context
// the layout renders under .Context.
func WithCtxKeys(keys ...switchback.Key) ResponderOptFn {
	return func(d *Responder) {
		d.injector = DefaultInjector{Keys: keys}
	}
}

// WithEnv sets the environment the Responder renders for.
func WithEnv(env switchback.Environment) ResponderOptFn {
	return func(d *Responder) {
		d.env = env
	}
}

// WithErrTemplate sets the template identified by the filepath to use for rendering
// error pages in place of the embedded tmpl/error.tmpl.
func WithErrTemplate(fp string) ResponderOptFn {
	return func(d *Responder) {
		d.templates.err = fp
	}
}

// WithLayoutTemplate sets the template identified by the filepath wrapping page content
// on full page loads in place of the embedded tmpl/layout.tmpl.
func WithLayoutTemplate(fp string) ResponderOptFn {
	return func(d *Responder) {
		d.templates.layout = fp
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, a default logger.SwitchbackLogger will be configured.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithParser sets the *template.Parser to use for parsing HTML templates.
func WithParser(p *template.Parser) ResponderOptFn {
	return func(d *Responder) {
		d.parser = p
	}
}

// WithRootURL sets the provided URL after parsing it into a *url.URL to use for rendering and redirecting
//
// NOTE: If u fails parsing by url.ParseRequestURI, the root URL becomes https://example.com
func WithRootURL(u string) ResponderOptFn {
	good, err := url.ParseRequestURI(u)
	if err != nil {
		good, _ = url.ParseRequestURI("https://example.com")
	}

	return func(d *Responder) {
		d.rootURL = good
	}
}
