package resp

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/switchback/http/session"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w         http.ResponseWriter
	r         *http.Request
	closeBody bool
	code      int
	content   template.HTML
	data      any
	msg       string
	route     string
	title     string
	url       *url.URL
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Content sets the rendered page content placed in the layout's outlet,
// or written on its own when the request asks for a fragment.
//
// Used with Responder.Page.
func Content(html template.HTML) Fn {
	return func(_ Responder, r *Response) error {
		r.content = html
		return nil
	}
}

// Data stores the provided value for the layout template to render under .Data,
// or for Responder.Json to encode under "data".
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err sets the status code http.StatusInternalServerError and logs the error.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if e != nil {
			lc := newLogContext(r.r, e, map[string]any{"data": r.data})
			lc.Route = r.route
			d.logger.Error(e.Error(), lc)
		}

		return Code(http.StatusInternalServerError)(d, r)
	}
}

// Flash sets a flash message in the session.
//
// Requests without a session are left alone.
func Flash(flash session.Flash) Fn {
	return func(d Responder, r *Response) error {
		s, err := d.Session(r.r.Context())
		if err != nil {
			return nil
		}

		return s.SetFlash(r.w, r.r, flash)
	}
}

// GenericErr combines Err() and Flash() to log the passed in error
// and set a generic error flash in the session
// using either the string set by WithContactErrMsg or session.DefaultErrMsg.
func GenericErr(e error) Fn {
	return func(d Responder, r *Response) error {
		if err := Err(e)(d, r); err != nil {
			return err
		}

		return Flash(session.Flash{Class: session.FlashError, Msg: d.contactMsg()})(d, r)
	}
}

// Msg sets the message shown on an error page.
//
// Used with Responder.Error.
func Msg(msg string) Fn {
	return func(_ Responder, r *Response) error {
		r.msg = msg
		return nil
	}
}

// Param adds the query parameter to the response's URL.
//
// Used with Responder.Redirect.
func Param(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		if r.url == nil {
			return fmt.Errorf("%w: Url() has not been called", ErrMissingData)
		}

		q := r.url.Query()
		q.Add(key, val)
		r.url.RawQuery = q.Encode()
		return nil
	}
}

// Route names the route pattern being responded to, for logging.
func Route(pattern string) Fn {
	return func(_ Responder, r *Response) error {
		r.route = pattern
		return nil
	}
}

// Title sets the document title the layout renders.
//
// Used with Responder.Page.
func Title(t string) Fn {
	return func(_ Responder, r *Response) error {
		r.title = t
		return nil
	}
}

// ToRoot calls URL with the Responder's default, root URL.
func ToRoot() Fn {
	return func(d Responder, r *Response) error {
		if d.rootURL == nil {
			return fmt.Errorf("%w: no root URL", ErrBadConfig)
		}

		u := *d.rootURL
		r.url = &u
		return nil
	}
}

// Url parses raw the URL string and sets it in the *Response if successful.
//
// Used with Responder.Redirect.
func Url(u string) Fn {
	return func(_ Responder, r *Response) error {
		parsed, err := url.ParseRequestURI(u)
		if err != nil {
			return fmt.Errorf("%w: u is not a valid URL: %v", ErrInvalid, err)
		}

		r.url = parsed
		return nil
	}
}

// Warn sets a flash warning in the session and logs the warning.
func Warn(msg string) Fn {
	return func(d Responder, r *Response) error {
		lc := newLogContext(r.r, nil, map[string]any{"warn": msg})
		lc.Route = r.route
		d.logger.Warn(msg, lc)

		return Flash(session.Flash{Class: session.FlashWarning, Msg: msg})(d, r)
	}
}
