package navigation

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/xy-planning-network/switchback"
)

const defaultMaxBody = 8 << 20

// An HTTPFetcher retrieves partial content over HTTP,
// marking each request so the server responds with the outlet fragment only.
type HTTPFetcher struct {
	base    *url.URL
	client  *http.Client
	maxBody int64
}

// A FetcherOpt configures an HTTPFetcher.
type FetcherOpt func(*HTTPFetcher)

// WithMaxBody bounds the size of a response body.
// Larger bodies fail the fetch with ErrBodyTooLarge.
func WithMaxBody(n int64) FetcherOpt {
	return func(f *HTTPFetcher) {
		if n > 0 {
			f.maxBody = n
		}
	}
}

// NewHTTPFetcher constructs an HTTPFetcher resolving URLs against base.
// A nil client uses http.DefaultClient.
func NewHTTPFetcher(base string, client *http.Client, opts ...FetcherOpt) (*HTTPFetcher, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%w: base url: %s", switchback.ErrNotValid, err)
	}

	if !u.IsAbs() {
		return nil, fmt.Errorf("%w: base url must be absolute: %s", switchback.ErrNotValid, base)
	}

	if client == nil {
		client = http.DefaultClient
	}

	f := &HTTPFetcher{base: u, client: client, maxBody: defaultMaxBody}
	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Origin is the scheme and host of the base URL.
// A Controller built without WithOrigin uses it.
func (f *HTTPFetcher) Origin() *url.URL {
	return &url.URL{Scheme: f.base.Scheme, Host: f.base.Host}
}

// Fetch GETs target, following redirects.
//
// The Response URL is reduced to its path and query when it shares the base URL's origin.
func (f *HTTPFetcher) Fetch(ctx context.Context, target string) (*Response, error) {
	ref, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	u := f.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(switchback.PartialHeader, switchback.PartialValue)
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, err
	}

	if int64(len(b)) > f.maxBody {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, f.maxBody)
	}

	final := u
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL
	}

	return &Response{
		URL:        f.relative(final),
		Redirected: final.String() != u.String(),
		StatusCode: resp.StatusCode,
		Body:       string(b),
	}, nil
}

func (f *HTTPFetcher) relative(u *url.URL) string {
	if !strings.EqualFold(u.Scheme, f.base.Scheme) || !strings.EqualFold(u.Host, f.base.Host) {
		return u.String()
	}

	out := u.EscapedPath()
	if out == "" {
		out = "/"
	}
	if u.RawQuery != "" {
		out += "?" + u.RawQuery
	}
	return out
}
