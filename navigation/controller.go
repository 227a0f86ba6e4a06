package navigation

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/metrics"
)

// noHistory marks a navigation whose history entry is already in place.
const noHistory Kind = -1

// A Controller turns navigation intents into outlet swaps without reloading the page.
//
// Navigations may overlap. Each one captures the generation it started with
// and its result is applied only if no newer navigation has started since;
// older results are dropped when they arrive. In-flight fetches are never cancelled.
type Controller struct {
	mu    sync.Mutex
	state State

	history History
	doc     Document
	fetcher Fetcher

	origin       *url.URL
	logger       logger.Logger
	metrics      *metrics.Collector
	maxRedirects int
}

// New constructs a Controller and subscribes it to h's popstate notifications.
// Without WithOrigin, a Fetcher reporting its Origin, such as an HTTPFetcher, sets it.
func New(h History, d Document, f Fetcher, opts ...Option) *Controller {
	c := &Controller{
		history:      h,
		doc:          d,
		fetcher:      f,
		logger:       logger.New(),
		maxRedirects: DefaultMaxRedirects,
	}
	for _, opt := range opts {
		opt(c)
	}

	if o, ok := f.(interface{ Origin() *url.URL }); ok && c.origin == nil {
		WithOrigin(o.Origin())(c)
	}

	c.state = State{
		CurrentURL:      c.local(h.Current()),
		ScrollPositions: make(map[string]int),
	}

	h.OnPopState(func(u string) {
		if err := c.HandlePopState(context.Background(), u); err != nil {
			c.logger.Warn("popstate navigation failed", &logger.LogContext{Error: err, Path: u})
		}
	})

	return c
}

// State returns a copy of the Controller's state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// NavigateTo navigates to target, pushing a history entry unless WithReplace is given.
//
// NavigateTo blocks until the navigation is applied, fails, or is superseded.
// A superseded navigation returns nil.
func (c *Controller) NavigateTo(ctx context.Context, target string, opts ...NavigateOption) error {
	var o navOptions
	for _, opt := range opts {
		opt(&o)
	}

	u, err := c.resolve(target)
	if err != nil {
		return err
	}

	kind := Push
	if o.replace {
		kind = Replace
	}

	return c.navigate(ctx, c.local(u.String()), kind, o)
}

// HandlePopState navigates to the entry the user moved to in history.
// It never adds a history entry and restores the scroll offset last seen at target.
func (c *Controller) HandlePopState(ctx context.Context, target string) error {
	return c.navigate(ctx, c.local(target), Pop, navOptions{})
}

func (c *Controller) navigate(ctx context.Context, target string, kind Kind, o navOptions) error {
	c.mu.Lock()
	from := c.state.CurrentURL
	c.state.ScrollPositions[from] = c.doc.ScrollY()
	c.state.Generation++
	token := c.state.Generation
	c.state.PendingURL = target
	c.doc.SetLoading(true)
	c.mu.Unlock()

	c.logger.Debug(fmt.Sprintf("navigation %d started", token), &logger.LogContext{Path: target})

	var (
		redirects []string
		historyOp = kind
		current   = target
	)
	for {
		resp, err := c.fetcher.Fetch(ctx, current)
		if err != nil {
			return c.fail(token, current, &FetchError{URL: current, Err: err})
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return c.fail(token, current, &FetchError{URL: current, StatusCode: resp.StatusCode})
		}

		if resp.Redirected && c.external(resp.URL) {
			return c.fail(token, current, fmt.Errorf("%w: redirected to %s", ErrCrossOrigin, resp.URL))
		}

		final := c.local(resp.URL)
		if !resp.Redirected || final == "" || final == current {
			return c.apply(token, applied{
				from:      from,
				url:       current,
				kind:      kind,
				historyOp: historyOp,
				body:      resp.Body,
				redirects: redirects,
				noScroll:  o.noScroll,
			})
		}

		if len(redirects) >= c.maxRedirects {
			chain := append(append([]string{target}, redirects...), final)
			return c.fail(token, final, fmt.Errorf("%w: %s", ErrTooManyRedirects, strings.Join(chain, " -> ")))
		}

		if !c.follow(token, final, historyOp) {
			return nil
		}

		redirects = append(redirects, final)
		historyOp = noHistory
		current = final
	}
}

// follow records the redirect target in history before it is fetched.
func (c *Controller) follow(token uint64, final string, op Kind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.state.Generation {
		c.superseded(token, final)
		return false
	}

	switch op {
	case Push:
		c.history.Push(final)
	case Replace, Pop:
		c.history.Replace(final)
	}
	c.state.PendingURL = final

	return true
}

type applied struct {
	from      string
	url       string
	kind      Kind
	historyOp Kind
	body      string
	redirects []string
	noScroll  bool
}

func (c *Controller) apply(token uint64, a applied) error {
	c.mu.Lock()
	if token != c.state.Generation {
		c.superseded(token, a.url)
		c.mu.Unlock()
		return nil
	}

	switch a.historyOp {
	case Push:
		c.history.Push(a.url)
	case Replace:
		c.history.Replace(a.url)
	}

	c.doc.ReplaceOutlet(a.body)

	if !a.noScroll {
		y := 0
		if a.kind == Pop {
			y = c.state.ScrollPositions[a.url]
		}
		c.doc.ScrollTo(y)
	}

	c.doc.SetActiveLink(a.url)
	c.state.CurrentURL = a.url
	c.state.PendingURL = ""
	c.doc.SetLoading(false)
	c.mu.Unlock()

	scripts, err := ExtractScripts(a.body)
	if err != nil {
		c.logger.Warn("unable to parse scripts from navigation content", &logger.LogContext{Error: err, Path: a.url})
	}

	for _, s := range scripts {
		if !s.Executable() {
			continue
		}
		if err := c.doc.ExecuteScript(s); err != nil {
			c.logger.Warn("script failed after navigation", &logger.LogContext{Error: err, Path: a.url})
		}
	}

	c.doc.Dispatch(Event{
		ID:        uuid.NewString(),
		Type:      EventChange,
		Kind:      a.kind,
		URL:       a.url,
		Previous:  a.from,
		Redirects: a.redirects,
		At:        time.Now(),
	})
	c.metrics.ObserveNavigation("applied")

	return nil
}

func (c *Controller) fail(token uint64, target string, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.state.Generation {
		c.superseded(token, target)
		return nil
	}

	c.state.PendingURL = ""
	c.doc.SetLoading(false)
	c.doc.ShowError(err)

	c.logger.Warn("navigation failed", &logger.LogContext{Error: err, Path: target})
	c.metrics.ObserveNavigation("failed")

	return err
}

// superseded must be called with mu held.
func (c *Controller) superseded(token uint64, target string) {
	c.logger.Debug(
		fmt.Sprintf("%s: %d behind %d", ErrSuperseded, token, c.state.Generation),
		&logger.LogContext{Path: target},
	)
	c.metrics.ObserveNavigation("superseded")
}

// resolve parses target relative to the current URL and rejects other origins.
func (c *Controller) resolve(target string) (*url.URL, error) {
	ref, err := url.Parse(target)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	base := c.base(c.state.CurrentURL)
	c.mu.Unlock()

	u := base.ResolveReference(ref)
	if !c.sameOrigin(u) {
		return nil, fmt.Errorf("%w: %s", ErrCrossOrigin, target)
	}

	return u, nil
}

func (c *Controller) base(current string) *url.URL {
	b := &url.URL{Path: "/"}
	if c.origin != nil {
		b.Scheme, b.Host = c.origin.Scheme, c.origin.Host
	}

	if cur, err := url.Parse(current); err == nil {
		b.Path = cur.Path
		b.RawQuery = cur.RawQuery
	}
	return b
}

func (c *Controller) sameOrigin(u *url.URL) bool {
	if u.Host == "" {
		return true
	}
	if c.origin == nil {
		return false
	}
	return strings.EqualFold(u.Scheme, c.origin.Scheme) && strings.EqualFold(u.Host, c.origin.Host)
}

func (c *Controller) external(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Host != "" && !c.sameOrigin(u)
}

// local reduces a same origin URL to its path and query.
func (c *Controller) local(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	if u.Host != "" && !c.sameOrigin(u) {
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
