// Package navtest provides in-memory implementations of the navigation collaborators for tests.
package navtest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/xy-planning-network/switchback/navigation"
)

var (
	_ navigation.History  = &History{}
	_ navigation.Document = &Document{}
	_ navigation.Fetcher  = &Fetcher{}
)

// ErrNoPage is returned by Fetcher for URLs without a Page.
var ErrNoPage = errors.New("no page")

// History is an in-memory session history.
type History struct {
	mu        sync.Mutex
	entries   []string
	index     int
	listeners []func(string)
}

// NewHistory constructs a History whose only entry is start.
func NewHistory(start string) *History {
	return &History{entries: []string{start}}
}

func (h *History) Push(url string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries[:h.index+1], url)
	h.index = len(h.entries) - 1
}

func (h *History) Replace(url string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries[h.index] = url
}

func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.entries[h.index]
}

func (h *History) OnPopState(fn func(string)) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.listeners = append(h.listeners, fn)
}

// Entries returns a copy of every entry, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]string(nil), h.entries...)
}

// Back moves one entry back and notifies listeners synchronously.
func (h *History) Back() bool { return h.Go(-1) }

// Forward moves one entry forward and notifies listeners synchronously.
func (h *History) Forward() bool { return h.Go(1) }

// Go moves delta entries through history and notifies listeners synchronously.
func (h *History) Go(delta int) bool {
	h.mu.Lock()
	next := h.index + delta
	if delta == 0 || next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = next
	url := h.entries[next]
	listeners := append([]func(string){}, h.listeners...)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(url)
	}
	return true
}

// Document records every call made to it.
type Document struct {
	mu      sync.Mutex
	scrollY int
	outlet  string
	active  string
	loading bool
	calls   []string
	scripts []navigation.Script
	events  []navigation.Event
	errs    []error

	// ScriptErr, when set, is returned from ExecuteScript.
	ScriptErr error
}

func (d *Document) record(call string) { d.calls = append(d.calls, call) }

func (d *Document) ScrollY() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrollY
}

func (d *Document) ScrollTo(y int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scrollY = y
	d.record(fmt.Sprintf("scroll:%d", y))
}

// UserScroll moves the scroll offset as a user would, without recording a call.
func (d *Document) UserScroll(y int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scrollY = y
}

func (d *Document) ReplaceOutlet(html string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.outlet = html
	d.record("outlet")
}

func (d *Document) SetActiveLink(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active = url
	d.record("active:" + url)
}

func (d *Document) ExecuteScript(s navigation.Script) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scripts = append(d.scripts, s)
	d.record("script")
	return d.ScriptErr
}

func (d *Document) Dispatch(e navigation.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
	d.record("dispatch:" + e.Type)
}

func (d *Document) SetLoading(loading bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = loading
	d.record(fmt.Sprintf("loading:%t", loading))
}

func (d *Document) ShowError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errs = append(d.errs, err)
	d.record("error")
}

func (d *Document) Outlet() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.outlet
}

func (d *Document) Active() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

func (d *Document) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

func (d *Document) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

func (d *Document) Scripts() []navigation.Script {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]navigation.Script(nil), d.scripts...)
}

func (d *Document) Events() []navigation.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]navigation.Event(nil), d.events...)
}

func (d *Document) Errors() []error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]error(nil), d.errs...)
}

// A Page is what Fetcher serves for a URL.
type Page struct {
	Body   string
	Status int

	// RedirectTo makes the fetch end up at another Page, as a followed redirect would.
	RedirectTo string

	// Err fails the fetch.
	Err error
}

// A Gate holds a fetch until released.
type Gate struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

// Started is closed once the held fetch begins.
func (g *Gate) Started() <-chan struct{} { return g.started }

// Release lets the held fetch finish.
func (g *Gate) Release() { close(g.release) }

// Fetcher serves Pages from memory.
type Fetcher struct {
	mu    sync.Mutex
	pages map[string]Page
	gates map[string]*Gate
	calls []string
}

func NewFetcher(pages map[string]Page) *Fetcher {
	if pages == nil {
		pages = make(map[string]Page)
	}
	return &Fetcher{pages: pages, gates: make(map[string]*Gate)}
}

// Set adds or replaces the Page served for url.
func (f *Fetcher) Set(url string, p Page) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[url] = p
}

// Hold makes the next fetch of url wait until the returned Gate is released.
func (f *Fetcher) Hold(url string) *Gate {
	f.mu.Lock()
	defer f.mu.Unlock()

	g := &Gate{started: make(chan struct{}), release: make(chan struct{})}
	f.gates[url] = g
	return g
}

// Calls lists every fetched URL in order.
func (f *Fetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*navigation.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	g := f.gates[url]
	delete(f.gates, url)
	f.mu.Unlock()

	if g != nil {
		g.once.Do(func() { close(g.started) })
		select {
		case <-g.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	p, ok := f.pages[url]
	f.mu.Unlock()
	if !ok {
		return &navigation.Response{URL: url, StatusCode: http.StatusNotFound}, nil
	}

	if p.Err != nil {
		return nil, p.Err
	}

	final := url
	if p.RedirectTo != "" {
		final = p.RedirectTo
		f.mu.Lock()
		p, ok = f.pages[final]
		f.mu.Unlock()
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoPage, final)
		}
	}

	status := p.Status
	if status == 0 {
		status = http.StatusOK
	}

	return &navigation.Response{
		URL:        final,
		Redirected: final != url,
		StatusCode: status,
		Body:       p.Body,
	}, nil
}
