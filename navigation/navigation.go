package navigation

import (
	"context"
	"time"
)

// EventChange is the type of the Event dispatched after every applied navigation.
const EventChange = "navigation:change"

// A History is the browser's session history.
type History interface {
	// Push adds a new entry for url.
	Push(url string)

	// Replace swaps the current entry for url.
	Replace(url string)

	// Current is the URL of the current entry.
	Current() string

	// OnPopState registers fn to run whenever the user moves through history.
	OnPopState(fn func(url string))
}

// A Document is the page the Controller swaps content into.
type Document interface {
	// ScrollY is the current vertical scroll offset.
	ScrollY() int

	// ScrollTo scrolls the page to the vertical offset y.
	ScrollTo(y int)

	// ReplaceOutlet replaces the markup of the content outlet.
	ReplaceOutlet(html string)

	// SetActiveLink marks navigation links whose URL equals url as active.
	SetActiveLink(url string)

	// ExecuteScript inserts a fresh script element built from s so it runs.
	ExecuteScript(s Script) error

	// Dispatch fires e for other components to observe.
	Dispatch(e Event)

	// SetLoading toggles the loading indicator.
	SetLoading(loading bool)

	// ShowError surfaces a transient error indicator.
	ShowError(err error)
}

// A Fetcher retrieves the partial content for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

// A Response is what a Fetcher retrieved.
type Response struct {
	// URL is the final URL after any redirects were followed.
	URL string

	// Redirected reports whether URL differs from the one requested.
	Redirected bool

	StatusCode int
	Body       string
}

// A Kind is how a navigation entered history.
type Kind int

const (
	Push Kind = iota
	Replace
	Pop
)

func (k Kind) String() string {
	switch k {
	case Push:
		return "push"
	case Replace:
		return "replace"
	case Pop:
		return "pop"
	default:
		return "unknown"
	}
}

// An Event describes an applied navigation.
type Event struct {
	ID        string
	Type      string
	Kind      Kind
	URL       string
	Previous  string
	Redirects []string
	At        time.Time
}

// State is the Controller's view of where the page is and where it is going.
type State struct {
	// CurrentURL is the URL whose content the outlet shows.
	CurrentURL string

	// PendingURL is set only while a navigation is in flight.
	PendingURL string

	// Generation increases with every navigation started.
	Generation uint64

	// ScrollPositions remembers the last scroll offset of each URL departed from.
	ScrollPositions map[string]int
}

func (s State) clone() State {
	out := s
	out.ScrollPositions = make(map[string]int, len(s.ScrollPositions))
	for k, v := range s.ScrollPositions {
		out.ScrollPositions[k] = v
	}
	return out
}
