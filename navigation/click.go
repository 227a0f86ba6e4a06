package navigation

import (
	"context"
	"strings"
)

// A Click is a click on an anchor element.
type Click struct {
	// Href is the anchor's href attribute.
	Href string

	// Button is the mouse button pressed; 0 is the primary button.
	Button int

	Alt, Ctrl, Meta, Shift bool

	// Target is the anchor's target attribute.
	Target string

	// Download reports whether the anchor carries a download attribute.
	Download bool

	// DefaultPrevented reports whether another handler already took the click.
	DefaultPrevented bool
}

// Intercepts reports whether c should navigate in place.
func (c *Controller) Intercepts(click Click) bool {
	if click.DefaultPrevented || click.Button != 0 || click.Download {
		return false
	}

	if click.Alt || click.Ctrl || click.Meta || click.Shift {
		return false
	}

	if click.Target != "" && !strings.EqualFold(click.Target, "_self") {
		return false
	}

	href := strings.TrimSpace(click.Href)
	if href == "" || strings.HasPrefix(href, "#") {
		return false
	}

	u, err := c.resolve(href)
	if err != nil {
		return false
	}

	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	if u.Fragment != "" && c.local(u.String()) == c.State().CurrentURL {
		return false
	}

	return true
}

// HandleClick navigates in place when click is intercepted.
// A true result means the caller must prevent the browser's default navigation.
func (c *Controller) HandleClick(ctx context.Context, click Click) (bool, error) {
	if !c.Intercepts(click) {
		return false, nil
	}

	return true, c.NavigateTo(ctx, strings.TrimSpace(click.Href))
}
