package content

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"path"
	"strings"

	"github.com/xy-planning-network/switchback/route"
)

// A Renderer produces the outlet fragment for a resolved route.
// A Renderer with nothing for the route returns an error wrapping ErrNotFound.
type Renderer interface {
	Render(ctx context.Context, m *route.Match) (template.HTML, error)
}

// RendererFunc adapts a function into a Renderer.
type RendererFunc func(ctx context.Context, m *route.Match) (template.HTML, error)

func (f RendererFunc) Render(ctx context.Context, m *route.Match) (template.HTML, error) {
	return f(ctx, m)
}

// Chain tries each Renderer in order, moving on while they report ErrNotFound.
func Chain(renderers ...Renderer) Renderer {
	return RendererFunc(func(ctx context.Context, m *route.Match) (template.HTML, error) {
		for _, r := range renderers {
			html, err := r.Render(ctx, m)
			if errors.Is(err, ErrNotFound) {
				continue
			}

			return html, err
		}

		return "", fmt.Errorf("%w: %s", ErrNotFound, m.Path)
	})
}

// PageName is the slash separated file stem content for m is stored under.
//
// Named routes use their dotted chain name, "products.detail" becomes "products/detail".
// Unnamed chains fall back to the matched path, with "/" becoming "index".
func PageName(m *route.Match) string {
	if m == nil {
		return ""
	}

	if name := m.Name(); name != "" {
		return strings.ReplaceAll(name, ".", "/")
	}

	p := strings.Trim(path.Clean("/"+m.Path), "/")
	if p == "" {
		return "index"
	}

	return p
}

// Page is the data page templates execute with.
type Page struct {
	Name      string
	Params    map[string]string
	Path      string
	Query     string
	Remaining string
}

// NewPage collects the template data for m.
func NewPage(m *route.Match) Page {
	return Page{
		Name:      m.Name(),
		Params:    m.Params.Map(),
		Path:      m.Path,
		Query:     m.Query,
		Remaining: m.Remaining,
	}
}
