package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/microcosm-cc/bluemonday"
	"github.com/xy-planning-network/switchback/route"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

const markdownExt = ".md"

// Markdown renders markdown files named after the matched route,
// sanitizing the output before it reaches the page.
type Markdown struct {
	dir    fs.FS
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// A MarkdownOpt configures a Markdown renderer.
type MarkdownOpt func(*Markdown)

// WithPolicy replaces the default bluemonday.UGCPolicy.
func WithPolicy(p *bluemonday.Policy) MarkdownOpt {
	return func(m *Markdown) {
		m.policy = p
	}
}

// NewMarkdown constructs a Markdown renderer reading from dir.
// GitHub flavored markdown is enabled and headings get ids.
func NewMarkdown(dir fs.FS, opts ...MarkdownOpt) *Markdown {
	m := &Markdown{
		dir: dir,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: bluemonday.UGCPolicy(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Render converts <PageName>.md.
func (m *Markdown) Render(ctx context.Context, match *route.Match) (template.HTML, error) {
	name := PageName(match) + markdownExt
	src, err := fs.ReadFile(m.dir, name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	if err != nil {
		return "", fmt.Errorf("%w: %s: %s", ErrRender, name, err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	return m.Convert(src)
}

// Convert renders src to sanitized HTML.
func (m *Markdown) Convert(src []byte) (template.HTML, error) {
	b := new(bytes.Buffer)
	if err := m.md.Convert(src, b); err != nil {
		return "", fmt.Errorf("%w: %s", ErrRender, err)
	}

	return template.HTML(m.policy.SanitizeBytes(b.Bytes())), nil
}
