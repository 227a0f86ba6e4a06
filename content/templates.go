package content

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"

	tmpl "github.com/xy-planning-network/switchback/http/template"
	"github.com/xy-planning-network/switchback/route"
)

const templateExt = ".tmpl"

// Templates renders Go templates named after the matched route.
type Templates struct {
	parser *tmpl.Parser
}

// NewTemplates constructs Templates reading pages from dir.
// opts configure the parser, e.g. to add functions pages call.
func NewTemplates(dir fs.FS, opts ...tmpl.ParserOptFn) *Templates {
	return &Templates{parser: tmpl.NewParser([]fs.FS{dir}, opts...)}
}

// NewTemplatesWith constructs Templates around an existing parser.
func NewTemplatesWith(p *tmpl.Parser) *Templates { return &Templates{parser: p} }

// Render executes <PageName>.tmpl with a Page.
func (t *Templates) Render(ctx context.Context, m *route.Match) (template.HTML, error) {
	name := PageName(m) + templateExt
	if !t.parser.Exists(name) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := t.parser.Parse(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %s", ErrRender, name, err)
	}

	b := new(bytes.Buffer)
	if err := page.Execute(b, NewPage(m)); err != nil {
		return "", fmt.Errorf("%w: %s: %s", ErrRender, name, err)
	}

	return template.HTML(b.String()), nil
}
