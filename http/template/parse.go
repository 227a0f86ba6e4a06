package template

import (
	"fmt"
	html "html/template"
	"io/fs"
	"path"
	"sync"
)

// Parser parses HTML templates from a stack of filesystems,
// falling back to the templates embedded in this package.
type Parser struct {
	fs  fs.FS
	fns html.FuncMap
}

// NewParser constructs a Parser searching dirs in order before the embedded templates.
func NewParser(dirs []fs.FS, opts ...ParserOptFn) *Parser {
	p := &Parser{fns: make(html.FuncMap)}
	for _, opt := range opts {
		opt(p)
	}

	var user []fs.FS
	for _, d := range dirs {
		if d != nil {
			user = append(user, d)
		}
	}

	p.fs = &mergeFS{
		cache:    make(map[string]fs.FS),
		userDirs: user,
		pkgDir:   pkgFS,
		Mutex:    sync.Mutex{},
	}

	return p
}

// AddFn includes the named function in the Parser's function map.
func (p *Parser) AddFn(name string, fn any) *Parser {
	if p.fns == nil {
		p.fns = make(html.FuncMap)
	}
	p.fns[name] = fn
	return p
}

// Parse parses the named files, naming the template after the first one.
// Empty names are skipped.
func (p *Parser) Parse(fps ...string) (*html.Template, error) {
	var names []string
	for _, fp := range fps {
		if fp != "" {
			names = append(names, fp)
		}
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w", ErrNoFiles)
	}

	return html.New(path.Base(names[0])).Funcs(p.fns).ParseFS(p.fs, names...)
}

// Exists reports whether name can be opened by the Parser.
func (p *Parser) Exists(name string) bool {
	f, err := p.fs.Open(name)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
