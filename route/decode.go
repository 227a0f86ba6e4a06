package route

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// A File is the on-disk form of a route table.
//
//	routes:
//	  - path: /account
//	    name: account
//	    guard: authenticated
//	    children:
//	      - path: settings
//	        name: settings
type File struct {
	Routes []FileRoute `yaml:"routes"`
}

// A FileRoute is a Route whose guard is referenced by name.
type FileRoute struct {
	Path     string      `yaml:"path"`
	Name     string      `yaml:"name,omitempty"`
	Guard    string      `yaml:"guard,omitempty"`
	Children []FileRoute `yaml:"children,omitempty"`
}

// Decode reads a YAML route table from r,
// resolving guard names against guards.
func Decode(r io.Reader, guards map[string]Guard) ([]Route, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty route file", ErrInvalidTable)
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidTable, err)
	}

	return resolveFile(f.Routes, guards)
}

// LoadFile opens the YAML route table at name and decodes it.
func LoadFile(name string, guards map[string]Guard) ([]Route, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f, guards)
}

func resolveFile(frs []FileRoute, guards map[string]Guard) ([]Route, error) {
	routes := make([]Route, 0, len(frs))
	for _, fr := range frs {
		r := Route{Path: fr.Path, Name: fr.Name}
		if fr.Guard != "" {
			g, ok := guards[fr.Guard]
			if !ok {
				return nil, fmt.Errorf("%w: %q on route %q", ErrUnknownGuard, fr.Guard, fr.Path)
			}
			r.Guard = g
		}

		if len(fr.Children) > 0 {
			children, err := resolveFile(fr.Children, guards)
			if err != nil {
				return nil, err
			}
			r.Children = children
		}

		routes = append(routes, r)
	}

	return routes, nil
}
