package navigation

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// A Script is a script element found in navigation content.
//
// Markup swapped into the outlet does not run its scripts,
// so each Script is handed to Document.ExecuteScript to be rebuilt as a new element
// carrying the same attributes and text and inserted to trigger execution.
type Script struct {
	Attrs []html.Attribute
	Text  string
}

// Attr returns the value of the named attribute.
func (s Script) Attr(key string) (string, bool) {
	for _, a := range s.Attrs {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// Src is the script's src attribute.
func (s Script) Src() string {
	src, _ := s.Attr("src")
	return src
}

// Executable reports whether a browser runs a script of this type.
func (s Script) Executable() bool {
	typ, ok := s.Attr("type")
	if !ok {
		return true
	}

	switch strings.ToLower(strings.TrimSpace(typ)) {
	case "", "module", "text/javascript", "application/javascript", "text/ecmascript", "application/ecmascript":
		return true
	default:
		return false
	}
}

// ExtractScripts finds every script element in fragment, in document order.
func ExtractScripts(fragment string) ([]Script, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil, err
	}

	var scripts []Script
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Script {
			s := Script{Attrs: append([]html.Attribute(nil), n.Attr...)}
			var text strings.Builder
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				if child.Type == html.TextNode {
					text.WriteString(child.Data)
				}
			}
			s.Text = text.String()
			scripts = append(scripts, s)
			return
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			visit(child)
		}
	}

	for _, n := range nodes {
		visit(n)
	}

	return scripts, nil
}
