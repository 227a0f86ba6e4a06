/*
start-here provides a toy example use of switchback's http stack,
focusing on the basics of:

(1) constructing a default Ranger from routes declared in code;
(2) guarding routes with route.GuardFunc;
(3) rendering page content with a content.RendererFunc;
(4) and binding a plain handler next to the pages.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/xy-planning-network/switchback/content"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/ranger"
	"github.com/xy-planning-network/switchback/route"
)

// retired sends visitors of a retired page to its replacement.
func retired(target string) route.Guard {
	return route.GuardFunc(func(context.Context, *route.GuardContext) (route.Outcome, error) {
		return route.Redirect(target), nil
	})
}

var errNotNumeric = errors.New("product ids are numeric")

// numericID denies product ids that are not all digits.
var numericID = route.GuardFunc(func(_ context.Context, gc *route.GuardContext) (route.Outcome, error) {
	id := gc.Params.ByName("id")
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return route.Deny(errNotNumeric), nil
	}
	return route.Allow(), nil
})

var routes = []route.Route{
	{Path: "/", Name: "home"},
	{Path: "/products", Name: "products", Children: []route.Route{
		{Path: "", Name: "list"},
		{Path: ":id", Name: "detail", Guard: numericID},
	}},
	{Path: "/catalog", Name: "catalog", Guard: retired("/products")},
}

// render writes a heading for every page and lists products on the products page.
func render(_ context.Context, m *route.Match) (template.HTML, error) {
	page := content.NewPage(m)
	switch page.Name {
	case "home":
		return `<h1>Home</h1><a href="/products">Products</a>`, nil
	case "products.list":
		return `<h1>Products</h1><a href="/products/1">One</a>`, nil
	case "products.detail":
		return template.HTML(fmt.Sprintf("<h1>Product %s</h1>", template.HTMLEscapeString(page.Params["id"]))), nil
	default:
		return "", content.ErrNotFound
	}
}

func newApp() (*ranger.Ranger, error) {
	rng, err := ranger.New(
		ranger.WithEnv("DEVELOPMENT"),
		ranger.WithRoutes(routes),
		ranger.WithRenderer(content.RendererFunc(render)),
	)
	if err != nil {
		return nil, err
	}

	rng.Handle(router.Route{
		Path:   "/healthz",
		Method: http.MethodGet,
		Handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
	})

	return rng, nil
}

func main() {
	rng, err := newApp()
	if err != nil {
		log.Fatal(err)
	}

	if err := rng.Guide(); err != nil {
		log.Fatal(err)
	}
}
