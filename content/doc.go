/*
Package content produces the HTML placed in a page's outlet once a path has resolved to a route.

A Renderer receives the *route.Match for the path and returns the fragment.
Templates renders Go templates and Markdown renders sanitized markdown,
both looked up by the matched route's name:

	products.detail  =>  products/detail.tmpl, products/detail.md

Chain tries renderers in order and Cached memoizes fragments in a Cache,
either a MemoryCache or a RedisCache.
*/
package content
