/*
Package router defines how a switchback app routes HTTP requests.

[Router] is a thin wrapper around [mux.Router].
A path and an HTTP method comprise a [Route],
and middlewares added to a Route run in the order they appear before its handler.
Middlewares registered with OnEveryRequest run before those.

Pages are not registered as Routes.
Instead, one [Pages] handler is installed with CatchAll,
resolving every remaining GET against the route table and its guards:

	allowed        200, the outlet fragment or the full layout
	redirected     302 to the final resolved target
	denied         403
	not matched    404
	redirect loop  508

Pages.Resolve answers the same question as JSON without rendering content;
mount it at ResolvePath.
*/
package router
