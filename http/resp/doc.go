/*
The resp package provides a high-level API for responding to HTTP requests
with an easy way to configure the responses application-wide.

resp provides three main ways of responding to an HTTP request:
- rendering a page, either as the full layout or, for client navigation, the outlet fragment only
- rendering an error page
- redirecting

Whether a request asks for a fragment is read from the context flag middleware.InjectPartial sets,
falling back to the request's headers.
*/
package resp
