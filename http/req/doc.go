/*
Package req provides ergonomics for handling an HTTP request.

Package req parses payloads encoded in query parameters into a pointer to a struct.
That struct ought to leverage the appropriate struct tags for performing two tasks.
First, matching keys in the payload to fields on the struct with "schema" tags.
Second, validating the payload's data meets requirements with "validate" tags.

Besides the rules github.com/go-playground/validator/v10 ships with,
"localpath" requires a path inside the app, such as a navigation target:
it starts with a single "/" and names no scheme or host.

Decoding and validation issues are translated to [ValidationErrors]
in order to provide a consistent interface for reporting them back to a client.
*/
package req
