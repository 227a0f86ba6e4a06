/*
Package auth authenticates API style callers with JSON web tokens.

A token arrives either as an "Authorization: Bearer" header or a "jwt" query parameter.
(*Service).Inject verifies it and stashes its claims on the request context,
after which the Service answers route.Authenticator for that request,
so guards such as guard.Authenticated admit token holders the same way they admit signed in sessions.

Any combines the Service with other route.Authenticators, e.g. the session.
*/
package auth
