/*
Package route compiles route patterns into an immutable [Table] and resolves paths against it.

A pattern is split on "/" into segments. A segment is a literal, a ":name" parameter binding
exactly one path segment, or a trailing "*" binding whatever remains of the path under [WildcardKey].

Sibling routes are tried in the order they are declared and the first one that matches wins;
no reordering by specificity happens. Declare literal routes before parameter routes that overlap them,
and keep a lone "*" route last if a catch-all is wanted.

A route with children hands the path it did not consume to its children.
When none of them match, the route itself matches only if nothing is left over;
otherwise matching moves on to the next sibling.

Guards are attached to routes but are not run here; see the guard package.
*/
package route
