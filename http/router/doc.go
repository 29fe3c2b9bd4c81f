/*
Package router resolves dashboard paths to the views rendering them
and routes HTTP requests to their handlers.

# Route table

A [Table] is the dashboard's fixed, ordered set of [Route]s, built once with [NewTable] or [DefaultTable].
[*Table.Resolve] returns exactly one [Match] for any path:
literal paths are tried first, then parameterized paths like "/coin/:id", each in the order declared.
Anything else matches the catch-all route, which redirects to "/".
Unknown paths never resolve to a "not found" view.

Matching is delegated to a [mux.Router] compiled from the Table,
so ":id" segments bind exactly what a mux "{id}" variable would: one non-empty path segment.

A Route's [view.Loader] is not called when the Table is built.
[*Table.Load] calls it once a navigation to the Route commits.

# HTTP

[*Router] is a thin wrapper around [mux.Router] serving the client's build output,
API endpoints registered through [Endpoint]s,
and a catch-all handler passing every other request to the route table.
*/
package router
