// Package server provides HTTP routing, middleware, and the handlers for the
// party playlist service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally, so route
// patterns may carry path wildcards like /rooms/{room}/songs.
//
// # Handlers
//
// Three handlers implement the [Handler] interface and register their own routes:
//
//   - [SearchHandler] : GET /search?q= — forwards the catalog provider's raw
//     track search response; any upstream failure becomes a generic 500.
//   - [RoomsHandler] : GET/POST /rooms/{room}/songs and POST /songs/{id}/vote —
//     the queue API. Votes are atomic server-side increments.
//   - [EventsHandler] : GET /rooms/{room}/events — a server-sent event stream
//     of the room's change notifications, the cue for clients to reload.
//
// Every endpoint is unauthenticated and CORS-open: rooms are shared string
// keys with no membership or access control.
package server
