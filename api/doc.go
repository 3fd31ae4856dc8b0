// Package api provides the HTTP layer of the news service.
//
// # Architecture
//
// The package is structured as follows:
//
// - server.go: mux assembly, middleware chain and server lifecycle
// - handlers/: HTTP request handlers
// - dto/: request and response shapes
// - middleware/: request logging, feature flags and rate limiting
//
// # Endpoints
//
// Listing endpoints serve generated result sets cache-aside: the
// document cache is consulted first, then the exchange files, and the
// cache is refilled on a file hit. Generation requests are queued to
// the background worker and acknowledged with 202; the run itself
// never executes on a request goroutine.
//
// # Middleware
//
// Every request passes CORS, request logging with an X-Request-ID
// tag, feature flag installation and per-caller rate limiting, in
// that order. Rate limiting and the trending and briefing endpoints
// consult feature flags per request, so operators can toggle them
// without a restart.
//
// # Error Handling
//
// Domain errors map onto statuses in handlers/errors.go: not-found
// errors become 404, validation errors 400, upstream failures 503.
// Every error body carries the same {"error", "message"} shape.
package api
