// Package engine serves the Conduit API over HTTP.
//
// A Server wires a stateful.Store behind an ordered route table, one entry
// per endpoint. Each request passes through the middleware chain (request
// id, panic recovery, access and request logging, CORS, optional rate
// limiting), is matched to the most specific route, waits for the route's
// simulated latency and only then reaches its handler. Handlers resolve the
// caller from the Authorization header and run a single store operation.
//
// Admin endpoints under /__admin report state, reset the store and expose
// the request log. They are never delayed.
package engine
