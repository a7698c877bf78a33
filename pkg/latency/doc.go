// Package latency simulates network delay for mock API routes.
//
// Every route carries a default delay. A Simulator scales that delay and
// lets configured glob rules (matched with doublestar against the path
// relative to the API base path) override it. Waiting honours context
// cancellation so an abandoned request stops early and never reaches its
// handler.
package latency
