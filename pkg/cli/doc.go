// Package cli provides the command-line interface for conduit-mock.
//
// Commands:
//   - serve: run the mock Conduit API in the foreground
//   - routes: print the dispatch table
//   - openapi: export an OpenAPI 3 document describing the API
//   - seed: print the built-in fixtures, or validate seed files
//   - status, reset, requests: talk to a running server's admin endpoints
//   - version: show build information
//
// Usage:
//
//	conduit-mock serve --port 3001 --latency-scale 0.5
//	conduit-mock serve --seed fixtures.yaml --no-latency
//	conduit-mock openapi --format json > conduit.json
//	conduit-mock seed validate 'fixtures/**/*.yaml'
//	conduit-mock status --url http://localhost:3001
package cli
