// Package conduit defines the JSON wire types of the Conduit REST API served
// by conduit-mock: resource representations, response envelopes, request
// payloads and the error body.
//
// Every request and response body carries a single wrapper key named after
// the resource, for example {"article": {...}} or {"user": {...}}.
package conduit
