// Package portability exports the Conduit dispatch table as an OpenAPI 3
// document.
//
// Request and response schemas are generated from the wire types in
// package conduit with kin-openapi's openapi3gen, so the document always
// matches what the server actually serves.
//
// Basic export example:
//
//	doc, err := portability.NewOpenAPI(engine.Routes(), portability.Options{BasePath: "/api"})
//	data, err := portability.Marshal(doc, config.FormatYAML)
package portability
