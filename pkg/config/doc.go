// Package config provides configuration and seed data types for conduit-mock.
//
// Two kinds of documents are handled here:
//
//   - ServerConfiguration: runtime settings (listen address, base path,
//     latency simulation, CORS, rate limiting, request log size). Loaded
//     from a YAML or JSON file and overridden by CONDUIT_MOCK_* environment
//     variables and CLI flags.
//   - Seed: the initial contents of the entity stores (users, follows,
//     articles, favorites, comments, static tags). A default seed is
//     embedded in the binary; custom seed files are checked against an
//     embedded JSON Schema and then for referential integrity.
//
// The file format is detected from the extension: .yaml and .yml are read as
// YAML, everything else as JSON.
package config
