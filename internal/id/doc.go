// Package id provides identifier generation for the mock backend.
//
// It covers the three identifier shapes the server hands out:
//
//   - Sequence: process-wide monotonically increasing integers, used for
//     comment IDs and as the uniqueness suffix of article slugs
//   - Token: opaque bearer tokens issued on registration
//   - RequestID: UUIDs that tag each HTTP request and request-log entry
//
// Tokens are opaque strings. They are not signed and carry no claims.
package id
