// Package requestlog records the requests served by the mock API so they
// can be inspected through the admin endpoints.
//
// It is distinct from operational logging, which goes through log/slog.
// The in-memory store is a bounded buffer: once full, the oldest entry is
// evicted for each new one. Listing returns entries newest first.
//
//	store := requestlog.NewMemoryStore(1000)
//	store.Log(&requestlog.Entry{Method: "GET", Path: "/api/tags", Status: 200})
//	recent := store.List(&requestlog.Filter{Limit: 10})
package requestlog
