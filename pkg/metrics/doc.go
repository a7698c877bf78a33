// Package metrics provides a small metrics registry with Prometheus text
// exposition.
//
// Counters and histograms are labelled families: each distinct combination
// of label values gets its own child, created on first use. Gauge functions
// are evaluated at scrape time, which suits values derived from other state
// such as entity counts.
//
// ServerMetrics bundles the metrics the mock server records for every API
// request. They are served by the server at GET /__admin/metrics.
package metrics
