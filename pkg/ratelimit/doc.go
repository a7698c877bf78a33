// Package ratelimit limits requests per client IP.
//
// Each client gets its own token bucket from golang.org/x/time/rate.
// Buckets that stay idle longer than the entry TTL are dropped by a
// background sweeper, so Stop must be called when the limiter is retired.
package ratelimit
