package ratelimit

import (
	"math"
	"net/http"
	"strconv"

	"github.com/civiclens/conduit-mock/pkg/httputil"
)

// Middleware rejects requests over the per-IP budget with 429 and a
// Conduit error body. A nil limiter passes every request through.
func Middleware(limiter *PerIPLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, retryAfter := limiter.Allow(limiter.ClientIP(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.Burst()))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if allowed {
				next.ServeHTTP(w, r)
				return
			}

			secs := int64(math.Ceil(retryAfter.Seconds()))
			w.Header().Set("Retry-After", strconv.FormatInt(max(secs, 1), 10))
			httputil.WriteFieldError(w, http.StatusTooManyRequests, "rate", "limit exceeded")
		})
	}
}
