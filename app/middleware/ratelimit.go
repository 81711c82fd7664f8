package middleware

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit throttles a route with a shared token bucket. Submissions from
// all players draw from one bucket; the goal is protecting the ledger from
// floods, not per-player fairness.
func RateLimit(perSecond float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
