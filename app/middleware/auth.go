package middleware

import (
	"crypto/subtle"
	"net/http"
)

// AdminSecretHeader carries the administrative credential for reset routes.
const AdminSecretHeader = "X-Admin-Secret"

// RequireAdminSecret gates a route on the configured administrative secret.
// Comparison is constant time. An empty configured secret rejects everything;
// admin routes must be explicitly enabled.
func RequireAdminSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(AdminSecretHeader)
			if secret == "" || !secretsEqual(provided, secret) {
				http.Error(w, "unauthorized", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func secretsEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// SubmitSecretValid checks the per-submission shared secret carried in the
// request body against the configured value.
func SubmitSecretValid(provided, configured string) bool {
	if configured == "" {
		// No secret configured means submissions are open.
		return true
	}
	return secretsEqual(provided, configured)
}
