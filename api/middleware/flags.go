// ABOUTME: Middleware installing the feature flag manager on request contexts
// ABOUTME: Downstream handlers and middleware observe live flag state per request

package middleware

import (
	"net/http"

	"github.com/sundeep8967/keypoints-backend-1/pkg/featureflags"
)

// FlagContextMiddleware creates a middleware that places the feature
// flag manager on every request context. A nil manager leaves
// requests untouched, so flag checks fall back to all-disabled.
func FlagContextMiddleware(manager featureflags.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if manager != nil {
				r = r.WithContext(featureflags.WithManager(r.Context(), manager))
			}
			next.ServeHTTP(w, r)
		})
	}
}
