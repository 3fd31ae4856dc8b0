// ABOUTME: Rate limiting middleware for API endpoints
// ABOUTME: Hands each caller IP a token bucket and evicts idle buckets

package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/sundeep8967/keypoints-backend-1/pkg/featureflags"
)

// clientIdleTTL is how long an idle caller keeps its bucket.
const clientIdleTTL = 3 * time.Minute

// ClientLimiter tracks a token bucket per caller.
type ClientLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rate    rate.Limit
	burst   int
}

// client holds the bucket for one caller.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter creates a limiter giving every caller r requests
// per second with the given burst.
func NewClientLimiter(r rate.Limit, burst int) *ClientLimiter {
	cl := &ClientLimiter{
		clients: make(map[string]*client),
		rate:    r,
		burst:   burst,
	}

	go cl.cleanup()

	return cl
}

// cleanup evicts buckets whose callers have gone quiet.
func (cl *ClientLimiter) cleanup() {
	ticker := time.NewTicker(clientIdleTTL)
	defer ticker.Stop()

	for range ticker.C {
		cl.mu.Lock()
		now := time.Now()
		for key, c := range cl.clients {
			if now.Sub(c.lastSeen) > clientIdleTTL {
				delete(cl.clients, key)
			}
		}
		cl.mu.Unlock()
	}
}

// Allow reports whether a request from the given key may proceed.
func (cl *ClientLimiter) Allow(key string) bool {
	cl.mu.Lock()
	c, ok := cl.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(cl.rate, cl.burst)}
		cl.clients[key] = c
	}
	c.lastSeen = time.Now()
	cl.mu.Unlock()

	return c.limiter.Allow()
}

// extractIP gets the client IP from the request, preferring proxy
// headers over the socket address.
func extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The first entry is the originating client
		if idx := strings.Index(xff, ","); idx >= 0 {
			xff = xff[:idx]
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateLimitMiddleware creates a middleware that enforces the
// per-caller limit. The rate_limit_enabled feature flag on the
// request context turns enforcement off.
func RateLimitMiddleware(limiter *ClientLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !featureflags.IsEnabled(r.Context(), featureflags.RateLimitEnabled) {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(extractIP(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%g", float64(limiter.rate)))
				w.Header().Set("X-RateLimit-Burst", fmt.Sprintf("%d", limiter.burst))
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"Too many requests","message":"Rate limit exceeded. Please try again later."}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
