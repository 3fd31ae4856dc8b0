// ABOUTME: HTTP server assembling the news API routes and middleware chain
// ABOUTME: Stdlib mux behind CORS, request logging, feature flags and rate limiting

package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/sundeep8967/keypoints-backend-1/api/handlers"
	"github.com/sundeep8967/keypoints-backend-1/api/middleware"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
	"github.com/sundeep8967/keypoints-backend-1/pkg/featureflags"
)

// Config holds the server settings.
type Config struct {
	// Port is the TCP port the server listens on
	Port int

	// RateLimit is the allowed requests per second per caller
	RateLimit float64

	// RateBurst is the bucket size of each caller's limiter
	RateBurst int
}

// DefaultConfig returns the production server settings.
func DefaultConfig() Config {
	return Config{
		Port:      8000,
		RateLimit: 1,
		RateBurst: 3,
	}
}

// Handlers groups the route handlers mounted on the server. A nil
// entry registers no routes, so deployments without a store or
// briefing credentials simply omit those handlers.
type Handlers struct {
	Health   *handlers.HealthHandler
	Articles *handlers.ArticleHandler
	Generate *handlers.GenerateHandler
	Accent   *handlers.AccentHandler
	Briefing *handlers.BriefingHandler
}

// Server is the HTTP front of the service.
type Server struct {
	server *http.Server
	logger interfaces.Logger
}

// NewServer assembles the mux and middleware chain. The flag manager
// is installed on every request context; rate limiting and the gated
// endpoints consult it per request.
func NewServer(cfg Config, h Handlers, flags featureflags.Manager, logger interfaces.Logger) *Server {
	if cfg.Port <= 0 {
		cfg.Port = DefaultConfig().Port
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultConfig().RateLimit
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = DefaultConfig().RateBurst
	}

	mux := http.NewServeMux()
	if h.Health != nil {
		h.Health.RegisterRoutes(mux)
	}
	if h.Articles != nil {
		h.Articles.RegisterRoutes(mux)
	}
	if h.Generate != nil {
		h.Generate.RegisterRoutes(mux)
	}
	if h.Accent != nil {
		h.Accent.RegisterRoutes(mux)
	}
	if h.Briefing != nil {
		h.Briefing.RegisterRoutes(mux)
	}

	limiter := middleware.NewClientLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	var handler http.Handler = mux
	handler = middleware.RateLimitMiddleware(limiter)(handler)
	handler = middleware.FlagContextMiddleware(flags)(handler)
	handler = middleware.RequestLoggingMiddleware(logger)(handler)
	handler = cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}).Handler(handler)

	return &Server{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: handler,
			// Briefing synthesis holds responses open, so only the
			// header read and idle phases get timeouts.
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// Handler returns the assembled handler chain for tests and custom
// listeners.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start listens and serves until Shutdown is called. A clean shutdown
// returns nil.
func (s *Server) Start() error {
	if s.logger != nil {
		s.logger.Info("API server listening", map[string]interface{}{
			"addr": s.server.Addr,
		})
	}

	err := s.server.ListenAndServe()
	if stderrors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Info("API server shutting down", nil)
	}
	return s.server.Shutdown(ctx)
}
