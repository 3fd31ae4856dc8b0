// ABOUTME: Health check handler reporting service liveness
// ABOUTME: Serves the probe endpoint load balancers and cron monitors poll

package handlers

import (
	"net/http"

	"github.com/sundeep8967/keypoints-backend-1/api/dto/responses"
)

// serviceName identifies this service in health responses.
const serviceName = "keypoints-backend"

// HealthHandler reports service liveness.
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a health handler reporting the given
// build version.
func NewHealthHandler(version string) *HealthHandler {
	if version == "" {
		version = "dev"
	}
	return &HealthHandler{version: version}
}

// RegisterRoutes registers the health route.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, responses.HealthResponse{
		Status:  "ok",
		Service: serviceName,
		Version: h.version,
	})
}
