// ABOUTME: Generation handler queueing workflow runs to the background worker
// ABOUTME: Accepts a full refresh or a single category and returns 202 immediately

package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/sundeep8967/keypoints-backend-1/api/dto/requests"
	"github.com/sundeep8967/keypoints-backend-1/api/dto/responses"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

// GenerationQueue is the slice of the background worker the handler
// submits to.
type GenerationQueue interface {
	SubmitRefresh() error
	SubmitCategory(category string) error
}

// GenerateHandler queues generation runs.
type GenerateHandler struct {
	queue  GenerationQueue
	logger interfaces.Logger
}

// NewGenerateHandler creates the generation handler.
func NewGenerateHandler(queue GenerationQueue, logger interfaces.Logger) *GenerateHandler {
	return &GenerateHandler{queue: queue, logger: logger}
}

// RegisterRoutes registers the generation route.
func (h *GenerateHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /generate", h.Generate)
}

// Generate handles POST /generate. An empty body queues a full
// refresh; {"category": "..."} queues one category. The run executes
// in the background, so the response only acknowledges the queueing.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if h.queue == nil {
		writeUnavailable(w, "generation worker not running")
		return
	}

	var req requests.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !stderrors.Is(err, io.EOF) {
		writeValidationError(w, "request body must be JSON")
		return
	}
	req.Normalize()

	resp := responses.GenerateAcceptedResponse{Status: "queued"}
	var err error
	if req.Category != "" {
		resp.Type = "category"
		resp.Category = req.Category
		err = h.queue.SubmitCategory(req.Category)
	} else {
		resp.Type = "refresh"
		err = h.queue.SubmitRefresh()
	}
	if err != nil {
		writeUnavailable(w, err.Error())
		return
	}

	if h.logger != nil {
		h.logger.Info("Generation run queued", map[string]interface{}{
			"type":     resp.Type,
			"category": req.Category,
		})
	}
	writeJSON(w, http.StatusAccepted, resp)
}
