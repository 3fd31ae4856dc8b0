// ABOUTME: Briefing handler synthesizing spoken audio from a category's key points
// ABOUTME: Feature-flag gated; serves OGG Opus audio from the briefing service

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sundeep8967/keypoints-backend-1/api/dto/requests"
	"github.com/sundeep8967/keypoints-backend-1/core/category"
	"github.com/sundeep8967/keypoints-backend-1/core/errors"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
	"github.com/sundeep8967/keypoints-backend-1/pkg/featureflags"
)

// BriefingHandler serves audio briefings of generated result sets.
type BriefingHandler struct {
	briefing interfaces.BriefingService
	docs     interfaces.DocumentCache
	exchange interfaces.DocumentExchange
	mapper   *category.Mapper
	logger   interfaces.Logger
}

// NewBriefingHandler creates the briefing handler.
func NewBriefingHandler(briefing interfaces.BriefingService, docs interfaces.DocumentCache, exchange interfaces.DocumentExchange, logger interfaces.Logger) *BriefingHandler {
	return &BriefingHandler{
		briefing: briefing,
		docs:     docs,
		exchange: exchange,
		mapper:   category.NewMapper(logger),
		logger:   logger,
	}
}

// RegisterRoutes registers the briefing route.
func (h *BriefingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /briefing", h.Briefing)
}

// Briefing handles POST /briefing. The named category's generated
// result set is spoken; synthesis runs inline, so responses can take
// several seconds on a cold cache.
func (h *BriefingHandler) Briefing(w http.ResponseWriter, r *http.Request) {
	if !featureflags.IsEnabled(r.Context(), featureflags.BriefingEnabled) {
		writeDisabled(w, "briefing is not enabled")
		return
	}
	if h.briefing == nil || !h.briefing.Enabled() {
		writeUnavailable(w, "briefing synthesis not configured")
		return
	}

	var req requests.BriefingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "request body must be JSON")
		return
	}
	if msg := req.Validate(); msg != "" {
		writeValidationError(w, msg)
		return
	}

	canonical := h.mapper.Map(req.Category)
	doc := loadResult(r.Context(), h.docs, h.exchange, canonical, h.logger)
	if doc == nil || len(doc.Articles) == 0 {
		writeError(w, h.logger, &errors.NotFoundError{Resource: "result set", ID: canonical})
		return
	}

	audio, err := h.briefing.Synthesize(r.Context(), doc.Articles)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if h.logger != nil {
		h.logger.Info("Briefing synthesized", map[string]interface{}{
			"category": canonical,
			"articles": len(doc.Articles),
			"bytes":    len(audio),
		})
	}

	w.Header().Set("Content-Type", "audio/ogg")
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}
