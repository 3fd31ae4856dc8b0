// ABOUTME: Accent color handler resolving an article image to its dominant color
// ABOUTME: Looks the article up in the store and runs the accent service on its image

package handlers

import (
	"net/http"

	"github.com/sundeep8967/keypoints-backend-1/api/dto/responses"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

// AccentHandler serves accent colors for stored article images.
type AccentHandler struct {
	accent interfaces.AccentColorService
	store  interfaces.ArticleStore
	logger interfaces.Logger
}

// NewAccentHandler creates the accent color handler.
func NewAccentHandler(accent interfaces.AccentColorService, store interfaces.ArticleStore, logger interfaces.Logger) *AccentHandler {
	return &AccentHandler{accent: accent, store: store, logger: logger}
}

// RegisterRoutes registers the accent color route.
func (h *AccentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /articles/{id}/accent", h.Accent)
}

// Accent handles GET /articles/{id}/accent. Extraction failures
// degrade to the neutral fallback inside the accent service, so a
// stored article always yields a color.
func (h *AccentHandler) Accent(w http.ResponseWriter, r *http.Request) {
	if h.accent == nil || h.store == nil {
		writeUnavailable(w, "accent color lookup not configured")
		return
	}

	id := r.PathValue("id")
	article, err := h.store.ByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	color, err := h.accent.ExtractColor(r.Context(), article.ImageURL)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, responses.AccentResponse{
		ArticleID: article.ArticleID,
		ImageURL:  article.ImageURL,
		Color:     *color,
	})
}
