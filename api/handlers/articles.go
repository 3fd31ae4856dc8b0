// ABOUTME: Article listing handlers serving generated result sets and stored rows
// ABOUTME: Category listings read cache-aside: document cache, exchange files, then the store

package handlers

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/sundeep8967/keypoints-backend-1/api/dto/responses"
	"github.com/sundeep8967/keypoints-backend-1/core/category"
	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/errors"
	"github.com/sundeep8967/keypoints-backend-1/core/feed"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
	"github.com/sundeep8967/keypoints-backend-1/pkg/featureflags"
	"github.com/sundeep8967/keypoints-backend-1/pkg/utils/parse"
)

const (
	// resultRefillTTL is how long a result document refilled from the
	// exchange stays cached
	resultRefillTTL = 30 * time.Minute

	// defaultTrendingLimit applies when the caller passes no limit
	defaultTrendingLimit = 20

	// maxListLimit caps the limit query parameter
	maxListLimit = 100
)

// ArticleHandler serves article listings. The document cache and the
// store are both optional; listings degrade to whichever backends the
// deployment wired.
type ArticleHandler struct {
	docs     interfaces.DocumentCache
	exchange interfaces.DocumentExchange
	store    interfaces.ArticleStore
	mapper   *category.Mapper
	roster   []string
	logger   interfaces.Logger
}

// NewArticleHandler creates the listing handler. An empty roster falls
// back to the default fetch roster.
func NewArticleHandler(docs interfaces.DocumentCache, exchange interfaces.DocumentExchange, store interfaces.ArticleStore, roster []string, logger interfaces.Logger) *ArticleHandler {
	if len(roster) == 0 {
		roster = append([]string(nil), feed.DefaultCategories...)
	}
	return &ArticleHandler{
		docs:     docs,
		exchange: exchange,
		store:    store,
		mapper:   category.NewMapper(logger),
		roster:   roster,
		logger:   logger,
	}
}

// RegisterRoutes registers the listing routes.
func (h *ArticleHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /articles", h.List)
	mux.HandleFunc("GET /trending", h.Trending)
	mux.HandleFunc("GET /categories", h.Categories)
}

// List handles GET /articles. A category listing serves the generated
// result set; a source listing reads the store.
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	label := strings.TrimSpace(r.URL.Query().Get("category"))
	source := strings.TrimSpace(r.URL.Query().Get("source"))
	limit := parseLimit(r, 0)

	switch {
	case label != "" && source != "":
		writeValidationError(w, "category and source cannot be combined")
	case label != "":
		h.listCategory(w, r, label, limit)
	case source != "":
		h.listSource(w, r, source, limit)
	default:
		writeValidationError(w, "category or source query parameter is required")
	}
}

// listCategory serves one canonical category. Raw roster labels map
// onto their canonical category first, so ?category=indian%20sports
// serves the sports result set.
func (h *ArticleHandler) listCategory(w http.ResponseWriter, r *http.Request, label string, limit int) {
	canonical := h.mapper.Map(label)

	if doc := h.loadResult(r.Context(), canonical); doc != nil {
		articles := doc.Articles
		if limit > 0 && limit < len(articles) {
			articles = articles[:limit]
		}
		writeJSON(w, http.StatusOK, responses.ArticleListResponse{
			Category: canonical,
			Count:    len(articles),
			Metadata: responses.FromResultMetadata(doc.Metadata),
			Articles: responses.FromArticles(articles),
		})
		return
	}

	// No generated document anywhere; the store may still hold rows
	// from an earlier run.
	if h.store != nil {
		rows, err := h.store.ByCategory(r.Context(), canonical, limit)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		if len(rows) > 0 {
			writeJSON(w, http.StatusOK, responses.ArticleListResponse{
				Category: canonical,
				Count:    len(rows),
				Articles: responses.FromStoredArticles(rows),
			})
			return
		}
	}

	writeError(w, h.logger, &errors.NotFoundError{Resource: "result set", ID: canonical})
}

// listSource serves articles from one publisher out of the store.
func (h *ArticleHandler) listSource(w http.ResponseWriter, r *http.Request, source string, limit int) {
	if h.store == nil {
		writeUnavailable(w, "article store not configured")
		return
	}

	rows, err := h.store.BySource(r.Context(), source, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, responses.ArticleListResponse{
		Source:   source,
		Count:    len(rows),
		Articles: responses.FromStoredArticles(rows),
	})
}

// Trending handles GET /trending: the highest-scored stored articles.
func (h *ArticleHandler) Trending(w http.ResponseWriter, r *http.Request) {
	if !featureflags.IsEnabled(r.Context(), featureflags.TrendingEnabled) {
		writeDisabled(w, "trending is not enabled")
		return
	}
	if h.store == nil {
		writeUnavailable(w, "article store not configured")
		return
	}

	rows, err := h.store.Trending(r.Context(), parseLimit(r, defaultTrendingLimit))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, responses.ArticleListResponse{
		Count:    len(rows),
		Articles: responses.FromStoredArticles(rows),
	})
}

// Categories handles GET /categories: the canonical categories the
// roster feeds, flagged with whether a generated result set exists.
func (h *ArticleHandler) Categories(w http.ResponseWriter, r *http.Request) {
	generated := make(map[string]bool)
	if h.exchange != nil {
		names, err := h.exchange.ResultCategories()
		if err != nil && h.logger != nil {
			h.logger.Warn("Failed to list result documents", map[string]interface{}{
				"error": err.Error(),
			})
		}
		for _, name := range names {
			generated[name] = true
		}
	}

	seen := make(map[string]bool)
	var list []responses.CategoryStatus
	for _, raw := range h.roster {
		canonical := h.mapper.Map(raw)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		list = append(list, responses.CategoryStatus{Name: canonical, Generated: generated[canonical]})
	}

	// Result sets generated outside the roster still get listed.
	var extras []string
	for name := range generated {
		if !seen[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		list = append(list, responses.CategoryStatus{Name: name, Generated: true})
	}

	writeJSON(w, http.StatusOK, responses.CategoriesResponse{Count: len(list), Categories: list})
}

// loadResult loads the generated result set for a canonical category:
// the document cache first, then the file exchange, refilling the
// cache on a file hit. Nil means no result set exists.
func (h *ArticleHandler) loadResult(ctx context.Context, canonical string) *domain.ResultDocument {
	return loadResult(ctx, h.docs, h.exchange, canonical, h.logger)
}

func loadResult(ctx context.Context, docs interfaces.DocumentCache, exchange interfaces.DocumentExchange, canonical string, logger interfaces.Logger) *domain.ResultDocument {
	if docs != nil {
		doc, err := docs.GetDocument(ctx, canonical)
		if err == nil && doc != nil {
			return doc
		}
		if err != nil && logger != nil {
			logger.Debug("Result document cache miss", map[string]interface{}{
				"category": canonical,
				"error":    err.Error(),
			})
		}
	}

	if exchange == nil {
		return nil
	}
	doc, err := exchange.ReadResult(canonical)
	if err != nil || doc == nil {
		return nil
	}

	if docs != nil {
		if cerr := docs.SetDocument(ctx, canonical, doc, resultRefillTTL); cerr != nil && logger != nil {
			logger.Warn("Failed to refill result document cache", map[string]interface{}{
				"category": canonical,
				"error":    cerr.Error(),
			})
		}
	}
	return doc
}

// parseLimit reads the limit query parameter. Fallback applies when
// the parameter is missing or unusable.
func parseLimit(r *http.Request, fallback int) int {
	limit := parse.IntOrZero(r.URL.Query().Get("limit"))
	if limit <= 0 {
		return fallback
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
