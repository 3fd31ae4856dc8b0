// ABOUTME: Response DTOs for the news API endpoints
// ABOUTME: Maps enriched and stored articles onto one wire shape

package responses

import (
	"github.com/sundeep8967/keypoints-backend-1/core/domain"
)

// ErrorResponse is the body of every error status.
type ErrorResponse struct {
	// Error is a short machine-readable summary
	Error string `json:"error"`

	// Message is the human-readable detail
	Message string `json:"message,omitempty"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// ArticleResponse is the wire shape of one article. Articles read from
// the store carry no key points; omitempty keeps those payloads flat.
type ArticleResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Source       string   `json:"source"`
	URL          string   `json:"url"`
	ImageURL     string   `json:"image_url"`
	Description  string   `json:"description"`
	KeyPoints    []string `json:"key_points,omitempty"`
	Published    string   `json:"published"`
	Category     string   `json:"category,omitempty"`
	QualityScore int      `json:"quality_score"`
	Error        string   `json:"error,omitempty"`
}

// FromArticle maps an enriched article onto the wire shape.
func FromArticle(a domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:           a.ID,
		Title:        a.Title,
		Source:       a.Source,
		URL:          a.URL,
		ImageURL:     a.ImageURL,
		Description:  a.Description,
		KeyPoints:    a.KeyPoints,
		Published:    a.Published,
		QualityScore: a.QualityScore,
		Error:        a.Error,
	}
}

// FromStored maps a stored article row onto the wire shape.
func FromStored(a domain.StoredArticle) ArticleResponse {
	return ArticleResponse{
		ID:           a.ArticleID,
		Title:        a.Title,
		Source:       a.Source,
		URL:          a.Link,
		ImageURL:     a.ImageURL,
		Description:  a.Description,
		Published:    a.Published,
		Category:     a.Category,
		QualityScore: a.QualityScore,
	}
}

// FromArticles maps a slice of enriched articles.
func FromArticles(articles []domain.Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, FromArticle(a))
	}
	return out
}

// FromStoredArticles maps a slice of stored rows.
func FromStoredArticles(articles []domain.StoredArticle) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, FromStored(a))
	}
	return out
}

// ResultMetadataResponse carries the generation counters of a result
// set alongside its articles.
type ResultMetadataResponse struct {
	GenerationTime    string `json:"generation_time"`
	RunID             string `json:"run_id,omitempty"`
	TotalArticles     int    `json:"total_articles"`
	Successful        int    `json:"successful_extractions"`
	Degraded          int    `json:"degraded_articles"`
	DuplicatesRemoved int    `json:"duplicates_removed,omitempty"`
}

// FromResultMetadata maps result metadata onto the wire shape. The
// source file path stays internal.
func FromResultMetadata(m domain.ResultMetadata) *ResultMetadataResponse {
	return &ResultMetadataResponse{
		GenerationTime:    m.GenerationTime,
		RunID:             m.RunID,
		TotalArticles:     m.TotalArticles,
		Successful:        m.Successful,
		Degraded:          m.Degraded,
		DuplicatesRemoved: m.DuplicatesRemoved,
	}
}

// ArticleListResponse is the body of article listing endpoints.
type ArticleListResponse struct {
	// Category is set on category listings
	Category string `json:"category,omitempty"`

	// Source is set on publisher listings
	Source string `json:"source,omitempty"`

	// Count is the number of articles returned
	Count int `json:"count"`

	// Metadata is present when the listing came from a generated
	// result set rather than the store
	Metadata *ResultMetadataResponse `json:"metadata,omitempty"`

	Articles []ArticleResponse `json:"articles"`
}

// CategoryStatus reports one canonical category and whether a
// generated result set exists for it.
type CategoryStatus struct {
	Name      string `json:"name"`
	Generated bool   `json:"generated"`
}

// CategoriesResponse lists the canonical categories.
type CategoriesResponse struct {
	Count      int              `json:"count"`
	Categories []CategoryStatus `json:"categories"`
}

// GenerateAcceptedResponse acknowledges a queued generation job.
type GenerateAcceptedResponse struct {
	Status   string `json:"status"`
	Type     string `json:"type"`
	Category string `json:"category,omitempty"`
}

// AccentResponse carries the accent color of an article image.
type AccentResponse struct {
	ArticleID string          `json:"article_id"`
	ImageURL  string          `json:"image_url"`
	Color     domain.RGBColor `json:"color"`
}
