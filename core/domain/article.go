// ABOUTME: Article domain model represents an enriched news article record
// ABOUTME: Provides validation logic for assembly and the storage upload gate

package domain

import "time"

// PlaceholderImage is used when no valid article image could be selected.
const PlaceholderImage = "https://via.placeholder.com/300x150?text=No+Image"

// ExtractionFailedDescription marks articles whose content extraction
// produced nothing substantial. It is a sentinel, never a null.
const ExtractionFailedDescription = "Article content could not be extracted."

// RawFeedEntry is a bare feed reference produced by the feed client.
// Entries are immutable inputs to the enrichment pipeline.
type RawFeedEntry struct {
	// Title is the headline as reported by the feed
	Title string `json:"title"`

	// Link is the feed's article URL, possibly an aggregator redirect
	Link string `json:"link"`

	// Published is the publication timestamp string from the feed
	Published string `json:"published"`

	// Source is the publisher name as reported by the feed
	Source string `json:"source"`
}

// IsValid checks if the entry carries enough to be processed
func (e *RawFeedEntry) IsValid() bool {
	return e.Title != "" && e.Link != ""
}

// Article is the enriched output record for one raw feed entry.
// An Article is complete once assembled and is never mutated afterwards;
// a fresh run replaces rather than edits.
type Article struct {
	// ID is the deterministic identifier derived from (url, title, source)
	ID string `json:"id"`

	// Title is the extracted headline, or the raw feed title on failure
	Title string `json:"title"`

	// Source is the publisher name, carried unchanged from the raw entry
	Source string `json:"source"`

	// URL is the resolved publisher URL
	URL string `json:"url"`

	// ImageURL is the selected article image, or the placeholder
	ImageURL string `json:"image_url"`

	// Description is the extracted content, or the extraction sentinel
	Description string `json:"description"`

	// KeyPoints are up to five cleaned sentences from the description
	KeyPoints []string `json:"key_points"`

	// Published is the publication timestamp, carried unchanged
	Published string `json:"published"`

	// QualityScore is the importance estimate in [0, 1000]
	QualityScore int `json:"quality_score"`

	// Extraction bookkeeping
	ExtractedAt time.Time `json:"extracted_at"`
	Error       string    `json:"error,omitempty"` // set on degraded emission
}

// IsValid checks if the article has all required fields
func (a *Article) IsValid() bool {
	if a.ID == "" {
		return false
	}

	if a.Title == "" {
		return false
	}

	return a.URL != ""
}

// IsStorable reports whether the article passes the upload gate.
// Articles without a title or without a real image are rejected
// before submission to the store.
func (a *Article) IsStorable() bool {
	if a.Title == "" {
		return false
	}

	if a.ImageURL == "" || a.ImageURL == PlaceholderImage {
		return false
	}

	return true
}

// StoredArticle is the flat record shape accepted by the article store.
type StoredArticle struct {
	Title        string `json:"title" db:"title"`
	Link         string `json:"link" db:"link"`
	Published    string `json:"published" db:"published"`
	Source       string `json:"source" db:"source"`
	Category     string `json:"category" db:"category"`
	Description  string `json:"description" db:"description"`
	ImageURL     string `json:"image_url" db:"image_url"`
	ArticleID    string `json:"article_id" db:"article_id"`
	QualityScore int    `json:"quality_score" db:"quality_score"`
}

// ToStored converts an article to the storage record shape for the
// given canonical category.
func (a *Article) ToStored(category string) StoredArticle {
	return StoredArticle{
		Title:        a.Title,
		Link:         a.URL,
		Published:    a.Published,
		Source:       a.Source,
		Category:     category,
		Description:  a.Description,
		ImageURL:     a.ImageURL,
		ArticleID:    a.ID,
		QualityScore: a.QualityScore,
	}
}
