// ABOUTME: Storage interfaces for persisting domain entities
// ABOUTME: Defines contracts for the article store and the result-set document cache

package interfaces

import (
	"context"
	"time"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
)

// ArticleStore defines the interface for article persistence
type ArticleStore interface {
	// Upsert inserts or replaces articles keyed by article_id
	Upsert(ctx context.Context, articles []domain.StoredArticle) (int, error)

	// ByID retrieves one article by its article_id
	ByID(ctx context.Context, articleID string) (*domain.StoredArticle, error)

	// ByCategory retrieves articles for one canonical category,
	// newest first, up to limit
	ByCategory(ctx context.Context, category string, limit int) ([]domain.StoredArticle, error)

	// BySource retrieves articles from one publisher, up to limit
	BySource(ctx context.Context, source string, limit int) ([]domain.StoredArticle, error)

	// Trending retrieves the top articles by quality score, up to limit
	Trending(ctx context.Context, limit int) ([]domain.StoredArticle, error)

	// DeleteOlderThan removes articles stored before the cutoff and
	// returns the number of rows removed
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)

	// Close releases the underlying connection pool
	Close() error
}

// DocumentExchange moves per-category documents through the data
// directory shared with collaborating processes.
type DocumentExchange interface {
	// FeedPath returns the raw document path for a category
	FeedPath(category string) string

	// ResultPath returns the generated document path for a category
	ResultPath(category string) string

	// WriteFeed stores a raw feed document and returns the file path
	WriteFeed(category string, doc *domain.FeedDocument) (string, error)

	// ReadFeed loads the raw feed document for a category
	ReadFeed(category string) (*domain.FeedDocument, error)

	// WriteResult stores a generated result document and returns the path
	WriteResult(category string, doc *domain.ResultDocument) (string, error)

	// ReadResult loads the generated result document for a category
	ReadResult(category string) (*domain.ResultDocument, error)

	// FeedCategories lists categories with a raw document on disk
	FeedCategories() ([]string, error)

	// ResultCategories lists categories with a generated document on disk
	ResultCategories() ([]string, error)

	// CleanFeeds removes all raw documents and reports how many
	CleanFeeds() (int, error)

	// CleanResults removes all generated documents and reports how many
	CleanResults() (int, error)
}

// DocumentCache stores generated result documents as JSON values,
// keyed by canonical category.
type DocumentCache interface {
	// SetDocument stores a result document with the given TTL
	SetDocument(ctx context.Context, category string, doc *domain.ResultDocument, ttl time.Duration) error

	// GetDocument retrieves a cached result document
	GetDocument(ctx context.Context, category string) (*domain.ResultDocument, error)

	// DeleteDocument removes a cached result document
	DeleteDocument(ctx context.Context, category string) error
}
