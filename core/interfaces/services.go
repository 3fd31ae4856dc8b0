// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for services used throughout the application

package interfaces

import (
	"context"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
)

// ArticleEnricher turns raw feed entries into enriched articles.
type ArticleEnricher interface {
	// Enrich processes one entry on the given session
	Enrich(ctx context.Context, session Session, entry domain.RawFeedEntry) domain.Article

	// EnrichBatch processes a full document's entries sequentially or
	// fanned out over a session pool, per the runner's configuration.
	// It returns the assembled articles and a hard error only when
	// zero articles succeeded.
	EnrichBatch(ctx context.Context, entries []domain.RawFeedEntry) ([]domain.Article, error)
}

// GenerationService runs the fetch, generate and push workflow.
type GenerationService interface {
	// RefreshAll runs the full workflow across every configured category
	RefreshAll(ctx context.Context) (*domain.RunSummary, error)

	// RefreshCategory regenerates one raw category end to end
	RefreshCategory(ctx context.Context, category string) (*domain.RunSummary, error)
}

// AccentColorService extracts accent colors from article images
type AccentColorService interface {
	ExtractColor(ctx context.Context, imageURL string) (*domain.RGBColor, error)
	ExtractColorBatch(ctx context.Context, imageURLs []string) map[string]*domain.RGBColor
	GetCachedColor(ctx context.Context, imageURL string) (*domain.RGBColor, error)
}

// BriefingService synthesizes spoken audio from article key points
type BriefingService interface {
	// Synthesize returns encoded audio for the given articles
	Synthesize(ctx context.Context, articles []domain.Article) ([]byte, error)

	// Enabled reports whether synthesis credentials are configured
	Enabled() bool
}
