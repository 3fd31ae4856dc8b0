// ABOUTME: Workflow service running the fetch, generate and push steps end to end
// ABOUTME: Fetches raw categories, merges them per canonical category, enriches and uploads

package services

import (
	"context"
	stderrors "errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sundeep8967/keypoints-backend-1/core/assemble"
	"github.com/sundeep8967/keypoints-backend-1/core/category"
	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/errors"
	"github.com/sundeep8967/keypoints-backend-1/core/feed"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
	"github.com/sundeep8967/keypoints-backend-1/core/merge"
)

// CategoryFetcher is the slice of the feed client the workflow needs.
type CategoryFetcher interface {
	FetchCategoriesWithFlags(ctx context.Context, categories []string) (map[string]domain.FeedDocument, error)
}

// GenerationConfig tunes a workflow run.
type GenerationConfig struct {
	// Categories is the raw source-category roster of a full run
	Categories []string

	// ResultTTL is how long generated documents stay in the document cache
	ResultTTL time.Duration
}

// DefaultGenerationConfig returns the production workflow settings.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Categories: append([]string(nil), feed.DefaultCategories...),
		ResultTTL:  30 * time.Minute,
	}
}

// GenerationBackends carries the optional persistence backends of a run.
type GenerationBackends struct {
	// Store receives gated articles after generation; nil skips the push step
	Store interfaces.ArticleStore

	// Documents caches generated result sets for the API; nil disables caching
	Documents interfaces.DocumentCache
}

// GenerationService orchestrates the full workflow: fetch raw feeds,
// merge them per canonical category, enrich every entry, write the
// exchange documents and push gated articles to the store.
type GenerationService struct {
	deps      interfaces.Dependencies
	feeds     CategoryFetcher
	enricher  interfaces.ArticleEnricher
	assembler *assemble.Assembler
	merger    *merge.Merger
	mapper    *category.Mapper
	exchange  interfaces.DocumentExchange
	store     interfaces.ArticleStore
	docs      interfaces.DocumentCache
	config    GenerationConfig
}

// NewGenerationService creates the workflow service.
func NewGenerationService(deps interfaces.Dependencies, feeds CategoryFetcher, enricher interfaces.ArticleEnricher, assembler *assemble.Assembler, exchange interfaces.DocumentExchange, backends GenerationBackends, config GenerationConfig) *GenerationService {
	if len(config.Categories) == 0 {
		config.Categories = DefaultGenerationConfig().Categories
	}
	if config.ResultTTL <= 0 {
		config.ResultTTL = DefaultGenerationConfig().ResultTTL
	}

	return &GenerationService{
		deps:      deps,
		feeds:     feeds,
		enricher:  enricher,
		assembler: assembler,
		merger:    merge.NewMerger(deps, merge.DefaultOptions()),
		mapper:    category.NewMapper(deps.Logger),
		exchange:  exchange,
		store:     backends.Store,
		docs:      backends.Documents,
		config:    config,
	}
}

// RefreshAll runs the full workflow across the configured roster.
func (s *GenerationService) RefreshAll(ctx context.Context) (*domain.RunSummary, error) {
	return s.run(ctx, s.config.Categories, true)
}

// RefreshCategory regenerates one canonical category. The label may be
// a canonical name or a raw roster entry; every roster entry feeding
// the same canonical category is refetched so the merge stays complete.
func (s *GenerationService) RefreshCategory(ctx context.Context, label string) (*domain.RunSummary, error) {
	return s.run(ctx, s.rosterFor(label), false)
}

// Fetch runs the fetch step alone: raw categories are fetched, merged
// per canonical category and written to the exchange. Stale feed
// documents are removed first so dropped categories do not linger.
func (s *GenerationService) Fetch(ctx context.Context) (*domain.RunSummary, error) {
	start := time.Now()
	summary := &domain.RunSummary{
		RunID:      uuid.NewString(),
		Categories: len(s.config.Categories),
	}

	if _, err := s.exchange.CleanFeeds(); err != nil && s.deps.Logger != nil {
		s.deps.Logger.Warn("Stale feed cleanup failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	_, err := s.fetchStep(ctx, s.config.Categories, summary)
	summary.Duration = time.Since(start)
	if err != nil {
		return summary, err
	}

	if s.deps.Logger != nil {
		s.deps.Logger.Info("Fetch step complete", map[string]interface{}{
			"run_id":             summary.RunID,
			"fetched":            summary.Fetched,
			"duplicates_removed": summary.DuplicatesRemoved,
			"duration":           summary.Duration.String(),
		})
	}
	return summary, nil
}

// Generate runs the generation step alone, over the feed documents
// already in the exchange.
func (s *GenerationService) Generate(ctx context.Context) (*domain.RunSummary, error) {
	start := time.Now()
	summary := &domain.RunSummary{RunID: uuid.NewString()}

	merged, err := s.exchangeFeeds()
	if err != nil {
		summary.Duration = time.Since(start)
		return summary, err
	}
	summary.Categories = len(merged)

	_, err = s.generateStep(ctx, merged, summary)
	summary.Duration = time.Since(start)
	if err != nil {
		return summary, err
	}

	if s.deps.Logger != nil {
		s.deps.Logger.Info("Generation step complete", map[string]interface{}{
			"run_id":         summary.RunID,
			"generated":      summary.Generated,
			"total_articles": summary.TotalArticles,
			"successful":     summary.Successful,
			"degraded":       summary.Degraded,
			"duration":       summary.Duration.String(),
		})
	}
	return summary, nil
}

// Push runs the push step alone, over the result documents already in
// the exchange.
func (s *GenerationService) Push(ctx context.Context) (*domain.RunSummary, error) {
	start := time.Now()
	summary := &domain.RunSummary{RunID: uuid.NewString()}

	categories, err := s.exchange.ResultCategories()
	if err != nil {
		summary.Duration = time.Since(start)
		return summary, errors.WrapError(err, "listing result documents")
	}
	if len(categories) == 0 {
		summary.Duration = time.Since(start)
		return summary, stderrors.New("no result documents to push")
	}

	results := make(map[string]*domain.ResultDocument, len(categories))
	for _, category := range categories {
		doc, rerr := s.exchange.ReadResult(category)
		if rerr != nil {
			summary.Duration = time.Since(start)
			return summary, errors.WrapError(rerr, "reading result document")
		}
		results[category] = doc
	}
	summary.Categories = len(results)

	err = s.pushStep(ctx, results, summary)
	summary.Duration = time.Since(start)
	if err != nil {
		return summary, err
	}

	if s.deps.Logger != nil {
		s.deps.Logger.Info("Push step complete", map[string]interface{}{
			"run_id":   summary.RunID,
			"stored":   summary.Stored,
			"rejected": summary.Rejected,
			"duration": summary.Duration.String(),
		})
	}
	return summary, nil
}

// exchangeFeeds loads every feed document currently in the exchange.
func (s *GenerationService) exchangeFeeds() (map[string]domain.FeedDocument, error) {
	categories, err := s.exchange.FeedCategories()
	if err != nil {
		return nil, errors.WrapError(err, "listing feed documents")
	}
	if len(categories) == 0 {
		return nil, stderrors.New("no feed documents to generate from")
	}

	merged := make(map[string]domain.FeedDocument, len(categories))
	for _, category := range categories {
		doc, err := s.exchange.ReadFeed(category)
		if err != nil {
			return nil, errors.WrapError(err, "reading feed document")
		}
		merged[category] = *doc
	}
	return merged, nil
}

// Cleanup removes stored rows older than age and all exchange
// documents. It returns the number of rows removed.
func (s *GenerationService) Cleanup(ctx context.Context, age time.Duration) (int64, error) {
	feeds, err := s.exchange.CleanFeeds()
	if err != nil {
		return 0, err
	}
	results, err := s.exchange.CleanResults()
	if err != nil {
		return 0, err
	}

	var rows int64
	if s.store != nil {
		rows, err = s.store.DeleteOlderThan(ctx, age)
		if err != nil {
			return 0, errors.WrapError(err, "deleting old articles")
		}
	}

	if s.deps.Logger != nil {
		s.deps.Logger.Info("Cleanup complete", map[string]interface{}{
			"rows_removed":  rows,
			"files_removed": feeds + results,
		})
	}
	return rows, nil
}

// rosterFor returns the roster entries feeding the same canonical
// category as label. A label outside the roster is fetched directly.
func (s *GenerationService) rosterFor(label string) []string {
	final := s.mapper.Map(label)

	var members []string
	for _, raw := range s.config.Categories {
		if s.mapper.Map(raw) == final {
			members = append(members, raw)
		}
	}
	if len(members) == 0 {
		members = []string{label}
	}
	return members
}

func (s *GenerationService) run(ctx context.Context, categories []string, cleanFirst bool) (*domain.RunSummary, error) {
	start := time.Now()
	summary := &domain.RunSummary{
		RunID:      uuid.NewString(),
		Categories: len(categories),
	}

	if s.deps.Logger != nil {
		s.deps.Logger.Info("Workflow run started", map[string]interface{}{
			"run_id":     summary.RunID,
			"categories": len(categories),
		})
	}

	if cleanFirst {
		s.cleanStale()
	}

	merged, err := s.fetchStep(ctx, categories, summary)
	if err != nil {
		summary.Duration = time.Since(start)
		return summary, err
	}

	results, err := s.generateStep(ctx, merged, summary)
	if err != nil {
		summary.Duration = time.Since(start)
		return summary, err
	}

	err = s.pushStep(ctx, results, summary)
	summary.Duration = time.Since(start)
	if err != nil {
		return summary, err
	}

	if s.deps.Logger != nil {
		s.deps.Logger.Info("Workflow run complete", map[string]interface{}{
			"run_id":             summary.RunID,
			"fetched":            summary.Fetched,
			"generated":          summary.Generated,
			"total_articles":     summary.TotalArticles,
			"successful":         summary.Successful,
			"degraded":           summary.Degraded,
			"duplicates_removed": summary.DuplicatesRemoved,
			"rejected":           summary.Rejected,
			"stored":             summary.Stored,
			"duration":           summary.Duration.String(),
		})
	}
	return summary, nil
}

// cleanStale removes leftover documents so a full run never serves a
// mix of old and new data.
func (s *GenerationService) cleanStale() {
	if _, err := s.exchange.CleanFeeds(); err != nil && s.deps.Logger != nil {
		s.deps.Logger.Warn("Stale feed cleanup failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if _, err := s.exchange.CleanResults(); err != nil && s.deps.Logger != nil {
		s.deps.Logger.Warn("Stale result cleanup failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// fetchStep fetches the raw categories and merges them into one
// document per canonical category, written to the exchange.
func (s *GenerationService) fetchStep(ctx context.Context, categories []string, summary *domain.RunSummary) (map[string]domain.FeedDocument, error) {
	docs, err := s.feeds.FetchCategoriesWithFlags(ctx, categories)
	if err != nil {
		return nil, err
	}

	summary.Fetched = len(docs)
	if len(docs) == 0 {
		return nil, stderrors.New("no categories fetched")
	}

	// Group fetched documents by canonical category, keeping roster
	// order within each group so the first-seen duplicate wins
	// deterministically.
	groups := make(map[string][]merge.Source)
	var order []string
	for _, raw := range categories {
		doc, ok := docs[raw]
		if !ok {
			continue
		}
		final := s.mapper.Map(raw)
		if _, seen := groups[final]; !seen {
			order = append(order, final)
		}
		groups[final] = append(groups[final], merge.Source{Name: raw, Document: doc})
	}

	merged := make(map[string]domain.FeedDocument, len(groups))
	for _, final := range order {
		doc := s.merger.Merge(groups[final], final)
		summary.DuplicatesRemoved += doc.Metadata.DuplicatesRemoved

		if _, werr := s.exchange.WriteFeed(final, &doc); werr != nil && s.deps.Logger != nil {
			s.deps.Logger.Error("Failed to write feed document", map[string]interface{}{
				"category": final,
				"error":    werr.Error(),
			})
		}
		merged[final] = doc
	}
	return merged, nil
}

// generateStep enriches each merged document and writes the results.
// A category where every article degraded is still written but not
// counted as generated.
func (s *GenerationService) generateStep(ctx context.Context, merged map[string]domain.FeedDocument, summary *domain.RunSummary) (map[string]*domain.ResultDocument, error) {
	finals := make([]string, 0, len(merged))
	for final := range merged {
		finals = append(finals, final)
	}
	sort.Strings(finals)

	results := make(map[string]*domain.ResultDocument, len(merged))
	for _, final := range finals {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		doc := merged[final]
		articles, err := s.enricher.EnrichBatch(ctx, doc.Articles)
		if err != nil && !errors.IsBatchFailed(err) {
			return results, err
		}
		if err != nil && s.deps.Logger != nil {
			s.deps.Logger.Error("Category produced no successful articles", map[string]interface{}{
				"category": final,
				"error":    err.Error(),
			})
		}

		meta := domain.NewResultMetadata(s.exchange.FeedPath(final), summary.RunID, articles)
		meta.DuplicatesRemoved = doc.Metadata.DuplicatesRemoved
		result := &domain.ResultDocument{Metadata: meta, Articles: articles}

		if _, werr := s.exchange.WriteResult(final, result); werr != nil && s.deps.Logger != nil {
			s.deps.Logger.Error("Failed to write result document", map[string]interface{}{
				"category": final,
				"error":    werr.Error(),
			})
		}

		if s.docs != nil && err == nil {
			if cerr := s.docs.SetDocument(ctx, final, result, s.config.ResultTTL); cerr != nil && s.deps.Logger != nil {
				s.deps.Logger.Warn("Failed to cache result document", map[string]interface{}{
					"category": final,
					"error":    cerr.Error(),
				})
			}
		}

		results[final] = result
		summary.TotalArticles += meta.TotalArticles
		summary.Successful += meta.Successful
		summary.Degraded += meta.Degraded
		if err == nil {
			summary.Generated++
		}
	}

	if summary.Generated == 0 {
		return results, stderrors.New("no categories generated")
	}
	return results, nil
}

// pushStep gates and uploads the generated articles. A missing store
// counts as success so file-only deployments still complete runs.
func (s *GenerationService) pushStep(ctx context.Context, results map[string]*domain.ResultDocument, summary *domain.RunSummary) error {
	if s.store == nil {
		summary.Pushed = true
		if s.deps.Logger != nil {
			s.deps.Logger.Debug("Storage push skipped", map[string]interface{}{
				"reason": "no article store configured",
			})
		}
		return nil
	}

	finals := make([]string, 0, len(results))
	for final := range results {
		finals = append(finals, final)
	}
	sort.Strings(finals)

	var stored []domain.StoredArticle
	for _, final := range finals {
		gated, rejected := s.assembler.GateForStorage(results[final].Articles, final)
		summary.Rejected += rejected
		stored = append(stored, gated...)
	}

	if len(stored) == 0 {
		summary.Pushed = true
		return nil
	}

	count, err := s.store.Upsert(ctx, stored)
	if err != nil {
		return errors.WrapError(err, "pushing articles")
	}

	summary.Stored = count
	summary.Pushed = true
	return nil
}
