// ABOUTME: Tests for the workflow service covering fetch, generate and push steps
// ABOUTME: Exercises merging, degraded categories, storage gating and cleanup

package services

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/sundeep8967/keypoints-backend-1/core/assemble"
	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
	"github.com/sundeep8967/keypoints-backend-1/core/keypoints"
	"github.com/sundeep8967/keypoints-backend-1/core/scoring"
)

func newWorkflow(fetcher *fakeFetcher, enricher *fakeEnricher, exchange *memExchange, backends GenerationBackends, categories ...string) *GenerationService {
	deps := interfaces.Dependencies{}
	assembler := assemble.NewAssembler(deps, scoring.NewScorer(deps, scoring.DefaultWeights()), keypoints.NewGenerator(keypoints.DefaultOptions()))
	return NewGenerationService(deps, fetcher, enricher, assembler, exchange, backends, GenerationConfig{
		Categories: categories,
		ResultTTL:  5 * time.Minute,
	})
}

func TestRefreshAll_RunsAllSteps(t *testing.T) {
	fetcher := &fakeFetcher{}
	enricher := &fakeEnricher{}
	exchange := newMemExchange()
	store := &fakeStore{}
	docs := newFakeDocCache()

	svc := newWorkflow(fetcher, enricher, exchange, GenerationBackends{Store: store, Documents: docs}, "indian sports", "technology")

	summary, err := svc.RefreshAll(context.Background())
	if err != nil {
		t.Fatalf("RefreshAll() error = %v", err)
	}
	if !summary.Succeeded() {
		t.Fatalf("summary.Succeeded() = false, summary = %+v", summary)
	}

	if summary.RunID == "" {
		t.Error("summary.RunID is empty")
	}
	if summary.Categories != 2 {
		t.Errorf("summary.Categories = %d, want 2", summary.Categories)
	}
	if summary.Fetched != 2 {
		t.Errorf("summary.Fetched = %d, want 2", summary.Fetched)
	}
	if summary.Generated != 2 {
		t.Errorf("summary.Generated = %d, want 2", summary.Generated)
	}
	if summary.TotalArticles != 4 || summary.Successful != 4 || summary.Degraded != 0 {
		t.Errorf("article counts = %d/%d/%d, want 4/4/0",
			summary.TotalArticles, summary.Successful, summary.Degraded)
	}
	if summary.Stored != 4 || summary.Rejected != 0 {
		t.Errorf("stored/rejected = %d/%d, want 4/0", summary.Stored, summary.Rejected)
	}

	if len(fetcher.calls) != 1 {
		t.Fatalf("fetcher called %d times, want 1", len(fetcher.calls))
	}
	if got := fetcher.calls[0]; len(got) != 2 || got[0] != "indian sports" || got[1] != "technology" {
		t.Errorf("fetched categories = %v", got)
	}

	// Feed and result documents land under the canonical names.
	if exchange.feedDoc("sports") == nil || exchange.feedDoc("technology") == nil {
		t.Fatalf("feed documents missing, have %v", sortedKeysFeeds(exchange.feeds))
	}
	result := exchange.resultDoc("technology")
	if result == nil {
		t.Fatal("result document for technology missing")
	}
	if result.Metadata.RunID != summary.RunID {
		t.Errorf("result RunID = %q, want %q", result.Metadata.RunID, summary.RunID)
	}
	if want := exchange.FeedPath("technology"); result.Metadata.SourceFile != want {
		t.Errorf("result SourceFile = %q, want %q", result.Metadata.SourceFile, want)
	}

	stored := store.stored()
	if len(stored) != 4 {
		t.Fatalf("store received %d articles, want 4", len(stored))
	}
	byCategory := map[string]int{}
	for _, article := range stored {
		byCategory[article.Category]++
	}
	if byCategory["sports"] != 2 || byCategory["technology"] != 2 {
		t.Errorf("stored category counts = %v", byCategory)
	}

	if _, err := docs.GetDocument(context.Background(), "sports"); err != nil {
		t.Errorf("document cache missing sports: %v", err)
	}
	if ttl := docs.ttls["technology"]; ttl != 5*time.Minute {
		t.Errorf("cached TTL = %v, want 5m", ttl)
	}
}

func TestRefreshAll_MergesRosterIntoCanonicalCategory(t *testing.T) {
	duplicate := domain.RawFeedEntry{
		Title:  "Star couple announces wedding date",
		Link:   "https://example.com/wedding",
		Source: "Pinkvilla",
	}
	fetcher := &fakeFetcher{
		fetch: func(ctx context.Context, categories []string) (map[string]domain.FeedDocument, error) {
			return map[string]domain.FeedDocument{
				"indian celebrity": {
					Metadata: domain.FeedMetadata{Type: "search", Count: 2},
					Articles: []domain.RawFeedEntry{
						duplicate,
						{Title: "Award night brings out the classics", Link: "https://example.com/awards", Source: "Pinkvilla"},
					},
				},
				"indian cinema and bollywood": {
					Metadata: domain.FeedMetadata{Type: "search", Count: 2},
					Articles: []domain.RawFeedEntry{
						duplicate,
						{Title: "Blockbuster opens to packed theatres", Link: "https://example.com/film", Source: "Bollywood Hungama"},
					},
				},
			}, nil
		},
	}
	exchange := newMemExchange()

	svc := newWorkflow(fetcher, &fakeEnricher{}, exchange, GenerationBackends{}, "indian celebrity", "indian cinema and bollywood")

	summary, err := svc.RefreshAll(context.Background())
	if err != nil {
		t.Fatalf("RefreshAll() error = %v", err)
	}

	if summary.Fetched != 2 {
		t.Errorf("summary.Fetched = %d, want 2", summary.Fetched)
	}
	if summary.Generated != 1 {
		t.Errorf("summary.Generated = %d, want 1", summary.Generated)
	}
	if summary.DuplicatesRemoved != 1 {
		t.Errorf("summary.DuplicatesRemoved = %d, want 1", summary.DuplicatesRemoved)
	}
	if summary.TotalArticles != 3 {
		t.Errorf("summary.TotalArticles = %d, want 3", summary.TotalArticles)
	}

	feed := exchange.feedDoc("entertainment")
	if feed == nil {
		t.Fatalf("merged feed missing, have %v", sortedKeysFeeds(exchange.feeds))
	}
	if feed.Metadata.Type != "merged" || feed.Metadata.FinalCategory != "entertainment" {
		t.Errorf("merged metadata = %q/%q", feed.Metadata.Type, feed.Metadata.FinalCategory)
	}
	if len(feed.Metadata.SourceFiles) != 2 {
		t.Fatalf("merged from %d sources, want 2", len(feed.Metadata.SourceFiles))
	}
	if feed.Metadata.SourceFiles[0].File != "indian celebrity" {
		t.Errorf("first source = %q, want indian celebrity", feed.Metadata.SourceFiles[0].File)
	}

	result := exchange.resultDoc("entertainment")
	if result == nil {
		t.Fatal("result document for entertainment missing")
	}
	if result.Metadata.DuplicatesRemoved != 1 {
		t.Errorf("result DuplicatesRemoved = %d, want 1", result.Metadata.DuplicatesRemoved)
	}
}

func TestRefreshAll_CleansStaleDocumentsFirst(t *testing.T) {
	exchange := newMemExchange()
	if _, err := exchange.WriteFeed("stale", &domain.FeedDocument{}); err != nil {
		t.Fatal(err)
	}
	if _, err := exchange.WriteResult("stale", &domain.ResultDocument{}); err != nil {
		t.Fatal(err)
	}

	svc := newWorkflow(&fakeFetcher{}, &fakeEnricher{}, exchange, GenerationBackends{}, "technology")

	if _, err := svc.RefreshAll(context.Background()); err != nil {
		t.Fatalf("RefreshAll() error = %v", err)
	}

	if exchange.feedDoc("stale") != nil || exchange.resultDoc("stale") != nil {
		t.Error("stale documents survived a full run")
	}
	if exchange.feedDoc("technology") == nil {
		t.Error("fresh feed document missing after run")
	}
}

func TestRefreshCategory_RefetchesRosterSiblings(t *testing.T) {
	fetcher := &fakeFetcher{}
	exchange := newMemExchange()
	if _, err := exchange.WriteFeed("sports", &domain.FeedDocument{}); err != nil {
		t.Fatal(err)
	}

	svc := newWorkflow(fetcher, &fakeEnricher{}, exchange, GenerationBackends{},
		"indian celebrity", "indian cinema and bollywood", "technology")

	summary, err := svc.RefreshCategory(context.Background(), "entertainment")
	if err != nil {
		t.Fatalf("RefreshCategory() error = %v", err)
	}

	if summary.Categories != 2 {
		t.Errorf("summary.Categories = %d, want 2", summary.Categories)
	}
	if len(fetcher.calls) != 1 {
		t.Fatalf("fetcher called %d times, want 1", len(fetcher.calls))
	}
	got := fetcher.calls[0]
	if len(got) != 2 || got[0] != "indian celebrity" || got[1] != "indian cinema and bollywood" {
		t.Errorf("fetched categories = %v", got)
	}

	if exchange.resultDoc("entertainment") == nil {
		t.Error("result document for entertainment missing")
	}
	// Single-category refreshes leave other categories alone.
	if exchange.feedDoc("sports") == nil {
		t.Error("unrelated feed document was cleaned")
	}
}

func TestRefreshCategory_UnknownLabelFetchedDirectly(t *testing.T) {
	fetcher := &fakeFetcher{}
	exchange := newMemExchange()

	svc := newWorkflow(fetcher, &fakeEnricher{}, exchange, GenerationBackends{}, "technology")

	if _, err := svc.RefreshCategory(context.Background(), "quantum computing"); err != nil {
		t.Fatalf("RefreshCategory() error = %v", err)
	}

	got := fetcher.calls[0]
	if len(got) != 1 || got[0] != "quantum computing" {
		t.Errorf("fetched categories = %v, want [quantum computing]", got)
	}
	if exchange.resultDoc("quantum computing") == nil {
		t.Error("result document for quantum computing missing")
	}
}

func TestRefreshAll_NoCategoriesFetched(t *testing.T) {
	fetcher := &fakeFetcher{
		fetch: func(ctx context.Context, categories []string) (map[string]domain.FeedDocument, error) {
			return map[string]domain.FeedDocument{}, nil
		},
	}

	svc := newWorkflow(fetcher, &fakeEnricher{}, newMemExchange(), GenerationBackends{}, "technology")

	summary, err := svc.RefreshAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "no categories fetched") {
		t.Fatalf("RefreshAll() error = %v, want no categories fetched", err)
	}
	if summary.Fetched != 0 || summary.Pushed {
		t.Errorf("summary = %+v, want zero fetched and not pushed", summary)
	}
}

func TestRefreshAll_FetchErrorPropagates(t *testing.T) {
	fetchErr := stderrors.New("feed endpoint unreachable")
	fetcher := &fakeFetcher{
		fetch: func(ctx context.Context, categories []string) (map[string]domain.FeedDocument, error) {
			return nil, fetchErr
		},
	}

	svc := newWorkflow(fetcher, &fakeEnricher{}, newMemExchange(), GenerationBackends{}, "technology")

	summary, err := svc.RefreshAll(context.Background())
	if !stderrors.Is(err, fetchErr) {
		t.Fatalf("RefreshAll() error = %v, want %v", err, fetchErr)
	}
	if summary.Succeeded() {
		t.Error("summary.Succeeded() = true after fetch failure")
	}
}

func TestRefreshAll_AllDegradedCategoryStillWritesResult(t *testing.T) {
	fetcher := &fakeFetcher{
		fetch: func(ctx context.Context, categories []string) (map[string]domain.FeedDocument, error) {
			return map[string]domain.FeedDocument{
				"technology": {
					Articles: []domain.RawFeedEntry{
						{Title: "FAIL server rejects the crawler", Link: "https://example.com/1", Source: "The Hindu"},
						{Title: "FAIL paywall blocks the page", Link: "https://example.com/2", Source: "The Hindu"},
					},
				},
			}, nil
		},
	}
	exchange := newMemExchange()
	docs := newFakeDocCache()

	svc := newWorkflow(fetcher, &fakeEnricher{}, exchange, GenerationBackends{Documents: docs}, "technology")

	summary, err := svc.RefreshAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "no categories generated") {
		t.Fatalf("RefreshAll() error = %v, want no categories generated", err)
	}
	if summary.Generated != 0 || summary.Degraded != 2 || summary.TotalArticles != 2 {
		t.Errorf("summary = %+v, want 0 generated, 2 degraded", summary)
	}

	// The degraded result document is still written for inspection.
	result := exchange.resultDoc("technology")
	if result == nil {
		t.Fatal("degraded result document missing")
	}
	if result.Metadata.Degraded != 2 || result.Metadata.Successful != 0 {
		t.Errorf("result metadata = %+v", result.Metadata)
	}
	for _, article := range result.Articles {
		if article.Error == "" {
			t.Errorf("article %q missing error tag", article.Title)
		}
	}

	// Failed categories never reach the serving cache.
	if len(docs.docs) != 0 {
		t.Errorf("document cache holds %d entries, want 0", len(docs.docs))
	}
}

func TestRefreshAll_HardEnricherFailureAborts(t *testing.T) {
	enrichErr := stderrors.New("session pool exhausted")
	enricher := &fakeEnricher{err: enrichErr}
	exchange := newMemExchange()

	svc := newWorkflow(&fakeFetcher{}, enricher, exchange, GenerationBackends{}, "technology")

	summary, err := svc.RefreshAll(context.Background())
	if !stderrors.Is(err, enrichErr) {
		t.Fatalf("RefreshAll() error = %v, want %v", err, enrichErr)
	}
	if summary.Generated != 0 || summary.Pushed {
		t.Errorf("summary = %+v, want nothing generated or pushed", summary)
	}
	if exchange.resultDoc("technology") != nil {
		t.Error("result document written despite hard failure")
	}
}

func TestRefreshAll_GateRejectsDegradedArticles(t *testing.T) {
	fetcher := &fakeFetcher{
		fetch: func(ctx context.Context, categories []string) (map[string]domain.FeedDocument, error) {
			return map[string]domain.FeedDocument{
				"technology": {
					Articles: []domain.RawFeedEntry{
						{Title: "Chipmaker doubles fab capacity", Link: "https://example.com/fab", Source: "The Hindu"},
						{Title: "FAIL site times out", Link: "https://example.com/slow", Source: "The Hindu"},
					},
				},
			}, nil
		},
	}
	store := &fakeStore{}

	svc := newWorkflow(fetcher, &fakeEnricher{}, newMemExchange(), GenerationBackends{Store: store}, "technology")

	summary, err := svc.RefreshAll(context.Background())
	if err != nil {
		t.Fatalf("RefreshAll() error = %v", err)
	}

	if summary.Successful != 1 || summary.Degraded != 1 {
		t.Errorf("successful/degraded = %d/%d, want 1/1", summary.Successful, summary.Degraded)
	}
	if summary.Rejected != 1 || summary.Stored != 1 {
		t.Errorf("rejected/stored = %d/%d, want 1/1", summary.Rejected, summary.Stored)
	}

	stored := store.stored()
	if len(stored) != 1 {
		t.Fatalf("store received %d articles, want 1", len(stored))
	}
	if stored[0].ArticleID != "id:https://example.com/fab" {
		t.Errorf("stored article = %q", stored[0].ArticleID)
	}
}

func TestRefreshAll_NoStoreConfigured(t *testing.T) {
	svc := newWorkflow(&fakeFetcher{}, &fakeEnricher{}, newMemExchange(), GenerationBackends{}, "technology")

	summary, err := svc.RefreshAll(context.Background())
	if err != nil {
		t.Fatalf("RefreshAll() error = %v", err)
	}
	if !summary.Pushed {
		t.Error("summary.Pushed = false without a store")
	}
	if summary.Stored != 0 {
		t.Errorf("summary.Stored = %d, want 0", summary.Stored)
	}
	if !summary.Succeeded() {
		t.Error("file-only run should still count as succeeded")
	}
}

func TestRefreshAll_StoreErrorFailsRun(t *testing.T) {
	store := &fakeStore{upsertErr: stderrors.New("connection refused")}

	svc := newWorkflow(&fakeFetcher{}, &fakeEnricher{}, newMemExchange(), GenerationBackends{Store: store}, "technology")

	summary, err := svc.RefreshAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "pushing articles") {
		t.Fatalf("RefreshAll() error = %v, want pushing articles", err)
	}
	if summary.Pushed || summary.Stored != 0 {
		t.Errorf("summary = %+v, want not pushed", summary)
	}
}

func TestRefreshAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newWorkflow(&fakeFetcher{}, &fakeEnricher{}, newMemExchange(), GenerationBackends{}, "technology")

	_, err := svc.RefreshAll(ctx)
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("RefreshAll() error = %v, want context.Canceled", err)
	}
}

func TestFetch_WritesFeedDocumentsOnly(t *testing.T) {
	fetcher := &fakeFetcher{}
	enricher := &fakeEnricher{}
	exchange := newMemExchange()
	store := &fakeStore{}

	svc := newWorkflow(fetcher, enricher, exchange, GenerationBackends{Store: store}, "indian sports", "technology")

	summary, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if summary.Fetched != 2 {
		t.Errorf("summary.Fetched = %d, want 2", summary.Fetched)
	}

	if exchange.feedDoc("sports") == nil || exchange.feedDoc("technology") == nil {
		t.Fatalf("feed documents missing, have %v", sortedKeysFeeds(exchange.feeds))
	}

	// Fetch stops at the exchange: nothing enriched, nothing stored.
	results, _ := exchange.ResultCategories()
	if len(results) != 0 {
		t.Errorf("results written during fetch: %v", results)
	}
	if len(enricher.batches) != 0 {
		t.Errorf("enricher called %d times during fetch", len(enricher.batches))
	}
	if len(store.stored()) != 0 {
		t.Errorf("store received %d articles during fetch", len(store.stored()))
	}
}

func TestFetch_ReplacesStaleFeedsKeepsResults(t *testing.T) {
	exchange := newMemExchange()
	if _, err := exchange.WriteFeed("stale", &domain.FeedDocument{}); err != nil {
		t.Fatal(err)
	}
	if _, err := exchange.WriteResult("sports", &domain.ResultDocument{}); err != nil {
		t.Fatal(err)
	}

	svc := newWorkflow(&fakeFetcher{}, &fakeEnricher{}, exchange, GenerationBackends{}, "technology")

	if _, err := svc.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if exchange.feedDoc("stale") != nil {
		t.Error("stale feed document survived fetch")
	}
	if exchange.feedDoc("technology") == nil {
		t.Error("technology feed document missing")
	}
	if exchange.resultDoc("sports") == nil {
		t.Error("result document removed by fetch")
	}
}

func TestGenerate_EnrichesExchangeFeeds(t *testing.T) {
	fetcher := &fakeFetcher{}
	enricher := &fakeEnricher{}
	exchange := newMemExchange()
	docs := newFakeDocCache()

	seeded := feedDocumentFor("sports", 2)
	if _, err := exchange.WriteFeed("sports", &seeded); err != nil {
		t.Fatal(err)
	}

	svc := newWorkflow(fetcher, enricher, exchange, GenerationBackends{Documents: docs}, "indian sports")

	summary, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if summary.Generated != 1 || summary.TotalArticles != 2 || summary.Successful != 2 {
		t.Errorf("summary = %+v, want 1 generated with 2 successful articles", summary)
	}

	// Feeds come from the exchange, not a fresh fetch.
	if len(fetcher.calls) != 0 {
		t.Errorf("fetcher called %d times during generate", len(fetcher.calls))
	}

	result := exchange.resultDoc("sports")
	if result == nil {
		t.Fatal("result document for sports missing")
	}
	if result.Metadata.RunID != summary.RunID {
		t.Errorf("result RunID = %q, want %q", result.Metadata.RunID, summary.RunID)
	}
	if _, err := docs.GetDocument(context.Background(), "sports"); err != nil {
		t.Errorf("document cache missing sports: %v", err)
	}
}

func TestGenerate_EmptyExchangeErrors(t *testing.T) {
	svc := newWorkflow(&fakeFetcher{}, &fakeEnricher{}, newMemExchange(), GenerationBackends{}, "technology")

	_, err := svc.Generate(context.Background())
	if err == nil || !strings.Contains(err.Error(), "no feed documents") {
		t.Fatalf("Generate() error = %v, want no feed documents", err)
	}
}

func TestPush_UploadsExchangeResults(t *testing.T) {
	exchange := newMemExchange()
	result := &domain.ResultDocument{
		Articles: []domain.Article{
			{
				ID:           "a1",
				Title:        "Valid headline",
				URL:          "https://example.com/a1",
				ImageURL:     "https://cdn.example.com/a1.jpg",
				Description:  "A description long enough to look real.",
				Source:       "The Hindu",
				QualityScore: 500,
			},
			{
				ID:          "a2",
				Title:       "Degraded headline",
				URL:         "https://example.com/a2",
				ImageURL:    domain.PlaceholderImage,
				Description: domain.ExtractionFailedDescription,
				Error:       "navigation failed",
			},
		},
	}
	if _, err := exchange.WriteResult("sports", result); err != nil {
		t.Fatal(err)
	}
	store := &fakeStore{}

	svc := newWorkflow(&fakeFetcher{}, &fakeEnricher{}, exchange, GenerationBackends{Store: store}, "indian sports")

	summary, err := svc.Push(context.Background())
	if err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if !summary.Pushed {
		t.Error("summary.Pushed = false")
	}
	if summary.Stored != 1 || summary.Rejected != 1 {
		t.Errorf("stored/rejected = %d/%d, want 1/1", summary.Stored, summary.Rejected)
	}

	stored := store.stored()
	if len(stored) != 1 || stored[0].ArticleID != "a1" {
		t.Fatalf("store received %v", stored)
	}
	if stored[0].Category != "sports" {
		t.Errorf("stored category = %q, want sports", stored[0].Category)
	}
}

func TestPush_EmptyExchangeErrors(t *testing.T) {
	svc := newWorkflow(&fakeFetcher{}, &fakeEnricher{}, newMemExchange(), GenerationBackends{Store: &fakeStore{}}, "technology")

	_, err := svc.Push(context.Background())
	if err == nil || !strings.Contains(err.Error(), "no result documents") {
		t.Fatalf("Push() error = %v, want no result documents", err)
	}
}

func TestPush_WithoutStoreStillSucceeds(t *testing.T) {
	exchange := newMemExchange()
	if _, err := exchange.WriteResult("sports", &domain.ResultDocument{}); err != nil {
		t.Fatal(err)
	}

	svc := newWorkflow(&fakeFetcher{}, &fakeEnricher{}, exchange, GenerationBackends{}, "indian sports")

	summary, err := svc.Push(context.Background())
	if err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if !summary.Pushed {
		t.Error("summary.Pushed = false without a store")
	}
}

func TestCleanup_RemovesDocumentsAndOldRows(t *testing.T) {
	exchange := newMemExchange()
	if _, err := exchange.WriteFeed("sports", &domain.FeedDocument{}); err != nil {
		t.Fatal(err)
	}
	if _, err := exchange.WriteResult("sports", &domain.ResultDocument{}); err != nil {
		t.Fatal(err)
	}
	store := &fakeStore{deleteN: 7}

	svc := newWorkflow(&fakeFetcher{}, &fakeEnricher{}, exchange, GenerationBackends{Store: store}, "technology")

	rows, err := svc.Cleanup(context.Background(), 30*24*time.Hour)
	if err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if rows != 7 {
		t.Errorf("Cleanup() rows = %d, want 7", rows)
	}
	if store.deleteAge != 30*24*time.Hour {
		t.Errorf("delete age = %v, want 720h", store.deleteAge)
	}

	feeds, _ := exchange.FeedCategories()
	results, _ := exchange.ResultCategories()
	if len(feeds) != 0 || len(results) != 0 {
		t.Errorf("exchange still holds %d feeds and %d results", len(feeds), len(results))
	}
}
