// ABOUTME: In-memory test doubles for the workflow service
// ABOUTME: Fake fetcher, enricher, exchange, store and document cache

package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/errors"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

var (
	_ interfaces.GenerationService  = (*GenerationService)(nil)
	_ interfaces.AccentColorService = (*AccentService)(nil)
	_ CategoryFetcher               = (*fakeFetcher)(nil)
	_ interfaces.ArticleEnricher    = (*fakeEnricher)(nil)
	_ interfaces.DocumentExchange   = (*memExchange)(nil)
	_ interfaces.ArticleStore       = (*fakeStore)(nil)
	_ interfaces.DocumentCache      = (*fakeDocCache)(nil)
)

type fakeFetcher struct {
	mu    sync.Mutex
	calls [][]string
	fetch func(ctx context.Context, categories []string) (map[string]domain.FeedDocument, error)
}

func (f *fakeFetcher) FetchCategoriesWithFlags(ctx context.Context, categories []string) (map[string]domain.FeedDocument, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string(nil), categories...))
	f.mu.Unlock()

	if f.fetch != nil {
		return f.fetch(ctx, categories)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs := make(map[string]domain.FeedDocument, len(categories))
	for _, category := range categories {
		docs[category] = feedDocumentFor(category, 2)
	}
	return docs, nil
}

func feedDocumentFor(category string, n int) domain.FeedDocument {
	entries := make([]domain.RawFeedEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, domain.RawFeedEntry{
			Title:  fmt.Sprintf("%s headline %d", category, i),
			Link:   fmt.Sprintf("https://example.com/%s/%d", strings.ReplaceAll(category, " ", "-"), i),
			Source: "The Hindu",
		})
	}
	return domain.FeedDocument{
		Metadata: domain.FeedMetadata{Type: "search", Count: len(entries)},
		Articles: entries,
	}
}

// fakeEnricher emits a clean article per entry, or a degraded one for
// entries whose title starts with "FAIL".
type fakeEnricher struct {
	mu      sync.Mutex
	batches [][]domain.RawFeedEntry
	err     error
}

func (f *fakeEnricher) Enrich(ctx context.Context, session interfaces.Session, entry domain.RawFeedEntry) domain.Article {
	return f.article(entry)
}

func (f *fakeEnricher) EnrichBatch(ctx context.Context, entries []domain.RawFeedEntry) ([]domain.Article, error) {
	f.mu.Lock()
	f.batches = append(f.batches, append([]domain.RawFeedEntry(nil), entries...))
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	articles := make([]domain.Article, 0, len(entries))
	successful := 0
	for _, entry := range entries {
		article := f.article(entry)
		if article.Error == "" {
			successful++
		}
		articles = append(articles, article)
	}

	if successful == 0 && len(entries) > 0 {
		return articles, &errors.BatchFailedError{Attempted: len(entries)}
	}
	return articles, nil
}

func (f *fakeEnricher) article(entry domain.RawFeedEntry) domain.Article {
	if strings.HasPrefix(entry.Title, "FAIL") {
		return domain.Article{
			ID:          "id:" + entry.Link,
			Title:       entry.Title,
			URL:         entry.Link,
			ImageURL:    domain.PlaceholderImage,
			Description: domain.ExtractionFailedDescription,
			Source:      entry.Source,
			Error:       "navigation failed",
		}
	}
	return domain.Article{
		ID:           "id:" + entry.Link,
		Title:        entry.Title,
		URL:          entry.Link,
		ImageURL:     "https://cdn.example.com/img.jpg",
		Description:  "A description long enough to look like real article content.",
		Source:       entry.Source,
		QualityScore: 500,
	}
}

// memExchange keeps exchange documents in maps instead of files.
type memExchange struct {
	mu      sync.Mutex
	feeds   map[string]*domain.FeedDocument
	results map[string]*domain.ResultDocument
}

func newMemExchange() *memExchange {
	return &memExchange{
		feeds:   make(map[string]*domain.FeedDocument),
		results: make(map[string]*domain.ResultDocument),
	}
}

func (m *memExchange) FeedPath(category string) string {
	return "data/news_" + strings.ReplaceAll(category, " ", "_") + ".json"
}

func (m *memExchange) ResultPath(category string) string {
	return "data/inshorts_" + strings.ReplaceAll(category, " ", "_") + ".json"
}

func (m *memExchange) WriteFeed(category string, doc *domain.FeedDocument) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feeds[category] = doc
	return m.FeedPath(category), nil
}

func (m *memExchange) ReadFeed(category string) (*domain.FeedDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.feeds[category]
	if !ok {
		return nil, fmt.Errorf("reading document: no feed for %s", category)
	}
	return doc, nil
}

func (m *memExchange) WriteResult(category string, doc *domain.ResultDocument) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[category] = doc
	return m.ResultPath(category), nil
}

func (m *memExchange) ReadResult(category string) (*domain.ResultDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.results[category]
	if !ok {
		return nil, fmt.Errorf("reading document: no result for %s", category)
	}
	return doc, nil
}

func (m *memExchange) FeedCategories() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedKeysFeeds(m.feeds), nil
}

func (m *memExchange) ResultCategories() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedKeysResults(m.results), nil
}

func (m *memExchange) CleanFeeds() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.feeds)
	m.feeds = make(map[string]*domain.FeedDocument)
	return n, nil
}

func (m *memExchange) CleanResults() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.results)
	m.results = make(map[string]*domain.ResultDocument)
	return n, nil
}

func (m *memExchange) feedDoc(category string) *domain.FeedDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.feeds[category]
}

func (m *memExchange) resultDoc(category string) *domain.ResultDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.results[category]
}

func sortedKeysFeeds(docs map[string]*domain.FeedDocument) []string {
	keys := make([]string, 0, len(docs))
	for key := range docs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysResults(docs map[string]*domain.ResultDocument) []string {
	keys := make([]string, 0, len(docs))
	for key := range docs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

type fakeStore struct {
	mu        sync.Mutex
	upserted  []domain.StoredArticle
	upsertErr error
	deleteAge time.Duration
	deleteN   int64
}

func (s *fakeStore) Upsert(ctx context.Context, articles []domain.StoredArticle) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upsertErr != nil {
		return 0, s.upsertErr
	}
	s.upserted = append(s.upserted, articles...)
	return len(articles), nil
}

func (s *fakeStore) ByID(ctx context.Context, articleID string) (*domain.StoredArticle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.upserted {
		if s.upserted[i].ArticleID == articleID {
			return &s.upserted[i], nil
		}
	}
	return nil, &errors.NotFoundError{Resource: "article", ID: articleID}
}

func (s *fakeStore) ByCategory(ctx context.Context, category string, limit int) ([]domain.StoredArticle, error) {
	return nil, nil
}

func (s *fakeStore) BySource(ctx context.Context, source string, limit int) ([]domain.StoredArticle, error) {
	return nil, nil
}

func (s *fakeStore) Trending(ctx context.Context, limit int) ([]domain.StoredArticle, error) {
	return nil, nil
}

func (s *fakeStore) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteAge = age
	return s.deleteN, nil
}

func (s *fakeStore) Close() error {
	return nil
}

func (s *fakeStore) stored() []domain.StoredArticle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.StoredArticle(nil), s.upserted...)
}

type fakeDocCache struct {
	mu   sync.Mutex
	docs map[string]*domain.ResultDocument
	ttls map[string]time.Duration
}

func newFakeDocCache() *fakeDocCache {
	return &fakeDocCache{
		docs: make(map[string]*domain.ResultDocument),
		ttls: make(map[string]time.Duration),
	}
}

func (c *fakeDocCache) SetDocument(ctx context.Context, category string, doc *domain.ResultDocument, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[category] = doc
	c.ttls[category] = ttl
	return nil
}

func (c *fakeDocCache) GetDocument(ctx context.Context, category string) (*domain.ResultDocument, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, ok := c.docs[category]
	if !ok {
		return nil, fmt.Errorf("no document for %s", category)
	}
	return doc, nil
}

func (c *fakeDocCache) DeleteDocument(ctx context.Context, category string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.docs, category)
	delete(c.ttls, category)
	return nil
}

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc  func(ctx context.Context, url string) (interfaces.Response, error)
	postFunc func(ctx context.Context, url string, body io.Reader) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, nil
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	if m.postFunc != nil {
		return m.postFunc(ctx, url, body)
	}
	return nil, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

// mockCache is a mock implementation of the Cache interface
type mockCache struct {
	getFunc    func(ctx context.Context, key string) ([]byte, error)
	setFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	deleteFunc func(ctx context.Context, key string) error
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return nil, fmt.Errorf("cache miss")
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, key)
	}
	return nil
}
