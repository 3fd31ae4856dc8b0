// ABOUTME: In-memory test doubles for the API handlers
// ABOUTME: Fake store, document cache, exchange, queue, accent and briefing services

package handlers

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/errors"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
	"github.com/sundeep8967/keypoints-backend-1/pkg/featureflags"
)

var (
	_ interfaces.DocumentCache      = (*fakeDocCache)(nil)
	_ interfaces.DocumentExchange   = (*fakeExchange)(nil)
	_ interfaces.ArticleStore       = (*fakeStore)(nil)
	_ interfaces.AccentColorService = (*fakeAccent)(nil)
	_ interfaces.BriefingService    = (*fakeBriefing)(nil)
	_ GenerationQueue               = (*fakeQueue)(nil)
	_ interfaces.Logger             = (*recordingLogger)(nil)
)

// flaggedContext returns a context whose flag manager enables exactly
// the given flags.
func flaggedContext(flags map[featureflags.FeatureFlag]bool) context.Context {
	return featureflags.WithManager(context.Background(), featureflags.NewStaticManager(flags))
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	l.entries = append(l.entries, level+": "+msg)
	l.mu.Unlock()
}

func (l *recordingLogger) Debug(msg string, _ map[string]interface{}) { l.record("DEBUG", msg) }
func (l *recordingLogger) Info(msg string, _ map[string]interface{})  { l.record("INFO", msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.record("WARN", msg) }
func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.record("ERROR", msg) }

type fakeDocCache struct {
	mu   sync.Mutex
	docs map[string]*domain.ResultDocument
	sets int
}

func newFakeDocCache() *fakeDocCache {
	return &fakeDocCache{docs: make(map[string]*domain.ResultDocument)}
}

func (c *fakeDocCache) SetDocument(_ context.Context, category string, doc *domain.ResultDocument, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[category] = doc
	c.sets++
	return nil
}

func (c *fakeDocCache) GetDocument(_ context.Context, category string) (*domain.ResultDocument, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, ok := c.docs[category]
	if !ok {
		return nil, fmt.Errorf("result document not cached for %s", category)
	}
	return doc, nil
}

func (c *fakeDocCache) DeleteDocument(_ context.Context, category string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.docs, category)
	return nil
}

type fakeExchange struct {
	results map[string]*domain.ResultDocument
}

func newFakeExchange() *fakeExchange {
	return &fakeExchange{results: make(map[string]*domain.ResultDocument)}
}

func (e *fakeExchange) FeedPath(category string) string {
	return "data/news_" + category + ".json"
}

func (e *fakeExchange) ResultPath(category string) string {
	return "data/inshorts_" + category + ".json"
}

func (e *fakeExchange) WriteFeed(category string, _ *domain.FeedDocument) (string, error) {
	return e.FeedPath(category), nil
}

func (e *fakeExchange) ReadFeed(category string) (*domain.FeedDocument, error) {
	return nil, fmt.Errorf("no feed document for %s", category)
}

func (e *fakeExchange) WriteResult(category string, doc *domain.ResultDocument) (string, error) {
	e.results[category] = doc
	return e.ResultPath(category), nil
}

func (e *fakeExchange) ReadResult(category string) (*domain.ResultDocument, error) {
	doc, ok := e.results[category]
	if !ok {
		return nil, fmt.Errorf("no result document for %s", category)
	}
	return doc, nil
}

func (e *fakeExchange) FeedCategories() ([]string, error) {
	return nil, nil
}

func (e *fakeExchange) ResultCategories() ([]string, error) {
	names := make([]string, 0, len(e.results))
	for name := range e.results {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (e *fakeExchange) CleanFeeds() (int, error) {
	return 0, nil
}

func (e *fakeExchange) CleanResults() (int, error) {
	n := len(e.results)
	e.results = make(map[string]*domain.ResultDocument)
	return n, nil
}

type fakeStore struct {
	rows []domain.StoredArticle
	err  error
}

func (s *fakeStore) Upsert(_ context.Context, articles []domain.StoredArticle) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.rows = append(s.rows, articles...)
	return len(articles), nil
}

func (s *fakeStore) ByID(_ context.Context, articleID string) (*domain.StoredArticle, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.rows {
		if s.rows[i].ArticleID == articleID {
			row := s.rows[i]
			return &row, nil
		}
	}
	return nil, &errors.NotFoundError{Resource: "article", ID: articleID}
}

func (s *fakeStore) ByCategory(_ context.Context, category string, limit int) ([]domain.StoredArticle, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.StoredArticle
	for _, row := range s.rows {
		if row.Category == category {
			out = append(out, row)
		}
	}
	return truncateRows(out, limit), nil
}

func (s *fakeStore) BySource(_ context.Context, source string, limit int) ([]domain.StoredArticle, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.StoredArticle
	for _, row := range s.rows {
		if row.Source == source {
			out = append(out, row)
		}
	}
	return truncateRows(out, limit), nil
}

func (s *fakeStore) Trending(_ context.Context, limit int) ([]domain.StoredArticle, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := append([]domain.StoredArticle(nil), s.rows...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].QualityScore > out[j].QualityScore
	})
	return truncateRows(out, limit), nil
}

func (s *fakeStore) DeleteOlderThan(_ context.Context, _ time.Duration) (int64, error) {
	return 0, s.err
}

func (s *fakeStore) Close() error {
	return nil
}

func truncateRows(rows []domain.StoredArticle, limit int) []domain.StoredArticle {
	if limit > 0 && limit < len(rows) {
		return rows[:limit]
	}
	return rows
}

type fakeAccent struct {
	color domain.RGBColor
	calls []string
}

func (a *fakeAccent) ExtractColor(_ context.Context, imageURL string) (*domain.RGBColor, error) {
	a.calls = append(a.calls, imageURL)
	color := a.color
	return &color, nil
}

func (a *fakeAccent) ExtractColorBatch(ctx context.Context, imageURLs []string) map[string]*domain.RGBColor {
	out := make(map[string]*domain.RGBColor, len(imageURLs))
	for _, u := range imageURLs {
		color, _ := a.ExtractColor(ctx, u)
		out[u] = color
	}
	return out
}

func (a *fakeAccent) GetCachedColor(_ context.Context, imageURL string) (*domain.RGBColor, error) {
	return nil, fmt.Errorf("accent color not cached for %s", imageURL)
}

type fakeBriefing struct {
	enabled      bool
	audio        []byte
	err          error
	articleCount int
}

func (b *fakeBriefing) Synthesize(_ context.Context, articles []domain.Article) ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.articleCount = len(articles)
	return b.audio, nil
}

func (b *fakeBriefing) Enabled() bool {
	return b.enabled
}

type fakeQueue struct {
	refreshCalls int
	categories   []string
	err          error
}

func (q *fakeQueue) SubmitRefresh() error {
	if q.err != nil {
		return q.err
	}
	q.refreshCalls++
	return nil
}

func (q *fakeQueue) SubmitCategory(category string) error {
	if q.err != nil {
		return q.err
	}
	q.categories = append(q.categories, category)
	return nil
}

// resultDoc builds a generated result document with n clean articles.
func resultDoc(category string, n int) *domain.ResultDocument {
	articles := make([]domain.Article, 0, n)
	for i := 0; i < n; i++ {
		articles = append(articles, domain.Article{
			ID:           fmt.Sprintf("%s-%d", category, i),
			Title:        fmt.Sprintf("%s headline %d", category, i),
			Source:       "The Hindu",
			URL:          fmt.Sprintf("https://example.com/%s/%d", category, i),
			ImageURL:     "https://cdn.example.com/img.jpg",
			Description:  "Two sentences of summary.",
			KeyPoints:    []string{"First point.", "Second point."},
			Published:    "Fri, 22 Aug 2025 10:00:00 GMT",
			QualityScore: 500,
		})
	}
	return &domain.ResultDocument{
		Metadata: domain.ResultMetadata{
			SourceFile:     "data/news_" + category + ".json",
			GenerationTime: "2025-08-22 10:30:00",
			RunID:          "run-" + category,
			TotalArticles:  n,
			Successful:     n,
		},
		Articles: articles,
	}
}

// storedRow builds one store row.
func storedRow(id, category string, score int) domain.StoredArticle {
	return domain.StoredArticle{
		Title:        "Headline " + id,
		Link:         "https://example.com/" + id,
		Published:    "Fri, 22 Aug 2025 10:00:00 GMT",
		Source:       "The Hindu",
		Category:     category,
		Description:  "Two sentences of summary.",
		ImageURL:     "https://cdn.example.com/" + id + ".jpg",
		ArticleID:    id,
		QualityScore: score,
	}
}
