// ABOUTME: News feed client fetching aggregator RSS result sets
// ABOUTME: Builds top/topic/geo/search feed URLs and parses entries into raw feed documents

package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
	"github.com/sundeep8967/keypoints-backend-1/pkg/utils/html"
)

// feedBaseURL is the aggregator's RSS endpoint.
const feedBaseURL = "https://news.google.com/rss"

// maxSourceLength bounds the publisher name recovered from a headline
// suffix; anything longer is part of the headline itself.
const maxSourceLength = 60

// fetchConcurrency bounds concurrent category fetches.
const fetchConcurrency = 4

// Fetch kinds, also used as document metadata types.
const (
	KindTop    = "top"
	KindTopic  = "topic"
	KindGeo    = "geo"
	KindSearch = "search"
)

// topicIDs are the sections the aggregator publishes as dedicated
// headline feeds, keyed by category name.
var topicIDs = map[string]string{
	"business":      "BUSINESS",
	"technology":    "TECHNOLOGY",
	"entertainment": "ENTERTAINMENT",
	"sports":        "SPORTS",
	"health":        "HEALTH",
	"science":       "SCIENCE",
	"world":         "WORLD",
}

// Options configure the feed client.
type Options struct {
	// Language is the feed language code (hl parameter)
	Language string

	// Country is the feed edition country code (gl parameter)
	Country string

	// CacheTTL bounds how long fetched result sets are reused
	CacheTTL time.Duration
}

// DefaultOptions returns the feed settings used in production.
func DefaultOptions() Options {
	return Options{
		Language: "en",
		Country:  "US",
		CacheTTL: 30 * time.Minute,
	}
}

// FeedService fetches aggregator RSS result sets and converts them
// into raw feed documents.
type FeedService struct {
	deps interfaces.Dependencies
	opts Options
}

// NewFeedService creates a new feed service instance.
func NewFeedService(deps interfaces.Dependencies, opts Options) *FeedService {
	if opts.Language == "" {
		opts.Language = DefaultOptions().Language
	}
	if opts.Country == "" {
		opts.Country = DefaultOptions().Country
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultOptions().CacheTTL
	}
	return &FeedService{deps: deps, opts: opts}
}

// FetchTop returns the aggregator's top stories.
func (s *FeedService) FetchTop(ctx context.Context) (domain.FeedDocument, error) {
	return s.Fetch(ctx, FetchPlan{Kind: KindTop})
}

// FetchTopic returns headlines for a dedicated topic section.
func (s *FeedService) FetchTopic(ctx context.Context, topic string) (domain.FeedDocument, error) {
	return s.Fetch(ctx, FetchPlan{Kind: KindTopic, Query: topic})
}

// FetchGeo returns headlines for a location.
func (s *FeedService) FetchGeo(ctx context.Context, location string) (domain.FeedDocument, error) {
	return s.Fetch(ctx, FetchPlan{Kind: KindGeo, Query: location})
}

// FetchSearch returns results for a query, optionally bounded to a
// recency window such as "1h" or "1d".
func (s *FeedService) FetchSearch(ctx context.Context, query, when string) (domain.FeedDocument, error) {
	return s.Fetch(ctx, FetchPlan{Kind: KindSearch, Query: query, When: when})
}

// Fetch runs one fetch plan and wraps the entries with metadata
// describing the query.
func (s *FeedService) Fetch(ctx context.Context, plan FetchPlan) (domain.FeedDocument, error) {
	feedURL, info, err := s.planURL(plan)
	if err != nil {
		return domain.FeedDocument{}, err
	}
	entries, err := s.fetchEntries(ctx, feedURL)
	if err != nil {
		return domain.FeedDocument{}, err
	}
	return s.document(plan.Kind, info, entries), nil
}

// FetchCategories fetches several categories concurrently and returns
// the documents keyed by category name. Categories that fail are
// logged and omitted; the returned error reports context cancellation
// only, so partial results remain usable.
func (s *FeedService) FetchCategories(ctx context.Context, categories []string) (map[string]domain.FeedDocument, error) {
	if len(categories) == 0 {
		return map[string]domain.FeedDocument{}, nil
	}

	type fetchResult struct {
		category string
		doc      domain.FeedDocument
		err      error
	}

	resultsChan := make(chan fetchResult, len(categories))
	semaphore := make(chan struct{}, fetchConcurrency)
	var wg sync.WaitGroup

	for _, category := range categories {
		wg.Add(1)
		go func(category string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				resultsChan <- fetchResult{category: category, err: ctx.Err()}
				return
			default:
			}

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			doc, err := s.Fetch(ctx, PlanFor(category))
			resultsChan <- fetchResult{category: category, doc: doc, err: err}
		}(category)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	docs := make(map[string]domain.FeedDocument, len(categories))
	var firstError error

	for result := range resultsChan {
		if result.err != nil {
			if s.deps.Logger != nil {
				s.deps.Logger.Error("Failed to fetch category", map[string]interface{}{
					"category": result.category,
					"error":    result.err.Error(),
				})
			}
			if firstError == nil && errors.Is(result.err, context.Canceled) {
				firstError = result.err
			}
			continue
		}
		docs[result.category] = result.doc
	}

	return docs, firstError
}

// planURL maps a fetch plan to its feed URL and metadata info string.
func (s *FeedService) planURL(plan FetchPlan) (feedURL, info string, err error) {
	switch plan.Kind {
	case KindTop:
		return s.topURL(), "top news", nil
	case KindTopic:
		u, err := s.topicURL(plan.Query)
		return u, "topic: " + plan.Query, err
	case KindGeo:
		if plan.Query == "" {
			return "", "", errors.New("location cannot be empty")
		}
		return s.geoURL(plan.Query), "location: " + plan.Query, nil
	case KindSearch:
		if plan.Query == "" {
			return "", "", errors.New("query cannot be empty")
		}
		return s.searchURL(plan.Query, plan.When), "search: " + plan.Query, nil
	default:
		return "", "", fmt.Errorf("unknown fetch kind: %s", plan.Kind)
	}
}

// document wraps entries with fetch metadata.
func (s *FeedService) document(kind, info string, entries []domain.RawFeedEntry) domain.FeedDocument {
	return domain.FeedDocument{
		Metadata: domain.FeedMetadata{
			Type:      kind,
			Timestamp: time.Now().Format(domain.FeedTimestampFormat),
			Info:      info,
			Count:     len(entries),
		},
		Articles: entries,
	}
}

// fetchEntries loads and parses one feed URL, consulting the cache
// first and storing fresh results.
func (s *FeedService) fetchEntries(ctx context.Context, feedURL string) ([]domain.RawFeedEntry, error) {
	if cached := s.cachedEntries(ctx, feedURL); cached != nil {
		return cached, nil
	}

	entries, err := s.fetchEntriesFresh(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	_ = s.cacheEntries(ctx, feedURL, entries)
	return entries, nil
}

// fetchEntriesFresh loads and parses one feed URL over the network,
// bypassing the cache entirely.
func (s *FeedService) fetchEntriesFresh(ctx context.Context, feedURL string) ([]domain.RawFeedEntry, error) {
	if s.deps.HTTPClient == nil {
		return nil, errors.New("HTTP client not configured")
	}

	resp, err := s.deps.HTTPClient.Get(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode())
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, err
	}

	entries, err := parseEntries(body)
	if err != nil {
		return nil, err
	}

	if s.deps.Logger != nil {
		s.deps.Logger.Info("Fetched feed", map[string]interface{}{
			"url":   feedURL,
			"count": len(entries),
		})
	}
	return entries, nil
}

// parseEntries converts a raw RSS payload into feed entries.
func parseEntries(content []byte) ([]domain.RawFeedEntry, error) {
	if len(content) == 0 {
		return nil, errors.New("empty feed content")
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	entries := make([]domain.RawFeedEntry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		published := item.Published
		if published == "" && item.PublishedParsed != nil {
			published = item.PublishedParsed.Format(time.RFC1123Z)
		}
		// Publisher titles sometimes arrive double-encoded.
		title := html.DecodeEntities(item.Title)
		entries = append(entries, domain.RawFeedEntry{
			Title:     title,
			Link:      item.Link,
			Published: published,
			Source:    sourceFromTitle(title),
		})
	}
	return entries, nil
}

// sourceFromTitle recovers the publisher name the aggregator appends
// to headlines after the final " - " separator.
func sourceFromTitle(title string) string {
	i := strings.LastIndex(title, " - ")
	if i < 0 {
		return ""
	}
	source := strings.TrimSpace(title[i+3:])
	if source == "" || utf8.RuneCountInString(source) > maxSourceLength {
		return ""
	}
	return source
}

// topURL is the front-page feed.
func (s *FeedService) topURL() string {
	return feedBaseURL + "?" + s.ceid()
}

// topicURL is the dedicated section feed for a supported topic.
func (s *FeedService) topicURL(topic string) (string, error) {
	id, ok := topicIDs[strings.ToLower(strings.TrimSpace(topic))]
	if !ok {
		return "", fmt.Errorf("unsupported topic: %s", topic)
	}
	return feedBaseURL + "/headlines/section/topic/" + id + "?" + s.ceid(), nil
}

// geoURL is the location headline feed.
func (s *FeedService) geoURL(location string) string {
	return feedBaseURL + "/headlines/section/geo/" + url.PathEscape(location) + "?" + s.ceid()
}

// searchURL is the query feed. A recency window is folded into the
// query string the way the aggregator expects ("q=floods when:1d").
func (s *FeedService) searchURL(query, when string) string {
	if when != "" {
		query += " when:" + when
	}
	return feedBaseURL + "/search?q=" + url.QueryEscape(query) + "&" + s.ceid()
}

// ceid carries the edition parameters every feed URL needs.
func (s *FeedService) ceid() string {
	return fmt.Sprintf("ceid=%s:%s&hl=%s&gl=%s",
		s.opts.Country, s.opts.Language, s.opts.Language, s.opts.Country)
}

// cachedEntries returns previously fetched entries for a feed URL, or
// nil on any miss or decode problem.
func (s *FeedService) cachedEntries(ctx context.Context, feedURL string) []domain.RawFeedEntry {
	if s.deps.Cache == nil {
		return nil
	}

	data, err := s.deps.Cache.Get(ctx, "feed:"+feedURL)
	if err != nil || data == nil {
		return nil
	}

	var entries []domain.RawFeedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

// cacheEntries stores fetched entries for reuse within the TTL.
func (s *FeedService) cacheEntries(ctx context.Context, feedURL string, entries []domain.RawFeedEntry) error {
	if s.deps.Cache == nil {
		return nil
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.deps.Cache.Set(ctx, "feed:"+feedURL, data, s.opts.CacheTTL)
}
