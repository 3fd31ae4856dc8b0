// ABOUTME: Tests for per-article enrichment
// ABOUTME: Covers clean extraction, degraded emission and the error taxonomy

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sundeep8967/keypoints-backend-1/core/assemble"
	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/extract"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
	"github.com/sundeep8967/keypoints-backend-1/core/keypoints"
	"github.com/sundeep8967/keypoints-backend-1/core/redirect"
	"github.com/sundeep8967/keypoints-backend-1/core/scoring"
)

const articleURL = "https://www.thehindu.com/news/cities/bangalore/metro-line-opens.html"

const articleHTML = `<html>
<head>
<title>Metro line opens to record crowds - The Hindu</title>
<meta property="og:title" content="Metro line opens to record crowds"/>
<meta property="og:image" content="https://cdn.thehindu.com/photos/metro-crowd.jpg"/>
</head>
<body>
<article>
<h1>Metro line opens to record crowds</h1>
<p>The new metro line carried over two hundred thousand passengers on its opening day, officials said on Friday.</p>
<p>Trains ran at four minute intervals through the morning peak and no technical faults were reported anywhere on the line.</p>
</article>
</body>
</html>`

const thinHTML = `<html>
<head><title>Sparse page</title></head>
<body><h1>Short headline stands alone</h1><p>Too short.</p></body>
</html>`

func newTestEnricher() *Enricher {
	deps := interfaces.Dependencies{}
	resolver := redirect.NewResolver(deps, redirect.DefaultOptions())
	extractor := extract.NewExtractor(deps, extract.DefaultThresholds())
	assembler := assemble.NewAssembler(deps,
		scoring.NewScorer(deps, scoring.DefaultWeights()),
		keypoints.NewGenerator(keypoints.DefaultOptions()))
	return NewEnricher(deps, resolver, extractor, assembler)
}

func sampleEntry() domain.RawFeedEntry {
	return domain.RawFeedEntry{
		Title:     "Metro line opens to record crowds - The Hindu",
		Link:      articleURL,
		Published: "Fri, 21 Aug 2026 09:30:00 GMT",
		Source:    "The Hindu",
	}
}

func TestEnrich_CleanArticle(t *testing.T) {
	enricher := newTestEnricher()
	session := &fakeSession{docs: map[string]string{articleURL: articleHTML}}

	article := enricher.Enrich(context.Background(), session, sampleEntry())

	if article.Error != "" {
		t.Fatalf("Error = %q, want clean article", article.Error)
	}
	if article.Title != "Metro line opens to record crowds" {
		t.Errorf("Title = %q", article.Title)
	}
	if article.URL != articleURL {
		t.Errorf("URL = %q, want %q", article.URL, articleURL)
	}
	if article.ImageURL != "https://cdn.thehindu.com/photos/metro-crowd.jpg" {
		t.Errorf("ImageURL = %q", article.ImageURL)
	}
	if !strings.Contains(article.Description, "passengers") {
		t.Errorf("Description %q should contain article content", article.Description)
	}
	if len(article.KeyPoints) == 0 {
		t.Error("KeyPoints should not be empty for a substantial description")
	}
	if article.QualityScore < 0 || article.QualityScore > 1000 {
		t.Errorf("QualityScore = %d, want within [0, 1000]", article.QualityScore)
	}
	wantID := assemble.ArticleID(articleURL, "Metro line opens to record crowds", "The Hindu")
	if article.ID != wantID {
		t.Errorf("ID = %q, want %q", article.ID, wantID)
	}
	if article.Published != "Fri, 21 Aug 2026 09:30:00 GMT" {
		t.Errorf("Published = %q", article.Published)
	}
}

func TestEnrich_MissingLink(t *testing.T) {
	enricher := newTestEnricher()
	session := &fakeSession{}

	entry := sampleEntry()
	entry.Link = ""

	article := enricher.Enrich(context.Background(), session, entry)

	if article.Error == "" {
		t.Fatal("article should be error-tagged when the entry has no link")
	}
	if !strings.Contains(article.Error, "no link") {
		t.Errorf("Error = %q", article.Error)
	}
	if article.Title != entry.Title {
		t.Errorf("Title = %q, want raw entry title", article.Title)
	}
	if article.ImageURL != domain.PlaceholderImage {
		t.Errorf("ImageURL = %q, want placeholder", article.ImageURL)
	}
	if article.Description != domain.ExtractionFailedDescription {
		t.Errorf("Description = %q, want sentinel", article.Description)
	}
	if len(session.visited()) != 0 {
		t.Error("session should not be used for a linkless entry")
	}
}

func TestEnrich_NavigationFailure(t *testing.T) {
	enricher := newTestEnricher()
	session := &fakeSession{
		errs: map[string]error{articleURL: fmt.Errorf("net::ERR_CONNECTION_RESET")},
	}

	article := enricher.Enrich(context.Background(), session, sampleEntry())

	if article.Error == "" {
		t.Fatal("article should be error-tagged when navigation fails")
	}
	if article.Title != "Metro line opens to record crowds - The Hindu" {
		t.Errorf("Title = %q, want raw entry title", article.Title)
	}
	if article.URL != articleURL {
		t.Errorf("URL = %q, want the original link", article.URL)
	}
	if article.ImageURL != domain.PlaceholderImage {
		t.Errorf("ImageURL = %q, want placeholder", article.ImageURL)
	}
}

func TestEnrich_TimeoutTagged(t *testing.T) {
	enricher := newTestEnricher()
	session := &fakeSession{
		errs: map[string]error{articleURL: context.DeadlineExceeded},
	}

	article := enricher.Enrich(context.Background(), session, sampleEntry())

	if !strings.Contains(article.Error, "timed out") {
		t.Errorf("Error = %q, want navigation timeout", article.Error)
	}
}

func TestEnrich_ExtractionEmpty(t *testing.T) {
	enricher := newTestEnricher()
	session := &fakeSession{docs: map[string]string{articleURL: thinHTML}}

	article := enricher.Enrich(context.Background(), session, sampleEntry())

	if !strings.Contains(article.Error, "no substantial content") {
		t.Errorf("Error = %q, want extraction-empty tag", article.Error)
	}
	if article.Description != domain.ExtractionFailedDescription {
		t.Errorf("Description = %q, want sentinel", article.Description)
	}
	if len(article.KeyPoints) != 0 {
		t.Errorf("KeyPoints = %v, want none for the sentinel description", article.KeyPoints)
	}
	if article.Title != "Short headline stands alone" {
		t.Errorf("Title = %q, extraction of the title should still succeed", article.Title)
	}
}

func TestEnrich_DeterministicID(t *testing.T) {
	enricher := newTestEnricher()

	first := enricher.Enrich(context.Background(),
		&fakeSession{docs: map[string]string{articleURL: articleHTML}}, sampleEntry())
	second := enricher.Enrich(context.Background(),
		&fakeSession{docs: map[string]string{articleURL: articleHTML}}, sampleEntry())

	if first.ID != second.ID {
		t.Errorf("ID not deterministic: %q vs %q", first.ID, second.ID)
	}
}
