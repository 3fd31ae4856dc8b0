// ABOUTME: Article assembler combines extraction results into canonical article records
// ABOUTME: Computes the deterministic article id and applies the storage upload gate

package assemble

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
	"github.com/sundeep8967/keypoints-backend-1/core/keypoints"
	"github.com/sundeep8967/keypoints-backend-1/core/scoring"
)

// ArticleID returns the deterministic identifier for an article.
// Identical (url, title, source) triples always produce identical ids,
// which keeps re-processing idempotent across runs.
func ArticleID(url, title, source string) string {
	combined := fmt.Sprintf("%s|%s|%s", url, title, source)
	sum := md5.Sum([]byte(combined))
	return hex.EncodeToString(sum[:])
}

// Assembler builds Article records from raw entries and extraction
// results. Degraded inputs still produce a complete, error-tagged
// article; assembly never drops an entry.
type Assembler struct {
	deps      interfaces.Dependencies
	scorer    *scoring.Scorer
	generator *keypoints.Generator
}

// NewAssembler creates a new article assembler
func NewAssembler(deps interfaces.Dependencies, scorer *scoring.Scorer, generator *keypoints.Generator) *Assembler {
	return &Assembler{
		deps:      deps,
		scorer:    scorer,
		generator: generator,
	}
}

// Assemble combines one raw entry with its extraction results.
// extractErr, when non-nil, tags the article as degraded; the raw
// entry's title and link fill in for missing extraction output.
func (a *Assembler) Assemble(entry domain.RawFeedEntry, extracted domain.ExtractedContent, imageURL string, extractErr error) domain.Article {
	title := extracted.Title
	if title == "" {
		title = entry.Title
	}

	url := extracted.ResolvedURL
	if url == "" {
		url = entry.Link
	}

	description := extracted.Description
	if description == "" {
		description = domain.ExtractionFailedDescription
	}

	if imageURL == "" {
		imageURL = domain.PlaceholderImage
	}

	article := domain.Article{
		ID:          ArticleID(url, title, entry.Source),
		Title:       title,
		Source:      entry.Source,
		URL:         url,
		ImageURL:    imageURL,
		Description: description,
		KeyPoints:   a.generator.Generate(description),
		Published:   entry.Published,
		ExtractedAt: time.Now(),
	}

	article.QualityScore = a.scorer.Score(title, imageURL, description, entry.Source)

	if extractErr != nil {
		article.Error = extractErr.Error()
	}

	return article
}

// GateForStorage filters articles through the upload gate and converts
// survivors to the storage record shape. Articles without a title or
// with only the placeholder image are rejected, counted and logged,
// never retried.
func (a *Assembler) GateForStorage(articles []domain.Article, category string) ([]domain.StoredArticle, int) {
	stored := make([]domain.StoredArticle, 0, len(articles))
	rejected := 0

	for i := range articles {
		if !articles[i].IsStorable() {
			rejected++
			if a.deps.Logger != nil {
				a.deps.Logger.Info("Article rejected before upload", map[string]interface{}{
					"article_id": articles[i].ID,
					"title":      articles[i].Title,
					"image_url":  articles[i].ImageURL,
				})
			}
			continue
		}
		stored = append(stored, articles[i].ToStored(category))
	}

	return stored, rejected
}
