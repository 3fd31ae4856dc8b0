// ABOUTME: Per-article enrichment combining redirect resolution, extraction and assembly
// ABOUTME: Every entry produces exactly one article; failures tag it instead of dropping it

package pipeline

import (
	"context"

	"github.com/sundeep8967/keypoints-backend-1/core/assemble"
	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/errors"
	"github.com/sundeep8967/keypoints-backend-1/core/extract"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
	"github.com/sundeep8967/keypoints-backend-1/core/redirect"
)

// Enricher turns one raw feed entry into one enriched article using a
// renderer session. The entry's link is resolved past any aggregator
// redirect, the landed page is mined for title, description and image,
// and the assembler combines the results into a complete record.
type Enricher struct {
	deps      interfaces.Dependencies
	resolver  *redirect.Resolver
	extractor *extract.Extractor
	assembler *assemble.Assembler
}

// NewEnricher creates an enricher from its three stages.
func NewEnricher(deps interfaces.Dependencies, resolver *redirect.Resolver, extractor *extract.Extractor, assembler *assemble.Assembler) *Enricher {
	return &Enricher{
		deps:      deps,
		resolver:  resolver,
		extractor: extractor,
		assembler: assembler,
	}
}

// Enrich processes one entry on the given session. The returned
// article is always complete: resolution or extraction failures tag it
// with the error and fill placeholders, they never drop the entry.
func (e *Enricher) Enrich(ctx context.Context, session interfaces.Session, entry domain.RawFeedEntry) domain.Article {
	if entry.Link == "" {
		return e.degraded(entry, &errors.RedirectUnresolvedError{
			Link:   entry.Link,
			Reason: "entry has no link",
		})
	}

	if e.deps.Logger != nil {
		e.deps.Logger.Debug("Enriching article", map[string]interface{}{
			"title":  entry.Title,
			"source": entry.Source,
		})
	}

	page, err := e.resolver.Resolve(ctx, session, entry.Link)
	if err != nil {
		return e.degraded(entry, err)
	}

	extracted, imageURL := e.extractor.Extract(page)

	var extractErr error
	if extracted.Description == "" {
		extractErr = &errors.ExtractionEmptyError{URL: page.URL()}
	}

	article := e.assembler.Assemble(entry, extracted, imageURL, extractErr)
	if article.Error != "" && e.deps.Logger != nil {
		e.deps.Logger.Warn("Article degraded", map[string]interface{}{
			"title": entry.Title,
			"error": article.Error,
		})
	}
	return article
}

// degraded assembles an error-tagged article from the raw entry alone.
func (e *Enricher) degraded(entry domain.RawFeedEntry, err error) domain.Article {
	if e.deps.Logger != nil {
		e.deps.Logger.Warn("Article degraded", map[string]interface{}{
			"title": entry.Title,
			"link":  entry.Link,
			"error": err.Error(),
		})
	}
	return e.assembler.Assemble(entry, domain.ExtractedContent{}, "", err)
}
