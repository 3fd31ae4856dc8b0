// ABOUTME: Document models for the per-category JSON exchange files
// ABOUTME: Raw feed documents flow in, generated result documents flow out

package domain

import (
	"errors"
	"time"
)

// FeedMetadata describes one raw feed fetch.
type FeedMetadata struct {
	// Type names the fetch kind: "top", "topic", "geo", "search" or "merged"
	Type string `json:"type"`

	// Timestamp is when the fetch or merge happened
	Timestamp string `json:"timestamp"`

	// Info is a human-readable description of the query
	Info string `json:"info,omitempty"`

	// FinalCategory is set on merged documents
	FinalCategory string `json:"final_category,omitempty"`

	// SourceFiles lists the merged inputs on merged documents
	SourceFiles []MergedSource `json:"source_files,omitempty"`

	// Count is the number of articles in the document
	Count int `json:"count"`

	// DuplicatesRemoved is set by the merge step
	DuplicatesRemoved int `json:"duplicates_removed,omitempty"`
}

// MergedSource records one input to a merged feed document.
type MergedSource struct {
	File         string       `json:"file"`
	OriginalInfo FeedMetadata `json:"original_info"`
	ArticleCount int          `json:"article_count"`
}

// FeedDocument is one per-raw-category input stream.
type FeedDocument struct {
	Metadata FeedMetadata   `json:"metadata"`
	Articles []RawFeedEntry `json:"articles"`
}

// Validate checks the document can be processed
func (d *FeedDocument) Validate() error {
	if len(d.Articles) == 0 {
		return errors.New("feed document has no articles")
	}
	return nil
}

// ResultMetadata describes one generation run over a feed document.
type ResultMetadata struct {
	// SourceFile is the raw document the run consumed
	SourceFile string `json:"source_file"`

	// GenerationTime is when the run finished
	GenerationTime string `json:"generation_time"`

	// RunID identifies the generation run across documents
	RunID string `json:"run_id,omitempty"`

	// TotalArticles is the number of articles emitted
	TotalArticles int `json:"total_articles"`

	// Successful counts cleanly enriched articles
	Successful int `json:"successful_extractions"`

	// Degraded counts error-tagged articles emitted with placeholders
	Degraded int `json:"degraded_articles"`

	// DuplicatesRemoved carries the merge counter through to output
	DuplicatesRemoved int `json:"duplicates_removed,omitempty"`
}

// ResultDocument is one per-canonical-category output stream.
type ResultDocument struct {
	Metadata ResultMetadata `json:"metadata"`
	Articles []Article      `json:"articles"`
}

// GenerationTimeFormat is the timestamp layout used in result metadata.
const GenerationTimeFormat = "2006-01-02 15:04:05"

// FeedTimestampFormat is the timestamp layout used in feed metadata.
const FeedTimestampFormat = "2006-01-02T15:04:05"

// NewResultMetadata creates metadata for a finished run.
func NewResultMetadata(sourceFile, runID string, articles []Article) ResultMetadata {
	meta := ResultMetadata{
		SourceFile:     sourceFile,
		GenerationTime: time.Now().Format(GenerationTimeFormat),
		RunID:          runID,
		TotalArticles:  len(articles),
	}

	for i := range articles {
		if articles[i].Error != "" {
			meta.Degraded++
		} else {
			meta.Successful++
		}
	}

	return meta
}
