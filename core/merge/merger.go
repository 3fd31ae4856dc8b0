// ABOUTME: Merges per-source-category feed documents into one document per canonical category
// ABOUTME: Drops exact and near-duplicate articles, keeping the first-seen instance of each story

package merge

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

// Options tune duplicate detection.
type Options struct {
	// TitleKeyLength is how many characters of the lowercased title form the exact-match key
	TitleKeyLength int

	// MinTitleLength is the shortest title that participates in similarity checks
	MinTitleLength int

	// SimilarityThreshold is the token-overlap ratio above which two titles count as the same story
	SimilarityThreshold float64
}

// DefaultOptions returns the tuned production thresholds.
func DefaultOptions() Options {
	return Options{
		TitleKeyLength:      50,
		MinTitleLength:      10,
		SimilarityThreshold: 0.8,
	}
}

// articleKey identifies one story for exact duplicate checks.
type articleKey struct {
	titlePrefix string
	linkBase    string
}

// Deduplicator tracks admitted articles so later duplicates can be
// dropped. Rejected articles leave no trace: they never anchor a
// similarity comparison. Not safe for concurrent use.
type Deduplicator struct {
	opts     Options
	seen     map[articleKey]struct{}
	admitted []map[string]struct{}
}

// NewDeduplicator creates an empty Deduplicator.
func NewDeduplicator(opts Options) *Deduplicator {
	return &Deduplicator{
		opts: opts,
		seen: make(map[articleKey]struct{}),
	}
}

// Admit reports whether the entry is the first of its duplicate class.
func (d *Deduplicator) Admit(entry domain.RawFeedEntry) bool {
	title := strings.ToLower(strings.TrimSpace(entry.Title))
	link := strings.TrimSpace(entry.Link)

	key := articleKey{
		titlePrefix: prefixChars(title, d.opts.TitleKeyLength),
		linkBase:    stripQuery(link),
	}
	if _, dup := d.seen[key]; dup {
		return false
	}

	var tokens map[string]struct{}
	if utf8.RuneCountInString(title) > d.opts.MinTitleLength {
		tokens = tokenSet(title)
		for _, prior := range d.admitted {
			if similarity(tokens, prior) > d.opts.SimilarityThreshold {
				return false
			}
		}
	}

	d.seen[key] = struct{}{}
	if tokens != nil {
		d.admitted = append(d.admitted, tokens)
	}
	return true
}

// Source is one per-raw-category document entering a merge.
type Source struct {
	// Name is the file or stream the document came from
	Name string

	// Document is the parsed feed document
	Document domain.FeedDocument
}

// Merger combines overlapping source documents destined for the same
// canonical category.
type Merger struct {
	deps interfaces.Dependencies
	opts Options
}

// NewMerger creates a Merger with the given thresholds.
func NewMerger(deps interfaces.Dependencies, opts Options) *Merger {
	return &Merger{deps: deps, opts: opts}
}

// Merge concatenates the source documents in order and drops duplicate
// articles. The first-seen instance of each story is always retained.
func (m *Merger) Merge(sources []Source, finalCategory string) domain.FeedDocument {
	metadata := domain.FeedMetadata{
		Type:          "merged",
		Timestamp:     time.Now().Format(domain.FeedTimestampFormat),
		FinalCategory: finalCategory,
	}

	var collected []domain.RawFeedEntry
	for _, src := range sources {
		metadata.SourceFiles = append(metadata.SourceFiles, domain.MergedSource{
			File:         src.Name,
			OriginalInfo: src.Document.Metadata,
			ArticleCount: len(src.Document.Articles),
		})
		collected = append(collected, src.Document.Articles...)
	}

	dedup := NewDeduplicator(m.opts)
	unique := make([]domain.RawFeedEntry, 0, len(collected))
	for _, entry := range collected {
		if dedup.Admit(entry) {
			unique = append(unique, entry)
		}
	}

	metadata.Count = len(unique)
	metadata.DuplicatesRemoved = len(collected) - len(unique)

	if m.deps.Logger != nil {
		m.deps.Logger.Info("Merged feed documents", map[string]interface{}{
			"final_category":     finalCategory,
			"sources":            len(sources),
			"articles":           metadata.Count,
			"duplicates_removed": metadata.DuplicatesRemoved,
		})
	}

	return domain.FeedDocument{Metadata: metadata, Articles: unique}
}

// prefixChars returns the first n characters of s.
func prefixChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// stripQuery drops everything from the first '?' onward.
func stripQuery(link string) string {
	if i := strings.IndexByte(link, '?'); i >= 0 {
		return link[:i]
	}
	return link
}

func tokenSet(title string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, word := range strings.Fields(title) {
		tokens[word] = struct{}{}
	}
	return tokens
}

// similarity is the share of the smaller title's tokens present in the
// other title, so a headline contained in a longer rewrite of itself
// still matches.
func similarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	shared := 0
	for token := range a {
		if _, ok := b[token]; ok {
			shared++
		}
	}

	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	return float64(shared) / float64(smaller)
}
