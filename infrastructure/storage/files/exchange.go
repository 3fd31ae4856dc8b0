// ABOUTME: File-based document exchange for the shared data directory
// ABOUTME: Writes and reads the per-category news and inshorts JSON files

package files

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

const (
	feedPrefix   = "news_"
	resultPrefix = "inshorts_"
)

// Exchange reads and writes the per-category JSON documents in the
// data directory shared with collaborating processes.
type Exchange struct {
	dir    string
	logger interfaces.Logger
}

// NewExchange creates an exchange rooted at dir, creating the
// directory if needed. An empty dir defaults to "data".
func NewExchange(dir string, logger interfaces.Logger) (*Exchange, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Exchange{dir: dir, logger: logger}, nil
}

// Dir returns the data directory the exchange is rooted at.
func (e *Exchange) Dir() string {
	return e.dir
}

// FeedPath returns the raw document path for a category.
func (e *Exchange) FeedPath(category string) string {
	return filepath.Join(e.dir, feedPrefix+sanitize(category)+".json")
}

// ResultPath returns the generated document path for a category.
func (e *Exchange) ResultPath(category string) string {
	return filepath.Join(e.dir, resultPrefix+sanitize(category)+".json")
}

// WriteFeed stores a raw feed document and returns the file path.
func (e *Exchange) WriteFeed(category string, doc *domain.FeedDocument) (string, error) {
	path := e.FeedPath(category)
	if err := e.writeJSON(path, doc); err != nil {
		return "", err
	}
	return path, nil
}

// ReadFeed loads the raw feed document for a category.
func (e *Exchange) ReadFeed(category string) (*domain.FeedDocument, error) {
	var doc domain.FeedDocument
	if err := e.readJSON(e.FeedPath(category), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// WriteResult stores a generated result document and returns the path.
func (e *Exchange) WriteResult(category string, doc *domain.ResultDocument) (string, error) {
	path := e.ResultPath(category)
	if err := e.writeJSON(path, doc); err != nil {
		return "", err
	}
	return path, nil
}

// ReadResult loads the generated result document for a category.
func (e *Exchange) ReadResult(category string) (*domain.ResultDocument, error) {
	var doc domain.ResultDocument
	if err := e.readJSON(e.ResultPath(category), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// FeedCategories lists categories with a raw document on disk.
func (e *Exchange) FeedCategories() ([]string, error) {
	return e.list(feedPrefix)
}

// ResultCategories lists categories with a generated document on disk.
func (e *Exchange) ResultCategories() ([]string, error) {
	return e.list(resultPrefix)
}

// CleanFeeds removes all raw documents and reports how many.
func (e *Exchange) CleanFeeds() (int, error) {
	return e.clean(feedPrefix)
}

// CleanResults removes all generated documents and reports how many.
func (e *Exchange) CleanResults() (int, error) {
	return e.clean(resultPrefix)
}

// writeJSON writes v to path through a temp file so readers never see
// a partial document.
func (e *Exchange) writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	tmp, err := os.CreateTemp(e.dir, ".exchange-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing document: %w", err)
	}

	if e.logger != nil {
		e.logger.Debug("Document written", map[string]interface{}{
			"path":  path,
			"bytes": len(data),
		})
	}
	return nil
}

func (e *Exchange) readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}
	return nil
}

// list returns category names recovered from file names carrying the
// given prefix. Sanitized characters are not reversed; canonical
// category names contain none and round-trip unchanged.
func (e *Exchange) list(prefix string) ([]string, error) {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		return nil, fmt.Errorf("listing data directory: %w", err)
	}

	var categories []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		categories = append(categories, strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".json"))
	}

	sort.Strings(categories)
	return categories, nil
}

func (e *Exchange) clean(prefix string) (int, error) {
	categories, err := e.list(prefix)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, category := range categories {
		path := filepath.Join(e.dir, prefix+category+".json")
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("removing %s: %w", path, err)
		}
		removed++
	}

	if removed > 0 && e.logger != nil {
		e.logger.Info("Stale documents removed", map[string]interface{}{
			"prefix": prefix,
			"count":  removed,
		})
	}
	return removed, nil
}

// sanitize makes a category label safe for file names.
func sanitize(category string) string {
	return strings.NewReplacer(" ", "_", "/", "_").Replace(category)
}
