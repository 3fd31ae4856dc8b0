// ABOUTME: Tests for the Postgres article store
// ABOUTME: Integration cases need a database and are gated behind POSTGRES_TEST_DSN

package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	coreerrors "github.com/sundeep8967/keypoints-backend-1/core/errors"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

var _ interfaces.ArticleStore = (*Store)(nil)

func TestNewStore_EmptyDSN(t *testing.T) {
	store, err := NewStore("")
	if err == nil {
		t.Error("NewStore did not return an error for an empty DSN")
	}
	if store != nil {
		t.Error("NewStore returned a store for an empty DSN")
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, defaultLimit},
		{-5, defaultLimit},
		{1, 1},
		{200, 200},
	}

	for _, tt := range tests {
		if got := clampLimit(tt.limit); got != tt.want {
			t.Errorf("clampLimit(%d) = %d, want %d", tt.limit, got, tt.want)
		}
	}
}

func testStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("set POSTGRES_TEST_DSN to run Postgres integration tests")
	}

	store, err := NewStore(dsn)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	t.Cleanup(func() {
		store.db.Exec("DELETE FROM news_articles")
		store.Close()
	})
	return store
}

func storedArticle(id, category string, score int) domain.StoredArticle {
	return domain.StoredArticle{
		Title:        fmt.Sprintf("Headline %s", id),
		Link:         fmt.Sprintf("https://example.com/%s", id),
		Published:    "Fri, 22 Aug 2025 10:00:00 GMT",
		Source:       "The Hindu",
		Category:     category,
		Description:  "Two sentences of summary.",
		ImageURL:     "https://cdn.example.com/img.jpg",
		ArticleID:    id,
		QualityScore: score,
	}
}

func TestStore_UpsertAndByCategory(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	articles := []domain.StoredArticle{
		storedArticle("a1", "sports", 400),
		storedArticle("a2", "sports", 600),
		storedArticle("a3", "politics", 500),
	}

	count, err := store.Upsert(ctx, articles)
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if count != 3 {
		t.Errorf("Upsert count = %d, want 3", count)
	}

	got, err := store.ByCategory(ctx, "sports", 10)
	if err != nil {
		t.Fatalf("ByCategory returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ByCategory returned %d articles, want 2", len(got))
	}
	for _, a := range got {
		if a.Category != "sports" {
			t.Errorf("article %s has category %q", a.ArticleID, a.Category)
		}
	}
}

func TestStore_UpsertReplacesByArticleID(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first := storedArticle("dup", "sports", 300)
	if _, err := store.Upsert(ctx, []domain.StoredArticle{first}); err != nil {
		t.Fatalf("first Upsert returned error: %v", err)
	}

	second := first
	second.Title = "Updated headline"
	second.QualityScore = 700
	if _, err := store.Upsert(ctx, []domain.StoredArticle{second}); err != nil {
		t.Fatalf("second Upsert returned error: %v", err)
	}

	got, err := store.ByCategory(ctx, "sports", 10)
	if err != nil {
		t.Fatalf("ByCategory returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("duplicate article_id produced %d rows, want 1", len(got))
	}
	if got[0].Title != "Updated headline" || got[0].QualityScore != 700 {
		t.Errorf("row was not replaced: %+v", got[0])
	}
}

func TestStore_UpsertRejectsMissingID(t *testing.T) {
	store := testStore(t)

	_, err := store.Upsert(context.Background(), []domain.StoredArticle{{Title: "No ID"}})
	if err == nil {
		t.Error("Upsert accepted an article without an article_id")
	}
}

func TestStore_ByID(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	want := storedArticle("b7", "technology", 550)
	if _, err := store.Upsert(ctx, []domain.StoredArticle{want}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	got, err := store.ByID(ctx, "b7")
	if err != nil {
		t.Fatalf("ByID returned error: %v", err)
	}
	if got.Title != want.Title || got.ImageURL != want.ImageURL {
		t.Errorf("ByID = %+v, want %+v", got, want)
	}

	_, err = store.ByID(ctx, "missing-id")
	if !coreerrors.IsNotFound(err) {
		t.Errorf("ByID for an absent row returned %v, want a not-found error", err)
	}
}

func TestStore_ByIDRejectsEmptyID(t *testing.T) {
	store := testStore(t)

	_, err := store.ByID(context.Background(), "")
	if !coreerrors.IsValidation(err) {
		t.Errorf("ByID(\"\") returned %v, want a validation error", err)
	}
}

func TestStore_BySource(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	a := storedArticle("s1", "sports", 100)
	b := storedArticle("s2", "sports", 100)
	b.Source = "Deccan Herald"

	if _, err := store.Upsert(ctx, []domain.StoredArticle{a, b}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	got, err := store.BySource(ctx, "Deccan Herald", 10)
	if err != nil {
		t.Fatalf("BySource returned error: %v", err)
	}
	if len(got) != 1 || got[0].ArticleID != "s2" {
		t.Errorf("BySource = %+v, want just s2", got)
	}
}

func TestStore_TrendingOrdersByScore(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	articles := []domain.StoredArticle{
		storedArticle("t1", "sports", 200),
		storedArticle("t2", "politics", 900),
		storedArticle("t3", "world", 500),
	}
	if _, err := store.Upsert(ctx, articles); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	got, err := store.Trending(ctx, 2)
	if err != nil {
		t.Fatalf("Trending returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Trending returned %d articles, want 2", len(got))
	}
	if got[0].ArticleID != "t2" || got[1].ArticleID != "t3" {
		t.Errorf("Trending order = [%s %s], want [t2 t3]", got[0].ArticleID, got[1].ArticleID)
	}
}

func TestStore_DeleteOlderThan(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if _, err := store.Upsert(ctx, []domain.StoredArticle{storedArticle("old", "sports", 100)}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	// Backdate the row past the retention window.
	if _, err := store.db.ExecContext(ctx,
		"UPDATE news_articles SET stored_at = now() - interval '40 days' WHERE article_id = $1", "old"); err != nil {
		t.Fatalf("backdating row: %v", err)
	}
	if _, err := store.Upsert(ctx, []domain.StoredArticle{storedArticle("new", "sports", 100)}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	removed, err := store.DeleteOlderThan(ctx, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("DeleteOlderThan returned error: %v", err)
	}
	if removed != 1 {
		t.Errorf("DeleteOlderThan removed %d rows, want 1", removed)
	}

	got, err := store.ByCategory(ctx, "sports", 10)
	if err != nil {
		t.Fatalf("ByCategory returned error: %v", err)
	}
	if len(got) != 1 || got[0].ArticleID != "new" {
		t.Errorf("remaining rows = %+v, want just new", got)
	}
}
