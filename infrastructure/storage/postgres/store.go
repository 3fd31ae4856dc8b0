// ABOUTME: Postgres article store over sqlx
// ABOUTME: Upserts enriched articles keyed by article_id and serves category, source, and trending reads

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	coreerrors "github.com/sundeep8967/keypoints-backend-1/core/errors"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute

	// defaultLimit bounds reads when the caller passes no usable limit
	defaultLimit = 50
)

// Store persists enriched articles in a news_articles table.
type Store struct {
	db *sqlx.DB
}

// NewStore connects to Postgres and ensures the schema exists.
func NewStore(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("postgres DSN cannot be empty")
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing article schema: %w", err)
	}

	return store, nil
}

// initSchema creates the article table and its read indexes.
func (s *Store) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS news_articles (
			article_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			link TEXT NOT NULL,
			published TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			quality_score INTEGER NOT NULL DEFAULT 0,
			stored_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_news_articles_category ON news_articles (category);
		CREATE INDEX IF NOT EXISTS idx_news_articles_source ON news_articles (source);
		CREATE INDEX IF NOT EXISTS idx_news_articles_stored_at ON news_articles (stored_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Upsert inserts or replaces articles keyed by article_id. The batch
// is one transaction; a replaced row refreshes its stored_at so
// articles still circulating outlive retention cleanup.
func (s *Store) Upsert(ctx context.Context, articles []domain.StoredArticle) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting upsert transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO news_articles
			(article_id, title, link, published, source, category, description, image_url, quality_score, stored_at)
		VALUES
			(:article_id, :title, :link, :published, :source, :category, :description, :image_url, :quality_score, now())
		ON CONFLICT (article_id) DO UPDATE SET
			title = EXCLUDED.title,
			link = EXCLUDED.link,
			published = EXCLUDED.published,
			source = EXCLUDED.source,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			image_url = EXCLUDED.image_url,
			quality_score = EXCLUDED.quality_score,
			stored_at = now()
	`

	stmt, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for i := range articles {
		if articles[i].ArticleID == "" {
			return 0, fmt.Errorf("article %d has no article_id", i)
		}
		if _, err := stmt.ExecContext(ctx, articles[i]); err != nil {
			return 0, fmt.Errorf("upserting article %s: %w", articles[i].ArticleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing upsert: %w", err)
	}

	return len(articles), nil
}

// selectColumns lists the columns that map onto StoredArticle.
const selectColumns = "title, link, published, source, category, description, image_url, article_id, quality_score"

// ByID retrieves one article by its article_id.
func (s *Store) ByID(ctx context.Context, articleID string) (*domain.StoredArticle, error) {
	if articleID == "" {
		return nil, &coreerrors.ValidationError{Field: "article_id", Message: "cannot be empty"}
	}

	query := fmt.Sprintf("SELECT %s FROM news_articles WHERE article_id = $1", selectColumns)

	var article domain.StoredArticle
	if err := s.db.GetContext(ctx, &article, query, articleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &coreerrors.NotFoundError{Resource: "article", ID: articleID}
		}
		return nil, fmt.Errorf("reading article %s: %w", articleID, err)
	}

	return &article, nil
}

// ByCategory retrieves articles for one canonical category, newest
// first, up to limit.
func (s *Store) ByCategory(ctx context.Context, category string, limit int) ([]domain.StoredArticle, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM news_articles
		WHERE category = $1
		ORDER BY stored_at DESC, quality_score DESC
		LIMIT $2
	`, selectColumns)

	var articles []domain.StoredArticle
	if err := s.db.SelectContext(ctx, &articles, query, category, clampLimit(limit)); err != nil {
		return nil, fmt.Errorf("reading articles for category %s: %w", category, err)
	}

	return articles, nil
}

// BySource retrieves articles from one publisher, newest first, up to
// limit.
func (s *Store) BySource(ctx context.Context, source string, limit int) ([]domain.StoredArticle, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM news_articles
		WHERE source = $1
		ORDER BY stored_at DESC, quality_score DESC
		LIMIT $2
	`, selectColumns)

	var articles []domain.StoredArticle
	if err := s.db.SelectContext(ctx, &articles, query, source, clampLimit(limit)); err != nil {
		return nil, fmt.Errorf("reading articles for source %s: %w", source, err)
	}

	return articles, nil
}

// Trending retrieves the highest-scored articles, up to limit.
func (s *Store) Trending(ctx context.Context, limit int) ([]domain.StoredArticle, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM news_articles
		ORDER BY quality_score DESC, stored_at DESC
		LIMIT $1
	`, selectColumns)

	var articles []domain.StoredArticle
	if err := s.db.SelectContext(ctx, &articles, query, clampLimit(limit)); err != nil {
		return nil, fmt.Errorf("reading trending articles: %w", err)
	}

	return articles, nil
}

// DeleteOlderThan removes articles stored before the cutoff and
// returns the number of rows removed.
func (s *Store) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)

	result, err := s.db.ExecContext(ctx, "DELETE FROM news_articles WHERE stored_at < $1", cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting old articles: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted articles: %w", err)
	}

	return removed, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// clampLimit substitutes the default for missing or absurd limits.
func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}
