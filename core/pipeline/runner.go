// ABOUTME: Batch runner driving enrichment over a whole feed document
// ABOUTME: Supports one-session sequential processing and pooled fan-out with pacing

package pipeline

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/errors"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

// RunnerOptions configure a batch run.
type RunnerOptions struct {
	// MaxArticles caps how many entries of a document are processed.
	// Zero or negative means no cap.
	MaxArticles int

	// PacingDelay spaces successive articles within one session to
	// avoid host-side rate limiting
	PacingDelay time.Duration

	// Concurrency is the pooled worker count. Values below two run
	// the sequential single-session mode.
	Concurrency int
}

// DefaultRunnerOptions returns the production batch settings.
func DefaultRunnerOptions() RunnerOptions {
	return RunnerOptions{
		MaxArticles: 10,
		PacingDelay: 300 * time.Millisecond,
		Concurrency: 1,
	}
}

// Runner executes enrichment over a document's entries. With a session
// pool it fans entries out over pooled sessions; otherwise it opens a
// single renderer session and processes entries one at a time.
type Runner struct {
	deps     interfaces.Dependencies
	enricher *Enricher
	renderer interfaces.Renderer
	pool     interfaces.SessionPool
	opts     RunnerOptions
}

// NewRunner creates a batch runner. pool may be nil, which forces
// sequential mode regardless of the configured concurrency.
func NewRunner(deps interfaces.Dependencies, enricher *Enricher, renderer interfaces.Renderer, pool interfaces.SessionPool, opts RunnerOptions) *Runner {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.PacingDelay < 0 {
		opts.PacingDelay = 0
	}
	return &Runner{
		deps:     deps,
		enricher: enricher,
		renderer: renderer,
		pool:     pool,
		opts:     opts,
	}
}

// Enrich processes one entry on the given session.
func (r *Runner) Enrich(ctx context.Context, session interfaces.Session, entry domain.RawFeedEntry) domain.Article {
	return r.enricher.Enrich(ctx, session, entry)
}

// EnrichBatch processes a document's entries and returns the assembled
// articles. Per-article failures are isolated; the returned error is
// non-nil only for context cancellation, a renderer that could not
// open a session, or a batch where zero articles succeeded.
func (r *Runner) EnrichBatch(ctx context.Context, entries []domain.RawFeedEntry) ([]domain.Article, error) {
	if len(entries) == 0 {
		return []domain.Article{}, nil
	}
	if r.opts.MaxArticles > 0 && len(entries) > r.opts.MaxArticles {
		entries = entries[:r.opts.MaxArticles]
	}

	start := time.Now()

	var articles []domain.Article
	var err error
	if r.pool != nil && r.opts.Concurrency > 1 {
		articles, err = r.runPooled(ctx, entries)
	} else {
		articles, err = r.runSequential(ctx, entries)
	}
	if err != nil {
		return articles, err
	}

	successful := 0
	for i := range articles {
		if articles[i].Error == "" {
			successful++
		}
	}

	if r.deps.Logger != nil {
		r.deps.Logger.Info("Generation batch complete", map[string]interface{}{
			"attempted":  len(entries),
			"successful": successful,
			"degraded":   len(articles) - successful,
			"duration":   time.Since(start).String(),
		})
	}

	if successful == 0 {
		return articles, &errors.BatchFailedError{Attempted: len(entries)}
	}
	return articles, nil
}

// runSequential processes entries one at a time on a single session.
func (r *Runner) runSequential(ctx context.Context, entries []domain.RawFeedEntry) ([]domain.Article, error) {
	if r.renderer == nil {
		return nil, stderrors.New("renderer not configured")
	}

	session, err := r.renderer.NewSession(ctx)
	if err != nil {
		return nil, errors.WrapError(err, "opening renderer session")
	}
	defer session.Close()

	limiter := r.pacer(1)
	articles := make([]domain.Article, 0, len(entries))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return articles, err
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return articles, err
			}
		}
		articles = append(articles, r.enricher.Enrich(ctx, session, entry))
	}
	return articles, nil
}

// runPooled fans entries out over pooled sessions. Each entry is bound
// to exactly one session; results are accumulated by this goroutine
// alone and returned in input order.
func (r *Runner) runPooled(ctx context.Context, entries []domain.RawFeedEntry) ([]domain.Article, error) {
	type slot struct {
		idx     int
		article domain.Article
		emitted bool
	}

	resultsChan := make(chan slot, len(entries))
	semaphore := make(chan struct{}, r.opts.Concurrency)
	limiter := r.pacer(r.opts.Concurrency)
	var wg sync.WaitGroup

	for i := range entries {
		wg.Add(1)
		go func(idx int, entry domain.RawFeedEntry) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				resultsChan <- slot{idx: idx}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					resultsChan <- slot{idx: idx}
					return
				}
			}

			session, err := r.pool.Acquire(ctx)
			if err != nil {
				if ctx.Err() != nil {
					resultsChan <- slot{idx: idx}
					return
				}
				resultsChan <- slot{
					idx:     idx,
					article: r.enricher.degraded(entry, errors.WrapError(err, "acquiring renderer session")),
					emitted: true,
				}
				return
			}
			defer r.pool.Release(session)

			resultsChan <- slot{
				idx:     idx,
				article: r.enricher.Enrich(ctx, session, entry),
				emitted: true,
			}
		}(i, entries[i])
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	ordered := make([]*domain.Article, len(entries))
	for result := range resultsChan {
		if result.emitted {
			article := result.article
			ordered[result.idx] = &article
		}
	}

	articles := make([]domain.Article, 0, len(entries))
	for _, article := range ordered {
		if article != nil {
			articles = append(articles, *article)
		}
	}

	if err := ctx.Err(); err != nil {
		return articles, err
	}
	return articles, nil
}

// pacer builds the shared article-start limiter. Pooled runs divide
// the delay across sessions, so each session still sees roughly the
// configured delay between its own articles.
func (r *Runner) pacer(sessions int) *rate.Limiter {
	if r.opts.PacingDelay <= 0 {
		return nil
	}
	interval := r.opts.PacingDelay
	if sessions > 1 {
		interval /= time.Duration(sessions)
		if interval <= 0 {
			interval = time.Millisecond
		}
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}
