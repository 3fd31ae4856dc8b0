// ABOUTME: Static renderer that fetches pages over plain HTTP with colly
// ABOUTME: Drop-in fallback for the browser renderer when Chrome is unavailable

package static

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly"

	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
	renderdom "github.com/sundeep8967/keypoints-backend-1/infrastructure/render/dom"
)

const defaultUserAgent = "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)"

// Options tunes the static renderer.
type Options struct {
	// Timeout bounds a single fetch when the caller's context carries
	// no deadline
	Timeout time.Duration

	// MaxBodySize caps the response body read per fetch
	MaxBodySize int

	// UserAgent is sent with every request
	UserAgent string
}

// DefaultOptions returns the production fetch settings.
func DefaultOptions() Options {
	return Options{
		Timeout:     10 * time.Second,
		MaxBodySize: 5 * 1024 * 1024,
		UserAgent:   defaultUserAgent,
	}
}

// Renderer serves pages as plain HTTP fetches. Pages are parsed as
// delivered; no scripts run, so late-filled content is not visible.
// It implements the same interfaces as the browser renderer, so the
// session pool and the pipeline work with either.
type Renderer struct {
	opts Options
}

// NewRenderer returns a static renderer.
func NewRenderer(opts Options) *Renderer {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = DefaultOptions().MaxBodySize
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultOptions().UserAgent
	}
	return &Renderer{opts: opts}
}

// NewSession opens a session. Static sessions hold no process state;
// they exist so pooling and pacing treat both renderers alike.
func (r *Renderer) NewSession(ctx context.Context) (interfaces.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Session{opts: r.opts}, nil
}

// Close shuts the renderer down.
func (r *Renderer) Close() error {
	return nil
}

// Session fetches one page at a time.
type Session struct {
	opts Options
}

// Navigate fetches the URL, following redirects, and returns a parsed
// snapshot of the delivered HTML at the final location. The fetch is
// bounded by the caller's deadline, or by the configured timeout when
// the caller has none.
func (s *Session) Navigate(ctx context.Context, url string) (interfaces.Page, error) {
	if _, ok := ctx.Deadline(); !ok && s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	c := colly.NewCollector(
		colly.UserAgent(s.opts.UserAgent),
		colly.MaxBodySize(s.opts.MaxBodySize),
		colly.Async(false),
		colly.AllowURLRevisit(),
	)

	// Keep the underlying client bounded so an abandoned fetch stops
	// on its own after the caller gives up.
	timeout := s.opts.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 {
			timeout = remaining
		}
	}
	c.SetRequestTimeout(timeout)

	var location, html string
	c.OnResponse(func(r *colly.Response) {
		// The request URL is rewritten to the final location when
		// redirects were followed.
		location = r.Request.URL.String()
		html = string(r.Body)
	})

	done := make(chan error, 1)
	go func() {
		done <- c.Visit(url)
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-done:
		if err != nil {
			// Surface the caller's deadline or cancellation as such
			// so timeouts classify correctly upstream.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("fetching %s: %w", url, err)
		}
	}

	if location == "" {
		location = url
	}
	return renderdom.NewPage(location, html)
}

// Close releases the session.
func (s *Session) Close() error {
	return nil
}
