// ABOUTME: Headless-browser renderer backed by chromedp
// ABOUTME: One shared browser process; each session is a tab

package chromedp

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"

	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
	renderdom "github.com/sundeep8967/keypoints-backend-1/infrastructure/render/dom"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Options tunes the browser renderer.
type Options struct {
	// Headless runs the browser without a window
	Headless bool

	// NavigationTimeout bounds a Navigate call when the caller's
	// context carries no deadline
	NavigationTimeout time.Duration

	// SettleDelay waits after the document is ready so late scripts
	// can fill in content
	SettleDelay time.Duration

	// StartupTimeout bounds browser and tab startup
	StartupTimeout time.Duration

	// UserAgent is sent with every request
	UserAgent string
}

// DefaultOptions returns the production browser settings.
func DefaultOptions() Options {
	return Options{
		Headless:          true,
		NavigationTimeout: 20 * time.Second,
		SettleDelay:       2 * time.Second,
		StartupTimeout:    30 * time.Second,
		UserAgent:         defaultUserAgent,
	}
}

// Renderer owns one headless browser process. Sessions opened from it
// are tabs of that browser, so pooled sessions share a single Chrome
// instance.
type Renderer struct {
	opts   Options
	logger interfaces.Logger

	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewRenderer starts the browser process. The returned renderer must
// be closed to shut the browser down.
func NewRenderer(opts Options, logger interfaces.Logger) (*Renderer, error) {
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = DefaultOptions().NavigationTimeout
	}
	if opts.StartupTimeout <= 0 {
		opts.StartupTimeout = DefaultOptions().StartupTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultOptions().UserAgent
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	allocOpts = append(allocOpts,
		chromedp.NoSandbox,
		chromedp.UserAgent(opts.UserAgent),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-notifications", true),
		chromedp.Flag("disable-popup-blocking", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("mute-audio", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser now so a missing Chrome binary fails here
	// instead of on the first article.
	warmCtx, warmCancel := context.WithTimeout(browserCtx, opts.StartupTimeout)
	defer warmCancel()
	if err := chromedp.Run(warmCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	if logger != nil {
		logger.Info("Browser started", map[string]interface{}{
			"headless": opts.Headless,
		})
	}

	return &Renderer{
		opts:          opts,
		logger:        logger,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// NewSession opens a fresh tab.
func (r *Renderer) NewSession(ctx context.Context) (interfaces.Session, error) {
	tabCtx, tabCancel := chromedp.NewContext(r.browserCtx)

	warmCtx, warmCancel := context.WithTimeout(tabCtx, r.opts.StartupTimeout)
	defer warmCancel()
	if err := ctx.Err(); err != nil {
		tabCancel()
		return nil, err
	}
	if err := chromedp.Run(warmCtx); err != nil {
		tabCancel()
		return nil, fmt.Errorf("opening browser tab: %w", err)
	}

	return &Session{
		ctx:    tabCtx,
		cancel: tabCancel,
		opts:   r.opts,
		logger: r.logger,
	}, nil
}

// Close shuts the browser down, closing all tabs.
func (r *Renderer) Close() error {
	r.browserCancel()
	r.allocCancel()
	if r.logger != nil {
		r.logger.Debug("Browser stopped", nil)
	}
	return nil
}

// Session is one browser tab.
type Session struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   Options
	logger interfaces.Logger
}

// Navigate loads the URL, waits for the document body, lets late
// scripts settle, and returns a parsed snapshot of the rendered DOM at
// the final location. Navigation is bounded by the caller's deadline,
// or by the configured timeout when the caller has none.
func (s *Session) Navigate(ctx context.Context, url string) (interfaces.Page, error) {
	if _, ok := ctx.Deadline(); !ok && s.opts.NavigationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.NavigationTimeout)
		defer cancel()
	}

	// chromedp actions must run on the tab's context; the caller's
	// cancellation is forwarded into it.
	runCtx, runCancel := context.WithCancel(s.ctx)
	defer runCancel()
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			runCancel()
		case <-stop:
		}
	}()

	var location, html string
	actions := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if s.opts.SettleDelay > 0 {
		actions = append(actions, chromedp.Sleep(s.opts.SettleDelay))
	}
	actions = append(actions,
		chromedp.Location(&location),
		chromedp.ActionFunc(func(ctx context.Context) error {
			root, err := dom.GetDocument().Do(ctx)
			if err != nil {
				return err
			}
			html, err = dom.GetOuterHTML().WithNodeID(root.NodeID).Do(ctx)
			return err
		}),
	)

	if err := chromedp.Run(runCtx, actions...); err != nil {
		// Surface the caller's deadline or cancellation as such so
		// timeouts classify correctly upstream.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("rendering %s: %w", url, err)
	}

	if location == "" {
		location = url
	}
	return renderdom.NewPage(location, html)
}

// Close closes the tab.
func (s *Session) Close() error {
	s.cancel()
	return nil
}
