// ABOUTME: Resolves aggregator feed links to live publisher article pages
// ABOUTME: Decodes embedded URL tokens, follows natural redirects and falls back to a DOM link scan

package redirect

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/sundeep8967/keypoints-backend-1/core/errors"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

// aggregatorTokenMarkers precede the encoded article token in an
// aggregator link's path.
var aggregatorTokenMarkers = []string{"/articles/", "/read/"}

// tokenEncodings are tried in order when decoding a token. Feed links
// use URL-safe base64, with and without padding.
var tokenEncodings = []*base64.Encoding{
	base64.RawURLEncoding,
	base64.URLEncoding,
	base64.RawStdEncoding,
	base64.StdEncoding,
}

// embeddedURLPattern matches an absolute URL inside decoded token
// bytes. The character class excludes control and non-URL bytes so
// trailing binary data is not glued onto a match.
var embeddedURLPattern = regexp.MustCompile(`https?://[A-Za-z0-9\-._~:/?#@!$&'()*+,;=%]+`)

// linkScanSelectors is the prioritized anchor scan used to escape an
// aggregator page, from article containers down to any external link.
var linkScanSelectors = []string{
	"article a[href*='http']:not([href*='google.com']):not([href*='youtube.com'])",
	"a[data-n-tid]:not([href*='google.com'])",
	"[role='article'] a[href*='http']:not([href*='google.com'])",
	"h3 a[href*='http']:not([href*='google.com'])",
	"h4 a[href*='http']:not([href*='google.com'])",
	"a[href*='http']:not([href*='google.com']):not([href*='youtube.com']):not([href*='facebook.com'])",
	"a[href^='http']:not([href*='google'])",
}

// Options configure redirect resolution.
type Options struct {
	// NavigationTimeout bounds each page load
	NavigationTimeout time.Duration

	// CandidateLimit caps how many anchors are inspected per selector
	// during the aggregator page scan
	CandidateLimit int

	// CacheTTL bounds how long a resolved link mapping is remembered
	CacheTTL time.Duration
}

// DefaultOptions returns the resolution settings used in production.
func DefaultOptions() Options {
	return Options{
		NavigationTimeout: 10 * time.Second,
		CandidateLimit:    10,
		CacheTTL:          24 * time.Hour,
	}
}

// Resolver turns raw feed links into live pages at the real article
// URL.
type Resolver struct {
	deps interfaces.Dependencies
	opts Options
	memo *cache.Cache
}

// NewResolver creates a resolver with the given dependencies.
func NewResolver(deps interfaces.Dependencies, opts Options) *Resolver {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultOptions().CacheTTL
	}
	return &Resolver{
		deps: deps,
		opts: opts,
		memo: cache.New(ttl, 10*time.Minute),
	}
}

// Resolve navigates the session to the real article behind a feed
// link. Aggregator links are decoded first when they embed the target
// URL; otherwise the host's own redirect is followed, and a document
// still on the aggregator domain is scanned for outbound article
// links. A RedirectUnresolvedError means the aggregator page could
// not be escaped; callers emit an error-tagged article in that case
// instead of dropping the entry.
func (r *Resolver) Resolve(ctx context.Context, session interfaces.Session, link string) (interfaces.Page, error) {
	target := link
	if resolved, ok := r.memoized(link); ok {
		target = resolved
	} else if decoded := DecodeAggregatorLink(link); decoded != "" {
		if r.deps.Logger != nil {
			r.deps.Logger.Debug("Decoded aggregator link", map[string]interface{}{
				"link": link,
				"url":  decoded,
			})
		}
		target = decoded
	}

	page, err := r.navigate(ctx, session, target)
	if err != nil && target != link {
		// The decoded or remembered URL failed; fall back to the
		// original link and let the host redirect naturally.
		page, err = r.navigate(ctx, session, link)
	}
	if err != nil {
		return nil, err
	}

	if !IsAggregatorLink(page.URL()) {
		r.remember(link, page.URL())
		return page, nil
	}

	candidate := scanForArticleLink(page, r.opts.CandidateLimit)
	if candidate == "" {
		if r.deps.Logger != nil {
			r.deps.Logger.Warn("No valid article links found on aggregator page", map[string]interface{}{
				"link": link,
			})
		}
		return nil, &errors.RedirectUnresolvedError{
			Link:   link,
			Reason: "no valid article link found on aggregator page",
		}
	}

	if r.deps.Logger != nil {
		r.deps.Logger.Info("Following article link from aggregator page", map[string]interface{}{
			"link": link,
			"url":  candidate,
		})
	}
	page, err = r.navigate(ctx, session, candidate)
	if err != nil {
		return nil, &errors.RedirectUnresolvedError{
			Link:   link,
			Reason: fmt.Sprintf("article link navigation failed: %v", err),
		}
	}
	r.remember(link, page.URL())
	return page, nil
}

// navigate loads a URL within the configured timeout.
func (r *Resolver) navigate(ctx context.Context, session interfaces.Session, target string) (interfaces.Page, error) {
	timeout := r.opts.NavigationTimeout
	if timeout <= 0 {
		timeout = DefaultOptions().NavigationTimeout
	}

	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	page, err := session.Navigate(navCtx, target)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, &errors.NavigationTimeoutError{URL: target, Timeout: timeout.String()}
		}
		return nil, errors.WrapError(err, "navigation failed")
	}
	return page, nil
}

// memoized returns a previously resolved URL for the link, if any.
func (r *Resolver) memoized(link string) (string, bool) {
	cached, found := r.memo.Get(link)
	if !found {
		return "", false
	}
	resolved, ok := cached.(string)
	if !ok || resolved == "" {
		return "", false
	}
	return resolved, true
}

// remember records a link's resolved URL so later runs skip the
// aggregator round trip. Identity mappings and aggregator URLs are
// not worth remembering.
func (r *Resolver) remember(link, resolved string) {
	if resolved == "" || resolved == link || IsAggregatorLink(resolved) {
		return
	}
	r.memo.Set(link, resolved, cache.DefaultExpiration)
}

// DecodeAggregatorLink recovers the publisher URL embedded in an
// aggregator link's encoded path segment. Returns an empty string
// when the link carries no decodable token.
func DecodeAggregatorLink(link string) string {
	u, err := url.Parse(link)
	if err != nil || !isAggregatorHost(u.Hostname()) {
		return ""
	}

	token := tokenFromPath(u.Path)
	if token == "" {
		return ""
	}
	raw := decodeToken(token)
	if raw == nil {
		return ""
	}

	for _, match := range embeddedURLPattern.FindAllString(string(raw), -1) {
		parsed, err := url.Parse(match)
		if err != nil || !strings.Contains(parsed.Host, ".") {
			continue
		}
		if isAggregatorHost(parsed.Hostname()) {
			continue
		}
		return match
	}
	return ""
}

// tokenFromPath extracts the encoded segment following a token
// marker, up to the next path separator.
func tokenFromPath(path string) string {
	for _, marker := range aggregatorTokenMarkers {
		i := strings.Index(path, marker)
		if i < 0 {
			continue
		}
		token := path[i+len(marker):]
		if j := strings.IndexByte(token, '/'); j >= 0 {
			token = token[:j]
		}
		return token
	}
	return ""
}

// decodeToken decodes a token under the first encoding that accepts
// it, or returns nil.
func decodeToken(token string) []byte {
	for _, enc := range tokenEncodings {
		if raw, err := enc.DecodeString(token); err == nil {
			return raw
		}
	}
	return nil
}

// scanForArticleLink inspects the rendered aggregator page for an
// outbound article link. Selectors are tried in priority order and
// only the first candidates per selector are checked; the first href
// passing validation wins.
func scanForArticleLink(page interfaces.Page, limit int) string {
	if limit <= 0 {
		limit = DefaultOptions().CandidateLimit
	}
	for _, selector := range linkScanSelectors {
		elements := page.QueryAll(selector)
		if len(elements) == 0 {
			continue
		}
		if len(elements) > limit {
			elements = elements[:limit]
		}
		for _, el := range elements {
			if href := el.Attr("href"); ValidArticleURL(href) {
				return href
			}
		}
	}
	return ""
}
