// ABOUTME: URL validation for redirect resolution candidates
// ABOUTME: Separates publisher article links from ad, social and aggregator-internal URLs

package redirect

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// aggregatorHosts are feed origins whose links indirect to the real
// publisher URL instead of pointing at it directly.
var aggregatorHosts = []string{
	"news.google.com",
}

// excludedDomains disqualify a candidate outright. Matched as
// substrings of the lowercased URL, so entries like "ads." catch any
// ad-serving subdomain.
var excludedDomains = []string{
	"google.com", "youtube.com", "facebook.com", "twitter.com", "instagram.com",
	"linkedin.com", "pinterest.com", "reddit.com", "tiktok.com",
	"ads.", "doubleclick.", "googleadservices.", "googlesyndication.",
	"amazon.com/dp/", "amazon.com/gp/", "ebay.com",
}

// newsIndicators are path shapes that mark a URL as an article page.
var newsIndicators = []string{
	"/article/", "/news/", "/story/", "/post/", "/blog/",
	".html", ".htm", "/20", "/article-", "/news-",
}

// newsDomains are outlets whose URLs are accepted even without an
// article-shaped path.
var newsDomains = []string{
	"cnn.com", "bbc.com", "reuters.com", "ap.org", "npr.org",
	"nytimes.com", "washingtonpost.com", "wsj.com", "bloomberg.com",
	"guardian.com", "independent.co.uk", "telegraph.co.uk",
	"timesofindia.com", "hindustantimes.com", "indianexpress.com",
	"ndtv.com", "news18.com", "zeenews.com", "deccanherald.com",
}

// ValidArticleURL reports whether a candidate href looks like a real
// article link rather than an ad, social or aggregator-internal URL.
// A URL passes when it avoids the excluded domains and either carries
// an article-shaped path, belongs to a known outlet, or is long
// enough to have a meaningful path of its own.
func ValidArticleURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return false
	}

	lower := strings.ToLower(rawURL)
	for _, domain := range excludedDomains {
		if strings.Contains(lower, domain) {
			return false
		}
	}

	for _, indicator := range newsIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}

	for _, domain := range newsDomains {
		if strings.Contains(lower, domain) {
			return true
		}
	}

	return len(rawURL) > 20 && strings.ContainsRune(rawURL[10:], '/')
}

// IsAggregatorLink reports whether the URL belongs to a feed
// aggregator rather than a publisher.
func IsAggregatorLink(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return isAggregatorHost(u.Hostname())
}

// isAggregatorHost matches the aggregator hosts plus anything else
// under the same registrable domain, which covers consent and
// interstitial redirect hosts.
func isAggregatorHost(host string) bool {
	host = strings.ToLower(host)
	if host == "" {
		return false
	}
	for _, h := range aggregatorHosts {
		if host == h {
			return true
		}
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return false
	}
	for _, h := range aggregatorHosts {
		owner, err := publicsuffix.EffectiveTLDPlusOne(h)
		if err != nil {
			continue
		}
		if domain == owner {
			return true
		}
	}
	return false
}
