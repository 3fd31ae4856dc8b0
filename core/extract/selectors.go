// ABOUTME: Selector tables consulted by the extraction cascades
// ABOUTME: Per-publisher overrides run before the generic lists

package extract

import (
	"net/url"
	"strings"
)

// articleSelectors locate the main article container, most specific first.
var articleSelectors = []string{
	"article",
	"[role='main']",
	".article-content",
	".story-content",
	".post-content",
	".entry-content",
	".content-body",
	".article-body",
	".story-body",
	".main-content",
	"#article-content",
	"#story-content",
	".news-content",
}

// divSelectors are lower-confidence containers tried after the
// paragraph strategy.
var divSelectors = []string{
	"div[itemprop='articleBody']",
	"div[class*='article-text']",
	"div[class*='story-text']",
	"div[class*='post-body']",
}

// headlineSelectors locate the displayed headline.
var headlineSelectors = []string{
	"[itemprop='headline']",
	"h1.headline",
	"h1.article-title",
	"h1.entry-title",
	".headline",
	".article-title",
	".story-headline",
}

// SiteSelectors override the generic lists for one publisher.
type SiteSelectors struct {
	// Content selectors tried before articleSelectors
	Content []string

	// Headline selectors tried before headlineSelectors
	Headline []string
}

// siteOverrides is keyed by registrable publisher domain. Entries were
// collected by inspecting pages that defeated the generic cascade.
var siteOverrides = map[string]SiteSelectors{
	"ndtv.com": {
		Content:  []string{".sp-cn.ins_storybody", ".story__content"},
		Headline: []string{"h1.sp-ttl", ".sp-ttl"},
	},
	"indiatimes.com": {
		Content:  []string{"div._s30J", ".ga-headlines"},
		Headline: []string{"h1.HNMDR"},
	},
	"hindustantimes.com": {
		Content:  []string{".storyDetails .detail", ".fullStory"},
		Headline: []string{"h1.hdg1"},
	},
	"indianexpress.com": {
		Content:  []string{".full-details", ".ie-first-para"},
		Headline: []string{"h1.native_story_title"},
	},
	"thehindu.com": {
		Content:  []string{".articlebodycontent"},
		Headline: []string{"h1.title"},
	},
	"deccanherald.com": {
		Content:  []string{".story-content-wrapper"},
		Headline: []string{"h1.article-title"},
	},
}

// siteFor returns the overrides for the page's publisher, zero-valued
// when the host is unknown.
func siteFor(pageURL string) SiteSelectors {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return SiteSelectors{}
	}

	host := strings.ToLower(parsed.Hostname())
	for domain, selectors := range siteOverrides {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return selectors
		}
	}
	return SiteSelectors{}
}
