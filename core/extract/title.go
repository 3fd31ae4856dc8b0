// ABOUTME: Title extraction cascade, first substantive match wins
// ABOUTME: Headings, headline selectors, Open Graph, structured data, then document title

package extract

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

// noiseTitleKeywords disqualify a heading as navigation or UI chrome.
var noiseTitleKeywords = []string{
	"subscribe",
	"sign in",
	"log in",
	"newsletter",
	"follow us",
	"download app",
	"advertisement",
	"top stories",
	"trending now",
	"more from",
}

// genericTitleWords are section labels that cannot stand alone as a headline.
var genericTitleWords = map[string]struct{}{
	"news":          {},
	"home":          {},
	"live":          {},
	"video":         {},
	"videos":        {},
	"photos":        {},
	"opinion":       {},
	"sports":        {},
	"cricket":       {},
	"business":      {},
	"entertainment": {},
	"technology":    {},
	"lifestyle":     {},
	"india":         {},
	"world":         {},
	"latest":        {},
	"trending":      {},
}

// titleSuffixSeparators split a document title from its site-name suffix.
var titleSuffixSeparators = []string{" | ", " - ", " – "}

// contentHeadingSelector matches headings inside a content-bearing container.
const contentHeadingSelector = "article h1, [role='main'] h1, main h1"

// ExtractTitle runs the title cascade and returns the first substantive
// match, empty when every strategy fails.
func (e *Extractor) ExtractTitle(page interfaces.Page) string {
	strategies := []func(interfaces.Page) string{
		e.titleFromHeadings,
		e.titleFromSelectors,
		e.titleFromOpenGraph,
		e.titleFromStructuredData,
		e.titleFromDocumentTitle,
	}

	for _, strategy := range strategies {
		if title := strategy(page); title != "" {
			return title
		}
	}
	return ""
}

// titleFromHeadings ranks every plausible h1 by content-area membership,
// word count and length.
func (e *Extractor) titleFromHeadings(page interfaces.Page) string {
	inContent := make(map[string]struct{})
	for _, el := range page.QueryAll(contentHeadingSelector) {
		inContent[el.Text()] = struct{}{}
	}

	type heading struct {
		text      string
		inContent bool
		words     int
		length    int
	}

	var candidates []heading
	for _, el := range page.QueryAll("h1") {
		text := el.Text()
		if !e.plausibleTitle(text) {
			continue
		}
		_, contained := inContent[text]
		candidates = append(candidates, heading{
			text:      text,
			inContent: contained,
			words:     len(strings.Fields(text)),
			length:    utf8.RuneCountInString(text),
		})
	}

	if len(candidates) == 0 {
		return ""
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].inContent != candidates[j].inContent {
			return candidates[i].inContent
		}
		if candidates[i].words != candidates[j].words {
			return candidates[i].words > candidates[j].words
		}
		return candidates[i].length > candidates[j].length
	})
	return candidates[0].text
}

// titleFromSelectors consults the publisher override table, then the
// generic headline selectors.
func (e *Extractor) titleFromSelectors(page interfaces.Page) string {
	selectors := append(append([]string{}, siteFor(page.URL()).Headline...), headlineSelectors...)
	for _, selector := range selectors {
		for _, el := range page.QueryAll(selector) {
			if text := el.Text(); e.plausibleTitle(text) {
				return text
			}
		}
	}
	return ""
}

func (e *Extractor) titleFromOpenGraph(page interfaces.Page) string {
	title := strings.TrimSpace(metaContent(page, "meta[property='og:title']"))
	if !e.plausibleTitle(title) {
		return ""
	}
	return title
}

// titleFromStructuredData reads the headline field of Article and
// NewsArticle JSON-LD blocks.
func (e *Extractor) titleFromStructuredData(page interfaces.Page) string {
	for _, el := range page.QueryAll("script[type='application/ld+json']") {
		var node interface{}
		if err := json.Unmarshal([]byte(el.Text()), &node); err != nil {
			continue
		}
		if headline := strings.TrimSpace(headlineFromNode(node)); e.plausibleTitle(headline) {
			return headline
		}
	}
	return ""
}

func headlineFromNode(node interface{}) string {
	switch v := node.(type) {
	case []interface{}:
		for _, item := range v {
			if headline := headlineFromNode(item); headline != "" {
				return headline
			}
		}
	case map[string]interface{}:
		if isArticleType(v["@type"]) {
			if headline, ok := v["headline"].(string); ok {
				return headline
			}
		}
		if graph, ok := v["@graph"]; ok {
			return headlineFromNode(graph)
		}
	}
	return ""
}

func isArticleType(value interface{}) bool {
	switch v := value.(type) {
	case string:
		return v == "Article" || v == "NewsArticle"
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && (s == "Article" || s == "NewsArticle") {
				return true
			}
		}
	}
	return false
}

// titleFromDocumentTitle strips a site-name suffix from the raw
// document title.
func (e *Extractor) titleFromDocumentTitle(page interfaces.Page) string {
	title := strings.TrimSpace(page.Title())
	if title == "" {
		return ""
	}

	for _, sep := range titleSuffixSeparators {
		idx := strings.LastIndex(title, sep)
		if idx <= 0 {
			continue
		}
		head := strings.TrimSpace(title[:idx])
		if utf8.RuneCountInString(head) >= e.th.MinTitle {
			title = head
			break
		}
	}

	if !e.plausibleTitle(title) {
		return ""
	}
	return title
}

// plausibleTitle rejects empty, short, noisy and single-generic-word text.
func (e *Extractor) plausibleTitle(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || utf8.RuneCountInString(text) < e.th.MinTitle {
		return false
	}

	lower := strings.ToLower(text)
	for _, keyword := range noiseTitleKeywords {
		if strings.Contains(lower, keyword) {
			return false
		}
	}

	if words := strings.Fields(lower); len(words) == 1 {
		if _, generic := genericTitleWords[words[0]]; generic {
			return false
		}
	}
	return true
}

// metaContent returns the content attribute of the first element
// matching the selector.
func metaContent(page interfaces.Page, selector string) string {
	for _, el := range page.QueryAll(selector) {
		if content := strings.TrimSpace(el.Attr("content")); content != "" {
			return content
		}
	}
	return ""
}
