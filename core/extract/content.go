// ABOUTME: Content extraction strategies producing tagged candidates
// ABOUTME: Selection takes the longest title-relevant candidate, then cleans and caps it

package extract

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

// paragraphSkipWords mark a paragraph as navigation, ads or boilerplate.
var paragraphSkipWords = []string{
	"subscribe",
	"sign in",
	"newsletter",
	"follow us",
	"share this",
	"advertisement",
	"sponsored",
	"cookie",
	"privacy policy",
	"terms of service",
	"read more",
	"click here",
	"related articles",
}

// paragraphDatePatterns match bare datelines and update stamps.
var paragraphDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(updated|published|posted|last updated)\b`),
	regexp.MustCompile(`(?i)^\d{1,2}\s+[a-z]+\s+\d{4}([\s,]+\d{1,2}:\d{2}\s*(am|pm|ist|gmt|utc)?)?$`),
}

// trailingSourcePattern matches a short "| Site Name" tail.
var trailingSourcePattern = regexp.MustCompile(`\s*\|[^|]{1,40}$`)

// trailingUpdatedPattern matches a trailing update stamp.
var trailingUpdatedPattern = regexp.MustCompile(`(?i)\s*\b(updated|last updated|published)\s*:.{0,80}$`)

// boundaryLookback is how far truncation searches backwards for a
// sentence end before settling for a word boundary.
const boundaryLookback = 200

// ExtractDescription gathers a candidate from every content strategy
// and returns the cleaned, capped winner. Empty means no strategy
// produced substantial content.
func (e *Extractor) ExtractDescription(page interfaces.Page, title string) string {
	candidates := e.contentCandidates(page)
	if len(candidates) == 0 {
		return ""
	}

	chosen := e.chooseCandidate(candidates, title)
	description := e.finishDescription(chosen.Text)

	if description != "" && e.deps.Logger != nil {
		e.deps.Logger.Debug("Selected content candidate", map[string]interface{}{
			"strategy": chosen.Strategy,
			"length":   chosen.Length,
		})
	}
	return description
}

// contentCandidates runs each strategy once. Candidates below the
// minimum-substance length are discarded at the door.
func (e *Extractor) contentCandidates(page interfaces.Page) []domain.ContentCandidate {
	var candidates []domain.ContentCandidate
	add := func(strategy, text string) {
		text = normalizeWhitespace(text)
		length := utf8.RuneCountInString(text)
		if length < e.th.MinDescription {
			return
		}
		candidates = append(candidates, domain.ContentCandidate{
			Text:     text,
			Strategy: strategy,
			Length:   length,
		})
	}

	site := siteFor(page.URL())

	containerSelectors := append(append([]string{}, site.Content...), articleSelectors...)
	if text := firstContainerText(page, containerSelectors, e.th.MinContainerText); text != "" {
		add("container", text)
	}

	if text := readableText(page); text != "" {
		add("readability", text)
	}

	if text := e.joinedParagraphs(page); text != "" {
		add("paragraphs", text)
	}

	if text := firstContainerText(page, divSelectors, e.th.MinContainerText); text != "" {
		add("divs", text)
	}

	add("meta-description", metaContent(page, "meta[name='description']"))
	add("og-description", metaContent(page, "meta[property='og:description']"))

	return candidates
}

// firstContainerText returns the first selector hit whose text exceeds
// the minimum length.
func firstContainerText(page interfaces.Page, selectors []string, minLength int) string {
	for _, selector := range selectors {
		for _, el := range page.QueryAll(selector) {
			text := normalizeWhitespace(el.Text())
			if utf8.RuneCountInString(text) > minLength {
				return text
			}
		}
	}
	return ""
}

// readableText runs the readability extractor over the page snapshot.
func readableText(page interfaces.Page) string {
	pageURL, err := url.Parse(page.URL())
	if err != nil {
		return ""
	}

	article, err := readability.FromReader(strings.NewReader(page.HTML()), pageURL)
	if err != nil {
		return ""
	}
	return article.TextContent
}

// joinedParagraphs keeps meaningful paragraphs in page order and joins
// the first few into one candidate.
func (e *Extractor) joinedParagraphs(page interfaces.Page) string {
	var kept []string
	gathered := 0

	for _, el := range page.QueryAll("p") {
		text := normalizeWhitespace(el.Text())
		if !e.meaningfulParagraph(text) {
			continue
		}
		kept = append(kept, text)
		gathered += utf8.RuneCountInString(text) + 1
		if gathered > e.th.ParagraphTarget {
			break
		}
	}

	if len(kept) > e.th.MaxParagraphs {
		kept = kept[:e.th.MaxParagraphs]
	}
	return strings.Join(kept, " ")
}

// meaningfulParagraph rejects boilerplate, all-caps navigation, bare
// datelines and fragments below the word minimum.
func (e *Extractor) meaningfulParagraph(text string) bool {
	if len(strings.Fields(text)) < e.th.MinParagraphWords {
		return false
	}

	lower := strings.ToLower(text)
	for _, skip := range paragraphSkipWords {
		if strings.Contains(lower, skip) {
			return false
		}
	}

	if isAllCaps(text) {
		return false
	}

	for _, pattern := range paragraphDatePatterns {
		if pattern.MatchString(text) {
			return false
		}
	}
	return true
}

// isAllCaps reports whether the text contains letters but no lowercase.
func isAllCaps(text string) bool {
	hasLetter := false
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if unicode.IsLower(r) {
			return false
		}
	}
	return hasLetter
}

// chooseCandidate prefers the longest candidate containing enough of
// the title's meaningful tokens, falling back to the longest overall.
func (e *Extractor) chooseCandidate(candidates []domain.ContentCandidate, title string) domain.ContentCandidate {
	titleTokens := meaningfulTokens(title)

	best := -1
	for i := range candidates {
		if titleRelevance(candidates[i].Text, titleTokens) < e.th.TitleRelevance {
			continue
		}
		if best == -1 || candidates[i].Length > candidates[best].Length {
			best = i
		}
	}

	if best == -1 {
		for i := range candidates {
			if best == -1 || candidates[i].Length > candidates[best].Length {
				best = i
			}
		}
	}
	return candidates[best]
}

// commonWords are ignored when measuring title relevance.
var commonWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
}

func meaningfulTokens(title string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(title)) {
		word = strings.Trim(word, ".,!?;:\"'()")
		if word == "" {
			continue
		}
		if _, common := commonWords[word]; common {
			continue
		}
		tokens[word] = struct{}{}
	}
	return tokens
}

// titleRelevance is the share of meaningful title tokens present in
// the text. An empty token set counts as fully relevant.
func titleRelevance(text string, titleTokens map[string]struct{}) float64 {
	if len(titleTokens) == 0 {
		return 1
	}

	textTokens := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(text)) {
		textTokens[strings.Trim(word, ".,!?;:\"'()")] = struct{}{}
	}

	matched := 0
	for token := range titleTokens {
		if _, ok := textTokens[token]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(titleTokens))
}

// finishDescription normalizes whitespace, strips trailing site and
// update-stamp boilerplate and caps the length at a clean boundary.
func (e *Extractor) finishDescription(text string) string {
	text = normalizeWhitespace(text)
	text = trailingUpdatedPattern.ReplaceAllString(text, "")
	text = trailingSourcePattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	if utf8.RuneCountInString(text) > e.th.MaxDescription {
		text = truncateAtBoundary(text, e.th.MaxDescription)
	}
	if utf8.RuneCountInString(text) < e.th.MinDescription {
		return ""
	}
	return text
}

// truncateAtBoundary cuts the text at the last sentence end inside the
// cap, or failing that at a word boundary, never mid-word.
func truncateAtBoundary(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	cut := runes[:max]

	stop := max - boundaryLookback
	if stop < 0 {
		stop = 0
	}
	for i := max - 1; i >= stop; i-- {
		if cut[i] == '.' || cut[i] == '!' || cut[i] == '?' {
			return strings.TrimSpace(string(cut[:i+1]))
		}
	}

	for i := max - 1; i > 0; i-- {
		if unicode.IsSpace(cut[i]) {
			return strings.TrimSpace(string(cut[:i])) + "..."
		}
	}
	return string(cut) + "..."
}

func normalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
