// ABOUTME: Builds the spoken script for an audio briefing
// ABOUTME: Degraded articles and empty key points are skipped

package briefing

import (
	"strings"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/pkg/utils/html"
)

// Script builds the text spoken for a briefing: each clean article's
// title followed by its key points. Articles that degraded or carry no
// title are skipped; an article without key points falls back to its
// description. Text is stripped of markup so the voice never reads
// tags or entities aloud.
func Script(articles []domain.Article) string {
	var b strings.Builder
	for _, article := range articles {
		if article.Error != "" || article.Title == "" {
			continue
		}

		b.WriteString(asSentence(html.StripHTML(article.Title)))

		points := article.KeyPoints
		if len(points) == 0 && article.Description != "" && article.Description != domain.ExtractionFailedDescription {
			points = []string{article.Description}
		}
		for _, point := range points {
			point = html.StripHTML(point)
			if point == "" {
				continue
			}
			b.WriteString(" ")
			b.WriteString(asSentence(point))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

// asSentence terminates s with a period when it has no closing
// punctuation, so the voice pauses between items.
func asSentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}
