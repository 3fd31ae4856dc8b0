// ABOUTME: Extraction service pulling title, description and image from rendered pages
// ABOUTME: Each concern runs a cascade of independent strategies over the Page interface

package extract

import (
	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

// Thresholds tune the extraction strategies.
type Thresholds struct {
	// MinContainerText is the shortest container text a selector strategy accepts
	MinContainerText int

	// MinParagraphWords is the shortest paragraph kept by the paragraph strategy
	MinParagraphWords int

	// MaxParagraphs caps how many kept paragraphs are joined into one candidate
	MaxParagraphs int

	// ParagraphTarget stops paragraph collection once this much text is gathered
	ParagraphTarget int

	// MinDescription is the minimum-substance length for any description candidate
	MinDescription int

	// MaxDescription caps the final description length
	MaxDescription int

	// MinTitle is the shortest string any title strategy may return
	MinTitle int

	// TitleRelevance is the share of meaningful title tokens a candidate
	// must contain to be preferred during selection
	TitleRelevance float64

	// MaxImageScan bounds how many page images are considered
	MaxImageScan int

	// MinImageScore is the lowest score a page image may have and still win
	MinImageScore int
}

// DefaultThresholds returns the tuned production values.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinContainerText:  100,
		MinParagraphWords: 6,
		MaxParagraphs:     3,
		ParagraphTarget:   500,
		MinDescription:    50,
		MaxDescription:    1000,
		MinTitle:          10,
		TitleRelevance:    0.3,
		MaxImageScan:      30,
		MinImageScore:     10,
	}
}

// Extractor runs the title, content and image strategy cascades.
type Extractor struct {
	deps interfaces.Dependencies
	th   Thresholds
}

// NewExtractor creates an Extractor with the given thresholds.
func NewExtractor(deps interfaces.Dependencies, th Thresholds) *Extractor {
	return &Extractor{deps: deps, th: th}
}

// Extract runs every cascade over the page. The returned image URL is
// empty when no page image qualifies.
func (e *Extractor) Extract(page interfaces.Page) (domain.ExtractedContent, string) {
	title := e.ExtractTitle(page)

	content := domain.ExtractedContent{
		ResolvedURL: page.URL(),
		Title:       title,
		Description: e.ExtractDescription(page, title),
	}

	return content, e.SelectImage(page)
}
