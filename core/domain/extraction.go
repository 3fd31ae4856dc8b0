// ABOUTME: Transient extraction types shared by the title, content and image strategies
// ABOUTME: Candidates carry a source tag so strategy selection stays testable

package domain

// ExtractedContent is the union of what the extraction strategies can
// produce for one rendered page.
type ExtractedContent struct {
	// ResolvedURL is the final publisher URL after redirect resolution
	ResolvedURL string

	// Title is the extracted headline; empty means every strategy failed
	Title string

	// Description is the selected content candidate after cleanup.
	// Non-empty values are never shorter than the minimum-substance
	// threshold, except the explicit extraction sentinel.
	Description string
}

// ContentCandidate is one strategy's output before selection.
type ContentCandidate struct {
	// Text is the candidate content
	Text string

	// Strategy names the producing strategy (selector, paragraphs, ...)
	Strategy string

	// Length is the candidate's rune length, cached for ranking
	Length int
}

// ImageCandidate is a page image considered for article art.
type ImageCandidate struct {
	// Src is the image URL
	Src string

	// AltText is the image's alt attribute
	AltText string

	// Width and Height are declared dimensions, 0 when absent
	Width  int
	Height int

	// ClassName is the element's class attribute
	ClassName string

	// Score is assigned during candidate ranking
	Score int
}

// HasDeclaredSize reports whether both dimensions were present on the
// element. Candidates without declared sizes skip dimension checks.
func (c *ImageCandidate) HasDeclaredSize() bool {
	return c.Width > 0 && c.Height > 0
}
