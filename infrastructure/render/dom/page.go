// ABOUTME: goquery-backed implementation of the Page and Element interfaces
// ABOUTME: Both renderers parse their HTML snapshots through this package

package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

// Element wraps one matched goquery selection.
type Element struct {
	sel *goquery.Selection
}

// Attr returns the value of the named attribute, empty when absent.
func (e *Element) Attr(name string) string {
	value, _ := e.sel.Attr(name)
	return value
}

// Text returns the element's text content with surrounding whitespace removed.
func (e *Element) Text() string {
	return strings.TrimSpace(e.sel.Text())
}

// Page is a parsed HTML snapshot positioned at a resolved URL.
type Page struct {
	url  string
	html string
	doc  *goquery.Document
}

// NewPage parses an HTML snapshot taken at the given URL.
func NewPage(url, html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	return &Page{url: url, html: html, doc: doc}, nil
}

// URL returns the resolved document URL.
func (p *Page) URL() string {
	return p.url
}

// Title returns the raw document title.
func (p *Page) Title() string {
	return strings.TrimSpace(p.doc.Find("title").First().Text())
}

// QueryAll returns every element matching the CSS selector.
func (p *Page) QueryAll(selector string) []interfaces.Element {
	var elements []interfaces.Element
	p.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		elements = append(elements, &Element{sel: sel})
	})
	return elements
}

// Text returns the visible page text.
func (p *Page) Text() string {
	return strings.TrimSpace(p.doc.Find("body").Text())
}

// HTML returns the snapshot the page was parsed from.
func (p *Page) HTML() string {
	return p.html
}
