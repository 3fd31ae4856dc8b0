package extract

import (
	"testing"

	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
	"github.com/sundeep8967/keypoints-backend-1/infrastructure/render/dom"
)

func newTestExtractor() *Extractor {
	return NewExtractor(interfaces.Dependencies{}, DefaultThresholds())
}

func pageFrom(t *testing.T, url, html string) interfaces.Page {
	t.Helper()
	page, err := dom.NewPage(url, html)
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return page
}
