// ABOUTME: Image selection with quality scoring over a bounded page scan
// ABOUTME: Open Graph and Twitter card images outrank scored page candidates

package extract

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

// Image scoring bonuses and penalties.
const (
	altTextBonus      = 30
	declaredSizeBonus = 20
	brandPenalty      = 50
	cdnBonus          = 40
	staticHostBonus   = 20
	thumbPenalty      = 30
	classHintBonus    = 15
)

// Image validity limits.
const (
	minImageWidth   = 200
	minImageHeight  = 150
	bonusWidth      = 300
	bonusHeight     = 200
	maxAspectRatio  = 4.0
	minAspectRatio  = 0.25
)

// rejectImagePatterns disqualify candidates whose src or alt marks them
// as chrome, branding or ads.
var rejectImagePatterns = []string{
	"logo", "icon", "avatar", "profile", "thumbnail",
	"ads", "/ad/", "-ad-", "banner", "sponsor", "widget", "button",
	"social", "facebook", "twitter", "instagram",
	"placeholder", "default", "blank", "spacer",
}

// imageHostHints mark image-serving hosts and paths.
var imageHostHints = []string{"cdn", "img", "images", "static"}

// imageClassHints mark an image as part of the article content.
var imageClassHints = []string{"article", "content", "main", "featured", "hero"}

// SelectImage picks the article image: Open Graph tag first, Twitter
// card second, then the best valid candidate from a bounded page scan.
// Empty means nothing qualified.
func (e *Extractor) SelectImage(page interfaces.Page) string {
	if src := metaContent(page, "meta[property='og:image']"); isAbsoluteImageURL(src) {
		return src
	}
	if src := metaContent(page, "meta[name='twitter:image']"); isAbsoluteImageURL(src) {
		return src
	}
	return e.bestPageImage(page)
}

// bestPageImage scores the first MaxImageScan images and returns the
// highest-scoring one that passes validation.
func (e *Extractor) bestPageImage(page interfaces.Page) string {
	images := page.QueryAll("img")
	if len(images) > e.th.MaxImageScan {
		images = images[:e.th.MaxImageScan]
	}

	var candidates []domain.ImageCandidate
	for _, img := range images {
		src := strings.TrimSpace(img.Attr("src"))
		if !isAbsoluteImageURL(src) {
			continue
		}

		candidate := domain.ImageCandidate{
			Src:       src,
			AltText:   strings.TrimSpace(img.Attr("alt")),
			Width:     parseDimension(img.Attr("width")),
			Height:    parseDimension(img.Attr("height")),
			ClassName: img.Attr("class"),
		}
		candidate.Score = scoreImage(candidate)
		candidates = append(candidates, candidate)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return imageArea(candidates[i]) > imageArea(candidates[j])
	})

	for i := range candidates {
		if e.validImage(candidates[i]) {
			if e.deps.Logger != nil {
				e.deps.Logger.Debug("Selected page image", map[string]interface{}{
					"src":   candidates[i].Src,
					"score": candidates[i].Score,
				})
			}
			return candidates[i].Src
		}
	}
	return ""
}

// scoreImage rates one candidate by its attributes and hosting.
func scoreImage(c domain.ImageCandidate) int {
	score := 0
	src := strings.ToLower(c.Src)

	if c.Width >= bonusWidth && c.Height >= bonusHeight {
		score += declaredSizeBonus
	}
	if c.AltText != "" {
		score += altTextBonus
	}
	if strings.Contains(src, "icon") || strings.Contains(src, "logo") {
		score -= brandPenalty
	}

	if containsAny(src, imageHostHints) {
		if strings.Contains(src, "cdn") {
			score += cdnBonus
		} else {
			score += staticHostBonus
		}
		if strings.Contains(src, "thumb") {
			score -= thumbPenalty
		}
	}

	if c.ClassName != "" && containsAny(strings.ToLower(c.ClassName), imageClassHints) {
		score += classHintBonus
	}

	if score < 0 {
		score = 0
	}
	return score
}

// validImage applies the disqualification rules to a scored candidate.
func (e *Extractor) validImage(c domain.ImageCandidate) bool {
	src := strings.ToLower(c.Src)
	alt := strings.ToLower(c.AltText)

	for _, pattern := range rejectImagePatterns {
		if strings.Contains(src, pattern) || strings.Contains(alt, pattern) {
			return false
		}
	}

	if c.HasDeclaredSize() {
		if c.Width < minImageWidth || c.Height < minImageHeight {
			return false
		}
		aspect := float64(c.Width) / float64(c.Height)
		if aspect > maxAspectRatio || aspect < minAspectRatio {
			return false
		}
	}

	return c.Score >= e.th.MinImageScore
}

func imageArea(c domain.ImageCandidate) int {
	if !c.HasDeclaredSize() {
		return 0
	}
	return c.Width * c.Height
}

func isAbsoluteImageURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

func parseDimension(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
