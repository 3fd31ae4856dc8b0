// ABOUTME: Accent color service extracting the dominant color from article images
// ABOUTME: Downloads the image and runs K-means clustering with cached results

package services

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/EdlinOrg/prominentcolor"
	_ "golang.org/x/image/webp" // WebP support

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

const (
	// neutralGray is the channel value of the fallback color
	neutralGray = 128

	// accentCacheTTL is how long extracted colors stay cached
	accentCacheTTL = 24 * time.Hour

	// maxImageBytes caps how much image data is decoded
	maxImageBytes = 8 << 20

	// accentBatchConcurrency bounds parallel downloads in batch mode
	accentBatchConcurrency = 5
)

// AccentService extracts the dominant color of article images for UI
// accents. Extraction failures degrade to a neutral gray instead of
// erroring so article rendering never blocks on an image.
type AccentService struct {
	deps interfaces.Dependencies
}

// NewAccentService creates a new accent color service
func NewAccentService(deps interfaces.Dependencies) *AccentService {
	return &AccentService{deps: deps}
}

// ExtractColor returns the dominant color of the image at imageURL.
// Results are cached for a day; failures return the neutral fallback.
func (s *AccentService) ExtractColor(ctx context.Context, imageURL string) (*domain.RGBColor, error) {
	if imageURL == "" {
		return s.fallbackColor(), nil
	}

	if cached := s.cachedColor(ctx, imageURL); cached != nil {
		return cached, nil
	}

	color, err := s.extract(ctx, imageURL)
	if err != nil {
		if s.deps.Logger != nil {
			s.deps.Logger.Debug("Accent color extraction failed", map[string]interface{}{
				"url":   imageURL,
				"error": err.Error(),
			})
		}
		color = s.fallbackColor()
	}

	if s.deps.Cache != nil {
		encoded := fmt.Sprintf("%d,%d,%d", color.R, color.G, color.B)
		_ = s.deps.Cache.Set(ctx, accentCacheKey(imageURL), []byte(encoded), accentCacheTTL)
	}
	return color, nil
}

// GetCachedColor returns a previously extracted color without computing
// one. It errors when the color has not been cached yet.
func (s *AccentService) GetCachedColor(ctx context.Context, imageURL string) (*domain.RGBColor, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("empty image URL")
	}
	if cached := s.cachedColor(ctx, imageURL); cached != nil {
		return cached, nil
	}
	return nil, fmt.Errorf("accent color not cached for %s", imageURL)
}

// ExtractColorBatch extracts colors for multiple URLs concurrently.
// URLs that fail are omitted so they are recomputed on the next pass.
func (s *AccentService) ExtractColorBatch(ctx context.Context, imageURLs []string) map[string]*domain.RGBColor {
	results := make(map[string]*domain.RGBColor)
	var mu sync.Mutex

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, accentBatchConcurrency)

	for _, raw := range imageURLs {
		if raw == "" {
			continue
		}
		wg.Add(1)
		go func(imageURL string) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-ctx.Done():
				return
			}

			color, err := s.ExtractColor(ctx, imageURL)
			if err != nil {
				return
			}

			mu.Lock()
			results[imageURL] = color
			mu.Unlock()
		}(raw)
	}
	wg.Wait()

	if s.deps.Logger != nil {
		s.deps.Logger.Debug("Accent color batch complete", map[string]interface{}{
			"requested": len(imageURLs),
			"extracted": len(results),
		})
	}
	return results
}

// extract downloads the image and clusters its pixels. The clustering
// library can panic on malformed images, so the panic is converted to
// an error here.
func (s *AccentService) extract(ctx context.Context, imageURL string) (color *domain.RGBColor, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			color = nil
			err = fmt.Errorf("color clustering panicked: %v", rec)
		}
	}()

	parsed, err := url.Parse(imageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid image URL: %s", imageURL)
	}
	// SVG is vector data and cannot be clustered.
	if strings.HasSuffix(strings.ToLower(parsed.Path), ".svg") {
		return nil, fmt.Errorf("SVG images are not supported")
	}

	if s.deps.HTTPClient == nil {
		return nil, fmt.Errorf("no HTTP client configured")
	}
	resp, err := s.deps.HTTPClient.Get(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("downloading image: %w", err)
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	img, _, err := image.Decode(io.LimitReader(body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image has empty bounds")
	}
	nrgba := image.NewNRGBA(bounds)
	draw.Draw(nrgba, bounds, img, bounds.Min, draw.Src)

	colors, err := prominentcolor.KmeansWithAll(
		prominentcolor.ArgumentDefault,
		nrgba,
		prominentcolor.DefaultK,
		1,
		prominentcolor.GetDefaultMasks(),
	)
	if err != nil || len(colors) == 0 {
		// Masks crop backgrounds; small or uniform images can end up
		// with nothing left, so retry over the full frame.
		colors, err = prominentcolor.KmeansWithAll(
			prominentcolor.ArgumentDefault,
			nrgba,
			prominentcolor.DefaultK,
			1,
			nil,
		)
		if err != nil || len(colors) == 0 {
			return nil, fmt.Errorf("no colors extracted from image")
		}
	}

	return &domain.RGBColor{
		R: uint8(colors[0].Color.R),
		G: uint8(colors[0].Color.G),
		B: uint8(colors[0].Color.B),
	}, nil
}

// cachedColor returns the cached color for imageURL, or nil.
func (s *AccentService) cachedColor(ctx context.Context, imageURL string) *domain.RGBColor {
	if s.deps.Cache == nil {
		return nil
	}
	data, err := s.deps.Cache.Get(ctx, accentCacheKey(imageURL))
	if err != nil || data == nil {
		return nil
	}

	var color domain.RGBColor
	if _, err := fmt.Sscanf(string(data), "%d,%d,%d", &color.R, &color.G, &color.B); err != nil {
		return nil
	}
	return &color
}

func (s *AccentService) fallbackColor() *domain.RGBColor {
	return &domain.RGBColor{R: neutralGray, G: neutralGray, B: neutralGray}
}

func accentCacheKey(imageURL string) string {
	return "accentColor:" + imageURL
}
