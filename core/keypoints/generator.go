// ABOUTME: Key-point generator derives short bullet facts from an extracted description
// ABOUTME: Splits into sentences, drops boilerplate, returns cleaned sentences in original order

package keypoints

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
)

// boilerplatePatterns mark sentences that are site chrome rather than
// article facts: share prompts, subscription nags, breadcrumbs, footers.
var boilerplatePatterns = []string{
	"skip to", "click here", "read more", "subscribe", "newsletter",
	"cookie", "privacy policy", "terms of service", "advertisement",
	"follow us", "share this", "related articles", "trending now",
	"live updates", "watch video", "photo gallery",
	"also read", "you may like", "recommended", "sponsored content",
	"sign in", "log in", "download app", "all rights reserved",
}

// timestampPattern matches sentences that are bare dates or bylines
// rather than content ("Updated: Jan 2, 2026", "Published 14:05 IST").
var timestampPattern = regexp.MustCompile(`(?i)^\s*(updated|published|posted|last modified)?[:\s]*\d{1,2}[:/\-\s]\d{1,2}([:/\-\s]\d{2,4})?\s*(am|pm|ist|gmt|utc)?\s*$|^\s*(updated|published|posted)\b`)

// Options holds the generator's tunables.
type Options struct {
	// MaxPoints caps the number of returned sentences
	MaxPoints int

	// MinDescriptionLen is the substance threshold below which no
	// points are generated
	MinDescriptionLen int

	// MinSentenceWords drops fragments shorter than this
	MinSentenceWords int
}

// DefaultOptions returns the production generator settings.
func DefaultOptions() Options {
	return Options{
		MaxPoints:         5,
		MinDescriptionLen: 50,
		MinSentenceWords:  5,
	}
}

// Generator produces key points from article descriptions.
type Generator struct {
	opts Options
}

// NewGenerator creates a key-point generator
func NewGenerator(opts Options) *Generator {
	if opts.MaxPoints <= 0 {
		opts.MaxPoints = DefaultOptions().MaxPoints
	}
	if opts.MinSentenceWords <= 0 {
		opts.MinSentenceWords = DefaultOptions().MinSentenceWords
	}
	return &Generator{opts: opts}
}

// Generate returns up to MaxPoints cleaned sentences from the
// description, in their original order. Descriptions below the
// substance threshold, and the extraction sentinel, yield nothing.
func (g *Generator) Generate(description string) []string {
	if description == "" || description == domain.ExtractionFailedDescription {
		return nil
	}
	if len(description) < g.opts.MinDescriptionLen {
		return nil
	}

	points := make([]string, 0, g.opts.MaxPoints)
	for _, sentence := range splitSentences(description) {
		cleaned := cleanSentence(sentence)
		if cleaned == "" {
			continue
		}
		if len(strings.Fields(cleaned)) < g.opts.MinSentenceWords {
			continue
		}
		if isBoilerplate(cleaned) {
			continue
		}

		points = append(points, cleaned)
		if len(points) >= g.opts.MaxPoints {
			break
		}
	}

	return points
}

// splitSentences breaks text on terminal punctuation. Fragments of
// ten characters or fewer are folded into the next sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			candidate := strings.TrimSpace(current.String())
			if len(candidate) > 10 {
				sentences = append(sentences, candidate)
				current.Reset()
			}
		}
	}

	if tail := strings.TrimSpace(current.String()); tail != "" {
		sentences = append(sentences, tail)
	}

	return sentences
}

// cleanSentence normalizes whitespace and punctuation for one sentence.
func cleanSentence(sentence string) string {
	cleaned := strings.Join(strings.Fields(sentence), " ")
	cleaned = strings.TrimLeft(cleaned, "-–•* ")
	if cleaned == "" {
		return ""
	}

	// Every point ends with terminal punctuation.
	last, _ := utf8.DecodeLastRuneInString(cleaned)
	if last != '.' && last != '!' && last != '?' {
		cleaned += "."
	}

	return cleaned
}

// isBoilerplate reports whether the sentence is site chrome or a
// timestamp rather than article content.
func isBoilerplate(sentence string) bool {
	lower := strings.ToLower(sentence)

	for _, pattern := range boilerplatePatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}

	if timestampPattern.MatchString(sentence) {
		return true
	}

	// All-caps lines are headers or navigation, not facts.
	letters := 0
	uppers := 0
	for _, r := range sentence {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}
	return letters > 10 && letters == uppers
}
