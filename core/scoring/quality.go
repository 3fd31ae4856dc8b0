// ABOUTME: Quality scorer estimates article importance from keyword tiers and content completeness
// ABOUTME: Tier and weight values are empirically tuned; only their relative ordering is load-bearing

package scoring

import (
	"math"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

// breakingKeywords mark urgent coverage and win over every other tier.
var breakingKeywords = []string{
	"breaking", "urgent", "alert", "live", "developing", "just in", "flash",
}

// politicalKeywords mark government/judicial coverage.
var politicalKeywords = []string{
	"election", "vote", "government", "minister", "parliament",
	"policy", "law", "court", "judge",
}

// socialKeywords mark viral/platform coverage.
var socialKeywords = []string{
	"viral", "trending", "social media", "twitter", "facebook",
	"instagram", "youtube",
}

// regionalKeywords grant a flat bonus for Indian context: places,
// institutions, politics, sport and business names.
var regionalKeywords = []string{
	"india", "indian", "delhi", "mumbai", "bengaluru", "bangalore", "chennai",
	"hyderabad", "pune", "kolkata", "ahmedabad", "surat", "jaipur", "lucknow",
	"kanpur", "nagpur", "indore", "thane", "bhopal", "visakhapatnam", "pimpri",
	"patna", "vadodara", "ludhiana", "agra", "nashik", "faridabad", "meerut",
	"rajkot", "kalyan", "vasai", "varanasi", "srinagar", "aurangabad", "dhanbad",
	"amritsar", "navi mumbai", "allahabad", "ranchi", "howrah", "coimbatore",
	"jabalpur", "gwalior", "vijayawada", "jodhpur", "madurai", "raipur", "kota",
	"guwahati", "chandigarh", "modi", "bjp", "congress", "parliament", "lok sabha",
	"rajya sabha", "supreme court", "high court", "cbi", "ed", "rbi", "sebi",
	"isro", "drdo", "iit", "iim", "upsc", "neet", "jee", "cbse", "icse",
	"bollywood", "tollywood", "kollywood", "ipl", "bcci", "cricket", "hockey",
	"kabaddi", "badminton", "wrestling", "boxing", "shooting", "archery",
	"rupee", "nse", "bse", "sensex", "nifty", "lic", "sbi", "hdfc", "icici",
	"tata", "reliance", "adani", "ambani", "ratan tata", "mukesh ambani",
}

// freshnessStrongKeywords and freshnessWeakKeywords hint at recency.
var freshnessStrongKeywords = []string{"today", "yesterday", "latest", "new", "recent"}
var freshnessWeakKeywords = []string{"update", "report", "announce", "reveal"}

// trustedSources receive the source-trust multiplier.
var trustedSources = []string{
	"bbc", "reuters", "ap", "ndtv", "times of india", "hindu",
	"indian express", "hindustan times",
}

// Weights holds every tunable of the scorer. Values are tuned
// constants; tiers must keep their ordering breaking > political >
// social for scoring to stay monotonic in urgency.
type Weights struct {
	BreakingTier  int
	PoliticalTier int
	SocialTier    int

	RegionalBonus   int
	TrustMultiplier float64

	TitleLongLen   int
	TitleMediumLen int
	TitleLong      int
	TitleMedium    int
	TitleShort     int

	DescLongLen   int
	DescMediumLen int
	DescLong      int
	DescMedium    int
	DescShort     int

	ImageCDN   int
	ImageOther int

	FreshnessStrong int
	FreshnessWeak   int

	MaxScore int
}

// DefaultWeights returns the tuned production weights.
func DefaultWeights() Weights {
	return Weights{
		BreakingTier:    900,
		PoliticalTier:   700,
		SocialTier:      500,
		RegionalBonus:   50,
		TrustMultiplier: 1.2,
		TitleLongLen:    50,
		TitleMediumLen:  30,
		TitleLong:       80,
		TitleMedium:     60,
		TitleShort:      20,
		DescLongLen:     500,
		DescMediumLen:   200,
		DescLong:        120,
		DescMedium:      80,
		DescShort:       40,
		ImageCDN:        60,
		ImageOther:      40,
		FreshnessStrong: 40,
		FreshnessWeak:   20,
		MaxScore:        1000,
	}
}

// Scorer computes quality scores for enriched articles. Keyword
// matching runs over Aho-Corasick automata built once at construction.
type Scorer struct {
	deps    interfaces.Dependencies
	weights Weights

	breaking      *ahocorasick.Matcher
	political     *ahocorasick.Matcher
	social        *ahocorasick.Matcher
	regional      *ahocorasick.Matcher
	freshStrong   *ahocorasick.Matcher
	freshWeak     *ahocorasick.Matcher
}

// NewScorer creates a quality scorer with the given weights
func NewScorer(deps interfaces.Dependencies, weights Weights) *Scorer {
	return &Scorer{
		deps:        deps,
		weights:     weights,
		breaking:    ahocorasick.NewStringMatcher(breakingKeywords),
		political:   ahocorasick.NewStringMatcher(politicalKeywords),
		social:      ahocorasick.NewStringMatcher(socialKeywords),
		regional:    ahocorasick.NewStringMatcher(regionalKeywords),
		freshStrong: ahocorasick.NewStringMatcher(freshnessStrongKeywords),
		freshWeak:   ahocorasick.NewStringMatcher(freshnessWeakKeywords),
	}
}

// Score returns the quality score for the article attributes,
// bounded to [0, MaxScore].
func (s *Scorer) Score(title, imageURL, description, source string) int {
	allText := []byte(strings.ToLower(title + " " + description))

	importance := 0
	if s.matches(s.breaking, allText) {
		importance = s.weights.BreakingTier
	} else if s.matches(s.political, allText) {
		importance = s.weights.PoliticalTier
	} else if s.matches(s.social, allText) {
		importance = s.weights.SocialTier
	}

	regional := 0
	if s.matches(s.regional, allText) {
		regional = s.weights.RegionalBonus
	}

	base := s.baseScore(title, imageURL, description, allText)

	multiplier := 1.0
	if isTrustedSource(source) {
		multiplier = s.weights.TrustMultiplier
	}

	final := float64(importance+base+regional) * multiplier
	score := int(math.Round(final))
	if score > s.weights.MaxScore {
		score = s.weights.MaxScore
	}
	if score < 0 {
		score = 0
	}
	return score
}

// baseScore rewards content completeness: title and description
// length bands, image hosting, freshness hints.
func (s *Scorer) baseScore(title, imageURL, description string, allText []byte) int {
	base := 0

	if title != "" {
		switch {
		case len(title) > s.weights.TitleLongLen:
			base += s.weights.TitleLong
		case len(title) > s.weights.TitleMediumLen:
			base += s.weights.TitleMedium
		default:
			base += s.weights.TitleShort
		}
	}

	if description != "" {
		switch {
		case len(description) > s.weights.DescLongLen:
			base += s.weights.DescLong
		case len(description) > s.weights.DescMediumLen:
			base += s.weights.DescMedium
		default:
			base += s.weights.DescShort
		}
	}

	if imageURL != "" {
		if strings.Contains(strings.ToLower(imageURL), "cdn") {
			base += s.weights.ImageCDN
		} else {
			base += s.weights.ImageOther
		}
	}

	if s.matches(s.freshStrong, allText) {
		base += s.weights.FreshnessStrong
	}
	if s.matches(s.freshWeak, allText) {
		base += s.weights.FreshnessWeak
	}

	return base
}

// matches reports whether any pattern in the matcher occurs in text
func (s *Scorer) matches(m *ahocorasick.Matcher, text []byte) bool {
	return len(m.Match(text)) > 0
}

// isTrustedSource checks the source name against the curated outlet list
func isTrustedSource(source string) bool {
	lower := strings.ToLower(source)
	for _, trusted := range trustedSources {
		if strings.Contains(lower, trusted) {
			return true
		}
	}
	return false
}
