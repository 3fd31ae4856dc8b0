// ABOUTME: Maps raw source-category labels onto the canonical category taxonomy
// ABOUTME: Deterministic lookup: exact table, region match, priority keywords, fallback

package category

import (
	"strings"

	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

// Canonical category names used for grouping and storage.
const (
	Bengaluru     = "bengaluru"
	India         = "india"
	Entertainment = "entertainment"
	Sports        = "sports"
	Politics      = "politics"
	Education     = "education"
	Crime         = "crime"
	Trending      = "trending"
	World         = "world"
	Technology    = "technology"
	Business      = "business"
	Health        = "health"
	Science       = "science"
)

// exactMappings resolves known compound labels before any substring
// matching runs.
var exactMappings = map[string]string{
	"indian cinema and bollywood":    Entertainment,
	"indian celebrity":               Entertainment,
	"indian sports":                  Sports,
	"indian politics":                Politics,
	"indian education":               Education,
	"indian scandal and crime":       Crime,
	"trending in bengaluru and india": Trending,
	"international":                  World,
	"india":                          India,
}

// indianCitiesStates map to the generic india category. Bengaluru is
// intentionally kept separate.
var indianCitiesStates = []string{
	"mumbai", "delhi", "chennai", "hyderabad", "pune", "kolkata",
	"maharashtra", "tamil nadu", "telangana", "west bengal", "ncr",
	"new delhi", "gurgaon", "noida", "ahmedabad", "surat", "jaipur",
	"lucknow", "kanpur", "nagpur", "indore", "thane", "bhopal",
	"visakhapatnam", "pimpri", "patna", "vadodara", "ludhiana",
	"agra", "nashik", "faridabad", "meerut", "rajkot", "kalyan",
	"vasai", "varanasi", "srinagar", "aurangabad", "dhanbad",
	"amritsar", "navi mumbai", "allahabad", "ranchi", "howrah",
	"coimbatore", "jabalpur", "gwalior", "vijayawada", "jodhpur",
	"madurai", "raipur", "kota", "guwahati", "chandigarh",
}

// priorityList orders base-category keywords so more specific
// categories match before general ones. A match becomes the category.
var priorityList = []string{
	Trending, Politics, Education, Sports, Entertainment,
	"celebrity", "cinema", Crime, "scandal", Technology,
	World, Business, Health, Science,
}

// Mapper normalizes raw category labels. Mapping is referentially
// transparent; the logger only records unmapped passthroughs.
type Mapper struct {
	logger interfaces.Logger
}

// NewMapper creates a new category mapper
func NewMapper(logger interfaces.Logger) *Mapper {
	return &Mapper{logger: logger}
}

// Map returns the canonical category for a raw source label.
func (m *Mapper) Map(sourceCategory string) string {
	label := strings.ToLower(strings.TrimSpace(sourceCategory))

	if mapped, ok := exactMappings[label]; ok {
		return mapped
	}

	if strings.Contains(label, "bengaluru") || strings.Contains(label, "bangalore") {
		return Bengaluru
	}

	for _, cityState := range indianCitiesStates {
		if strings.Contains(label, cityState) {
			return India
		}
	}

	for _, keyword := range priorityList {
		if strings.Contains(label, keyword) {
			return keyword
		}
	}

	if strings.Contains(label, "indian") || strings.Contains(label, "india") {
		return India
	}

	if m.logger != nil {
		m.logger.Warn("No category mapping found, using original label", map[string]interface{}{
			"label": sourceCategory,
		})
	}
	return sourceCategory
}

// Known reports whether a label already names a canonical category.
func Known(label string) bool {
	switch label {
	case Bengaluru, India, Entertainment, Sports, Politics, Education,
		Crime, Trending, World, Technology, Business, Health, Science:
		return true
	}
	return false
}
