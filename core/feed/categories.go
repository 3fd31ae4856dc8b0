// ABOUTME: Category roster driving scheduled fetch runs
// ABOUTME: Maps each category to the fetch kind and query that retrieves it

package feed

import "strings"

// DefaultCategories is the roster a full generation run fetches.
var DefaultCategories = []string{
	"Bengaluru",
	"technology",
	"indian celebrity",
	"entertainment",
	"indian sports",
	"international",
	"trending in bengaluru and india",
	"indian politics",
	"india",
	"indian education",
	"indian scandal and crime",
	"indian cinema and bollywood",
	"mumbai",
	"delhi",
	"chennai",
	"hyderabad",
	"pune",
	"kolkata",
}

// searchQueries are curated queries for categories without a
// dedicated topic feed. Categories absent here fall back to
// "<category> news".
var searchQueries = map[string]string{
	"trending":          "trending news",
	"politics":          "politics news",
	"india":             "India news",
	"education":         "education school university news",
	"miscellaneous":     "general news",
	"scandal":           "scandal controversy corruption exposed",
	"viral":             "viral trending goes viral internet sensation",
	"crime":             "arrest investigation fraud lawsuit criminal charges",
	"celebrity":         "celebrity scandal hollywood controversy celebrity drama",
	"political_scandal": "political scandal government corruption election fraud",
	"mumbai":            "Mumbai news Maharashtra",
	"delhi":             "Delhi news NCR New Delhi",
	"chennai":           "Chennai news Tamil Nadu",
	"hyderabad":         "Hyderabad news Telangana",
	"pune":              "Pune news Maharashtra",
	"kolkata":           "Kolkata news West Bengal",
}

// searchWindow bounds search-based fetches to recent coverage.
const searchWindow = "1d"

// FetchPlan names the fetch kind and query serving one category.
type FetchPlan struct {
	// Category is the raw source-category label
	Category string

	// Kind is one of the fetch kinds
	Kind string

	// Query is the topic name, location or search query
	Query string

	// When is the recency window for search fetches
	When string
}

// PlanFor returns how a category is fetched: the front page for
// "top", a dedicated topic feed where the aggregator has one, and a
// curated search otherwise.
func PlanFor(category string) FetchPlan {
	trimmed := strings.TrimSpace(category)
	lower := strings.ToLower(trimmed)

	if lower == KindTop {
		return FetchPlan{Category: category, Kind: KindTop}
	}
	if _, ok := topicIDs[lower]; ok {
		return FetchPlan{Category: category, Kind: KindTopic, Query: trimmed}
	}

	query, ok := searchQueries[lower]
	if !ok {
		query = trimmed + " news"
	}
	return FetchPlan{Category: category, Kind: KindSearch, Query: query, When: searchWindow}
}
