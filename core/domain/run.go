// ABOUTME: Workflow run summary reported after a fetch/generate/push cycle
// ABOUTME: Mirrors the per-step counters the CLI prints and the worker logs

package domain

import "time"

// RunSummary reports the outcome of one full workflow run.
type RunSummary struct {
	// RunID identifies the run across result documents and logs
	RunID string `json:"run_id"`

	// Categories is the number of raw categories the run covered
	Categories int `json:"categories"`

	// Fetched counts categories whose feed fetch succeeded
	Fetched int `json:"fetched"`

	// Generated counts categories whose enrichment produced a result document
	Generated int `json:"generated"`

	// Pushed reports whether the storage upload step succeeded
	Pushed bool `json:"pushed"`

	// TotalArticles is the number of articles emitted across all documents
	TotalArticles int `json:"total_articles"`

	// Successful counts cleanly enriched articles across all documents
	Successful int `json:"successful"`

	// Degraded counts error-tagged articles across all documents
	Degraded int `json:"degraded"`

	// DuplicatesRemoved counts articles dropped by the merge step
	DuplicatesRemoved int `json:"duplicates_removed"`

	// Rejected counts articles the upload gate turned away
	Rejected int `json:"rejected"`

	// Stored is the number of rows upserted by the push step
	Stored int `json:"stored"`

	// Duration is how long the run took end to end
	Duration time.Duration `json:"duration"`
}

// Succeeded reports whether the run produced usable output. Fetching
// and generating nothing is a failure even when no step errored.
func (s *RunSummary) Succeeded() bool {
	return s.Fetched > 0 && s.Generated > 0 && s.Pushed
}
