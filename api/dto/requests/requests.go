// ABOUTME: Request DTOs for the news API endpoints
// ABOUTME: Provides validation for incoming generation and briefing requests

package requests

import "strings"

// GenerateRequest represents the body of a generation request. An
// empty body queues a full refresh across every configured category.
type GenerateRequest struct {
	// Category limits the run to one category when set
	Category string `json:"category,omitempty"`
}

// Normalize trims whitespace so "  sports " and "sports" queue the
// same job.
func (r *GenerateRequest) Normalize() {
	r.Category = strings.TrimSpace(r.Category)
}

// BriefingRequest represents the body of an audio briefing request.
type BriefingRequest struct {
	// Category names the generated result set to speak
	Category string `json:"category"`
}

// Validate checks the request carries a usable category.
func (r *BriefingRequest) Validate() string {
	if strings.TrimSpace(r.Category) == "" {
		return "category is required"
	}
	return ""
}
