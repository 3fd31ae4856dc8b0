// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for the enrichment pipeline and API responses

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents an error from an external API
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// RedirectUnresolvedError means an aggregator link could not be mapped
// to a real article URL. The article is still emitted, flagged, with a
// placeholder image and degraded title.
type RedirectUnresolvedError struct {
	Link   string
	Reason string
}

// Error implements the error interface
func (e *RedirectUnresolvedError) Error() string {
	return fmt.Sprintf("redirect unresolved for %s: %s", e.Link, e.Reason)
}

// NavigationTimeoutError means a page failed to load within its bound.
type NavigationTimeoutError struct {
	URL     string
	Timeout string
}

// Error implements the error interface
func (e *NavigationTimeoutError) Error() string {
	return fmt.Sprintf("navigation to %s timed out after %s", e.URL, e.Timeout)
}

// ExtractionEmptyError means every content strategy yielded nothing
// substantial for the page.
type ExtractionEmptyError struct {
	URL string
}

// Error implements the error interface
func (e *ExtractionEmptyError) Error() string {
	return fmt.Sprintf("no substantial content extracted from %s", e.URL)
}

// ValidationRejectedError means an assembled article failed the storage
// upload gate and was dropped before submission.
type ValidationRejectedError struct {
	ArticleID string
	Reason    string
}

// Error implements the error interface
func (e *ValidationRejectedError) Error() string {
	return fmt.Sprintf("article %s rejected before upload: %s", e.ArticleID, e.Reason)
}

// BatchFailedError means a batch run produced zero successful articles.
// It is distinct from partial success, which is not an error.
type BatchFailedError struct {
	Attempted int
}

// Error implements the error interface
func (e *BatchFailedError) Error() string {
	return fmt.Sprintf("batch failed: 0 of %d articles processed successfully", e.Attempted)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// IsRedirectUnresolved checks if an error is a RedirectUnresolvedError
func IsRedirectUnresolved(err error) bool {
	var redirectErr *RedirectUnresolvedError
	return errors.As(err, &redirectErr)
}

// IsNavigationTimeout checks if an error is a NavigationTimeoutError
func IsNavigationTimeout(err error) bool {
	var timeoutErr *NavigationTimeoutError
	return errors.As(err, &timeoutErr)
}

// IsExtractionEmpty checks if an error is an ExtractionEmptyError
func IsExtractionEmpty(err error) bool {
	var emptyErr *ExtractionEmptyError
	return errors.As(err, &emptyErr)
}

// IsValidationRejected checks if an error is a ValidationRejectedError
func IsValidationRejected(err error) bool {
	var rejectedErr *ValidationRejectedError
	return errors.As(err, &rejectedErr)
}

// IsBatchFailed checks if an error is a BatchFailedError
func IsBatchFailed(err error) bool {
	var batchErr *BatchFailedError
	return errors.As(err, &batchErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
