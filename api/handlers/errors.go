// ABOUTME: Error mapping and JSON helpers shared by the API handlers
// ABOUTME: Converts domain errors into HTTP statuses with a uniform error body

package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/sundeep8967/keypoints-backend-1/api/dto/responses"
	"github.com/sundeep8967/keypoints-backend-1/core/errors"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

// writeJSON writes v as the JSON body of a response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError converts a domain error into an HTTP error response.
func writeError(w http.ResponseWriter, logger interfaces.Logger, err error) {
	status, short := statusFor(err)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.Error("Request handler failed", map[string]interface{}{
			"status": status,
			"error":  err.Error(),
		})
	}
	writeJSON(w, status, responses.ErrorResponse{Error: short, Message: err.Error()})
}

// writeValidationError reports a bad request without a domain error.
func writeValidationError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, responses.ErrorResponse{Error: "validation failed", Message: message})
}

// writeUnavailable reports a backend the deployment did not configure
// or cannot reach right now.
func writeUnavailable(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusServiceUnavailable, responses.ErrorResponse{Error: "service unavailable", Message: message})
}

// writeDisabled hides an endpoint turned off by a feature flag.
func writeDisabled(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, responses.ErrorResponse{Error: "not found", Message: message})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) (int, string) {
	if errors.IsNotFound(err) {
		return http.StatusNotFound, "not found"
	}
	if errors.IsValidation(err) {
		return http.StatusBadRequest, "validation failed"
	}

	var apiErr *errors.ExternalAPIError
	if stderrors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode >= 500:
			return http.StatusServiceUnavailable, "external service error"
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return http.StatusTooManyRequests, "rate limited by external service"
		case apiErr.StatusCode >= 400:
			return http.StatusBadRequest, "external service request error"
		}
		return http.StatusInternalServerError, "unexpected external service response"
	}

	return http.StatusInternalServerError, "internal server error"
}
