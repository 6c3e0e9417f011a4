package cursetools

import (
	"errors"
	"fmt"
)

// Sentinel errors for curse.tools API operations.
var (
	// ErrNotFound is returned when the API answers 404.
	ErrNotFound = errors.New("not found")

	// ErrRateLimitExceeded is returned when the API rate limit is exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrInvalidResponse is returned when the API returns a body that cannot be decoded.
	ErrInvalidResponse = errors.New("invalid API response")

	// ErrEmptySlug is returned when a search is attempted without a slug.
	ErrEmptySlug = errors.New("slug cannot be empty")

	// ErrEmptyModID is returned when a file listing is attempted without a mod ID.
	ErrEmptyModID = errors.New("mod ID cannot be empty")
)

// APIError represents an API error response.
type APIError struct {
	ErrorMsg    string `json:"error"`
	Description string `json:"description"`
	StatusCode  int    `json:"-"`
}

// Error returns the error message.
func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.ErrorMsg, e.Description, e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.ErrorMsg, e.StatusCode)
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, errorMsg, description string) *APIError {
	return &APIError{
		ErrorMsg:    errorMsg,
		Description: description,
		StatusCode:  statusCode,
	}
}
