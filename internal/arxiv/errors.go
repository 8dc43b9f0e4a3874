package arxiv

import (
	"errors"
	"fmt"
)

// Common errors returned by the arXiv client.
var (
	// ErrNotFound indicates the API returned no entry for the identifier.
	ErrNotFound = errors.New("paper not found on arXiv")

	// ErrNetwork indicates a transport failure talking to the API.
	ErrNetwork = errors.New("network error communicating with arXiv")

	// ErrInvalidResponse indicates a response that did not match the
	// expected Atom schema, including entries without a pdf link.
	ErrInvalidResponse = errors.New("invalid response from arXiv")
)

// APIError represents a non-success HTTP status from the arXiv API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("arXiv API error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound returns true if the error indicates the paper does not exist.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
