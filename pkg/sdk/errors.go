package askshelf

import (
	"errors"
	"fmt"
)

// Sentinel errors mirrored from the server's error codes.
// Use errors.Is() to check.
var (
	ErrEmptyQuery             = errors.New("empty query")
	ErrItemNotFound           = errors.New("item not found")
	ErrStoreUnavailable       = errors.New("catalog store unavailable")
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	ErrUnauthorized           = errors.New("unauthorized")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("askshelf: %s (code %s, http %d)", e.Message, e.Code, e.StatusCode)
}

// Unwrap maps the server error code to a sentinel for errors.Is.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "empty_query":
		return ErrEmptyQuery
	case "item_not_found":
		return ErrItemNotFound
	case "store_unavailable":
		return ErrStoreUnavailable
	case "embedding_provider_error":
		return ErrEmbeddingProviderError
	}
	if e.StatusCode == 401 {
		return ErrUnauthorized
	}
	return nil
}
