package domain

import "errors"

var (
	// ErrEmptyQuery signals a query with no usable content. Rejected before
	// any collaborator call.
	ErrEmptyQuery = errors.New("empty query")
	// ErrItemNotFound signals a missing catalog item.
	ErrItemNotFound = errors.New("item not found")
	// ErrStoreUnavailable signals that the catalog store could not serve a
	// bulk fetch or lexical search. Distinct from a valid zero-result outcome.
	ErrStoreUnavailable = errors.New("catalog store unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrRendererError signals a renderer (completion) failure.
	ErrRendererError = errors.New("renderer error")
)
