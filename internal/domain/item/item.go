// Package item holds the catalog item aggregate.
package item

import (
	"fmt"
	"strings"
)

// Item is a catalog entry (immutable value object). The store owns items;
// the pipeline only reads them, except for embedding write-back.
type Item struct {
	id             string
	title          string
	author         string
	copies         int
	available      bool
	location       string
	maxPages       int // 0 = unknown
	embedding      []float32
	embeddingModel string
}

// New validates and creates an Item. Copies below zero collapse to zero,
// matching the store default for absent or invalid values.
func New(id, title, author string, copies int, available bool, location string, maxPages int) (Item, error) {
	if id == "" {
		return Item{}, fmt.Errorf("item ID is required")
	}
	if copies < 0 {
		copies = 0
	}
	if maxPages < 0 {
		maxPages = 0
	}
	return Item{
		id:        id,
		title:     title,
		author:    author,
		copies:    copies,
		available: available,
		location:  location,
		maxPages:  maxPages,
	}, nil
}

// Reconstruct creates an Item without validation (storage hydration).
func Reconstruct(
	id, title, author string, copies int, available bool, location string,
	maxPages int, embedding []float32, embeddingModel string,
) Item {
	return Item{
		id: id, title: title, author: author, copies: copies,
		available: available, location: location, maxPages: maxPages,
		embedding: embedding, embeddingModel: embeddingModel,
	}
}

// ID returns the store-assigned identifier.
func (i *Item) ID() string { return i.id }

// Title returns the item title.
func (i *Item) Title() string { return i.title }

// Author returns the item author.
func (i *Item) Author() string { return i.author }

// Copies returns the number of physical copies.
func (i *Item) Copies() int { return i.copies }

// Available reports whether the item is currently available.
func (i *Item) Available() bool { return i.available }

// Location returns the shelf location.
func (i *Item) Location() string { return i.location }

// MaxPages returns the page count ceiling, 0 when unknown.
func (i *Item) MaxPages() int { return i.maxPages }

// Embedding returns the cached embedding vector, nil when absent.
func (i *Item) Embedding() []float32 { return i.embedding }

// EmbeddingModel returns the model tag the embedding was computed with.
func (i *Item) EmbeddingModel() string { return i.embeddingModel }

// WithEmbedding returns a copy carrying the given vector and model tag.
func (i Item) WithEmbedding(vec []float32, model string) Item {
	i.embedding = vec
	i.embeddingModel = model
	return i
}

// HasValidEmbedding reports whether the cached vector can be trusted for the
// given model and dimensionality. Stale vectors from another model are invalid.
func (i *Item) HasValidEmbedding(model string, dim int) bool {
	if len(i.embedding) == 0 || i.embeddingModel != model {
		return false
	}
	return dim <= 0 || len(i.embedding) == dim
}

// SearchText returns the lowercased "title author" haystack used for
// substring relevance scoring.
func (i *Item) SearchText() string {
	return strings.ToLower(i.title + " " + i.author)
}

// EmbeddingText returns the text that represents the item for vectorization.
func (i *Item) EmbeddingText() string {
	if i.author == "" {
		return i.title
	}
	return i.title + " by " + i.author
}

// DedupeKey returns the normalized (title, author) pair identity used for
// final-result deduplication.
func (i *Item) DedupeKey() string {
	return strings.ToLower(strings.TrimSpace(i.title)) + "|" + strings.ToLower(strings.TrimSpace(i.author))
}
