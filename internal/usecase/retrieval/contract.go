package retrieval

import (
	"context"

	"github.com/askshelf/askshelf/internal/domain"
	"github.com/askshelf/askshelf/internal/domain/item"
	"github.com/askshelf/askshelf/internal/lexicon"
)

// Catalog defines the storage contract for retrieval.
type Catalog interface {
	All(ctx context.Context) ([]item.Item, error)
	LexicalSearch(ctx context.Context, query string, limit int) ([]item.Item, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// LexiconProvider hands out the current lexicon snapshot.
type LexiconProvider interface {
	Get() *lexicon.Lexicon
}
