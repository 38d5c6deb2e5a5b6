package ask

import (
	"context"

	"github.com/askshelf/askshelf/internal/domain/item"
	"github.com/askshelf/askshelf/internal/lexicon"
)

// Retriever runs the hybrid search pipeline.
type Retriever interface {
	Retrieve(ctx context.Context, rawQuery string, boostTerms []string) ([]item.Item, error)
}

// Catalog provides the full item set for aggregate answers.
type Catalog interface {
	All(ctx context.Context) ([]item.Item, error)
}

// LexiconProvider hands out the current lexicon snapshot for topic expansion.
type LexiconProvider interface {
	Get() *lexicon.Lexicon
}
