package domain

import (
	"context"

	"github.com/askshelf/askshelf/internal/domain/item"
)

// Intent classifies what a query is asking for. It selects the code path
// that produces the answer.
type Intent string

const (
	// IntentCopies asks how many copies of a specific subject exist.
	IntentCopies Intent = "copies"
	// IntentAvailability asks whether a specific subject is available.
	IntentAvailability Intent = "availability"
	// IntentAggregate asks for an exact count over the whole catalog.
	IntentAggregate Intent = "aggregate"
	// IntentCasual is small talk with no catalog keyword; answered without
	// touching any collaborator.
	IntentCasual Intent = "casual"
	// IntentRetrieval is the default hybrid search path.
	IntentRetrieval Intent = "retrieval"
)

// Answer is the final reply for one query.
type Answer struct {
	Reply        string
	Intent       Intent
	ResultsFound int
	Items        []item.Item
}

// Renderer turns an already-final item list into prose. It receives the
// pipeline output as fixed context and must never alter item identity,
// counts, or facts; the caller falls back to a deterministic rendering when
// the renderer fails.
type Renderer interface {
	Format(ctx context.Context, items []item.Item, rawQuery string) (string, error)
}
