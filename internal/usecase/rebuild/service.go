// Package rebuild refreshes the derived read state: the lexicon snapshot and
// the embedding backfill. Run at startup and on demand via the admin endpoint.
package rebuild

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/askshelf/askshelf/internal/domain/item"
	"github.com/askshelf/askshelf/internal/lexicon"
	"github.com/askshelf/askshelf/internal/usecase/backfill"
)

// Catalog provides the snapshot the lexicon is built from.
type Catalog interface {
	All(ctx context.Context) ([]item.Item, error)
}

// Backfiller recomputes missing or stale item embeddings.
type Backfiller interface {
	Run(ctx context.Context) (backfill.Result, error)
}

// Result summarizes one rebuild run.
type Result struct {
	Items    int
	Embedded int
	Skipped  int
}

// Service rebuilds the lexicon and backfills embeddings in one pass. The
// lexicon is swapped only after a successful snapshot fetch; a failed run
// leaves the previous snapshot serving.
type Service struct {
	catalog  Catalog
	backfill Backfiller
	lexicons *lexicon.Holder
	logger   *zap.Logger
}

// New creates a rebuild service.
func New(catalog Catalog, backfiller Backfiller, lexicons *lexicon.Holder, logger *zap.Logger) *Service {
	return &Service{
		catalog:  catalog,
		backfill: backfiller,
		lexicons: lexicons,
		logger:   logger,
	}
}

// Rebuild backfills embeddings first so the fresh lexicon is built from the
// same snapshot the semantic path will score.
func (s *Service) Rebuild(ctx context.Context) (Result, error) {
	bf, err := s.backfill.Run(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("rebuild backfill: %w", err)
	}

	all, err := s.catalog.All(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("rebuild snapshot: %w", err)
	}
	s.lexicons.Replace(lexicon.Build(all))

	s.logger.Info("Lexicon rebuilt",
		zap.Int("items", len(all)),
		zap.Int("embedded", bf.Embedded),
		zap.Int("skipped", bf.Skipped),
	)
	return Result{Items: len(all), Embedded: bf.Embedded, Skipped: bf.Skipped}, nil
}
